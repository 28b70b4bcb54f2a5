package main

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the Ollama service and the configured model without sending content",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := buildApp(ctx)
		if err != nil {
			return err
		}

		models, err := a.client.ListModels(ctx)
		if err != nil {
			return err
		}
		a.log.Info(ctx, "Ollama reachable at %s (%d models installed)", a.client.Host(), len(models))
		for _, m := range models {
			a.log.Info(ctx, "  - %s", m)
		}

		if err := a.client.CheckModel(ctx, a.cfg.Ollama.Model); err != nil {
			return err
		}
		a.log.Info(ctx, "Model %s is available", a.cfg.Ollama.Model)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
