package main

import (
	"github.com/spf13/cobra"

	"privaflow/internal/pipeline"
)

var restoreOutput string

var restoreCmd = &cobra.Command{
	Use:   "restore <sanitized-file>",
	Short: "Restore confidential terms in any sanitized text file",
	Long: `Restore replaces the registry's codes with their canonical terms in any
sanitized file. It must run with the same term configuration that produced
the file, or restoration is silently partial. Structural redactions made by
advanced patterns (e.g. [PHONE]) are permanent and stay as they are.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := buildApp(ctx)
		if err != nil {
			return err
		}

		p := a.newPipeline(pipeline.Options{SanitizeEnabled: a.cfg.Sanitize.IsEnabled()})
		out, err := p.RestoreFile(ctx, args[0], restoreOutput)
		if err != nil {
			return err
		}
		a.log.Info(ctx, "Restored file written: %s", out)
		return nil
	},
}

func init() {
	restoreCmd.Flags().StringVarP(&restoreOutput, "output", "o", "", "output file path (default: <name>_restored.txt)")
	rootCmd.AddCommand(restoreCmd)
}
