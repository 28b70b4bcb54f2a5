package main

import (
	"github.com/spf13/cobra"

	"privaflow/internal/pipeline"
)

var transcribeNoSanitize bool

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <media-file>",
	Short: "Transcribe a media file and write the raw and sanitized transcripts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := buildApp(ctx)
		if err != nil {
			return err
		}

		opts := pipeline.Options{
			SanitizeEnabled: a.cfg.Sanitize.IsEnabled() && !transcribeNoSanitize,
			Summarize:       false,
		}

		result, err := a.newPipeline(opts).Process(ctx, args[0])
		a.printResult(ctx, result)
		return err
	},
}

func init() {
	transcribeCmd.Flags().BoolVar(&transcribeNoSanitize, "no-sanitize", false, "skip the sanitization pass")
	rootCmd.AddCommand(transcribeCmd)
}
