package main

import (
	"github.com/spf13/cobra"

	"privaflow/internal/pipeline"
	"privaflow/internal/transform"
)

var (
	summarizePrompt        string
	summarizeMaxLength     int
	summarizeKeepSanitized bool
	summarizeDocx          bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <sanitized-file>",
	Short: "Summarize an existing *_sanitized.txt artifact through Ollama",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := buildApp(ctx)
		if err != nil {
			return err
		}

		// Probe service and model before reading any content.
		if err := a.adapter.Check(ctx); err != nil {
			return err
		}

		opts := pipeline.Options{
			SanitizeEnabled: a.cfg.Sanitize.IsEnabled(),
			KeepSanitized:   summarizeKeepSanitized,
			ExportDocx:      summarizeDocx,
		}
		req := transform.Request{
			Op:             transform.OpSummarize,
			MaxWords:       summarizeMaxLength,
			PromptTemplate: summarizePrompt,
		}

		result, err := a.newPipeline(opts).TransformFile(ctx, args[0], req)
		a.printResult(ctx, result)
		return err
	},
}

func init() {
	summarizeCmd.Flags().StringVarP(&summarizePrompt, "prompt", "p", "", "custom prompt template ({text} placeholder)")
	summarizeCmd.Flags().IntVar(&summarizeMaxLength, "max-length", 0, "maximum summary length in words")
	summarizeCmd.Flags().BoolVarP(&summarizeKeepSanitized, "keep-sanitized", "k", false, "keep the summary sanitized (do not restore)")
	summarizeCmd.Flags().BoolVar(&summarizeDocx, "docx", false, "also export the restored summary as a .docx file")
	rootCmd.AddCommand(summarizeCmd)
}
