package main

import (
	"github.com/spf13/cobra"

	"privaflow/internal/pipeline"
	"privaflow/internal/transform"
)

var (
	translateTarget        string
	translateSource        string
	translatePrompt        string
	translateKeepSanitized bool
)

var translateCmd = &cobra.Command{
	Use:   "translate <sanitized-file>",
	Short: "Translate an existing *_sanitized.txt artifact through Ollama",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := buildApp(ctx)
		if err != nil {
			return err
		}

		if err := a.adapter.Check(ctx); err != nil {
			return err
		}

		opts := pipeline.Options{
			SanitizeEnabled: a.cfg.Sanitize.IsEnabled(),
			KeepSanitized:   translateKeepSanitized,
		}
		req := transform.Request{
			Op:             transform.OpTranslate,
			TargetLanguage: translateTarget,
			SourceLanguage: translateSource,
			PromptTemplate: translatePrompt,
		}

		result, err := a.newPipeline(opts).TransformFile(ctx, args[0], req)
		a.printResult(ctx, result)
		return err
	},
}

func init() {
	translateCmd.Flags().StringVarP(&translateTarget, "target-lang", "t", "", "target language (required)")
	translateCmd.Flags().StringVarP(&translateSource, "source-lang", "s", "", "source language (auto-detected when empty)")
	translateCmd.Flags().StringVarP(&translatePrompt, "prompt", "p", "", "custom prompt template ({text}, {target_lang}, {source_lang})")
	translateCmd.Flags().BoolVarP(&translateKeepSanitized, "keep-sanitized", "k", false, "keep the translation sanitized (do not restore)")
	_ = translateCmd.MarkFlagRequired("target-lang")
	rootCmd.AddCommand(translateCmd)
}
