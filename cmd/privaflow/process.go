package main

import (
	"github.com/spf13/cobra"

	"privaflow/internal/pipeline"
)

var (
	processPrompt        string
	processMaxLength     int
	processKeepSanitized bool
	processSkipSummary   bool
	processNoSanitize    bool
	processTranslateTo   []string
	processSourceLang    string
	processDocx          bool
)

var processCmd = &cobra.Command{
	Use:   "process <media-file>",
	Short: "Run the full pipeline: transcribe, sanitize, summarize/translate, restore",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := buildApp(ctx)
		if err != nil {
			return err
		}

		opts := pipeline.Options{
			SanitizeEnabled: a.cfg.Sanitize.IsEnabled() && !processNoSanitize,
			Summarize:       !processSkipSummary,
			TargetLanguages: processTranslateTo,
			SourceLanguage:  processSourceLang,
			MaxWords:        processMaxLength,
			PromptTemplate:  processPrompt,
			KeepSanitized:   processKeepSanitized,
			ExportDocx:      processDocx,
		}

		result, err := a.newPipeline(opts).Process(ctx, args[0])
		a.printResult(ctx, result)
		return err
	},
}

func init() {
	processCmd.Flags().StringVarP(&processPrompt, "prompt", "p", "", "custom prompt template ({text}, {target_lang}, {source_lang})")
	processCmd.Flags().IntVar(&processMaxLength, "max-length", 0, "maximum summary length in words")
	processCmd.Flags().BoolVarP(&processKeepSanitized, "keep-sanitized", "k", false, "keep outputs sanitized (do not restore confidential terms)")
	processCmd.Flags().BoolVarP(&processSkipSummary, "skip-summary", "s", false, "skip the summarization step")
	processCmd.Flags().BoolVar(&processNoSanitize, "no-sanitize", false, "disable sanitization (external transforms are refused)")
	processCmd.Flags().StringArrayVarP(&processTranslateTo, "translate", "t", nil, "target language to translate to (repeatable)")
	processCmd.Flags().StringVar(&processSourceLang, "source-lang", "", "source language for translation (auto-detected when empty)")
	processCmd.Flags().BoolVar(&processDocx, "docx", false, "also export the restored summary as a .docx file")
	rootCmd.AddCommand(processCmd)
}
