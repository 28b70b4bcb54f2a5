package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"privaflow/internal/pipeline"
	"privaflow/internal/watcher"
)

var (
	watchTranslateTo   []string
	watchSkipSummary   bool
	watchKeepSanitized bool
	watchDocx          bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Watch a directory and run the full pipeline on every new media file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}

		opts := pipeline.Options{
			SanitizeEnabled: a.cfg.Sanitize.IsEnabled(),
			Summarize:       !watchSkipSummary,
			TargetLanguages: watchTranslateTo,
			KeepSanitized:   watchKeepSanitized,
			ExportDocx:      watchDocx,
		}
		p := a.newPipeline(opts)

		handler := func(ctx context.Context, path string) error {
			result, err := p.Process(ctx, path)
			a.printResult(ctx, result)
			return err
		}

		w, err := watcher.New(args[0], handler, a.log, a.cfg.Performance.MaxConcurrent)
		if err != nil {
			return err
		}
		defer w.Stop()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		errChan := make(chan error, 1)
		go func() {
			errChan <- w.Start(ctx)
		}()

		a.log.Info(ctx, "Pipeline ready. Press Ctrl+C to stop")

		select {
		case <-sigChan:
			a.log.Info(ctx, "Shutdown signal received")
			cancel()
			// Start drains in-flight files before returning.
			<-errChan
			return nil
		case err := <-errChan:
			if err == context.Canceled {
				return nil
			}
			return err
		}
	},
}

func init() {
	watchCmd.Flags().StringArrayVarP(&watchTranslateTo, "translate", "t", nil, "target language to translate to (repeatable)")
	watchCmd.Flags().BoolVarP(&watchSkipSummary, "skip-summary", "s", false, "skip the summarization step")
	watchCmd.Flags().BoolVarP(&watchKeepSanitized, "keep-sanitized", "k", false, "keep outputs sanitized")
	watchCmd.Flags().BoolVar(&watchDocx, "docx", false, "also export restored summaries as .docx files")
	rootCmd.AddCommand(watchCmd)
}
