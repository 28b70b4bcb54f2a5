package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"privaflow/internal/config"
	"privaflow/internal/logger"
	"privaflow/internal/ollama"
	"privaflow/internal/pipeline"
	"privaflow/internal/registry"
	"privaflow/internal/sanitize"
	"privaflow/internal/transcriber"
	"privaflow/internal/transform"
	"privaflow/pkg/executor"
)

var (
	configPath string
	verbose    bool
	modelFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "privaflow",
	Short: "Privacy-preserving transcript pipeline",
	Long: `privaflow transcribes media files and summarizes or translates the
transcript through a locally hosted LLM without ever exposing configured
confidential terms: text is sanitized before it crosses the model boundary
and the codes are restored afterwards.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Ollama model to use (overrides config)")
}

// app bundles the components every subcommand needs. Configuration and
// registry errors abort here, before any file is touched.
type app struct {
	cfg       *config.Config
	log       logger.Logger
	reg       *registry.Registry
	client    *ollama.Client
	adapter   *transform.Adapter
	sanitizer *sanitize.Sanitizer
	restorer  *sanitize.Restorer
}

func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if modelFlag != "" {
		cfg.Ollama.Model = modelFlag
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	log := logger.New(level)

	reg, err := registry.FromConfig(cfg.Sanitize)
	if err != nil {
		return nil, err
	}
	for _, w := range reg.Warnings() {
		log.Warn(ctx, "Registry: %s", w)
	}

	client := ollama.New(cfg.Ollama.Host, time.Duration(cfg.Ollama.TimeoutSeconds)*time.Second)
	adapter := transform.New(client, cfg.Ollama.Model, reg.Codes(), cfg.Ollama.MaxRetries, log)

	return &app{
		cfg:       cfg,
		log:       log,
		reg:       reg,
		client:    client,
		adapter:   adapter,
		sanitizer: sanitize.NewSanitizer(reg),
		restorer:  sanitize.NewRestorer(reg),
	}, nil
}

func (a *app) newPipeline(opts pipeline.Options) pipeline.Pipeline {
	trans := transcriber.New(a.cfg.Whisper, executor.New(), a.log)
	return pipeline.New(opts, trans, a.sanitizer, a.restorer, a.adapter, a.log)
}

func (a *app) printResult(ctx context.Context, result *pipeline.Result) {
	for label, path := range result.Artifacts {
		a.log.Info(ctx, "Artifact: %s -> %s", label, path)
	}
	for _, failed := range result.Failed {
		a.log.Error(ctx, "Failed operation: %s", failed)
	}
}
