package pipeline

import (
	"context"

	"privaflow/internal/logger"
	"privaflow/internal/sanitize"
	"privaflow/internal/transcriber"
	"privaflow/internal/transform"
)

// Options selects which stages and operations a run performs.
type Options struct {
	SanitizeEnabled bool
	Summarize       bool
	TargetLanguages []string
	SourceLanguage  string
	MaxWords        int
	PromptTemplate  string
	KeepSanitized   bool
	ExportDocx      bool
}

// Adapter is the external-transform boundary the pipeline drives.
// *transform.Adapter satisfies it; tests substitute stubs.
type Adapter interface {
	Transform(ctx context.Context, text sanitize.SanitizedText, req transform.Request) (string, error)
}

type implPipeline struct {
	opts        Options
	transcriber transcriber.Transcriber
	sanitizer   *sanitize.Sanitizer
	restorer    *sanitize.Restorer
	adapter     Adapter
	logger      logger.Logger
}

// New creates a Pipeline instance.
func New(opts Options, trans transcriber.Transcriber, san *sanitize.Sanitizer, res *sanitize.Restorer, adapter Adapter, log logger.Logger) Pipeline {
	return &implPipeline{
		opts:        opts,
		transcriber: trans,
		sanitizer:   san,
		restorer:    res,
		adapter:     adapter,
		logger:      log,
	}
}
