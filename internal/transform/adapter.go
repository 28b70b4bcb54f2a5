// Package transform sends sanitized text through the external LLM service.
// Its input type is sanitize.SanitizedText, so unsanitized text cannot reach
// this boundary by construction.
package transform

import (
	"context"
	"errors"
	"fmt"
	"time"

	"privaflow/internal/logger"
	"privaflow/internal/ollama"
	"privaflow/internal/sanitize"
)

// Client is the slice of the Ollama API the adapter needs. *ollama.Client
// satisfies it; tests substitute a stub.
type Client interface {
	ListModels(ctx context.Context) ([]string, error)
	CheckModel(ctx context.Context, model string) error
	Generate(ctx context.Context, model, prompt string) (string, error)
	Host() string
}

type Adapter struct {
	client     Client
	model      string
	codes      []string
	maxRetries int
	retryDelay time.Duration
	logger     logger.Logger
}

// New creates an Adapter. codes is the registry's code list, embedded into
// every prompt's keep-unchanged instruction. maxRetries bounds resubmission
// on transport failures only.
func New(client Client, model string, codes []string, maxRetries int, log logger.Logger) *Adapter {
	return &Adapter{
		client:     client,
		model:      model,
		codes:      codes,
		maxRetries: maxRetries,
		retryDelay: 2 * time.Second,
		logger:     log,
	}
}

// Check probes the service and the configured model without submitting any
// content.
func (a *Adapter) Check(ctx context.Context) error {
	if _, err := a.client.ListModels(ctx); err != nil {
		return err
	}
	return a.client.CheckModel(ctx, a.model)
}

// Transform runs one operation on sanitized text. Retries apply only to
// transport failures: the same already-sanitized prompt is resubmitted
// verbatim, never re-sanitized. Model and semantic errors fail immediately.
func (a *Adapter) Transform(ctx context.Context, text sanitize.SanitizedText, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	prompt := buildPrompt(req, text.String(), a.codes)

	var lastErr error
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if attempt > 0 {
			a.logger.Warn(ctx, "Retrying %s (attempt %d/%d): %v", req.Describe(), attempt, a.maxRetries, lastErr)
			select {
			case <-time.After(a.retryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		out, err := a.client.Generate(ctx, a.model, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err

		var unreachable *ollama.ServiceUnreachableError
		if !errors.As(err, &unreachable) {
			return "", fmt.Errorf("%s: %w", req.Describe(), err)
		}
	}

	return "", fmt.Errorf("%s: %w", req.Describe(), lastErr)
}
