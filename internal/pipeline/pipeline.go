// Package pipeline sequences the stages of a run and enforces the boundary
// invariant: only the sanitized artifact is ever handed to the external
// transform adapter.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"privaflow/internal/artifact"
	"privaflow/internal/transform"
)

// Process runs the full pipeline for one media file. Artifacts are written
// next to the input, following the naming contract.
func (p *implPipeline) Process(ctx context.Context, mediaPath string) (*Result, error) {
	startTime := time.Now()
	dir := filepath.Dir(mediaPath)
	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	result := newResult()

	p.logger.Info(ctx, "Starting pipeline: %s", mediaPath)

	// Raw -> Transcribed
	rawText, err := p.transcriber.Transcribe(ctx, mediaPath)
	if err != nil {
		return result, err
	}

	rawPath := filepath.Join(dir, artifact.RawName(base))
	if err := artifact.Write(artifact.Artifact{
		Name:   artifact.RawName(base),
		Stage:  artifact.StageRaw,
		Source: mediaPath,
		Text:   rawText,
	}, rawPath); err != nil {
		return result, err
	}
	result.Artifacts["transcript"] = rawPath

	requests := p.buildRequests()

	// Transcribed -> Sanitized. With sanitization disabled this is a
	// pass-through, and no text may cross the external boundary.
	if !p.opts.SanitizeEnabled {
		if len(requests) > 0 {
			return result, fmt.Errorf("sanitization is disabled: refusing to send text to the external transformer")
		}
		p.logger.Info(ctx, "Sanitization disabled; pipeline finished after transcription")
		return result, nil
	}

	sanitized, applied := p.sanitizer.Sanitize(rawText)
	for _, r := range applied {
		p.logger.Info(ctx, "Sanitized %q -> %q (%d occurrences)", r.Pattern, r.Code, r.Count)
	}

	if leaked := p.sanitizer.LeakCheck(sanitized); len(leaked) > 0 {
		return result, fmt.Errorf("sanitized text still matches patterns %v; registry is inconsistent", leaked)
	}

	sanitizedPath := filepath.Join(dir, artifact.SanitizedName(base))
	if err := artifact.Write(artifact.Artifact{
		Name:   artifact.SanitizedName(base),
		Stage:  artifact.StageSanitized,
		Source: mediaPath,
		Text:   sanitized.String(),
	}, sanitizedPath); err != nil {
		return result, err
	}
	result.Artifacts["sanitized transcript"] = sanitizedPath

	// Sanitized -> ExternalTransformed, one independent invocation per
	// requested operation.
	appliedCodes := make(map[string]bool, len(applied))
	for _, r := range applied {
		appliedCodes[r.Code] = true
	}

	for _, req := range requests {
		if err := p.runOperation(ctx, dir, base, mediaPath, sanitized, appliedCodes, req, result); err != nil {
			p.logger.Error(ctx, "%s failed: %v", req.Describe(), err)
			result.Failed = append(result.Failed, fmt.Sprintf("%s: %v", req.Describe(), err))
		}
	}

	p.logger.Info(ctx, "Pipeline finished in %s (%d artifacts, %d failed operations)",
		time.Since(startTime).Round(time.Millisecond), len(result.Artifacts), len(result.Failed))

	if len(result.Failed) > 0 {
		return result, fmt.Errorf("%d of %d operations failed", len(result.Failed), len(requests))
	}
	return result, nil
}

func (p *implPipeline) buildRequests() []transform.Request {
	var requests []transform.Request
	if p.opts.Summarize {
		requests = append(requests, transform.Request{
			Op:             transform.OpSummarize,
			MaxWords:       p.opts.MaxWords,
			PromptTemplate: p.opts.PromptTemplate,
		})
	}
	for _, lang := range p.opts.TargetLanguages {
		requests = append(requests, transform.Request{
			Op:             transform.OpTranslate,
			TargetLanguage: lang,
			SourceLanguage: p.opts.SourceLanguage,
			PromptTemplate: p.opts.PromptTemplate,
		})
	}
	return requests
}
