package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"privaflow/internal/artifact"
	"privaflow/internal/report"
	"privaflow/internal/sanitize"
	"privaflow/internal/transform"
)

// runOperation performs one external transform and writes its artifacts.
// appliedCodes is the set of codes known to be present in the sanitized
// input; a code from that set that never shows up during restoration means
// the model altered it, which is surfaced as a warning, not a failure.
func (p *implPipeline) runOperation(ctx context.Context, dir, base, source string, sanitized sanitize.SanitizedText, appliedCodes map[string]bool, req transform.Request, result *Result) error {
	p.logger.Info(ctx, "Requesting %s (%d characters of sanitized text)", req.Describe(), sanitized.Len())

	out, err := p.adapter.Transform(ctx, sanitized, req)
	if err != nil {
		return err
	}

	var sanName, resName, label string
	if req.Op == transform.OpTranslate {
		sanName = artifact.TranslationSanitizedName(base, req.TargetLanguage)
		resName = artifact.TranslationRestoredName(base, req.TargetLanguage)
		label = "translation (" + req.TargetLanguage + ")"
	} else {
		sanName = artifact.SummarySanitizedName(base)
		resName = artifact.SummaryRestoredName(base)
		label = "summary"
	}

	sanPath := filepath.Join(dir, sanName)
	if err := artifact.Write(artifact.Artifact{
		Name:   sanName,
		Stage:  artifact.StageTransformedSanitized,
		Source: source,
		Text:   out,
	}, sanPath); err != nil {
		return err
	}

	if p.opts.KeepSanitized {
		// No restoration: the artifact stays sanitized and is labeled so.
		result.Artifacts[label+" (kept sanitized)"] = sanPath
		return nil
	}
	result.Artifacts[label+" (sanitized)"] = sanPath

	restored, restorations := p.restorer.Restore(out)
	p.warnMissingCodes(ctx, req, appliedCodes, restorations)

	resPath := filepath.Join(dir, resName)
	if err := artifact.Write(artifact.Artifact{
		Name:   resName,
		Stage:  artifact.StageTransformedRestored,
		Source: source,
		Text:   restored,
	}, resPath); err != nil {
		return err
	}
	result.Artifacts[label+" (restored)"] = resPath

	if req.Op == transform.OpSummarize && p.opts.ExportDocx {
		docxPath := filepath.Join(dir, base+"_summary_restored.docx")
		if err := report.WriteSummaryDocx(base, restored, docxPath); err != nil {
			p.logger.Warn(ctx, "Failed to export docx summary: %v", err)
		} else {
			result.Artifacts["summary (docx)"] = docxPath
		}
	}

	return nil
}

// warnMissingCodes emits the partial-restoration warning: a code that went
// into the transformer but came back unrecognizable fails to restore, which
// is degraded output rather than a pipeline failure.
func (p *implPipeline) warnMissingCodes(ctx context.Context, req transform.Request, appliedCodes map[string]bool, restorations []sanitize.Restoration) {
	for _, r := range restorations {
		if appliedCodes[r.Code] && r.Count == 0 {
			p.logger.Warn(ctx, "Code %s not found in %s output; the external transformer likely altered it, that span stays unrestored", r.Code, req.Describe())
		}
	}
}

// TransformFile runs one operation against an existing sanitized artifact.
func (p *implPipeline) TransformFile(ctx context.Context, sanitizedPath string, req transform.Request) (*Result, error) {
	if !p.opts.SanitizeEnabled {
		return newResult(), fmt.Errorf("sanitization is disabled: refusing to send text to the external transformer")
	}

	sanitized, err := sanitize.FromArtifactFile(sanitizedPath)
	if err != nil {
		return newResult(), err
	}

	dir := filepath.Dir(sanitizedPath)
	base := artifact.Basename(filepath.Base(sanitizedPath))
	result := newResult()

	appliedCodes := p.restorer.PresentCodes(sanitized.String())

	if err := p.runOperation(ctx, dir, base, sanitizedPath, sanitized, appliedCodes, req, result); err != nil {
		result.Failed = append(result.Failed, fmt.Sprintf("%s: %v", req.Describe(), err))
		return result, err
	}
	return result, nil
}

// RestoreFile restores any sanitized text file ad hoc. When outputPath is
// empty the *_restored.txt naming contract is applied next to the input.
func (p *implPipeline) RestoreFile(ctx context.Context, path, outputPath string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read sanitized file: %w", err)
	}

	restored, restorations := p.restorer.Restore(string(data))
	for _, r := range restorations {
		if r.Count > 0 {
			p.logger.Info(ctx, "Restored %s -> %s (%d occurrences)", r.Code, r.Term, r.Count)
		}
	}

	if outputPath == "" {
		base := artifact.Basename(filepath.Base(path))
		outputPath = filepath.Join(filepath.Dir(path), artifact.RestoredName(base))
	}

	if err := artifact.Write(artifact.Artifact{
		Name:   filepath.Base(outputPath),
		Stage:  artifact.StageRestored,
		Source: path,
		Text:   restored,
	}, outputPath); err != nil {
		return "", err
	}

	return outputPath, nil
}
