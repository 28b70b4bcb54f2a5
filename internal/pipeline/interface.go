package pipeline

import (
	"context"

	"privaflow/internal/transform"
)

// Pipeline orchestrates transcribe → sanitize → external transform → restore
// for one input file, and the standalone variants that start from an
// existing sanitized artifact.
type Pipeline interface {
	// Process runs the full pipeline on a media file. Per-operation failures
	// are isolated: a failed translation does not abort a completed summary.
	// The returned Result lists every artifact that was written even when an
	// error is returned.
	Process(ctx context.Context, mediaPath string) (*Result, error)

	// TransformFile runs one external transform on an existing *_sanitized.txt
	// artifact and writes the transformed (and, unless keep-sanitized,
	// restored) artifacts next to it.
	TransformFile(ctx context.Context, sanitizedPath string, req transform.Request) (*Result, error)

	// RestoreFile restores any sanitized artifact ad hoc and returns the
	// output path.
	RestoreFile(ctx context.Context, path, outputPath string) (string, error)
}

// Result is the artifact set a run produced. Keys are human-readable labels;
// a kept-sanitized artifact is labeled as such so it cannot be mistaken for
// restored content.
type Result struct {
	Artifacts map[string]string
	Failed    []string
}

func newResult() *Result {
	return &Result{Artifacts: make(map[string]string)}
}
