// Package artifact names and persists the text blobs each pipeline stage
// produces. Artifacts are immutable once written; downstream tools depend on
// the file naming, so it is part of the public contract.
package artifact

import (
	"strings"
)

// Stage tags an artifact with the pipeline stage that produced it.
type Stage string

const (
	StageRaw                  Stage = "raw"
	StageSanitized            Stage = "sanitized"
	StageTransformedSanitized Stage = "transformed-sanitized"
	StageTransformedRestored  Stage = "transformed-restored"
	StageRestored             Stage = "restored"
)

// Artifact is a named, immutable text blob. Source identifies the input file
// the pipeline run started from.
type Artifact struct {
	Name   string
	Stage  Stage
	Source string
	Text   string
}

// Basename strips the extension and any stage suffix from an artifact file
// name, recovering the identity of the source file.
func Basename(filename string) string {
	base := filename
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	base = strings.TrimSuffix(base, "_sanitized")
	return base
}

// LangSlug converts a target language name into its filename form.
func LangSlug(language string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(language)), " ", "_")
}

// File naming contract. base is the source file identity without extension.

func RawName(base string) string {
	return base + ".txt"
}

func SanitizedName(base string) string {
	return base + "_sanitized.txt"
}

func SummarySanitizedName(base string) string {
	return base + "_summary_sanitized.txt"
}

func SummaryRestoredName(base string) string {
	return base + "_summary_restored.txt"
}

func TranslationSanitizedName(base, language string) string {
	return base + "_translation_" + LangSlug(language) + "_sanitized.txt"
}

func TranslationRestoredName(base, language string) string {
	return base + "_translation_" + LangSlug(language) + "_restored.txt"
}

func RestoredName(base string) string {
	return base + "_restored.txt"
}
