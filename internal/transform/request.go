package transform

import "fmt"

// Operation is the kind of external transform to run.
type Operation string

const (
	OpSummarize Operation = "summarize"
	OpTranslate Operation = "translate"
)

// Request describes one external-transform intent. It is built by the
// orchestrator (or a subcommand) and consumed by the Adapter.
type Request struct {
	Op             Operation
	TargetLanguage string
	SourceLanguage string
	MaxWords       int
	PromptTemplate string
}

func (r Request) Validate() error {
	switch r.Op {
	case OpSummarize:
		return nil
	case OpTranslate:
		if r.TargetLanguage == "" {
			return fmt.Errorf("translate request: target language is required")
		}
		return nil
	default:
		return fmt.Errorf("unknown operation %q", r.Op)
	}
}

// Describe names the operation for logs and error messages.
func (r Request) Describe() string {
	if r.Op == OpTranslate {
		return "translation to " + r.TargetLanguage
	}
	return "summary"
}
