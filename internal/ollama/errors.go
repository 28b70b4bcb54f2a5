package ollama

import (
	"fmt"
	"strings"
)

// ServiceUnreachableError means the Ollama endpoint could not be reached at
// the transport level. It is the only error class worth retrying.
type ServiceUnreachableError struct {
	Host string
	Err  error
}

func (e *ServiceUnreachableError) Error() string {
	return fmt.Sprintf("ollama unreachable at %s: %v (is `ollama serve` running?)", e.Host, e.Err)
}

func (e *ServiceUnreachableError) Unwrap() error {
	return e.Err
}

// ModelMissingError means the service is up but the requested model is not
// installed. The message names the pull command since that is the fix.
type ModelMissingError struct {
	Model     string
	Available []string
}

func (e *ModelMissingError) Error() string {
	msg := fmt.Sprintf("model %q not found", e.Model)
	if len(e.Available) > 0 {
		msg += "; available: " + strings.Join(e.Available, ", ")
	}
	return msg + fmt.Sprintf("; run: ollama pull %s", e.Model)
}

// MalformedResponseError means the service answered but not with the
// expected JSON shape.
type MalformedResponseError struct {
	Detail string
}

func (e *MalformedResponseError) Error() string {
	return "malformed ollama response: " + e.Detail
}
