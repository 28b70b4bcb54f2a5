package transcriber

import "context"

// Transcriber converts a media file into raw transcript text. It is an
// external collaborator boundary: failures carry the underlying tool's
// diagnostic and are fatal for the file, never retried.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaPath string) (string, error)
}
