package watcher

import "context"

// Watcher monitors a directory and runs the pipeline on new media files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one newly arrived file.
type EventHandler func(ctx context.Context, filePath string) error
