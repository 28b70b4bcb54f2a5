// Package transcriber runs ffmpeg + whisper.cpp to turn media files into
// transcript text.
package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"privaflow/internal/config"
	"privaflow/internal/logger"
	"privaflow/pkg/executor"
)

// TranscriptionError wraps a decode or model failure. The underlying tool's
// stderr travels inside Err.
type TranscriptionError struct {
	MediaPath string
	Err       error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcribe %s: %v", e.MediaPath, e.Err)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

type implTranscriber struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a whisper.cpp-backed Transcriber.
func New(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) Transcriber {
	return &implTranscriber{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

// Transcribe extracts 16kHz mono audio with ffmpeg, runs whisper.cpp on it
// and returns the transcript text. Temp files are removed afterwards.
func (t *implTranscriber) Transcribe(ctx context.Context, mediaPath string) (string, error) {
	if t.cfg.ModelPath == "" {
		return "", &TranscriptionError{MediaPath: mediaPath, Err: fmt.Errorf("whisper.model_path is not configured")}
	}

	audioPath, err := t.extractAudio(ctx, mediaPath)
	if err != nil {
		return "", &TranscriptionError{MediaPath: mediaPath, Err: err}
	}
	defer t.removeTemp(ctx, audioPath)

	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	t.logger.Info(ctx, "Transcribing with %d threads: %s", t.cfg.Threads, audioPath)

	args := []string{
		"-m", t.cfg.ModelPath,
		"-f", audioPath,
		"-otxt",
		"-l", t.cfg.Language,
		"-t", strconv.Itoa(t.cfg.Threads),
		"--output-file", outputPrefix,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.BinaryPath, args...); err != nil {
		return "", &TranscriptionError{MediaPath: mediaPath, Err: err}
	}

	txtPath := outputPrefix + ".txt"
	defer t.removeTemp(ctx, txtPath)

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", &TranscriptionError{MediaPath: mediaPath, Err: fmt.Errorf("read whisper output: %w", err)}
	}

	text := strings.TrimSpace(string(data))
	t.logger.Info(ctx, "Transcription completed: %d characters", len(text))
	return text, nil
}

// extractAudio converts the media file to 16kHz mono WAV, the input format
// whisper.cpp expects.
func (t *implTranscriber) extractAudio(ctx context.Context, mediaPath string) (string, error) {
	audioPath := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + "_temp.wav"

	t.logger.Info(ctx, "Extracting audio: %s", mediaPath)

	args := []string{
		"-i", mediaPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := t.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	return audioPath, nil
}

func (t *implTranscriber) removeTemp(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		t.logger.Warn(ctx, "Failed to clean up temp file %s: %v", path, err)
	}
}
