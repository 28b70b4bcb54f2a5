package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"privaflow/internal/config"
	"privaflow/internal/logger"
	"privaflow/internal/ollama"
	"privaflow/internal/registry"
	"privaflow/internal/sanitize"
	"privaflow/internal/transform"
)

const scenarioInput = "Xin chào Anh chị, hôm nay ta học Kiến thức mới"
const scenarioSanitized = "Xin chào AC, hôm nay ta học KT mới"

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, mediaPath string) (string, error) {
	return f.text, f.err
}

// fakeAdapter records everything that crosses the external boundary.
type fakeAdapter struct {
	received []string
	fn       func(text sanitize.SanitizedText, req transform.Request) (string, error)
}

func (f *fakeAdapter) Transform(ctx context.Context, text sanitize.SanitizedText, req transform.Request) (string, error) {
	f.received = append(f.received, text.String())
	if f.fn != nil {
		return f.fn(text, req)
	}
	// Default: an external transformer that returns its input unchanged.
	return text.String(), nil
}

func testComponents(t *testing.T) (*sanitize.Sanitizer, *sanitize.Restorer) {
	t.Helper()
	reg, err := registry.New([]config.TermConfig{
		{Term: "Anh chị", Code: "AC"},
		{Term: "Kiến thức", Code: "KT"},
	}, []config.PatternConfig{
		{Pattern: `\b0\d{9}\b`, Replacement: "[PHONE]"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return sanitize.NewSanitizer(reg), sanitize.NewRestorer(reg)
}

func newTestPipeline(t *testing.T, opts Options, trans *fakeTranscriber, adapter *fakeAdapter) Pipeline {
	t.Helper()
	san, res := testComponents(t)
	return New(opts, trans, san, res, adapter, logger.New("error"))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestProcessRoundTrip(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "video.mp4")
	adapter := &fakeAdapter{}

	p := newTestPipeline(t, Options{SanitizeEnabled: true, Summarize: true},
		&fakeTranscriber{text: scenarioInput}, adapter)

	result, err := p.Process(context.Background(), media)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if got := readFile(t, filepath.Join(dir, "video.txt")); got != scenarioInput {
		t.Errorf("raw artifact = %q", got)
	}
	if got := readFile(t, filepath.Join(dir, "video_sanitized.txt")); got != scenarioSanitized {
		t.Errorf("sanitized artifact = %q", got)
	}
	if got := readFile(t, filepath.Join(dir, "video_summary_sanitized.txt")); got != scenarioSanitized {
		t.Errorf("summary sanitized artifact = %q", got)
	}
	// The mock transformer returned its input unchanged, so restoration
	// recovers the original text exactly.
	if got := readFile(t, filepath.Join(dir, "video_summary_restored.txt")); got != scenarioInput {
		t.Errorf("summary restored artifact = %q, want original", got)
	}

	if len(result.Failed) != 0 {
		t.Errorf("Failed = %v", result.Failed)
	}
}

func TestProcessNeverLeaksConfidentialTerms(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "video.mp4")
	adapter := &fakeAdapter{}

	p := newTestPipeline(t, Options{
		SanitizeEnabled: true,
		Summarize:       true,
		TargetLanguages: []string{"English"},
	}, &fakeTranscriber{text: scenarioInput + ", gọi 0987654321"}, adapter)

	if _, err := p.Process(context.Background(), media); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(adapter.received) != 2 {
		t.Fatalf("adapter received %d payloads, want 2", len(adapter.received))
	}
	for _, payload := range adapter.received {
		for _, secret := range []string{"Anh chị", "anh chị", "Kiến thức", "kiến thức", "0987654321"} {
			if strings.Contains(payload, secret) {
				t.Errorf("confidential term %q crossed the external boundary: %q", secret, payload)
			}
		}
	}
}

func TestProcessKeepSanitized(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "video.mp4")
	adapter := &fakeAdapter{}

	p := newTestPipeline(t, Options{SanitizeEnabled: true, Summarize: true, KeepSanitized: true},
		&fakeTranscriber{text: scenarioInput}, adapter)

	result, err := p.Process(context.Background(), media)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if got := readFile(t, filepath.Join(dir, "video_summary_sanitized.txt")); got != scenarioSanitized {
		t.Errorf("summary artifact = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "video_summary_restored.txt")); !os.IsNotExist(err) {
		t.Error("restored artifact must not exist with keep-sanitized")
	}
	if _, ok := result.Artifacts["summary (kept sanitized)"]; !ok {
		t.Errorf("result should label the artifact as kept sanitized: %v", result.Artifacts)
	}
}

func TestProcessServiceUnreachable(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "video.mp4")
	adapter := &fakeAdapter{fn: func(text sanitize.SanitizedText, req transform.Request) (string, error) {
		return "", &ollama.ServiceUnreachableError{Host: "http://localhost:11434", Err: errors.New("connection refused")}
	}}

	p := newTestPipeline(t, Options{SanitizeEnabled: true, Summarize: true},
		&fakeTranscriber{text: scenarioInput}, adapter)

	_, err := p.Process(context.Background(), media)
	if err == nil {
		t.Fatal("Process() should fail when the external service is unreachable")
	}

	// The sanitized artifact survives the failure.
	if got := readFile(t, filepath.Join(dir, "video_sanitized.txt")); got != scenarioSanitized {
		t.Errorf("sanitized artifact = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "video_summary_sanitized.txt")); !os.IsNotExist(err) {
		t.Error("no summary artifact may be produced on failure")
	}
}

func TestProcessPartialFailure(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "video.mp4")
	adapter := &fakeAdapter{fn: func(text sanitize.SanitizedText, req transform.Request) (string, error) {
		if req.Op == transform.OpTranslate && req.TargetLanguage == "Japanese" {
			return "", errors.New("model blew up")
		}
		return text.String(), nil
	}}

	p := newTestPipeline(t, Options{
		SanitizeEnabled: true,
		Summarize:       true,
		TargetLanguages: []string{"English", "Japanese"},
	}, &fakeTranscriber{text: scenarioInput}, adapter)

	result, err := p.Process(context.Background(), media)
	if err == nil {
		t.Fatal("Process() should report the failed translation")
	}

	// The completed summary and English translation are kept.
	if _, statErr := os.Stat(filepath.Join(dir, "video_summary_restored.txt")); statErr != nil {
		t.Error("summary should survive a sibling operation failure")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "video_translation_english_restored.txt")); statErr != nil {
		t.Error("English translation should survive a sibling operation failure")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "video_translation_japanese_sanitized.txt")); !os.IsNotExist(statErr) {
		t.Error("failed translation must not leave artifacts")
	}
	if len(result.Failed) != 1 {
		t.Errorf("Failed = %v, want exactly the Japanese translation", result.Failed)
	}
}

func TestProcessSanitizeDisabledRefusesTransforms(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "video.mp4")
	adapter := &fakeAdapter{}

	p := newTestPipeline(t, Options{SanitizeEnabled: false, Summarize: true},
		&fakeTranscriber{text: scenarioInput}, adapter)

	_, err := p.Process(context.Background(), media)
	if err == nil {
		t.Fatal("Process() must refuse external transforms with sanitization disabled")
	}
	if len(adapter.received) != 0 {
		t.Error("nothing may cross the external boundary with sanitization disabled")
	}
	// The raw transcript is still produced.
	if _, statErr := os.Stat(filepath.Join(dir, "video.txt")); statErr != nil {
		t.Error("raw transcript should be written before the refusal")
	}
}

func TestProcessSanitizeDisabledTranscribeOnly(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "video.mp4")

	p := newTestPipeline(t, Options{SanitizeEnabled: false},
		&fakeTranscriber{text: scenarioInput}, &fakeAdapter{})

	result, err := p.Process(context.Background(), media)
	if err != nil {
		t.Fatalf("Process() error = %v; transcribe-only runs are fine without sanitization", err)
	}
	if _, ok := result.Artifacts["transcript"]; !ok {
		t.Errorf("Artifacts = %v", result.Artifacts)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "video_sanitized.txt")); !os.IsNotExist(statErr) {
		t.Error("no sanitized artifact may be written when sanitization is disabled")
	}
}

func TestProcessTranscriptionError(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "video.mp4")

	p := newTestPipeline(t, Options{SanitizeEnabled: true, Summarize: true},
		&fakeTranscriber{err: errors.New("whisper: decode failed")}, &fakeAdapter{})

	if _, err := p.Process(context.Background(), media); err == nil {
		t.Fatal("Process() should surface transcription failures")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "video.txt")); !os.IsNotExist(statErr) {
		t.Error("no artifact may be written when transcription fails")
	}
}

func TestTransformFile(t *testing.T) {
	dir := t.TempDir()
	sanitizedPath := filepath.Join(dir, "video_sanitized.txt")
	if err := os.WriteFile(sanitizedPath, []byte(scenarioSanitized), 0o644); err != nil {
		t.Fatal(err)
	}

	adapter := &fakeAdapter{}
	p := newTestPipeline(t, Options{SanitizeEnabled: true}, &fakeTranscriber{}, adapter)

	result, err := p.TransformFile(context.Background(), sanitizedPath, transform.Request{Op: transform.OpSummarize})
	if err != nil {
		t.Fatalf("TransformFile() error = %v", err)
	}

	if got := readFile(t, filepath.Join(dir, "video_summary_restored.txt")); got != scenarioInput {
		t.Errorf("restored summary = %q, want %q", got, scenarioInput)
	}
	if len(result.Artifacts) != 2 {
		t.Errorf("Artifacts = %v", result.Artifacts)
	}
}

func TestTransformFileRefusesUnsanitizedName(t *testing.T) {
	dir := t.TempDir()
	rawPath := filepath.Join(dir, "video.txt")
	if err := os.WriteFile(rawPath, []byte(scenarioInput), 0o644); err != nil {
		t.Fatal(err)
	}

	adapter := &fakeAdapter{}
	p := newTestPipeline(t, Options{SanitizeEnabled: true}, &fakeTranscriber{}, adapter)

	if _, err := p.TransformFile(context.Background(), rawPath, transform.Request{Op: transform.OpSummarize}); err == nil {
		t.Fatal("TransformFile() must refuse files outside the *_sanitized.txt contract")
	}
	if len(adapter.received) != 0 {
		t.Error("nothing may cross the external boundary from an unsanitized file")
	}
}

func TestRestoreFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "video_summary_sanitized.txt")
	if err := os.WriteFile(path, []byte("AC học KT, gọi [PHONE]"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := newTestPipeline(t, Options{SanitizeEnabled: true}, &fakeTranscriber{}, &fakeAdapter{})

	out, err := p.RestoreFile(context.Background(), path, "")
	if err != nil {
		t.Fatalf("RestoreFile() error = %v", err)
	}
	if filepath.Base(out) != "video_summary_restored.txt" {
		t.Errorf("output path = %s", out)
	}
	if got := readFile(t, out); got != "Anh chị học Kiến thức, gọi [PHONE]" {
		t.Errorf("restored = %q", got)
	}
}
