package transform

import (
	"context"
	"errors"
	"testing"
	"time"

	"privaflow/internal/logger"
	"privaflow/internal/ollama"
	"privaflow/internal/registry"
	"privaflow/internal/sanitize"
)

// stubClient scripts Generate responses per call.
type stubClient struct {
	responses []func() (string, error)
	calls     int
	prompts   []string
}

func (s *stubClient) ListModels(ctx context.Context) ([]string, error) {
	return []string{"llama3.2:latest"}, nil
}

func (s *stubClient) CheckModel(ctx context.Context, model string) error {
	return nil
}

func (s *stubClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	fn := s.responses[s.calls]
	if s.calls < len(s.responses)-1 {
		s.calls++
	}
	return fn()
}

func (s *stubClient) Host() string {
	return "http://stub"
}

func sanitizedInput(t *testing.T, text string) sanitize.SanitizedText {
	t.Helper()
	reg, err := registry.New(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	st, _ := sanitize.NewSanitizer(reg).Sanitize(text)
	return st
}

func newTestAdapter(client Client, maxRetries int) *Adapter {
	a := New(client, "llama3.2", []string{"AC", "KT"}, maxRetries, logger.New("error"))
	a.retryDelay = time.Millisecond
	return a
}

func TestTransform(t *testing.T) {
	client := &stubClient{responses: []func() (string, error){
		func() (string, error) { return "Hello AC", nil },
	}}
	a := newTestAdapter(client, 2)

	out, err := a.Transform(context.Background(), sanitizedInput(t, "Xin chào AC"), Request{Op: OpSummarize})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if out != "Hello AC" {
		t.Errorf("out = %q", out)
	}
	if len(client.prompts) != 1 {
		t.Errorf("calls = %d, want 1", len(client.prompts))
	}
}

func TestTransformRetriesOnUnreachable(t *testing.T) {
	unreachable := &ollama.ServiceUnreachableError{Host: "http://stub", Err: errors.New("connection refused")}
	client := &stubClient{responses: []func() (string, error){
		func() (string, error) { return "", unreachable },
		func() (string, error) { return "recovered", nil },
	}}
	a := newTestAdapter(client, 2)

	out, err := a.Transform(context.Background(), sanitizedInput(t, "text"), Request{Op: OpSummarize})
	if err != nil {
		t.Fatalf("Transform() error = %v, want retry to recover", err)
	}
	if out != "recovered" {
		t.Errorf("out = %q", out)
	}

	// Idempotent resubmission: identical prompt both times.
	if len(client.prompts) != 2 || client.prompts[0] != client.prompts[1] {
		t.Errorf("prompts = %v, want the same prompt resubmitted", client.prompts)
	}
}

func TestTransformExhaustsRetries(t *testing.T) {
	unreachable := &ollama.ServiceUnreachableError{Host: "http://stub", Err: errors.New("connection refused")}
	client := &stubClient{responses: []func() (string, error){
		func() (string, error) { return "", unreachable },
	}}
	a := newTestAdapter(client, 2)

	_, err := a.Transform(context.Background(), sanitizedInput(t, "text"), Request{Op: OpSummarize})

	var target *ollama.ServiceUnreachableError
	if !errors.As(err, &target) {
		t.Errorf("error = %v, want wrapped *ServiceUnreachableError", err)
	}
	if len(client.prompts) != 3 {
		t.Errorf("attempts = %d, want 3 (initial + 2 retries)", len(client.prompts))
	}
}

func TestTransformDoesNotRetrySemanticErrors(t *testing.T) {
	missing := &ollama.ModelMissingError{Model: "llama3.2"}
	client := &stubClient{responses: []func() (string, error){
		func() (string, error) { return "", missing },
	}}
	a := newTestAdapter(client, 5)

	_, err := a.Transform(context.Background(), sanitizedInput(t, "text"), Request{Op: OpSummarize})

	var target *ollama.ModelMissingError
	if !errors.As(err, &target) {
		t.Fatalf("error = %v, want *ModelMissingError", err)
	}
	if len(client.prompts) != 1 {
		t.Errorf("attempts = %d, want 1 (no retry on model errors)", len(client.prompts))
	}
}

func TestTransformValidatesRequest(t *testing.T) {
	client := &stubClient{responses: []func() (string, error){
		func() (string, error) { return "never", nil },
	}}
	a := newTestAdapter(client, 0)

	if _, err := a.Transform(context.Background(), sanitizedInput(t, "text"), Request{Op: OpTranslate}); err == nil {
		t.Error("Transform() should reject a translate request without target language")
	}
	if len(client.prompts) != 0 {
		t.Error("invalid request must not reach the client")
	}
}
