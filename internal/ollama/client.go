// Package ollama is a minimal typed client for the local Ollama HTTP API.
// Only the two endpoints the pipeline needs are covered: model listing
// (/api/tags) and non-streaming generation (/api/generate).
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	host string
	hc   *http.Client
}

// New creates a client for the given host (e.g. http://localhost:11434).
// The timeout bounds each individual request.
func New(host string, timeout time.Duration) *Client {
	return &Client{
		host: strings.TrimRight(host, "/"),
		hc:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) Host() string {
	return c.host
}

type tagsResponse struct {
	Models []struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"models"`
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// ListModels returns the names of the installed models.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("build tags request: %w", err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &ServiceUnreachableError{Host: c.host, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ServiceUnreachableError{Host: c.host, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list models: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tags tagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		return nil, &MalformedResponseError{Detail: err.Error()}
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		name := m.Model
		if name == "" {
			name = m.Name
		}
		names = append(names, name)
	}
	return names, nil
}

// CheckModel verifies the model is installed. Matching is tolerant of tag
// suffixes: asking for "llama3.2" accepts "llama3.2:latest".
func (c *Client) CheckModel(ctx context.Context, model string) error {
	available, err := c.ListModels(ctx)
	if err != nil {
		return err
	}
	for _, name := range available {
		if name == model || strings.HasPrefix(name, model) || strings.Contains(name, model) {
			return nil
		}
	}
	return &ModelMissingError{Model: model, Available: available}
}

// Generate runs a single non-streaming completion and returns the text.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{Model: model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", &ServiceUnreachableError{Host: c.host, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ServiceUnreachableError{Host: c.host, Err: err}
	}

	var gen generateResponse
	if err := json.Unmarshal(body, &gen); err != nil {
		return "", &MalformedResponseError{Detail: fmt.Sprintf("status %d: %v", resp.StatusCode, err)}
	}

	if resp.StatusCode == http.StatusNotFound {
		return "", &ModelMissingError{Model: model}
	}
	if resp.StatusCode != http.StatusOK {
		detail := gen.Error
		if detail == "" {
			detail = strings.TrimSpace(string(body))
		}
		return "", fmt.Errorf("generate: unexpected status %d: %s", resp.StatusCode, detail)
	}

	if strings.TrimSpace(gen.Response) == "" {
		return "", &MalformedResponseError{Detail: "empty response field"}
	}

	return strings.TrimSpace(gen.Response), nil
}
