// ABOUTME: HTTP client for a remote embedding provider.
// ABOUTME: Posts note text to an Ollama-compatible embeddings endpoint and decodes the vector.
package embeddings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RemoteEmbedder calls an Ollama-compatible embeddings endpoint.
type RemoteEmbedder struct {
	apiURL    string
	apiKey    string
	model     string
	dimension int
	client    *http.Client
}

// NewRemoteEmbedder creates an embedder for the given endpoint and model.
// dimension may be 0; it is learned from the first successful call and
// enforced afterwards.
func NewRemoteEmbedder(apiURL, apiKey, model string, dimension int) *RemoteEmbedder {
	apiURL = strings.TrimRight(apiURL, "/")
	return &RemoteEmbedder{
		apiURL:    apiURL,
		apiKey:    apiKey,
		model:     model,
		dimension: dimension,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// embedPayload is the JSON body sent to the provider.
type embedPayload struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// embedResponse maps the provider's response body.
type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embed requests an embedding for text from the remote provider.
func (r *RemoteEmbedder) Embed(text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text is empty")
	}

	body, err := json.Marshal(embedPayload{Model: r.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", r.apiURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return nil, fmt.Errorf("provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var decoded embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(decoded.Embedding) == 0 {
		return nil, fmt.Errorf("provider returned an empty embedding")
	}

	if r.dimension == 0 {
		r.dimension = len(decoded.Embedding)
	} else if len(decoded.Embedding) != r.dimension {
		return nil, fmt.Errorf("provider returned %d dimensions, want %d", len(decoded.Embedding), r.dimension)
	}

	return decoded.Embedding, nil
}

// Dimension returns the vector length this provider produces, or 0 before
// the first successful call when none was configured.
func (r *RemoteEmbedder) Dimension() int {
	return r.dimension
}
