// ABOUTME: HTTP connection validation for the embedding provider.
// ABOUTME: Tests credentials by requesting a single probe embedding.
package tui

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

// ValidateConnection tests the provider by embedding a short probe string.
// The context allows cancellation when the user quits during validation.
func ValidateConnection(ctx context.Context, apiURL, apiKey, model string) error {
	client := &http.Client{Timeout: 10 * time.Second}

	apiURL = strings.TrimRight(apiURL, "/")

	payload, err := json.Marshal(map[string]string{
		"model":  model,
		"prompt": "connection test",
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", apiURL+"/api/embeddings", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return fmt.Errorf("provider returned %d: %s", resp.StatusCode, string(body))
	}

	var probe struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&probe); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(probe.Embedding) == 0 {
		return fmt.Errorf("provider returned an empty embedding for model %q", model)
	}

	return nil
}
