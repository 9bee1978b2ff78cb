// ABOUTME: Tests for embedding provider connection validation.
// ABOUTME: Uses httptest to verify request shape, auth headers, and error handling.
package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidateConnection_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/embeddings" {
			t.Errorf("expected /api/embeddings, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("expected bearer token, got %s", r.Header.Get("Authorization"))
		}
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload["model"] != "all-minilm" {
			t.Errorf("expected model all-minilm, got %s", payload["model"])
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": []float64{0.1, 0.2},
		})
	}))
	defer server.Close()

	err := ValidateConnection(context.Background(), server.URL, "test-key", "all-minilm")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateConnection_NoKeyOmitsAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization header %q", r.Header.Get("Authorization"))
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": []float64{0.1},
		})
	}))
	defer server.Close()

	err := ValidateConnection(context.Background(), server.URL, "", "all-minilm")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateConnection_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer server.Close()

	err := ValidateConnection(context.Background(), server.URL, "bad-key", "all-minilm")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestValidateConnection_EmptyEmbedding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": []float64{},
		})
	}))
	defer server.Close()

	err := ValidateConnection(context.Background(), server.URL, "", "missing-model")
	if err == nil {
		t.Fatal("expected error for empty probe embedding")
	}
}

func TestValidateConnection_Unreachable(t *testing.T) {
	err := ValidateConnection(context.Background(), "http://localhost:1", "test-key", "all-minilm")
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
}

func TestValidateConnection_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": []float64{0.1},
		})
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	err := ValidateConnection(ctx, server.URL, "test-key", "all-minilm")
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
