/*-------------------------------------------------------------------------
 *
 * llm_test.go
 *    Tests for the Ollama client
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/agent/llm_test.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOllamaGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("sends non-streaming json-format request", func(t *testing.T) {
		var captured map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/generate" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
				t.Fatalf("bad request body: %v", err)
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"model":    "llama3:instruct",
				"response": "[]",
				"done":     true,
			})
		}))
		defer server.Close()

		client := NewOllamaClient(server.URL, "llama3:instruct", 5*time.Second)
		out, err := client.Generate(ctx, "plan this")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "[]" {
			t.Errorf("unexpected output: %q", out)
		}

		if captured["model"] != "llama3:instruct" {
			t.Errorf("wrong model: %v", captured["model"])
		}
		if captured["prompt"] != "plan this" {
			t.Errorf("wrong prompt: %v", captured["prompt"])
		}
		if captured["stream"] != false {
			t.Errorf("streaming must be disabled: %v", captured["stream"])
		}
		if captured["format"] != "json" {
			t.Errorf("json format not requested: %v", captured["format"])
		}
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not found", http.StatusNotFound)
		}))
		defer server.Close()

		client := NewOllamaClient(server.URL, "missing", 5*time.Second)
		if _, err := client.Generate(ctx, "x"); err == nil {
			t.Fatal("expected error on non-200 status")
		}
	})

	t.Run("empty response field is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"response": "", "done": true})
		}))
		defer server.Close()

		client := NewOllamaClient(server.URL, "llama3:instruct", 5*time.Second)
		if _, err := client.Generate(ctx, "x"); err == nil {
			t.Fatal("expected error on empty response")
		}
	})
}
