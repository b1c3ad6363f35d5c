/*-------------------------------------------------------------------------
 *
 * gmail_test.go
 *    Tests for the Gmail send tool
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/tools/gmail_test.go
 *
 *-------------------------------------------------------------------------
 */

package tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestBuildRawMessage(t *testing.T) {
	raw := buildRawMessage("dest@example.com", "Hello", "Body text")

	decoded, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		t.Fatalf("raw message is not valid padded base64url: %v", err)
	}

	msg := string(decoded)
	wantLines := []string{
		"To: dest@example.com\r\n",
		"Subject: Hello\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: text/plain; charset=\"utf-8\"\r\n",
		"\r\nBody text",
	}
	for _, line := range wantLines {
		if !strings.Contains(msg, line) {
			t.Errorf("missing %q in message:\n%s", line, msg)
		}
	}
	if !strings.HasSuffix(msg, "Body text") {
		t.Errorf("body must come last:\n%s", msg)
	}
}

func TestGmailExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("sends encoded message", func(t *testing.T) {
		var captured map[string]string
		var authHeader string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/gmail/v1/users/me/messages/send" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			authHeader = r.Header.Get("Authorization")
			if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
				t.Fatalf("bad request body: %v", err)
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"id": "msg-1", "labelIds": []string{"SENT"}})
		}))
		defer server.Close()

		tool := NewGmailTool(server.URL, 5*time.Second)
		result := tool.Execute(ctx, "google-token", map[string]interface{}{
			"to":      "dest@example.com",
			"subject": "Hello",
			"body":    "Body text",
		})

		if _, hasErr := result["error"]; hasErr {
			t.Fatalf("unexpected error result: %+v", result)
		}
		if result["id"] != "msg-1" {
			t.Errorf("provider response not passed through: %+v", result)
		}
		if authHeader != "Bearer google-token" {
			t.Errorf("wrong auth header: %q", authHeader)
		}

		decoded, err := base64.URLEncoding.DecodeString(captured["raw"])
		if err != nil {
			t.Fatalf("raw field is not padded base64url: %v", err)
		}
		if !strings.Contains(string(decoded), "To: dest@example.com") {
			t.Errorf("unexpected decoded message:\n%s", decoded)
		}
	})

	t.Run("non-200 folds into error result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"Invalid To header"}}`))
		}))
		defer server.Close()

		tool := NewGmailTool(server.URL, 5*time.Second)
		result := tool.Execute(ctx, "tok", map[string]interface{}{"to": "nope"})

		if result["error"] != "Gmail API Error: 400" {
			t.Errorf("unexpected error field: %v", result["error"])
		}
		if details, _ := result["details"].(string); !strings.Contains(details, "Invalid To header") {
			t.Errorf("unexpected details field: %v", result["details"])
		}
	})

	t.Run("missing params send empty headers", func(t *testing.T) {
		var captured map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&captured)
			json.NewEncoder(w).Encode(map[string]interface{}{"id": "m"})
		}))
		defer server.Close()

		tool := NewGmailTool(server.URL, 5*time.Second)
		tool.Execute(ctx, "tok", nil)

		decoded, _ := base64.URLEncoding.DecodeString(captured["raw"])
		if !strings.Contains(string(decoded), "To: \r\n") {
			t.Errorf("expected empty To header:\n%q", decoded)
		}
	})
}
