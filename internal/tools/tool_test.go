/*-------------------------------------------------------------------------
 *
 * tool_test.go
 *    Tests for the tool registry
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/tools/tool_test.go
 *
 *-------------------------------------------------------------------------
 */

package tools

import (
	"testing"
	"time"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry(
		NewAsanaTool("http://asana.local", time.Second),
		NewGmailTool("http://gmail.local", time.Second),
	)

	t.Run("lookup requires provider and name to match", func(t *testing.T) {
		if _, ok := registry.Lookup(ProviderAsana, ToolCreateAsanaTask); !ok {
			t.Error("expected asana tool to resolve")
		}
		if _, ok := registry.Lookup(ProviderGoogle, ToolSendGmail); !ok {
			t.Error("expected gmail tool to resolve")
		}
		if _, ok := registry.Lookup(ProviderGoogle, ToolCreateAsanaTask); ok {
			t.Error("cross-provider lookup must fail")
		}
		if _, ok := registry.Lookup(ProviderAsana, "unknown"); ok {
			t.Error("unknown tool lookup must fail")
		}
	})

	t.Run("for provider", func(t *testing.T) {
		asanaTools := registry.ForProvider(ProviderAsana)
		if len(asanaTools) != 1 || asanaTools[0].Name() != ToolCreateAsanaTask {
			t.Errorf("unexpected asana tools: %v", asanaTools)
		}
		if got := registry.ForProvider("slack"); len(got) != 0 {
			t.Errorf("unknown provider must have no tools, got %v", got)
		}
	})
}

func TestStringParam(t *testing.T) {
	params := map[string]interface{}{"s": "value", "n": 42, "b": true}

	if got := stringParam(params, "s"); got != "value" {
		t.Errorf("stringParam(s) = %q", got)
	}
	if got := stringParam(params, "n"); got != "" {
		t.Errorf("non-string must degrade to empty, got %q", got)
	}
	if got := stringParam(params, "missing"); got != "" {
		t.Errorf("missing key must degrade to empty, got %q", got)
	}
	if got := stringParam(nil, "s"); got != "" {
		t.Errorf("nil params must degrade to empty, got %q", got)
	}
}
