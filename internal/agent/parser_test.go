/*-------------------------------------------------------------------------
 *
 * parser_test.go
 *    Tests for the tolerant plan output parser
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/agent/parser_test.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"testing"
)

func TestParsePlanResponse(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		plan := ParsePlanResponse(`[{"tool":"send_gmail","provider":"google","parameters":{"to":"a@b.com"}}]`)
		if len(plan) != 1 {
			t.Fatalf("expected 1 descriptor, got %d", len(plan))
		}
		if plan[0].Tool != "send_gmail" || plan[0].Provider != "google" {
			t.Errorf("unexpected descriptor: %+v", plan[0])
		}
		if plan[0].Parameters["to"] != "a@b.com" {
			t.Errorf("parameters not preserved: %+v", plan[0].Parameters)
		}
	})

	t.Run("empty array", func(t *testing.T) {
		plan := ParsePlanResponse(`[]`)
		if plan == nil || len(plan) != 0 {
			t.Fatalf("expected empty non-nil plan, got %v", plan)
		}
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		plan := ParsePlanResponse("\n\n  [{\"tool\":\"x\",\"provider\":\"y\"}]  \n")
		if len(plan) != 1 {
			t.Fatalf("expected 1 descriptor, got %d", len(plan))
		}
	})

	t.Run("markdown fenced array", func(t *testing.T) {
		raw := "```json\n[{\"tool\":\"create_asana_task\",\"provider\":\"asana\",\"parameters\":{}}]\n```"
		plan := ParsePlanResponse(raw)
		if len(plan) != 1 {
			t.Fatalf("expected 1 descriptor, got %d", len(plan))
		}
		if plan[0].Tool != "create_asana_task" {
			t.Errorf("unexpected tool: %q", plan[0].Tool)
		}
	})

	t.Run("two line fence passes through and fails to parse", func(t *testing.T) {
		/* Only fences spanning more than two lines are stripped */
		plan := ParsePlanResponse("```json\n```")
		if len(plan) != 0 {
			t.Fatalf("expected empty plan, got %d descriptors", len(plan))
		}
	})

	t.Run("object with actions key", func(t *testing.T) {
		plan := ParsePlanResponse(`{"actions":[{"tool":"a","provider":"p"}]}`)
		if len(plan) != 1 || plan[0].Tool != "a" {
			t.Fatalf("actions key not honored: %+v", plan)
		}
	})

	t.Run("object with plan key", func(t *testing.T) {
		plan := ParsePlanResponse(`{"plan":[{"tool":"a","provider":"p"}]}`)
		if len(plan) != 1 {
			t.Fatalf("plan key not honored: %+v", plan)
		}
	})

	t.Run("object with tools key", func(t *testing.T) {
		plan := ParsePlanResponse(`{"tools":[{"tool":"a","provider":"p"}]}`)
		if len(plan) != 1 {
			t.Fatalf("tools key not honored: %+v", plan)
		}
	})

	t.Run("actions key wins over plan key", func(t *testing.T) {
		plan := ParsePlanResponse(`{"plan":[{"tool":"loser","provider":"p"}],"actions":[{"tool":"winner","provider":"p"}]}`)
		if len(plan) != 1 || plan[0].Tool != "winner" {
			t.Fatalf("expected actions key to win, got %+v", plan)
		}
	})

	t.Run("known key present but not a list", func(t *testing.T) {
		plan := ParsePlanResponse(`{"actions":"not a list","other":[{"tool":"a","provider":"p"}]}`)
		if len(plan) != 0 {
			t.Fatalf("expected empty plan when known key is unusable, got %+v", plan)
		}
	})

	t.Run("first list value fallback in document order", func(t *testing.T) {
		plan := ParsePlanResponse(`{"zzz":[{"tool":"first","provider":"p"}],"aaa":[{"tool":"second","provider":"p"}]}`)
		if len(plan) != 1 || plan[0].Tool != "first" {
			t.Fatalf("expected first list in document order, got %+v", plan)
		}
	})

	t.Run("fallback skips non-list values", func(t *testing.T) {
		plan := ParsePlanResponse(`{"note":"hi","count":3,"items":[{"tool":"a","provider":"p"}]}`)
		if len(plan) != 1 || plan[0].Tool != "a" {
			t.Fatalf("expected fallback to find the list, got %+v", plan)
		}
	})

	t.Run("object with no list values", func(t *testing.T) {
		plan := ParsePlanResponse(`{"message":"nothing to do"}`)
		if len(plan) != 0 {
			t.Fatalf("expected empty plan, got %+v", plan)
		}
	})

	t.Run("not JSON", func(t *testing.T) {
		plan := ParsePlanResponse("I cannot help with that.")
		if plan == nil || len(plan) != 0 {
			t.Fatalf("expected empty non-nil plan, got %v", plan)
		}
	})

	t.Run("scalar JSON", func(t *testing.T) {
		for _, raw := range []string{`"text"`, `42`, `true`, `null`} {
			if plan := ParsePlanResponse(raw); len(plan) != 0 {
				t.Errorf("input %s: expected empty plan, got %+v", raw, plan)
			}
		}
	})

	t.Run("missing keys degrade to empty values", func(t *testing.T) {
		plan := ParsePlanResponse(`[{"tool":"only_tool"}]`)
		if len(plan) != 1 {
			t.Fatalf("expected 1 descriptor, got %d", len(plan))
		}
		d := plan[0]
		if d.Tool != "only_tool" || d.Provider != "" {
			t.Errorf("unexpected descriptor: %+v", d)
		}
		if d.Parameters == nil || len(d.Parameters) != 0 {
			t.Errorf("expected empty non-nil parameters, got %v", d.Parameters)
		}
	})

	t.Run("non-object element becomes empty descriptor", func(t *testing.T) {
		plan := ParsePlanResponse(`["just a string"]`)
		if len(plan) != 1 {
			t.Fatalf("expected 1 descriptor, got %d", len(plan))
		}
		if plan[0].Tool != "" || plan[0].Provider != "" || len(plan[0].Parameters) != 0 {
			t.Errorf("expected empty descriptor, got %+v", plan[0])
		}
	})

	t.Run("mistyped tool field ignored", func(t *testing.T) {
		plan := ParsePlanResponse(`[{"tool":123,"provider":"p","parameters":{"k":"v"}}]`)
		if len(plan) != 1 || plan[0].Tool != "" || plan[0].Provider != "p" {
			t.Fatalf("expected empty tool, got %+v", plan)
		}
	})
}
