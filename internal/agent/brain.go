/*-------------------------------------------------------------------------
 *
 * brain.go
 *    Plan generation from user messages
 *
 * Builds a planning prompt from the user's message and the tools their
 * live credentials unlock, invokes the model, and persists each parsed
 * action as a pending row awaiting approval.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/agent/brain.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhx69/gaprio-agent/internal/db"
	"github.com/abhx69/gaprio-agent/internal/metrics"
	"github.com/abhx69/gaprio-agent/internal/tools"
)

/* Providers whose credentials gate tool advertising, in prompt order */
var knownProviders = []string{tools.ProviderAsana, tools.ProviderGoogle}

/* Brain generates action plans from user messages */
type Brain struct {
	tokens   TokenStore
	actions  ActionStore
	chatLogs ChatLogStore
	model    PlanModel
	registry *tools.Registry
}

/* NewBrain creates a brain with explicit collaborators */
func NewBrain(tokens TokenStore, actions ActionStore, chatLogs ChatLogStore, model PlanModel, registry *tools.Registry) *Brain {
	return &Brain{
		tokens:   tokens,
		actions:  actions,
		chatLogs: chatLogs,
		model:    model,
		registry: registry,
	}
}

/* GeneratePlan builds a plan for a user message. Model and parse failures
   degrade to an empty plan rather than an error; persistence failures are
   logged per-action and do not abort the siblings. The returned list is
   the full parsed plan regardless of persistence outcomes. */
func (b *Brain) GeneratePlan(ctx context.Context, userID int64, message string) ([]ActionDescriptor, error) {
	ctx = metrics.WithUserIDLogContext(ctx, userID)

	available := b.availableTools(ctx, userID)
	prompt := buildPlanningPrompt(message, available)

	if _, err := b.chatLogs.CreateChatLog(ctx, userID, "user", message); err != nil {
		metrics.WarnWithContext(ctx, "Failed to save user chat message", map[string]interface{}{
			"error": err.Error(),
		})
	}

	raw, err := b.model.Generate(ctx, prompt)
	if err != nil {
		metrics.ErrorWithContext(ctx, "Plan model invocation failed", err, nil)
		metrics.RecordPlanGenerated("model_error", 0)
		return []ActionDescriptor{}, nil
	}

	if _, err := b.chatLogs.CreateChatLog(ctx, userID, "assistant", raw); err != nil {
		metrics.WarnWithContext(ctx, "Failed to save assistant chat message", map[string]interface{}{
			"error": err.Error(),
		})
	}

	plan := ParsePlanResponse(raw)
	metrics.RecordPlanGenerated("ok", len(plan))

	for _, descriptor := range plan {
		action := &db.PendingAction{
			UserID:     userID,
			Provider:   descriptor.Provider,
			ActionType: ActionTypeFor(descriptor.Tool),
			Payload:    descriptor.Payload(),
		}
		if err := b.actions.CreatePendingAction(ctx, action); err != nil {
			metrics.ErrorWithContext(ctx, "Failed to save pending action", err, map[string]interface{}{
				"tool":     descriptor.Tool,
				"provider": descriptor.Provider,
			})
			continue
		}
		metrics.InfoWithContext(ctx, "Created pending action", map[string]interface{}{
			"action_id":   action.ID,
			"action_type": action.ActionType,
			"provider":    action.Provider,
		})
	}

	return plan, nil
}

/* PendingActions lists a user's actions awaiting approval */
func (b *Brain) PendingActions(ctx context.Context, userID int64) ([]db.PendingAction, error) {
	return b.actions.ListActions(ctx, &userID, db.StatusPending)
}

/* availableTools returns the tools unlocked by the user's live
   credentials. Presence of a non-expired token is the sole gate. */
func (b *Brain) availableTools(ctx context.Context, userID int64) []tools.ExecutionTool {
	var available []tools.ExecutionTool
	for _, provider := range knownProviders {
		token, err := b.tokens.GetUserToken(ctx, userID, provider)
		if err != nil {
			metrics.WarnWithContext(ctx, "Token lookup failed", map[string]interface{}{
				"provider": provider,
				"error":    err.Error(),
			})
			continue
		}
		if token == nil {
			continue
		}
		available = append(available, b.registry.ForProvider(provider)...)
	}
	return available
}

/* ActionTypeFor maps a tool name to its stored action type. Unknown tools
   pass through unchanged. */
func ActionTypeFor(tool string) string {
	switch tool {
	case tools.ToolCreateAsanaTask:
		return "create_task"
	case tools.ToolSendGmail:
		return "send_email"
	default:
		return tool
	}
}

/* buildPlanningPrompt builds the model prompt: fixed framing, the quoted
   user message, the advertised tools with their required parameters, and
   strict JSON-array-only output instructions */
func buildPlanningPrompt(message string, available []tools.ExecutionTool) string {
	var toolLines []string
	for _, t := range available {
		toolLines = append(toolLines,
			fmt.Sprintf("- %s: %s action on %s (requires: %s)",
				t.Name(), ActionTypeFor(t.Name()), t.Provider(), strings.Join(t.RequiredParams(), ", ")))
	}

	toolsStr := "No tools available"
	if len(toolLines) > 0 {
		toolsStr = strings.Join(toolLines, "\n")
	}

	return fmt.Sprintf(`You are Gaprio AI Assistant. Analyze the user's request and generate appropriate actions.

USER REQUEST: %q

AVAILABLE TOOLS:
%s

INSTRUCTIONS:
1. Only generate actions for available tools
2. Extract parameters from the user's message
3. For emails, extract recipient, subject, and body
4. For tasks, extract task name and description
5. For project_id, leave as empty string if not specified
6. Output ONLY a JSON array of action objects
7. DO NOT include any other text or explanations

OUTPUT FORMAT: A JSON array like this:
[
  {
    "tool": "create_asana_task",
    "provider": "asana",
    "parameters": {
      "name": "Task title here",
      "notes": "Task description here",
      "project_id": ""
    }
  }
]

If no action is needed, return empty array: []

Generate actions now:`, message, toolsStr)
}
