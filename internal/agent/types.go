/*-------------------------------------------------------------------------
 *
 * types.go
 *    Core types and collaborator interfaces for the agent brain
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/agent/types.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"context"

	"github.com/abhx69/gaprio-agent/internal/db"
)

/* ActionDescriptor is a normalized {tool, provider, parameters} triple
   parsed from model output. Missing keys degrade to empty values. */
type ActionDescriptor struct {
	Tool       string                 `json:"tool"`
	Provider   string                 `json:"provider"`
	Parameters map[string]interface{} `json:"parameters"`
}

/* Payload returns the descriptor as the persisted draft payload mapping */
func (a ActionDescriptor) Payload() db.JSONBMap {
	params := a.Parameters
	if params == nil {
		params = make(map[string]interface{})
	}
	return db.JSONBMap{
		"tool":       a.Tool,
		"provider":   a.Provider,
		"parameters": params,
	}
}

/* ApprovalResult is the structured outcome of an approval attempt */
type ApprovalResult struct {
	Success bool                   `json:"success"`
	Status  string                 `json:"status,omitempty"`
	Result  map[string]interface{} `json:"result,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

/* PlanModel generates raw text from a planning prompt */
type PlanModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

/* TokenStore reads per-user, per-provider credentials. An expired
   credential is reported as absent. */
type TokenStore interface {
	GetUserToken(ctx context.Context, userID int64, provider string) (*db.UserConnection, error)
}

/* ActionStore persists and transitions pending actions */
type ActionStore interface {
	CreatePendingAction(ctx context.Context, action *db.PendingAction) error
	ListActions(ctx context.Context, userID *int64, status string) ([]db.PendingAction, error)
	TransitionActionStatus(ctx context.Context, id int64, newStatus string) error
}

/* ChatLogStore appends raw conversation history */
type ChatLogStore interface {
	CreateChatLog(ctx context.Context, userID int64, role, content string) (*db.AgentChatLog, error)
}
