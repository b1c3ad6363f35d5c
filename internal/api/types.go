/*-------------------------------------------------------------------------
 *
 * types.go
 *    Request and response DTOs for the agent API
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/api/types.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"time"

	"github.com/abhx69/gaprio-agent/internal/agent"
	"github.com/abhx69/gaprio-agent/internal/db"
)

type AskAgentRequest struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

type AskAgentResponse struct {
	Status           string                   `json:"status"`
	Plan             []agent.ActionDescriptor `json:"plan"`
	RequiresApproval bool                     `json:"requires_approval"`
	Message          string                   `json:"message"`
}

type PendingActionsResponse struct {
	Status  string                  `json:"status"`
	Count   int                     `json:"count"`
	Actions []PendingActionResponse `json:"actions"`
}

type PendingActionResponse struct {
	ID         int64                  `json:"id"`
	UserID     int64                  `json:"user_id"`
	Provider   string                 `json:"provider"`
	ActionType string                 `json:"action_type"`
	Payload    map[string]interface{} `json:"draft_payload"`
	Status     string                 `json:"status"`
	CreatedAt  time.Time              `json:"created_at"`
	ExecutedAt *time.Time             `json:"executed_at,omitempty"`
}

type ApproveActionRequest struct {
	UserID   int64 `json:"user_id"`
	ActionID int64 `json:"action_id"`
}

type ApproveActionResponse struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

type ExecuteActionRequest struct {
	UserID     int64                  `json:"user_id"`
	Tool       string                 `json:"tool"`
	Provider   string                 `json:"provider"`
	Parameters map[string]interface{} `json:"parameters"`
}

type ExecuteActionResponse struct {
	Status string                 `json:"status"`
	Data   map[string]interface{} `json:"data"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Ollama   string `json:"ollama"`
	Version  string `json:"version"`
}

func toPendingActionResponse(a *db.PendingAction) PendingActionResponse {
	return PendingActionResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		Provider:   a.Provider,
		ActionType: a.ActionType,
		Payload:    db.ToMap(a.Payload),
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
		ExecutedAt: a.ExecutedAt,
	}
}
