/*-------------------------------------------------------------------------
 *
 * handlers.go
 *    API handlers for the Gaprio agent server
 *
 * Provides HTTP handlers for plan generation, pending action listing,
 * approval-gated execution, direct execution, and health.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/api/handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/abhx69/gaprio-agent/internal/agent"
	"github.com/abhx69/gaprio-agent/internal/db"
	"github.com/abhx69/gaprio-agent/internal/validation"
)

/* Version reported by the health endpoint */
const Version = "1.0.0"

/* Request bodies are small JSON documents; cap them well below any
   realistic size */
const maxBodySize = 1024 * 1024

/* PlanService generates plans and lists pending actions */
type PlanService interface {
	GeneratePlan(ctx context.Context, userID int64, message string) ([]agent.ActionDescriptor, error)
	PendingActions(ctx context.Context, userID int64) ([]db.PendingAction, error)
}

/* ApprovalService executes actions with and without the approval gate */
type ApprovalService interface {
	Approve(ctx context.Context, actionID int64) agent.ApprovalResult
	ExecuteDirect(ctx context.Context, userID int64, descriptor agent.ActionDescriptor) (map[string]interface{}, error)
}

/* HealthChecker probes the database connection */
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	brain    PlanService
	executor ApprovalService
	database HealthChecker
}

func NewHandlers(brain PlanService, executor ApprovalService, database HealthChecker) *Handlers {
	return &Handlers{
		brain:    brain,
		executor: executor,
		database: database,
	}
}

/* AskAgent processes a user message and generates an action plan. An
   empty plan is a successful response; model and parse failures are not
   surfaced as errors. */
func (h *Handlers) AskAgent(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	var req AskAgentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := validation.ValidatePositiveID(req.UserID, "user_id"); err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "invalid user_id", err), requestID))
		return
	}
	if err := validation.ValidateRequired(req.Message, "message"); err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "invalid message", err), requestID))
		return
	}

	plan, err := h.brain.GeneratePlan(r.Context(), req.UserID, req.Message)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "plan generation failed", err), requestID))
		return
	}

	respondJSON(w, http.StatusOK, AskAgentResponse{
		Status:           "success",
		Plan:             plan,
		RequiresApproval: len(plan) > 0,
		Message:          fmt.Sprintf("Generated %d action(s) pending approval", len(plan)),
	})
}

/* GetPendingActions lists a user's actions awaiting approval */
func (h *Handlers) GetPendingActions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	userID, err := strconv.ParseInt(vars["user_id"], 10, 64)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "invalid user ID", err), requestID))
		return
	}

	actions, err := h.brain.PendingActions(r.Context(), userID)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to list pending actions", err), requestID))
		return
	}

	responses := make([]PendingActionResponse, len(actions))
	for i := range actions {
		responses[i] = toPendingActionResponse(&actions[i])
	}

	respondJSON(w, http.StatusOK, PendingActionsResponse{
		Status:  "success",
		Count:   len(responses),
		Actions: responses,
	})
}

/* ApproveAction approves and executes a pending action. Business
   failures (unknown action, missing credential, provider error) come
   back as a structured error payload, not a transport failure. The
   user_id field is accepted but not re-validated against the action's
   owner, matching the upstream contract. */
func (h *Handlers) ApproveAction(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	var req ApproveActionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := validation.ValidatePositiveID(req.ActionID, "action_id"); err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "invalid action_id", err), requestID))
		return
	}

	result := h.executor.Approve(r.Context(), req.ActionID)
	if !result.Success {
		message := result.Error
		if message == "" {
			message = "Execution failed"
		}
		respondJSON(w, http.StatusOK, ApproveActionResponse{
			Status:  "error",
			Message: message,
		})
		return
	}

	respondJSON(w, http.StatusOK, ApproveActionResponse{
		Status:  "success",
		Message: "Action executed successfully",
		Data:    result.Result,
	})
}

/* ExecuteAction runs a raw action descriptor directly, bypassing the
   approval gate */
func (h *Handlers) ExecuteAction(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	var req ExecuteActionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := validation.ValidatePositiveID(req.UserID, "user_id"); err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "invalid user_id", err), requestID))
		return
	}

	descriptor := agent.ActionDescriptor{
		Tool:       req.Tool,
		Provider:   req.Provider,
		Parameters: req.Parameters,
	}

	result, err := h.executor.ExecuteDirect(r.Context(), req.UserID, descriptor)
	if err != nil {
		switch {
		case errors.Is(err, agent.ErrUnsupported):
			respondError(w, WrapError(NewError(http.StatusBadRequest, "Unsupported action", nil), requestID))
		case errors.Is(err, agent.ErrNoToken):
			respondError(w, WrapError(NewError(http.StatusBadRequest, fmt.Sprintf("No %s token found", req.Provider), nil), requestID))
		default:
			respondError(w, WrapError(NewError(http.StatusInternalServerError, "action execution failed", err), requestID))
		}
		return
	}

	respondJSON(w, http.StatusOK, ExecuteActionResponse{
		Status: "success",
		Data:   result,
	})
}

/* Health reports service and database status */
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "connected"
	if err := h.database.HealthCheck(r.Context()); err != nil {
		dbStatus = "disconnected"
	}

	respondJSON(w, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Database: dbStatus,
		Ollama:   "configured",
		Version:  Version,
	})
}

/* decodeBody reads, size-checks, and decodes a JSON request body,
   responding with a 400 on failure */
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	requestID := GetRequestID(r.Context())

	bodyBytes, err := validation.ReadAndValidateBody(r, maxBodySize)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "request body validation failed", err), requestID))
		return false
	}

	if err := json.Unmarshal(bodyBytes, dst); err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "request body parsing error", err), requestID))
		return false
	}
	return true
}
