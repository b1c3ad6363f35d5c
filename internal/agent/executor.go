/*-------------------------------------------------------------------------
 *
 * executor.go
 *    Approval-gated action execution
 *
 * Loads a pending action, resolves the owning user's credential, runs
 * the matching provider tool, and moves the action to a terminal status
 * through a guarded single-row update.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/agent/executor.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhx69/gaprio-agent/internal/db"
	"github.com/abhx69/gaprio-agent/internal/metrics"
	"github.com/abhx69/gaprio-agent/internal/tools"
)

/* Direct execution failures surfaced to the API layer */
var (
	ErrNoToken     = errors.New("no provider token found")
	ErrUnsupported = errors.New("unsupported action")
)

/* Executor approves and executes pending actions */
type Executor struct {
	tokens   TokenStore
	actions  ActionStore
	registry *tools.Registry
}

/* NewExecutor creates an executor with explicit collaborators */
func NewExecutor(tokens TokenStore, actions ActionStore, registry *tools.Registry) *Executor {
	return &Executor{
		tokens:   tokens,
		actions:  actions,
		registry: registry,
	}
}

/* Approve executes a pending action and moves it to a terminal status.
   The action is located by filtering the pending list in memory; an
   action already in a terminal status is therefore reported as not found
   without any provider call. Unexpected faults are caught here and
   reported as a structured failure. */
func (e *Executor) Approve(ctx context.Context, actionID int64) (result ApprovalResult) {
	defer func() {
		if r := recover(); r != nil {
			metrics.ErrorWithContext(ctx, "Unexpected fault during approval", fmt.Errorf("%v", r), map[string]interface{}{
				"action_id": actionID,
			})
			result = ApprovalResult{Success: false, Error: fmt.Sprintf("%v", r)}
		}
	}()

	ctx = metrics.WithActionIDLogContext(ctx, actionID)

	pending, err := e.actions.ListActions(ctx, nil, db.StatusPending)
	if err != nil {
		return ApprovalResult{Success: false, Error: err.Error()}
	}

	var action *db.PendingAction
	for i := range pending {
		if pending[i].ID == actionID {
			action = &pending[i]
			break
		}
	}
	if action == nil {
		return ApprovalResult{Success: false, Error: "Action not found"}
	}

	ctx = metrics.WithUserIDLogContext(ctx, action.UserID)
	ctx = metrics.WithProviderLogContext(ctx, action.Provider)

	token, err := e.tokens.GetUserToken(ctx, action.UserID, action.Provider)
	if err != nil {
		return ApprovalResult{Success: false, Error: err.Error()}
	}
	if token == nil {
		return ApprovalResult{Success: false, Error: fmt.Sprintf("No %s token found", action.Provider)}
	}

	/* Dispatch only on an exact (provider, payload tool) match; anything
	   else produces no result and the action is rejected below. */
	var execResult map[string]interface{}
	var execDuration time.Duration
	toolName, _ := action.Payload["tool"].(string)
	if tool, ok := e.registry.Lookup(action.Provider, toolName); ok {
		params, _ := action.Payload["parameters"].(map[string]interface{})
		if params == nil {
			params = make(map[string]interface{})
		}

		start := time.Now()
		execResult = tool.Execute(ctx, token.AccessToken, params)
		execDuration = time.Since(start)
	}

	status := db.StatusExecuted
	if execResult == nil {
		status = db.StatusRejected
	} else if _, hasErr := execResult["error"]; hasErr {
		status = db.StatusRejected
	}
	if execResult != nil {
		metrics.RecordActionExecution(action.Provider, status, execDuration)
	}

	/* Single guarded pending -> terminal transition; a concurrent approver
	   loses the race here instead of double-reporting execution */
	if err := e.actions.TransitionActionStatus(ctx, actionID, status); err != nil {
		if errors.Is(err, db.ErrActionResolved) {
			return ApprovalResult{Success: false, Error: "Action not found"}
		}
		return ApprovalResult{Success: false, Error: err.Error()}
	}

	metrics.InfoWithContext(ctx, "Action resolved", map[string]interface{}{
		"status": status,
	})

	return ApprovalResult{
		Success: status == db.StatusExecuted,
		Status:  status,
		Result:  execResult,
	}
}

/* ExecuteDirect runs a raw descriptor against its provider without the
   approval gate. Used by the direct execution endpoint only. */
func (e *Executor) ExecuteDirect(ctx context.Context, userID int64, descriptor ActionDescriptor) (map[string]interface{}, error) {
	ctx = metrics.WithUserIDLogContext(ctx, userID)
	ctx = metrics.WithProviderLogContext(ctx, descriptor.Provider)

	token, err := e.tokens.GetUserToken(ctx, userID, descriptor.Provider)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoToken, descriptor.Provider)
	}

	tool, ok := e.registry.Lookup(descriptor.Provider, descriptor.Tool)
	if !ok {
		return nil, ErrUnsupported
	}

	params := descriptor.Parameters
	if params == nil {
		params = make(map[string]interface{})
	}

	start := time.Now()
	result := tool.Execute(ctx, token.AccessToken, params)
	status := db.StatusExecuted
	if _, hasErr := result["error"]; hasErr {
		status = db.StatusRejected
	}
	metrics.RecordActionExecution(descriptor.Provider, status, time.Since(start))

	return result, nil
}
