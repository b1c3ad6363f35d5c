/*-------------------------------------------------------------------------
 *
 * queries.go
 *    Database queries for the Gaprio agent server
 *
 * Provides query functions for user tokens, chat logs, and pending
 * actions, including the guarded pending -> terminal status transition.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/db/queries.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

/* nowFunc is swapped out by expiry tests */
var nowFunc = time.Now

/* ErrActionResolved is returned when a status transition finds the action
   missing or no longer pending. The conditional update guarantees at most
   one caller ever observes a successful pending -> terminal transition. */
var ErrActionResolved = errors.New("action not found or already resolved")

/* Token queries */
const (
	getUserTokenQuery = `
		SELECT id, user_id, provider, provider_user_id, access_token, refresh_token, expires_at, metadata, updated_at
		FROM user_connections
		WHERE user_id = $1 AND provider = $2
		ORDER BY updated_at DESC
		LIMIT 1`

	upsertUserTokenQuery = `
		INSERT INTO user_connections (user_id, provider, access_token, refresh_token, expires_at, metadata)
		VALUES ($1, $2, $3, $4, $5, '{}'::jsonb)
		RETURNING id, updated_at`
)

/* Chat log queries */
const (
	createChatLogQuery = `
		INSERT INTO agent_chat_logs (user_id, role, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
)

/* Pending action queries */
const (
	createPendingActionQuery = `
		INSERT INTO ai_pending_actions (user_id, provider, action_type, draft_payload, status)
		VALUES ($1, $2, $3, $4::jsonb, 'pending')
		RETURNING id, created_at`

	getPendingActionQuery = `
		SELECT id, user_id, provider, action_type, draft_payload, status, created_at, executed_at
		FROM ai_pending_actions
		WHERE id = $1`

	listActionsByStatusQuery = `
		SELECT id, user_id, provider, action_type, draft_payload, status, created_at, executed_at
		FROM ai_pending_actions
		WHERE status = $1
		ORDER BY created_at DESC`

	listUserActionsByStatusQuery = `
		SELECT id, user_id, provider, action_type, draft_payload, status, created_at, executed_at
		FROM ai_pending_actions
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at DESC`

	transitionActionExecutedQuery = `
		UPDATE ai_pending_actions
		SET status = $2, executed_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	transitionActionQuery = `
		UPDATE ai_pending_actions
		SET status = $2
		WHERE id = $1 AND status = 'pending'`
)

/* Queries wraps database access for the agent server */
type Queries struct {
	db *sqlx.DB
}

/* NewQueries creates a new Queries instance */
func NewQueries(db *sqlx.DB) *Queries {
	return &Queries{db: db}
}

/* GetDB returns the underlying sqlx handle */
func (q *Queries) GetDB() *sqlx.DB {
	return q.db
}

/* GetUserToken returns the newest non-expired credential for a user and
   provider. An expired credential is treated as absent: (nil, nil). */
func (q *Queries) GetUserToken(ctx context.Context, userID int64, provider string) (*UserConnection, error) {
	var conn UserConnection
	err := q.db.GetContext(ctx, &conn, getUserTokenQuery, userID, provider)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user token: %w", err)
	}

	if credentialExpired(&conn) {
		return nil, nil
	}
	return &conn, nil
}

/* credentialExpired reports whether a credential's expiry has passed.
   A credential with no expiry never expires. */
func credentialExpired(conn *UserConnection) bool {
	return conn.ExpiresAt != nil && conn.ExpiresAt.Before(nowFunc())
}

/* UpsertUserToken stores a credential for a user and provider. Newer rows
   shadow older ones on lookup, so a plain insert is sufficient. */
func (q *Queries) UpsertUserToken(ctx context.Context, conn *UserConnection) error {
	err := q.db.QueryRowxContext(ctx, upsertUserTokenQuery,
		conn.UserID, conn.Provider, conn.AccessToken, conn.RefreshToken, conn.ExpiresAt).
		Scan(&conn.ID, &conn.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to store user token: %w", err)
	}
	return nil
}

/* CreateChatLog appends a raw chat message for a user */
func (q *Queries) CreateChatLog(ctx context.Context, userID int64, role, content string) (*AgentChatLog, error) {
	entry := &AgentChatLog{UserID: userID, Role: role, Content: content}
	err := q.db.QueryRowxContext(ctx, createChatLogQuery, userID, role, content).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save chat message: %w", err)
	}
	return entry, nil
}

/* CreatePendingAction persists an action with status pending */
func (q *Queries) CreatePendingAction(ctx context.Context, action *PendingAction) error {
	err := q.db.QueryRowxContext(ctx, createPendingActionQuery,
		action.UserID, action.Provider, action.ActionType, action.Payload).
		Scan(&action.ID, &action.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create pending action: %w", err)
	}
	action.Status = StatusPending
	return nil
}

/* GetPendingAction gets an action by ID */
func (q *Queries) GetPendingAction(ctx context.Context, id int64) (*PendingAction, error) {
	var action PendingAction
	err := q.db.GetContext(ctx, &action, getPendingActionQuery, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending action: %w", err)
	}
	return &action, nil
}

/* ListActions lists actions with the given status, newest first. A nil
   userID lists across all users. */
func (q *Queries) ListActions(ctx context.Context, userID *int64, status string) ([]PendingAction, error) {
	var actions []PendingAction
	var err error

	if userID != nil {
		err = q.db.SelectContext(ctx, &actions, listUserActionsByStatusQuery, *userID, status)
	} else {
		err = q.db.SelectContext(ctx, &actions, listActionsByStatusQuery, status)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}
	return actions, nil
}

/* TransitionActionStatus moves an action from pending to a terminal status
   with a single conditional update. The executed_at timestamp is stamped
   only on the executed transition. Returns ErrActionResolved when the row
   is missing or no longer pending. */
func (q *Queries) TransitionActionStatus(ctx context.Context, id int64, newStatus string) error {
	query := transitionActionQuery
	if newStatus == StatusExecuted {
		query = transitionActionExecutedQuery
	}

	result, err := q.db.ExecContext(ctx, query, id, newStatus)
	if err != nil {
		return fmt.Errorf("failed to update action status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrActionResolved
	}
	return nil
}
