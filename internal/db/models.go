/*-------------------------------------------------------------------------
 *
 * models.go
 *    Database models for the Gaprio agent server
 *
 * Defines data structures for users, provider connections, chat logs,
 * and pending actions.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/db/models.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"time"
)

/* Pending action statuses. The lifecycle is pending -> executed | rejected;
   approved is part of the enum for a future two-phase flow but is never set
   by the current execution path. */
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusExecuted = "executed"
)

/* Provider names the executor knows how to dispatch */
const (
	ProviderAsana  = "asana"
	ProviderGoogle = "google"
)

type User struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	FullName  *string   `db:"full_name"`
	CreatedAt time.Time `db:"created_at"`
}

/* UserConnection holds a per-user, per-provider OAuth credential.
   The newest row for a (user, provider) pair wins when duplicates exist. */
type UserConnection struct {
	ID             int64      `db:"id"`
	UserID         int64      `db:"user_id"`
	Provider       string     `db:"provider"`
	ProviderUserID *string    `db:"provider_user_id"`
	AccessToken    string     `db:"access_token"`
	RefreshToken   *string    `db:"refresh_token"`
	ExpiresAt      *time.Time `db:"expires_at"`
	Metadata       JSONBMap   `db:"metadata"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

type AgentChatLog struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Role      string    `db:"role"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

/* PendingAction is a persisted action descriptor awaiting approval.
   draft_payload carries the {tool, provider, parameters} object verbatim. */
type PendingAction struct {
	ID         int64      `db:"id"`
	UserID     int64      `db:"user_id"`
	Provider   string     `db:"provider"`
	ActionType string     `db:"action_type"`
	Payload    JSONBMap   `db:"draft_payload"`
	Status     string     `db:"status"`
	CreatedAt  time.Time  `db:"created_at"`
	ExecutedAt *time.Time `db:"executed_at"`
}

/* IsTerminal reports whether an action status permits no further transition */
func IsTerminal(status string) bool {
	return status == StatusExecuted || status == StatusRejected
}
