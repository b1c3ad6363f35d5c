/*-------------------------------------------------------------------------
 *
 * schema.go
 *    Schema bootstrap for the Gaprio agent server
 *
 * Creates the users, user_connections, agent_chat_logs, and
 * ai_pending_actions tables idempotently at startup, and provides a
 * destructive reset for the agentctl admin tool.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/db/schema.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"context"
	"fmt"

	"github.com/abhx69/gaprio-agent/internal/metrics"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		full_name VARCHAR(100),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS user_connections (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		provider VARCHAR(20) NOT NULL CHECK (provider IN ('google', 'asana')),
		provider_user_id VARCHAR(255),
		access_token TEXT NOT NULL,
		refresh_token TEXT,
		expires_at TIMESTAMPTZ,
		metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_user_connections_user_provider
		ON user_connections (user_id, provider, updated_at DESC)`,

	`CREATE TABLE IF NOT EXISTS agent_chat_logs (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT REFERENCES users(id),
		role VARCHAR(20) NOT NULL CHECK (role IN ('user', 'assistant')),
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS ai_pending_actions (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT REFERENCES users(id),
		provider VARCHAR(20),
		action_type VARCHAR(50),
		draft_payload JSONB NOT NULL DEFAULT '{}'::jsonb,
		status VARCHAR(20) NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'approved', 'rejected', 'executed')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		executed_at TIMESTAMPTZ
	)`,

	`CREATE INDEX IF NOT EXISTS idx_ai_pending_actions_user_status
		ON ai_pending_actions (user_id, status, created_at DESC)`,
}

var dropStatements = []string{
	`DROP TABLE IF EXISTS ai_pending_actions`,
	`DROP TABLE IF EXISTS agent_chat_logs`,
	`DROP TABLE IF EXISTS user_connections`,
	`DROP TABLE IF EXISTS users`,
}

/* Bootstrap creates all tables and indexes if they do not exist */
func Bootstrap(ctx context.Context, database *DB) error {
	for _, stmt := range schemaStatements {
		if _, err := database.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}
	metrics.InfoWithContext(ctx, "Schema bootstrap complete", map[string]interface{}{
		"statements": len(schemaStatements),
	})
	return nil
}

/* Reset drops and recreates all tables. Used by agentctl only. */
func Reset(ctx context.Context, database *DB) error {
	for _, stmt := range dropStatements {
		if _, err := database.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema reset failed: %w", err)
		}
	}
	return Bootstrap(ctx, database)
}
