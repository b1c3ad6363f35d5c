/*-------------------------------------------------------------------------
 *
 * queries_test.go
 *    Tests for credential expiry semantics
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/db/queries_test.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"testing"
	"time"
)

func TestCredentialExpired(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return now }
	defer func() { nowFunc = time.Now }()

	t.Run("no expiry never expires", func(t *testing.T) {
		if credentialExpired(&UserConnection{AccessToken: "t"}) {
			t.Error("credential without expiry must not expire")
		}
	})

	t.Run("one second past expiry is expired", func(t *testing.T) {
		expired := now.Add(-time.Second)
		if !credentialExpired(&UserConnection{AccessToken: "t", ExpiresAt: &expired}) {
			t.Error("expired credential must be reported expired")
		}
	})

	t.Run("future expiry is live", func(t *testing.T) {
		future := now.Add(time.Hour)
		if credentialExpired(&UserConnection{AccessToken: "t", ExpiresAt: &future}) {
			t.Error("future expiry must not be reported expired")
		}
	})

	t.Run("expiry exactly now is live", func(t *testing.T) {
		/* Before() is strict, so expires_at == now still passes */
		at := now
		if credentialExpired(&UserConnection{AccessToken: "t", ExpiresAt: &at}) {
			t.Error("expiry at the current instant must still pass")
		}
	})
}
