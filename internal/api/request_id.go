/*-------------------------------------------------------------------------
 *
 * request_id.go
 *    Request ID middleware for the Gaprio agent server
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/api/request_id.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/abhx69/gaprio-agent/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

/* RequestIDMiddleware assigns each request an ID, honoring one supplied
   by the client, and echoes it on the response */
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := metrics.WithRequestIDLogContext(r.Context(), requestID)
		w.Header().Set(requestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

/* GetRequestID returns the request ID from the context, or empty */
func GetRequestID(ctx context.Context) string {
	return metrics.GetRequestIDFromContext(ctx)
}
