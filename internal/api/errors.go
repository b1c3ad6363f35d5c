/*-------------------------------------------------------------------------
 *
 * errors.go
 *    API error types and response helpers
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/api/errors.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"encoding/json"
	"net/http"
)

/* APIError carries an HTTP status code alongside the error detail */
type APIError struct {
	Code      int
	Message   string
	Err       error
	RequestID string
}

/* ErrorResponse is the JSON error body */
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

/* Common API errors */
var (
	ErrNotFound   = NewError(http.StatusNotFound, "resource not found", nil)
	ErrBadRequest = NewError(http.StatusBadRequest, "invalid request", nil)
	ErrInternal   = NewError(http.StatusInternalServerError, "internal server error", nil)
)

/* NewError creates an API error */
func NewError(code int, message string, err error) *APIError {
	return &APIError{Code: code, Message: message, Err: err}
}

/* WrapError attaches a request ID to an API error */
func WrapError(err *APIError, requestID string) *APIError {
	return &APIError{Code: err.Code, Message: err.Message, Err: err.Err, RequestID: requestID}
}

/* Error implements the error interface */
func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, err *APIError) {
	response := ErrorResponse{
		Status:  "error",
		Message: err.Message,
	}
	if err.Err != nil {
		response.Detail = err.Err.Error()
	}
	if err.RequestID != "" {
		w.Header().Set("X-Request-ID", err.RequestID)
	}
	respondJSON(w, err.Code, response)
}
