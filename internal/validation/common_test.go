/*-------------------------------------------------------------------------
 *
 * common_test.go
 *    Tests for common validation functions
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/validation/common_test.go
 *
 *-------------------------------------------------------------------------
 */

package validation

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	if err := ValidateRequired("value", "field"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateRequired("", "field"); err == nil {
		t.Error("expected error for empty value")
	}
}

func TestValidatePositiveID(t *testing.T) {
	if err := ValidatePositiveID(1, "id"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, v := range []int64{0, -1} {
		if err := ValidatePositiveID(v, "id"); err == nil {
			t.Errorf("expected error for %d", v)
		}
	}
}

func TestValidateMaxLength(t *testing.T) {
	if err := ValidateMaxLength("abc", "field", 3); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateMaxLength("abcd", "field", 3); err == nil {
		t.Error("expected error for over-length value")
	}
}

func TestReadAndValidateBody(t *testing.T) {
	t.Run("within limit", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader("hello"))
		body, err := ReadAndValidateBody(req, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(body) != "hello" {
			t.Errorf("unexpected body: %q", body)
		}
	})

	t.Run("at limit", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader("12345"))
		if _, err := ReadAndValidateBody(req, 5); err != nil {
			t.Errorf("body at exact limit must pass, got %v", err)
		}
	})

	t.Run("over limit", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader("123456"))
		if _, err := ReadAndValidateBody(req, 5); err == nil {
			t.Error("expected error for oversized body")
		}
	})
}
