/*-------------------------------------------------------------------------
 *
 * config_test.go
 *    Tests for configuration loading
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/config/config_test.go
 *
 *-------------------------------------------------------------------------
 */

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8000 {
		t.Errorf("default port = %d", cfg.Server.Port)
	}
	if cfg.Database.Port != 5432 || cfg.Database.Database != "gaprio_agent_dev" {
		t.Errorf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Ollama.BaseURL != "http://localhost:11434" || cfg.Ollama.Model != "llama3:instruct" {
		t.Errorf("unexpected ollama defaults: %+v", cfg.Ollama)
	}
	if cfg.Ollama.Timeout != 30*time.Second {
		t.Errorf("unexpected LLM timeout: %v", cfg.Ollama.Timeout)
	}
	if cfg.Providers.AsanaBaseURL != "https://app.asana.com/api/1.0" {
		t.Errorf("unexpected asana base URL: %s", cfg.Providers.AsanaBaseURL)
	}
	if cfg.Providers.GmailBaseURL != "https://gmail.googleapis.com" {
		t.Errorf("unexpected gmail base URL: %s", cfg.Providers.GmailBaseURL)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9001")
	t.Setenv("LLM_MODEL", "mistral")
	t.Setenv("LLM_TIMEOUT", "90s")
	t.Setenv("DB_NAME", "gaprio_agent_test")
	t.Setenv("ASANA_BASE_URL", "http://localhost:4001")

	cfg := Load()

	if cfg.Server.Port != 9001 {
		t.Errorf("port override ignored: %d", cfg.Server.Port)
	}
	if cfg.Ollama.Model != "mistral" || cfg.Ollama.Timeout != 90*time.Second {
		t.Errorf("ollama overrides ignored: %+v", cfg.Ollama)
	}
	if cfg.Database.Database != "gaprio_agent_test" {
		t.Errorf("database override ignored: %s", cfg.Database.Database)
	}
	if cfg.Providers.AsanaBaseURL != "http://localhost:4001" {
		t.Errorf("provider override ignored: %s", cfg.Providers.AsanaBaseURL)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("APP_PORT", "not-a-number")
	t.Setenv("LLM_TIMEOUT", "soon")

	cfg := Load()

	if cfg.Server.Port != 8000 {
		t.Errorf("invalid port must fall back to default, got %d", cfg.Server.Port)
	}
	if cfg.Ollama.Timeout != 30*time.Second {
		t.Errorf("invalid timeout must fall back to default, got %v", cfg.Ollama.Timeout)
	}
}

func TestConnString(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "agent"}
	want := "host=db port=5433 user=u password=p dbname=agent sslmode=disable"
	if got := c.ConnString(); got != want {
		t.Errorf("ConnString() = %q, want %q", got, want)
	}
}
