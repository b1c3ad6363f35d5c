/*-------------------------------------------------------------------------
 *
 * config.go
 *    Configuration management for the Gaprio agent server
 *
 * Loads server, database, LLM and provider configuration from
 * environment variables with sane development defaults.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/config/config.go
 *
 *-------------------------------------------------------------------------
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

/* Config holds application configuration */
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Ollama    OllamaConfig
	Providers ProviderConfig
	Logging   LoggingConfig
}

/* ServerConfig holds HTTP server configuration */
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

/* DatabaseConfig holds database configuration */
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

/* OllamaConfig holds LLM configuration */
type OllamaConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

/* ProviderConfig holds external provider API configuration.
   Base URLs are overridable so tests can point at local fakes. */
type ProviderConfig struct {
	AsanaBaseURL string
	GmailBaseURL string
	APITimeout   time.Duration
}

/* LoggingConfig holds logging configuration */
type LoggingConfig struct {
	Level  string
	Format string
}

/* Load loads configuration from environment variables */
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvInt("APP_PORT", 8000),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "gaprio"),
			Password:        getEnv("DB_PASSWORD", "gaprio"),
			Database:        getEnv("DB_NAME", "gaprio_agent_dev"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
		},
		Ollama: OllamaConfig{
			BaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Model:   getEnv("LLM_MODEL", "llama3:instruct"),
			Timeout: getEnvDuration("LLM_TIMEOUT", 30*time.Second),
		},
		Providers: ProviderConfig{
			AsanaBaseURL: getEnv("ASANA_BASE_URL", "https://app.asana.com/api/1.0"),
			GmailBaseURL: getEnv("GMAIL_BASE_URL", "https://gmail.googleapis.com"),
			APITimeout:   getEnvDuration("API_TIMEOUT", 30*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

/* ConnString builds a lib/pq connection string */
func (c DatabaseConfig) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Database)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
