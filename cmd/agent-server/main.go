/*-------------------------------------------------------------------------
 *
 * main.go
 *    Gaprio agent server entry point
 *
 * Wires configuration, database, the planning brain, the approval
 * executor, and the HTTP API, then serves until interrupted.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/cmd/agent-server/main.go
 *
 *-------------------------------------------------------------------------
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/abhx69/gaprio-agent/internal/agent"
	"github.com/abhx69/gaprio-agent/internal/api"
	"github.com/abhx69/gaprio-agent/internal/config"
	"github.com/abhx69/gaprio-agent/internal/db"
	"github.com/abhx69/gaprio-agent/internal/metrics"
	"github.com/abhx69/gaprio-agent/internal/tools"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version and exit")
		showHelp    = flag.Bool("help", false, "print usage and exit")
	)
	/* Accepted for compatibility with older deploy scripts; configuration
	   comes from the environment */
	flag.String("config", "", "unused, configuration is read from environment variables")
	flag.Parse()

	if *showVersion {
		fmt.Printf("agent-server %s\n", api.Version)
		return
	}
	if *showHelp {
		flag.Usage()
		return
	}

	cfg := config.Load()
	metrics.InitLogging(cfg.Logging.Level, cfg.Logging.Format)

	database, err := db.NewDB(cfg.Database.ConnString(), db.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	ctx := context.Background()
	if err := db.Bootstrap(ctx, database); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap database schema")
	}

	queries := db.NewQueries(database.DB)
	registry := tools.NewRegistry(
		tools.NewAsanaTool(cfg.Providers.AsanaBaseURL, cfg.Providers.APITimeout),
		tools.NewGmailTool(cfg.Providers.GmailBaseURL, cfg.Providers.APITimeout),
	)
	model := agent.NewOllamaClient(cfg.Ollama.BaseURL, cfg.Ollama.Model, cfg.Ollama.Timeout)
	brain := agent.NewBrain(queries, queries, queries, model, registry)
	executor := agent.NewExecutor(queries, queries, registry)
	handlers := api.NewHandlers(brain, executor, database)

	router := mux.NewRouter()
	router.Use(api.RequestIDMiddleware)
	router.Use(api.CORSMiddleware)
	router.Use(api.LoggingMiddleware)

	router.HandleFunc("/ask-agent", handlers.AskAgent).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/pending-actions/{user_id}", handlers.GetPendingActions).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/approve-action", handlers.ApproveAction).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/execute-action", handlers.ExecuteAction).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Str("model", cfg.Ollama.Model).Msg("Agent server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down agent server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}

	log.Info().Msg("Agent server stopped")
}
