/*-------------------------------------------------------------------------
 *
 * main.go
 *    Administrative CLI for the Gaprio agent server
 *
 * Provides schema setup and reset, credential seeding for development,
 * and a connectivity diagnosis covering the database and the model
 * endpoint.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/cmd/agentctl/main.go
 *
 *-------------------------------------------------------------------------
 */

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhx69/gaprio-agent/internal/config"
	"github.com/abhx69/gaprio-agent/internal/db"
	"github.com/abhx69/gaprio-agent/internal/metrics"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "agentctl",
		Short: "Administrative tool for the Gaprio agent server",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := config.Load()
			metrics.InitLogging(cfg.Logging.Level, "console")
		},
	}

	rootCmd.AddCommand(setupCmd())
	rootCmd.AddCommand(resetCmd())
	rootCmd.AddCommand(seedTokenCmd())
	rootCmd.AddCommand(diagnoseCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func connect(cfg *config.Config) (*db.DB, error) {
	return db.NewDB(cfg.Database.ConnString(), db.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	})
}

func setupCmd() *cobra.Command {
	var withDemoUser bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create all tables and indexes if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			database, err := connect(cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := db.Bootstrap(cmd.Context(), database); err != nil {
				return err
			}
			fmt.Println("Schema setup complete")

			if withDemoUser {
				var userID int64
				err := database.QueryRowxContext(cmd.Context(), `
					INSERT INTO users (email, full_name)
					VALUES ('demo@gaprio.io', 'Demo User')
					ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name
					RETURNING id`).Scan(&userID)
				if err != nil {
					return fmt.Errorf("failed to create demo user: %w", err)
				}
				fmt.Printf("Demo user ready (id %d, demo@gaprio.io)\n", userID)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withDemoUser, "demo-user", false, "also create the demo@gaprio.io user")
	return cmd
}

func resetCmd() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop and recreate all tables, destroying all data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to reset without --yes")
			}

			cfg := config.Load()
			database, err := connect(cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := db.Reset(cmd.Context(), database); err != nil {
				return err
			}
			fmt.Println("Schema reset complete")
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the destructive reset")
	return cmd
}

func seedTokenCmd() *cobra.Command {
	var (
		email        string
		fullName     string
		provider     string
		accessToken  string
		refreshToken string
		expiresIn    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "seed-token",
		Short: "Create a user if needed and store a provider credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			database, err := connect(cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			ctx := cmd.Context()

			var userID int64
			err = database.QueryRowxContext(ctx, `
				INSERT INTO users (email, full_name)
				VALUES ($1, $2)
				ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name
				RETURNING id`, email, fullName).Scan(&userID)
			if err != nil {
				return fmt.Errorf("failed to ensure user: %w", err)
			}

			conn := &db.UserConnection{
				UserID:      userID,
				Provider:    provider,
				AccessToken: accessToken,
			}
			if refreshToken != "" {
				conn.RefreshToken = &refreshToken
			}
			if expiresIn > 0 {
				expiresAt := time.Now().Add(expiresIn)
				conn.ExpiresAt = &expiresAt
			}

			queries := db.NewQueries(database.DB)
			if err := queries.UpsertUserToken(ctx, conn); err != nil {
				return err
			}

			fmt.Printf("Stored %s credential for user %d (%s)\n", provider, userID, email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "user email (required)")
	cmd.Flags().StringVar(&fullName, "name", "", "user full name")
	cmd.Flags().StringVar(&provider, "provider", "", "provider, asana or google (required)")
	cmd.Flags().StringVar(&accessToken, "token", "", "access token (required)")
	cmd.Flags().StringVar(&refreshToken, "refresh-token", "", "refresh token")
	cmd.Flags().DurationVar(&expiresIn, "expires-in", 0, "credential lifetime, 0 for no expiry")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("provider")
	cmd.MarkFlagRequired("token")
	return cmd
}

func diagnoseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose",
		Short: "Check database and model endpoint connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			failures := 0

			database, err := connect(cfg)
			if err != nil {
				fmt.Printf("database: FAIL (%v)\n", err)
				failures++
			} else {
				defer database.Close()
				if err := database.HealthCheck(cmd.Context()); err != nil {
					fmt.Printf("database: FAIL (%v)\n", err)
					failures++
				} else {
					fmt.Println("database: ok")
					for _, table := range []string{"users", "user_connections", "agent_chat_logs", "ai_pending_actions"} {
						var count int64
						if err := database.GetContext(cmd.Context(), &count,
							fmt.Sprintf("SELECT COUNT(*) FROM %s", table)); err != nil {
							fmt.Printf("table %s: FAIL (%v)\n", table, err)
							failures++
						} else {
							fmt.Printf("table %s: %d rows\n", table, count)
						}
					}

					type tokenCount struct {
						Provider string `db:"provider"`
						Total    int64  `db:"total"`
						Live     int64  `db:"live"`
					}
					var inventory []tokenCount
					err := database.SelectContext(cmd.Context(), &inventory, `
						SELECT provider,
						       COUNT(*) AS total,
						       COUNT(*) FILTER (WHERE expires_at IS NULL OR expires_at >= NOW()) AS live
						FROM user_connections
						GROUP BY provider
						ORDER BY provider`)
					if err != nil {
						fmt.Printf("token inventory: FAIL (%v)\n", err)
						failures++
					} else {
						for _, row := range inventory {
							fmt.Printf("tokens %s: %d total, %d live\n", row.Provider, row.Total, row.Live)
						}
					}
				}
			}

			if err := probeOllama(cmd.Context(), cfg.Ollama.BaseURL); err != nil {
				fmt.Printf("ollama %s: FAIL (%v)\n", cfg.Ollama.BaseURL, err)
				failures++
			} else {
				fmt.Printf("ollama %s: ok (model %s)\n", cfg.Ollama.BaseURL, cfg.Ollama.Model)
			}

			if failures > 0 {
				return fmt.Errorf("%d check(s) failed", failures)
			}
			fmt.Println("All checks passed")
			return nil
		},
	}
}

func probeOllama(ctx context.Context, baseURL string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
