// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

// Package cmd implements the bidaro command surface.
//
// Every command builds the component graph through the shared [newApp]
// helper, runs [app.App.Bootstrap] so a stored credential auto-resumes the
// session, and tears the graph down when done. Human-readable output goes to
// stdout; structured logs go to stderr.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/minhtranvo/bidaro/internal/app"
	"github.com/minhtranvo/bidaro/internal/platform/config"
	"github.com/minhtranvo/bidaro/internal/platform/constants"
)

var debugLogging bool

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "bidaro",
	Short: "Headless client for the Bidaro storefront",
	Long: `bidaro is a command-line client for the Bidaro billiard-cue storefront.

It drives the same session and cart protocol as the web storefront: login
persists a credential pair locally, every later invocation resumes the
session from it, and cart mutations always re-fetch the server snapshot.

Environment Variables:
  BIDARO_API_BASE_URL       Storefront API root (default: http://localhost:3000/api)
  BIDARO_CREDENTIALS_PATH   Credential file override
  BIDARO_REDIS_URL          Use a Redis-backed credential store instead of a file
  BIDARO_DEBUG              Enable debug logging`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Enable debug logging")
}

// commandContext returns a context cancelled by SIGINT/SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// newLogger builds the stderr JSON logger shared by all commands.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	if debugLogging || cfg.Debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))

	slog.SetDefault(logger)
	return logger
}

// newApp loads configuration, wires the component graph, and bootstraps the
// session. The returned cleanup must run when the command finishes.
func newApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := newLogger(cfg)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if err := application.Bootstrap(ctx); err != nil {
		application.Close()
		return nil, nil, err
	}

	return application, application.Close, nil
}

// requireUser returns the authenticated user or a friendly login hint.
func requireUser(application *app.App) (string, error) {
	user := application.Session.User()
	if user == nil {
		return "", fmt.Errorf("not logged in: run 'bidaro login' first")
	}
	return user.UserID, nil
}
