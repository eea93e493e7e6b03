package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hiremeplz/hiremeplz/internal/config"
	"github.com/hiremeplz/hiremeplz/internal/server"
	"github.com/hiremeplz/hiremeplz/pkg/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start the HTTP server that exposes auth, onboarding chat, profile, and analysis endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address, overrides HMP_ADDR")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("HMP_DATABASE_URL is required")
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("HMP_GEMINI_API_KEY is required")
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logger.New(os.Stdout, level)

	srv, err := server.New(context.Background(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
