package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/spatialdatahub/spatialdatahub.com/internal/api"
	"github.com/spatialdatahub/spatialdatahub.com/internal/config"
	"github.com/spatialdatahub/spatialdatahub.com/internal/crypto"
	"github.com/spatialdatahub/spatialdatahub.com/internal/infrastructure/migration"
	"github.com/spatialdatahub/spatialdatahub.com/internal/infrastructure/storage/postgres"
	"github.com/spatialdatahub/spatialdatahub.com/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "spatialdatahub",
	Short:         "Spatial Data Hub - research dataset catalogue server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg := config.MustLoad()
		log := logger.New(cfg.Env)

		enc, err := crypto.NewEncryptor(cfg.Crypto.Key)
		if err != nil {
			return fmt.Errorf("load crypto key: %w", err)
		}

		storage, err := postgres.New(cfg)
		if err != nil {
			return fmt.Errorf("connect storage: %w", err)
		}
		defer storage.Close()

		mux := api.New(storage, enc, log)

		log.Info("starting server", "address", cfg.Server.RunAddress, "env", cfg.Env)
		return http.ListenAndServe(cfg.Server.RunAddress, mux)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg := config.MustLoad()
		log := logger.New(cfg.Env)

		mg := migration.NewMigration(cfg, migration.DefaultEngine)
		if err := mg.Up(); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		log.Info("migrations applied")
		return nil
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
