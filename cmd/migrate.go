package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizly/internal/config"
	"github.com/abhisek/quizly/internal/logger"
	"github.com/abhisek/quizly/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log, err := logger.New(cfg.Env)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		db, err := store.Open(cfg.Postgres, log)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		if err := store.Migrate(db); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		log.Info("migrations applied", "database", cfg.Postgres.Database)
		return nil
	},
}
