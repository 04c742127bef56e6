package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/codr1/storefront/internal/db"
)

var dbPath string

var migrateCmd = &cobra.Command{
	Use:       "migrate <up|down|version>",
	Short:     "Run the embedded theme database migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "version"},
	RunE: func(cmd *cobra.Command, args []string) error {
		absDB, err := filepath.Abs(dbPath)
		if err != nil {
			return fmt.Errorf("invalid database path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absDB), 0755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}

		sqlDB, err := sql.Open("sqlite3", absDB)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		m, err := db.NewMigrator(sqlDB)
		if err != nil {
			sqlDB.Close()
			return err
		}
		defer m.Close()

		logger := log.With().Str("db", absDB).Str("command", args[0]).Logger()
		switch args[0] {
		case "up":
			if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migration up failed: %w", err)
			}
		case "down":
			if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migration down failed: %w", err)
			}
		case "version":
			version, dirty, err := m.Version()
			if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
				return fmt.Errorf("get version failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Version: %d, Dirty: %v\n", version, dirty)
			return nil
		}
		logger.Info().Msg("Migration completed")
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&dbPath, "db", "data/storefront.db", "path to the SQLite database")
	rootCmd.AddCommand(migrateCmd)
}
