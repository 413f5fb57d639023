package cmd

import (
	"context"

	"github.com/kkpa/jbh/db"
	"github.com/kkpa/jbh/pkg/logger"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run the embedded db migrations",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	lg := logger.LoggerWrapper()

	sqlDB, err := goose.OpenDBWithDriver("pgx", cfg.Database.GetDSN())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if migrateRollback {
		if err := db.Down(ctx, sqlDB, "postgres"); err != nil {
			return err
		}
	} else if err := db.Up(ctx, sqlDB, "postgres"); err != nil {
		return err
	}

	version, err := db.Version(ctx, sqlDB, "postgres")
	if err != nil {
		return err
	}
	lg.Info("migrations applied", "version", version, "rollback", migrateRollback)
	return nil
}
