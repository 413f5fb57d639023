package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kkpa/jbh/pkg/logger"
	"github.com/spf13/cobra"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample categories and accounts for development and testing purposes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to init db: %w", err)
		}
		defer db.Close()

		return seed(cmd.Context(), db, clearData)
	},
}

type seedCategory struct {
	Name string `db:"name"`
	Type string `db:"type"`
}

type seedAccount struct {
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

var sampleCategories = []seedCategory{
	{"Food", "E"},
	{"Rent", "E"},
	{"Transport", "E"},
	{"Leisure", "E"},
	{"Salary", "I"},
	{"Bonus", "I"},
}

var sampleAccounts = []seedAccount{
	{"Checking", day(2020, time.January, 1), day(2020, time.January, 1)},
	{"Savings", day(2020, time.June, 15), day(2021, time.March, 2)},
	{"Credit card", day(2022, time.September, 30), day(2022, time.September, 30)},
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// seed inserts the sample rows in one transaction. Categories already
// present by name are skipped so reruns are harmless; accounts are only
// inserted into an empty table.
func seed(ctx context.Context, db *sqlx.DB, clear bool) error {
	lg := logger.LoggerWrapper()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if clear {
		for _, table := range []string{"category", "accounts"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		lg.Info("cleared existing data")
	}

	for _, c := range sampleCategories {
		res, err := tx.NamedExecContext(ctx,
			`INSERT INTO category (name, type) VALUES (:name, :type) ON CONFLICT (name) DO NOTHING`, c)
		if err != nil {
			return fmt.Errorf("failed to insert category %s: %w", c.Name, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			lg.Info("seeded category", "name", c.Name)
		}
	}

	var accountCount int
	if err := tx.GetContext(ctx, &accountCount, "SELECT COUNT(*) FROM accounts"); err != nil {
		return err
	}
	if accountCount == 0 {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO accounts (description, created_at, updated_at) VALUES (:description, :created_at, :updated_at)`,
			sampleAccounts); err != nil {
			return fmt.Errorf("failed to insert accounts: %w", err)
		}
		lg.Info("seeded accounts", "count", len(sampleAccounts))
	}

	return tx.Commit()
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}
