// Package db holds the SQL migrations compiled into the binary.
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// MigrationsDir is the directory inside Migrations that goose reads.
const MigrationsDir = "migrations"

// VersionTable records applied migrations.
const VersionTable = "schema_migrations"

//go:embed migrations/*.sql
var Migrations embed.FS

func prepare(dialect string) error {
	goose.SetBaseFS(Migrations)
	goose.SetTableName(VersionTable)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose: %w", err)
	}
	return nil
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, dialect string) error {
	if err := prepare(dialect); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, MigrationsDir)
}

// Down rolls back the latest applied migration.
func Down(ctx context.Context, db *sql.DB, dialect string) error {
	if err := prepare(dialect); err != nil {
		return err
	}
	return goose.DownContext(ctx, db, MigrationsDir)
}

// Version reports the latest applied migration.
func Version(ctx context.Context, db *sql.DB, dialect string) (int64, error) {
	if err := prepare(dialect); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}
