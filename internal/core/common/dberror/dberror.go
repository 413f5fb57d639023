// Package dberror classifies storage errors independently of the driver.
package dberror

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the SQLSTATE postgres reports for unique_violation.
const uniqueViolation = "23505"

const sqliteUnique = "UNIQUE constraint failed: "

// IsUniqueViolation reports whether err was caused by a unique constraint.
// It recognises gorm's translated error, raw postgres errors and sqlite's
// message for untranslated connections.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ConstraintName returns the violated constraint for postgres errors.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// ViolatesUnique reports whether err broke the unique constraint named
// constraint. Postgres names the constraint; sqlite only names the
// table.column, which is matched against column.
func ViolatesUnique(err error, constraint, column string) bool {
	if !IsUniqueViolation(err) {
		return false
	}
	if name := ConstraintName(err); name != "" {
		return name == constraint
	}
	msg := err.Error()
	i := strings.Index(msg, sqliteUnique)
	if i < 0 {
		return false
	}
	for _, col := range strings.Split(msg[i+len(sqliteUnique):], ", ") {
		if f := strings.Fields(col); len(f) > 0 && f[0] == column {
			return true
		}
	}
	return false
}
