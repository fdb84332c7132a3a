package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/amekhanov/taskvault/internal/logger"
	"github.com/amekhanov/taskvault/migrations"
)

// DB wraps *sql.DB together with the pieces that differ between database
// backends: the squirrel placeholder format, the driver name used to pick
// the migration dialect, and the driver-specific error classifier.
type DB struct {
	*sql.DB
	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies all pending schema migrations for this database's driver.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// ErrorClassification is the result type returned by
// [ErrorClassificator.Classify]. It indicates whether a failed database
// operation should be retried or abandoned.
type ErrorClassification int

const (
	// NonRetryable indicates that the failed operation should not be retried.
	// This is the default classification for unrecognised errors, constraint
	// violations, syntax errors, and data exceptions.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the failed operation may succeed if attempted
	// again (e.g. after a transient connection loss or a deadlock rollback).
	Retryable
)

// ErrorClassificator maps driver-level errors to storage semantics so that
// repositories stay driver-agnostic.
type ErrorClassificator interface {
	// Classify reports whether err is worth retrying.
	Classify(err error) ErrorClassification

	// IsUniqueViolation reports whether err is a unique-constraint
	// violation (e.g. a duplicate username).
	IsUniqueViolation(err error) bool
}
