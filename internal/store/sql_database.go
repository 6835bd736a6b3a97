package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/migrations"
)

// ErrorClassificator inspects driver errors for a concrete engine.
type ErrorClassificator interface {
	// Classify reports whether a failed operation may be retried.
	Classify(err error) ErrorClassification
	// IsUniqueViolation reports a unique constraint failure.
	IsUniqueViolation(err error) bool
	// IsForeignKeyViolation reports a foreign key constraint failure.
	IsForeignKeyViolation(err error) bool
}

// DB wraps *sql.DB with the engine-specific pieces every repository needs:
// the squirrel placeholder format, the driver error classifier and the goose
// dialect used for migrations.
type DB struct {
	*sql.DB
	dialect            string
	placeholder        sq.PlaceholderFormat
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	retryAttempts int
	retryDelay    time.Duration
}

const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = 50 * time.Millisecond
)

// Migrate applies all pending migrations for the engine.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Dialect returns the goose dialect name of the engine.
func (db *DB) Dialect() string {
	return db.dialect
}

// builder returns a squirrel statement builder with the engine placeholders.
func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.placeholder)
}

// retry runs op until it succeeds, fails with a non-retryable error, or the
// attempts are exhausted. Only transient engine errors (lost connections,
// serialization failures) are retried.
func (db *DB) retry(ctx context.Context, op func() error) error {
	attempts := db.retryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		err = op()
		if err == nil || errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		logger.FromContext(ctx).Warn().Err(err).Int("attempt", i+1).Msg("retryable database error")

		select {
		case <-ctx.Done():
			return fmt.Errorf("retry aborted: %w", errors.Join(err, ctx.Err()))
		case <-time.After(db.retryDelay * time.Duration(i+1)):
		}
	}

	return err
}

func (db *DB) isUniqueViolation(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.IsUniqueViolation(err)
}

func (db *DB) isForeignKeyViolation(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.IsForeignKeyViolation(err)
}
