package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells [DB.retry] whether a failed statement may be
// attempted again.
type ErrorClassification int

const (
	// NonRetryable is the default for constraint violations, bad input and
	// anything unrecognised.
	NonRetryable ErrorClassification = iota
	// Retryable covers transient failures such as a dropped connection or a
	// deadlock rollback.
	Retryable
)

// retryablePgCodes lists the SQLSTATEs worth retrying: connection exceptions
// (class 08), transaction rollbacks (class 40) and 57P03.
var retryablePgCodes = map[string]struct{}{
	pgerrcode.ConnectionException:     {},
	pgerrcode.ConnectionDoesNotExist:  {},
	pgerrcode.ConnectionFailure:       {},
	pgerrcode.TransactionRollback:     {},
	pgerrcode.SerializationFailure:    {},
	pgerrcode.DeadlockDetected:        {},
	pgerrcode.CannotConnectNow:        {},
}

// PostgresErrorClassifier implements [ErrorClassificator] for pgx errors.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier].
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Errors that are not
// *pgconn.PgError are never retried.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if _, ok := retryablePgCodes[postgresErrorCode(err)]; ok {
		return Retryable
	}
	return NonRetryable
}

// IsUniqueViolation reports whether err carries SQLSTATE 23505, raised by the
// users.email and categories (user_id, name) constraints.
func (c *PostgresErrorClassifier) IsUniqueViolation(err error) bool {
	return postgresErrorCode(err) == pgerrcode.UniqueViolation
}

// IsForeignKeyViolation reports whether err carries SQLSTATE 23503, raised
// when an expense references a category that no longer exists.
func (c *PostgresErrorClassifier) IsForeignKeyViolation(err error) bool {
	return postgresErrorCode(err) == pgerrcode.ForeignKeyViolation
}

func postgresErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
