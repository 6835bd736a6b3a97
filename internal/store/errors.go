package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a user with the same email is
	// already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a user lookup matches no row.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrCategoryAlreadyExists is returned when the owner already has a
	// category with the same name.
	ErrCategoryAlreadyExists = errors.New("category already exists")

	// ErrCategoryNotFound is returned when no category with the given id
	// exists for the owner.
	ErrCategoryNotFound = errors.New("category was not found")

	// ErrExpenseNotFound is returned when no expense with the given id exists
	// for the owner.
	ErrExpenseNotFound = errors.New("expense was not found")

	// ErrSessionNotFound is returned when a session id has no stored row.
	ErrSessionNotFound = errors.New("session was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrUnknownDriver is returned by [NewStorages] for an unsupported
	// database driver name.
	ErrUnknownDriver = errors.New("unknown database driver")
)
