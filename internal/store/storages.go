package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-expense-ledger/internal/config"
	"github.com/MKhiriev/go-expense-ledger/internal/logger"
)

// Storages bundles every repository over a single migrated connection.
type Storages struct {
	UserRepository      UserRepository
	CategoryRepository  CategoryRepository
	ExpenseRepository   ExpenseRepository
	SessionRepository   SessionRepository
	DashboardRepository DashboardRepository

	db *DB
}

// NewStorages connects to the configured engine, applies migrations and
// builds the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.DB.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	return newStoragesFromDB(db, log), nil
}

func newStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:      NewUserRepository(db, log),
		CategoryRepository:  NewCategoryRepository(db, log),
		ExpenseRepository:   NewExpenseRepository(db, log),
		SessionRepository:   NewSessionRepository(db, log),
		DashboardRepository: NewDashboardRepository(db, log),
		db:                  db,
	}
}

// PingContext checks the underlying connection.
func (s *Storages) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (s *Storages) Close() error {
	return s.db.Close()
}
