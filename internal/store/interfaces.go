package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-expense-ledger/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
}

// CategoryRepository persists categories. Every method is scoped by owner.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category models.Category) (int64, error)
	FindCategory(ctx context.Context, userID, categoryID int64) (models.Category, error)
	FindCategoryByName(ctx context.Context, userID int64, name string) (models.Category, error)
	ListCategories(ctx context.Context, userID int64) ([]models.Category, error)
	RenameCategory(ctx context.Context, category models.Category) error
	DeleteCategory(ctx context.Context, userID, categoryID int64) error
}

// ExpenseRepository persists expenses. Every method is scoped by owner.
type ExpenseRepository interface {
	CreateExpense(ctx context.Context, userID int64, expense models.CanonicalExpense) (int64, error)
	GetExpense(ctx context.Context, userID, expenseID int64) (models.Expense, error)
	ListExpenses(ctx context.Context, userID int64, limit uint64) ([]models.Expense, error)
	UpdateExpense(ctx context.Context, userID, expenseID int64, expense models.CanonicalExpense) error
	DeleteExpense(ctx context.Context, userID, expenseID int64) error
}

// SessionRepository persists authenticated sessions and their flashes.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) error
	FindSession(ctx context.Context, sessionID string) (models.Session, error)
	TouchSession(ctx context.Context, sessionID string, expiresAt time.Time) error
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time, maxLifetime time.Duration) (int64, error)
	AddFlash(ctx context.Context, sessionID string, flash models.Flash) error
	PopFlashes(ctx context.Context, sessionID string) ([]models.Flash, error)
}

// DashboardRepository runs the read-only aggregate queries.
type DashboardRepository interface {
	// SumExpenses sums the owner's amounts, limited to period when non-nil.
	SumExpenses(ctx context.Context, userID int64, period *models.MonthRange) (decimal.Decimal, error)
	CountCategories(ctx context.Context, userID int64) (int64, error)
	CategoryTotals(ctx context.Context, userID int64) ([]models.CategoryTotal, error)
}

// Pinger reports storage liveness.
type Pinger interface {
	PingContext(ctx context.Context) error
}
