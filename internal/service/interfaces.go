package service

import (
	"context"

	"github.com/MKhiriev/go-expense-ledger/models"
)

// AuthService is the credential store: account creation, password checks
// and password changes.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	// ResolveIdentity reports the user id registered for email, if any.
	ResolveIdentity(ctx context.Context, email string) (int64, bool, error)
	VerifyPassword(ctx context.Context, userID int64, candidate string) (bool, error)
	ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error
	GetUser(ctx context.Context, userID int64) (models.User, error)
}

// SessionService is the session gate.
type SessionService interface {
	// Start binds a fresh session to an authenticated user and returns the
	// signed cookie value.
	Start(ctx context.Context, userID int64) (string, models.Session, error)
	// Resolve classifies a cookie value, sliding the expiry of live sessions.
	Resolve(ctx context.Context, token string) (models.Session, models.SessionState, error)
	// RequireAuthenticated is Resolve that fails with ErrUnauthorized for
	// every state but Authenticated.
	RequireAuthenticated(ctx context.Context, token string) (models.Session, error)
	// Logout destroys the session behind token. The returned state is
	// LoggedOut when a signed token was invalidated, Anonymous otherwise.
	Logout(ctx context.Context, token string) (models.SessionState, error)
	AddFlash(ctx context.Context, sessionID string, flash models.Flash) error
	PopFlashes(ctx context.Context, sessionID string) ([]models.Flash, error)
	// PurgeExpired deletes sessions that can no longer be resolved.
	PurgeExpired(ctx context.Context) (int64, error)
}

// ExpenseService is the expense half of the ledger. Every method is scoped
// by the owner id.
type ExpenseService interface {
	CreateExpense(ctx context.Context, userID int64, raw models.RawExpense) (int64, error)
	GetExpense(ctx context.Context, userID, expenseID int64) (models.Expense, error)
	ListExpenses(ctx context.Context, userID int64, limit int) ([]models.Expense, error)
	UpdateExpense(ctx context.Context, userID, expenseID int64, raw models.RawExpense) error
	DeleteExpense(ctx context.Context, userID, expenseID int64) error
}

// CategoryService is the category half of the ledger.
type CategoryService interface {
	CreateCategory(ctx context.Context, userID int64, req models.CategoryRequest) (int64, error)
	ListCategories(ctx context.Context, userID int64) ([]models.Category, error)
	RenameCategory(ctx context.Context, userID, categoryID int64, req models.CategoryRequest) error
	DeleteCategory(ctx context.Context, userID, categoryID int64) error
}

// DashboardService aggregates the ledger per request.
type DashboardService interface {
	GetDashboard(ctx context.Context, userID int64) (models.Dashboard, error)
}

// AppInfoService reports build and storage health.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	Health(ctx context.Context) (models.Health, error)
}
