package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-expense-ledger/internal/config"
	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/internal/service"
	"github.com/MKhiriev/go-expense-ledger/models"
)

// Func-field fakes of the service interfaces. A nil field panics when
// called, so every test states exactly which calls it expects.

type fakeAuthService struct {
	registerFn        func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	authenticateFn    func(ctx context.Context, email, password string) (models.User, error)
	resolveIdentityFn func(ctx context.Context, email string) (int64, bool, error)
	verifyPasswordFn  func(ctx context.Context, userID int64, candidate string) (bool, error)
	changePasswordFn  func(ctx context.Context, userID int64, req models.ChangePasswordRequest) error
	getUserFn         func(ctx context.Context, userID int64) (models.User, error)
}

func (f *fakeAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeAuthService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	return f.authenticateFn(ctx, email, password)
}

func (f *fakeAuthService) ResolveIdentity(ctx context.Context, email string) (int64, bool, error) {
	return f.resolveIdentityFn(ctx, email)
}

func (f *fakeAuthService) VerifyPassword(ctx context.Context, userID int64, candidate string) (bool, error) {
	return f.verifyPasswordFn(ctx, userID, candidate)
}

func (f *fakeAuthService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	return f.changePasswordFn(ctx, userID, req)
}

func (f *fakeAuthService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return f.getUserFn(ctx, userID)
}

type fakeSessionService struct {
	startFn                func(ctx context.Context, userID int64) (string, models.Session, error)
	resolveFn              func(ctx context.Context, token string) (models.Session, models.SessionState, error)
	requireAuthenticatedFn func(ctx context.Context, token string) (models.Session, error)
	logoutFn               func(ctx context.Context, token string) (models.SessionState, error)
	addFlashFn             func(ctx context.Context, sessionID string, flash models.Flash) error
	popFlashesFn           func(ctx context.Context, sessionID string) ([]models.Flash, error)
	purgeExpiredFn         func(ctx context.Context) (int64, error)
}

func (f *fakeSessionService) Start(ctx context.Context, userID int64) (string, models.Session, error) {
	return f.startFn(ctx, userID)
}

func (f *fakeSessionService) Resolve(ctx context.Context, token string) (models.Session, models.SessionState, error) {
	return f.resolveFn(ctx, token)
}

func (f *fakeSessionService) RequireAuthenticated(ctx context.Context, token string) (models.Session, error) {
	return f.requireAuthenticatedFn(ctx, token)
}

func (f *fakeSessionService) Logout(ctx context.Context, token string) (models.SessionState, error) {
	return f.logoutFn(ctx, token)
}

func (f *fakeSessionService) AddFlash(ctx context.Context, sessionID string, flash models.Flash) error {
	return f.addFlashFn(ctx, sessionID, flash)
}

func (f *fakeSessionService) PopFlashes(ctx context.Context, sessionID string) ([]models.Flash, error) {
	return f.popFlashesFn(ctx, sessionID)
}

func (f *fakeSessionService) PurgeExpired(ctx context.Context) (int64, error) {
	return f.purgeExpiredFn(ctx)
}

type fakeExpenseService struct {
	createFn func(ctx context.Context, userID int64, raw models.RawExpense) (int64, error)
	getFn    func(ctx context.Context, userID, expenseID int64) (models.Expense, error)
	listFn   func(ctx context.Context, userID int64, limit int) ([]models.Expense, error)
	updateFn func(ctx context.Context, userID, expenseID int64, raw models.RawExpense) error
	deleteFn func(ctx context.Context, userID, expenseID int64) error
}

func (f *fakeExpenseService) CreateExpense(ctx context.Context, userID int64, raw models.RawExpense) (int64, error) {
	return f.createFn(ctx, userID, raw)
}

func (f *fakeExpenseService) GetExpense(ctx context.Context, userID, expenseID int64) (models.Expense, error) {
	return f.getFn(ctx, userID, expenseID)
}

func (f *fakeExpenseService) ListExpenses(ctx context.Context, userID int64, limit int) ([]models.Expense, error) {
	return f.listFn(ctx, userID, limit)
}

func (f *fakeExpenseService) UpdateExpense(ctx context.Context, userID, expenseID int64, raw models.RawExpense) error {
	return f.updateFn(ctx, userID, expenseID, raw)
}

func (f *fakeExpenseService) DeleteExpense(ctx context.Context, userID, expenseID int64) error {
	return f.deleteFn(ctx, userID, expenseID)
}

type fakeCategoryService struct {
	createFn func(ctx context.Context, userID int64, req models.CategoryRequest) (int64, error)
	listFn   func(ctx context.Context, userID int64) ([]models.Category, error)
	renameFn func(ctx context.Context, userID, categoryID int64, req models.CategoryRequest) error
	deleteFn func(ctx context.Context, userID, categoryID int64) error
}

func (f *fakeCategoryService) CreateCategory(ctx context.Context, userID int64, req models.CategoryRequest) (int64, error) {
	return f.createFn(ctx, userID, req)
}

func (f *fakeCategoryService) ListCategories(ctx context.Context, userID int64) ([]models.Category, error) {
	return f.listFn(ctx, userID)
}

func (f *fakeCategoryService) RenameCategory(ctx context.Context, userID, categoryID int64, req models.CategoryRequest) error {
	return f.renameFn(ctx, userID, categoryID, req)
}

func (f *fakeCategoryService) DeleteCategory(ctx context.Context, userID, categoryID int64) error {
	return f.deleteFn(ctx, userID, categoryID)
}

type fakeDashboardService struct {
	getDashboardFn func(ctx context.Context, userID int64) (models.Dashboard, error)
}

func (f *fakeDashboardService) GetDashboard(ctx context.Context, userID int64) (models.Dashboard, error) {
	return f.getDashboardFn(ctx, userID)
}

type fakeAppInfoService struct {
	version  string
	healthFn func(ctx context.Context) (models.Health, error)
}

func (f *fakeAppInfoService) GetAppVersion(_ context.Context) string {
	return f.version
}

func (f *fakeAppInfoService) Health(ctx context.Context) (models.Health, error) {
	return f.healthFn(ctx)
}

// ---- Helpers ----

const (
	testCookieName = "ledger_session"
	testToken      = "valid-token"
	testUserID     = int64(42)
	testSessionID  = "session-1"
)

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			CookieName:         testCookieName,
			SessionMaxLifetime: 24 * time.Hour,
		},
		Server: config.Server{RequestTimeout: 5 * time.Second},
	}
}

func newTestHandler(t *testing.T, services *service.Services) *Handler {
	t.Helper()
	if services.SessionService == nil {
		services.SessionService = authenticatedSessions()
	}
	if services.AppInfoService == nil {
		services.AppInfoService = &fakeAppInfoService{version: "test-version"}
	}
	return NewHandler(services, testConfig(), logger.Nop())
}

// authenticatedSessions accepts testToken only.
func authenticatedSessions() *fakeSessionService {
	return &fakeSessionService{
		requireAuthenticatedFn: func(_ context.Context, token string) (models.Session, error) {
			if token != testToken {
				return models.Session{}, service.ErrUnauthorized
			}
			return models.Session{ID: testSessionID, UserID: testUserID}, nil
		},
	}
}

func withSessionCookie(r *http.Request) *http.Request {
	r.AddCookie(&http.Cookie{Name: testCookieName, Value: testToken})
	return r
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
