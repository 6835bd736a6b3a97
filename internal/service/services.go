package service

import (
	"github.com/MKhiriev/go-expense-ledger/internal/config"
	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/internal/store"
)

type Services struct {
	AuthService      AuthService
	SessionService   SessionService
	ExpenseService   ExpenseService
	CategoryService  CategoryService
	DashboardService DashboardService
	AppInfoService   AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, storages, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, cfg.App, logger),
		SessionService:   NewSessionService(storages.SessionRepository, cfg.App, logger),
		ExpenseService:   NewExpenseService(storages.ExpenseRepository, storages.CategoryRepository, cfg.App, logger),
		CategoryService:  NewCategoryService(storages.CategoryRepository, logger),
		DashboardService: NewDashboardService(storages.DashboardRepository, storages.ExpenseRepository, logger),
		AppInfoService:   appInfoService,
	}, nil
}
