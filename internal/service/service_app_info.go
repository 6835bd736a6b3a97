package service

import (
	"context"

	"github.com/MKhiriev/go-expense-ledger/internal/config"
	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/internal/store"
	"github.com/MKhiriev/go-expense-ledger/models"
)

const (
	healthStatusOK       = "ok"
	healthStatusDegraded = "degraded"
	databaseUp           = "up"
	databaseDown         = "down"
)

type appInfoService struct {
	appVersion string
	pinger     store.Pinger

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, pinger store.Pinger, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		pinger:     pinger,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// Health pings the database. A failed ping is reported in the body and as
// the returned error.
func (s *appInfoService) Health(ctx context.Context) (models.Health, error) {
	health := models.Health{
		Status:   healthStatusOK,
		Version:  s.appVersion,
		Database: databaseUp,
	}

	if err := s.pinger.PingContext(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*appInfoService.Health").Msg("database ping failed")
		health.Status = healthStatusDegraded
		health.Database = databaseDown
		return health, err
	}

	return health, nil
}
