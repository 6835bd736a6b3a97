package http

import (
	"time"

	"github.com/MKhiriev/go-expense-ledger/internal/config"
	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/internal/service"
	"github.com/MKhiriev/go-expense-ledger/internal/utils"
)

type Handler struct {
	services *service.Services

	cookie         cookieSettings
	requestTimeout time.Duration
	traceIDs       *utils.UUIDGenerator
	metrics        *metrics

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}

	return &Handler{
		services:       services,
		cookie:         newCookieSettings(cfg.App),
		requestTimeout: timeout,
		traceIDs:       utils.NewUUIDGenerator(),
		metrics:        newMetrics(),
		logger:         logger,
	}
}
