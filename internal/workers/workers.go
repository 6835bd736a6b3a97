package workers

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-expense-ledger/internal/config"
	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/internal/service"
)

type Workers struct {
	workers []Worker
}

func NewWorkers(services *service.Services, cfg config.App, logger *logger.Logger) *Workers {
	logger.Info().Msg("creating workers...")

	ws := &Workers{}
	if cfg.SessionSweepInterval > 0 {
		ws.workers = append(ws.workers, NewSessionSweeper(services.SessionService, cfg.SessionSweepInterval, logger))
	}

	return ws
}

func (w *Workers) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}

	return g.Wait()
}
