package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-expense-ledger/internal/logger"
)

const defaultSweepInterval = 10 * time.Minute

// SessionSweeper periodically deletes expired sessions. Expiry is already
// enforced on every lookup, so a failed sweep is logged and retried on the
// next tick.
type SessionSweeper struct {
	sessions SessionPurger
	interval time.Duration

	logger *logger.Logger
}

func NewSessionSweeper(sessions SessionPurger, interval time.Duration, logger *logger.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

func (s *SessionSweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug().Str("func", "*SessionSweeper.Run").Msg("session sweeper stopped")
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	deleted, err := s.sessions.PurgeExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Err(err).Str("func", "*SessionSweeper.sweep").Msg("error purging expired sessions")
		}
		return
	}

	if deleted > 0 {
		s.logger.Info().Str("func", "*SessionSweeper.sweep").Int64("deleted", deleted).Msg("expired sessions purged")
	}
}
