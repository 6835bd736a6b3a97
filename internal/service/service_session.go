package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-expense-ledger/internal/config"
	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/internal/store"
	"github.com/MKhiriev/go-expense-ledger/internal/utils"
	"github.com/MKhiriev/go-expense-ledger/models"
)

// sessionService implements SessionService over a SessionRepository.
// Only authenticated sessions are persisted; a cookie that resolves to no
// row is anonymous. Expiry is evaluated lazily on every lookup.
type sessionService struct {
	sessionRepository store.SessionRepository

	signKey     string
	issuer      string
	idleTimeout time.Duration
	maxLifetime time.Duration

	now func() time.Time

	logger *logger.Logger
}

// NewSessionService constructs a SessionService from the session settings
// in cfg.
func NewSessionService(sessionRepository store.SessionRepository, cfg config.App, logger *logger.Logger) SessionService {
	idle := cfg.SessionIdleTimeout
	if idle <= 0 {
		idle = config.DefaultSessionIdleTimeout
	}

	return &sessionService{
		sessionRepository: sessionRepository,
		signKey:           cfg.SessionSecret,
		issuer:            cfg.SessionIssuer,
		idleTimeout:       idle,
		maxLifetime:       cfg.SessionMaxLifetime,
		now:               time.Now,
		logger:            logger,
	}
}

func (s *sessionService) Start(ctx context.Context, userID int64) (string, models.Session, error) {
	log := logger.FromContext(ctx)

	now := s.now().UTC().Truncate(time.Second)
	session := models.Session{
		ID:        utils.NewSessionID(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.idleTimeout),
	}

	token, err := utils.SignSessionToken(s.issuer, session.ID, s.maxLifetime, s.signKey)
	if err != nil {
		log.Err(err).Str("func", "*sessionService.Start").Msg("error signing session token")
		return "", models.Session{}, fmt.Errorf("%w: %w", ErrSessionCreationFailed, err)
	}

	if err = s.sessionRepository.CreateSession(context.WithoutCancel(ctx), session); err != nil {
		log.Err(err).Str("func", "*sessionService.Start").Int64("user_id", userID).Msg("error storing session")
		return "", models.Session{}, fmt.Errorf("%w: %w", ErrSessionCreationFailed, err)
	}

	log.Debug().Int64("user_id", userID).Msg("session started")
	return token, session, nil
}

func (s *sessionService) Resolve(ctx context.Context, token string) (models.Session, models.SessionState, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.Session{}, models.Anonymous, nil
	}

	sessionID, err := utils.ParseSessionToken(token, s.signKey, s.issuer)
	if err != nil {
		log.Debug().Err(err).Str("func", "*sessionService.Resolve").Msg("rejected session cookie")
		return models.Session{}, models.Anonymous, nil
	}

	session, err := s.sessionRepository.FindSession(ctx, sessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.Session{}, models.Anonymous, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*sessionService.Resolve").Msg("error loading session")
		return models.Session{}, models.Anonymous, err
	}

	now := s.now().UTC().Truncate(time.Second)
	if session.ExpiredAt(now, s.maxLifetime) {
		if err = s.sessionRepository.DeleteSession(context.WithoutCancel(ctx), session.ID); err != nil {
			log.Err(err).Str("func", "*sessionService.Resolve").Msg("error deleting expired session")
		}
		return models.Session{}, models.Expired, nil
	}

	expiresAt := now.Add(s.idleTimeout)
	err = s.sessionRepository.TouchSession(context.WithoutCancel(ctx), session.ID, expiresAt)
	if errors.Is(err, store.ErrSessionNotFound) {
		// logged out concurrently
		return models.Session{}, models.Anonymous, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*sessionService.Resolve").Msg("error extending session")
		return models.Session{}, models.Anonymous, err
	}
	session.ExpiresAt = expiresAt

	return session, models.Authenticated, nil
}

func (s *sessionService) RequireAuthenticated(ctx context.Context, token string) (models.Session, error) {
	session, state, err := s.Resolve(ctx, token)
	if err != nil {
		return models.Session{}, err
	}
	if state != models.Authenticated {
		return models.Session{}, ErrUnauthorized
	}

	return session, nil
}

// Logout destroys the session behind token and reports LoggedOut. Unknown
// or forged tokens are ignored and reported as Anonymous.
func (s *sessionService) Logout(ctx context.Context, token string) (models.SessionState, error) {
	if token == "" {
		return models.Anonymous, nil
	}

	sessionID, err := utils.ParseSessionToken(token, s.signKey, s.issuer)
	if err != nil {
		return models.Anonymous, nil
	}

	if err = s.sessionRepository.DeleteSession(context.WithoutCancel(ctx), sessionID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionService.Logout").Msg("error deleting session")
		return models.Anonymous, fmt.Errorf("error deleting session: %w", err)
	}

	return models.LoggedOut, nil
}

func (s *sessionService) AddFlash(ctx context.Context, sessionID string, flash models.Flash) error {
	if err := s.sessionRepository.AddFlash(context.WithoutCancel(ctx), sessionID, flash); err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return ErrUnauthorized
		}
		return fmt.Errorf("error adding flash: %w", err)
	}
	return nil
}

func (s *sessionService) PopFlashes(ctx context.Context, sessionID string) ([]models.Flash, error) {
	flashes, err := s.sessionRepository.PopFlashes(context.WithoutCancel(ctx), sessionID)
	if err != nil {
		return nil, fmt.Errorf("error popping flashes: %w", err)
	}
	return flashes, nil
}

func (s *sessionService) PurgeExpired(ctx context.Context) (int64, error) {
	deleted, err := s.sessionRepository.DeleteExpiredSessions(ctx, s.now().UTC(), s.maxLifetime)
	if err != nil {
		return 0, fmt.Errorf("error purging expired sessions: %w", err)
	}
	return deleted, nil
}
