package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/models"
)

// sessionRepository stores authenticated sessions in "sessions" and their
// one-shot messages in "session_flashes".
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository].
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateSessionQuery(r.db.builder(), session)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if r.db.isForeignKeyViolation(err) {
			return ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Int64("user_id", session.UserID).Msg("error inserting session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sessionRepository) FindSession(ctx context.Context, sessionID string) (models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindSessionQuery(r.db.builder(), sessionID)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.FindSession").Msg("failed to build query")
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var session models.Session
	err = r.db.retry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).
			Scan(&session.ID, &session.UserID, &session.CreatedAt, &session.ExpiresAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.FindSession").Msg("error finding session")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	session.CreatedAt = session.CreatedAt.UTC()
	session.ExpiresAt = session.ExpiresAt.UTC()
	return session, nil
}

// TouchSession moves the idle deadline of a live session.
func (r *sessionRepository) TouchSession(ctx context.Context, sessionID string, expiresAt time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := buildTouchSessionQuery(r.db.builder(), sessionID, expiresAt)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.TouchSession").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.TouchSession").Msg("error touching session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(res, ErrSessionNotFound)
}

// DeleteSession removes a session and, by cascade, its flashes. Deleting a
// missing session is not an error.
func (r *sessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteSessionQuery(r.db.builder(), sessionID)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSession").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSession").Msg("error deleting session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteExpiredSessions removes every session that can no longer be resolved
// and reports how many were deleted.
func (r *sessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time, maxLifetime time.Duration) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteExpiredSessionsQuery(r.db.builder(), now, maxLifetime)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteExpiredSessions").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteExpiredSessions").Msg("error deleting expired sessions")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return deleted, nil
}

func (r *sessionRepository) AddFlash(ctx context.Context, sessionID string, flash models.Flash) error {
	log := logger.FromContext(ctx)

	query, args, err := buildAddFlashQuery(r.db.builder(), sessionID, flash)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.AddFlash").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if r.db.isForeignKeyViolation(err) {
			return ErrSessionNotFound
		}
		log.Err(err).Str("func", "*sessionRepository.AddFlash").Msg("error adding flash")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// PopFlashes deletes and returns the session's flashes in insertion order.
func (r *sessionRepository) PopFlashes(ctx context.Context, sessionID string) ([]models.Flash, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildPopFlashesQuery(r.db.builder(), sessionID)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.PopFlashes").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.PopFlashes").Msg("error popping flashes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	type poppedFlash struct {
		id    int64
		flash models.Flash
	}

	popped := make([]poppedFlash, 0)
	for rows.Next() {
		var (
			p    poppedFlash
			kind string
		)
		if err = rows.Scan(&p.id, &kind, &p.flash.Message); err != nil {
			log.Err(err).Str("func", "*sessionRepository.PopFlashes").Msg("error scanning flash")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		p.flash.Kind = models.FlashKind(kind)
		popped = append(popped, p)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*sessionRepository.PopFlashes").Msg("error iterating flashes")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	// RETURNING order is unspecified
	sort.Slice(popped, func(i, j int) bool { return popped[i].id < popped[j].id })

	flashes := make([]models.Flash, 0, len(popped))
	for _, p := range popped {
		flashes = append(flashes, p.flash)
	}
	return flashes, nil
}
