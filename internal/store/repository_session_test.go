package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/models"
)

func newTestSessionRepo(t *testing.T) (*sessionRepository, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return &sessionRepository{db: db, logger: logger.Nop()}, mock
}

func TestCreateSession(t *testing.T) {
	repo, mock := newTestSessionRepo(t)

	created := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	session := models.Session{ID: "sid", UserID: 1, CreatedAt: created, ExpiresAt: created.Add(24 * time.Hour)}

	mock.ExpectExec("INSERT INTO sessions \\(id,user_id,created_at,expires_at\\)").
		WithArgs("sid", int64(1), "2026-10-01 08:00:00", "2026-10-02 08:00:00").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CreateSession(context.Background(), session))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindSession(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newTestSessionRepo(t)
		created := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

		mock.ExpectQuery("FROM sessions WHERE id = \\$1").
			WithArgs("sid").
			WillReturnRows(sqlmock.NewRows(sessionColumns).AddRow("sid", 1, created, created.Add(time.Hour)))

		session, err := repo.FindSession(context.Background(), "sid")
		require.NoError(t, err)
		assert.Equal(t, int64(1), session.UserID)
		assert.Equal(t, created.Add(time.Hour), session.ExpiresAt)
	})

	t.Run("unknown", func(t *testing.T) {
		repo, mock := newTestSessionRepo(t)

		mock.ExpectQuery("FROM sessions").WillReturnError(sql.ErrNoRows)

		_, err := repo.FindSession(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestTouchSession(t *testing.T) {
	repo, mock := newTestSessionRepo(t)
	expires := time.Date(2026, 10, 2, 9, 30, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE sessions SET expires_at = \\$1 WHERE id = \\$2").
		WithArgs("2026-10-02 09:30:00", "sid").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.TouchSession(context.Background(), "sid", expires), ErrSessionNotFound)
}

func TestDeleteSession_Idempotent(t *testing.T) {
	repo, mock := newTestSessionRepo(t)

	mock.ExpectExec("DELETE FROM sessions WHERE id = \\$1").
		WithArgs("sid").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.DeleteSession(context.Background(), "sid"))
}

func TestAddFlash_UnknownSession(t *testing.T) {
	repo, mock := newTestSessionRepo(t)

	mock.ExpectExec("INSERT INTO session_flashes").
		WithArgs("sid", "success", "Password updated").
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	err := repo.AddFlash(context.Background(), "sid", models.Flash{Kind: models.FlashSuccess, Message: "Password updated"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPopFlashes_OrderedByInsertion(t *testing.T) {
	repo, mock := newTestSessionRepo(t)

	mock.ExpectQuery("DELETE FROM session_flashes WHERE session_id = \\$1 RETURNING id, kind, message").
		WithArgs("sid").
		WillReturnRows(sqlmock.NewRows([]string{"id", "kind", "message"}).
			AddRow(7, "error", "second").
			AddRow(3, "success", "first"))

	flashes, err := repo.PopFlashes(context.Background(), "sid")
	require.NoError(t, err)
	assert.Equal(t, []models.Flash{
		{Kind: models.FlashSuccess, Message: "first"},
		{Kind: models.FlashError, Message: "second"},
	}, flashes)
}

func TestDeleteExpiredSessions(t *testing.T) {
	now := time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)

	t.Run("idle and absolute", func(t *testing.T) {
		repo, mock := newTestSessionRepo(t)

		mock.ExpectExec("DELETE FROM sessions WHERE \\(expires_at <= \\$1 OR created_at <= \\$2\\)").
			WithArgs("2026-10-02 08:00:00", "2026-10-01 08:00:00").
			WillReturnResult(sqlmock.NewResult(0, 3))

		deleted, err := repo.DeleteExpiredSessions(context.Background(), now, 24*time.Hour)
		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no absolute cap", func(t *testing.T) {
		repo, mock := newTestSessionRepo(t)

		mock.ExpectExec("DELETE FROM sessions WHERE \\(expires_at <= \\$1\\)").
			WithArgs("2026-10-02 08:00:00").
			WillReturnResult(sqlmock.NewResult(0, 0))

		deleted, err := repo.DeleteExpiredSessions(context.Background(), now, 0)
		require.NoError(t, err)
		assert.Zero(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
