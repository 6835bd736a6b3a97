package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/models"
)

var expenseRowColumns = []string{"id", "user_id", "category_id", "category_name", "description", "amount", "currency", "spent_at", "created_at"}

func newTestExpenseRepo(t *testing.T) (*expenseRepository, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return &expenseRepository{db: db, logger: logger.Nop()}, mock
}

func TestCreateExpense(t *testing.T) {
	expense := models.CanonicalExpense{
		Amount:   decimal.RequireFromString("9.99"),
		Currency: "GBR",
		SpentAt:  "2026-10-01 08:00:00",
	}

	t.Run("success", func(t *testing.T) {
		repo, mock := newTestExpenseRepo(t)

		mock.ExpectQuery("INSERT INTO expenses").
			WithArgs(int64(1), nil, nil, "9.99", "GBR", "2026-10-01 08:00:00").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		id, err := repo.CreateExpense(context.Background(), 1, expense)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("dangling category", func(t *testing.T) {
		repo, mock := newTestExpenseRepo(t)

		mock.ExpectQuery("INSERT INTO expenses").
			WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

		_, err := repo.CreateExpense(context.Background(), 1, expense)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestGetExpense(t *testing.T) {
	spent := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock := newTestExpenseRepo(t)

		mock.ExpectQuery("FROM expenses e LEFT JOIN categories c ON c.id = e.category_id WHERE e.id = \\$1 AND e.user_id = \\$2").
			WithArgs(int64(42), int64(1)).
			WillReturnRows(sqlmock.NewRows(expenseRowColumns).
				AddRow(42, 1, 3, "Food", "lunch", "9.99", "GBR", spent, spent))

		expense, err := repo.GetExpense(context.Background(), 1, 42)
		require.NoError(t, err)
		assert.True(t, expense.Amount.Equal(decimal.RequireFromString("9.99")))
		require.NotNil(t, expense.CategoryID)
		assert.Equal(t, int64(3), *expense.CategoryID)
		require.NotNil(t, expense.Description)
		assert.Equal(t, "lunch", *expense.Description)
		assert.Equal(t, "Food", expense.CategoryLabel())
	})

	t.Run("uncategorized", func(t *testing.T) {
		repo, mock := newTestExpenseRepo(t)

		mock.ExpectQuery("FROM expenses e").
			WillReturnRows(sqlmock.NewRows(expenseRowColumns).
				AddRow(42, 1, nil, "", nil, "9.99", "GBR", spent, spent))

		expense, err := repo.GetExpense(context.Background(), 1, 42)
		require.NoError(t, err)
		assert.Nil(t, expense.CategoryID)
		assert.Nil(t, expense.Description)
		assert.Equal(t, models.UncategorizedName, expense.CategoryLabel())
	})

	t.Run("foreign owner", func(t *testing.T) {
		repo, mock := newTestExpenseRepo(t)

		mock.ExpectQuery("FROM expenses e").
			WithArgs(int64(42), int64(2)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetExpense(context.Background(), 2, 42)
		assert.ErrorIs(t, err, ErrExpenseNotFound)
	})
}

func TestListExpenses(t *testing.T) {
	repo, mock := newTestExpenseRepo(t)
	spent := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("ORDER BY e.spent_at DESC, e.id DESC LIMIT 10").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(expenseRowColumns).
			AddRow(2, 1, nil, "", nil, "1.00", "GBR", spent, spent).
			AddRow(1, 1, 3, "Food", nil, "2.00", "GBR", spent.Add(-time.Hour), spent))

	expenses, err := repo.ListExpenses(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, int64(2), expenses[0].ExpenseID)
	assert.Equal(t, "Food", expenses[1].CategoryName)
}

func TestListExpenses_RowError(t *testing.T) {
	repo, mock := newTestExpenseRepo(t)
	spent := time.Now()

	mock.ExpectQuery("FROM expenses e").
		WillReturnRows(sqlmock.NewRows(expenseRowColumns).
			AddRow(1, 1, nil, "", nil, "1.00", "GBR", spent, spent).
			RowError(0, errors.New("broken row")))

	_, err := repo.ListExpenses(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestUpdateAndDeleteExpense_OwnershipOpaque(t *testing.T) {
	expense := models.CanonicalExpense{Amount: decimal.NewFromInt(5), Currency: "USD", SpentAt: "2026-10-01 08:00:00"}

	repo, mock := newTestExpenseRepo(t)

	mock.ExpectExec("UPDATE expenses SET .* WHERE id = \\$6 AND user_id = \\$7").
		WithArgs(nil, nil, "5", "USD", "2026-10-01 08:00:00", int64(42), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM expenses WHERE id = \\$1 AND user_id = \\$2").
		WithArgs(int64(42), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.UpdateExpense(context.Background(), 2, 42, expense), ErrExpenseNotFound)
	assert.ErrorIs(t, repo.DeleteExpense(context.Background(), 2, 42), ErrExpenseNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
