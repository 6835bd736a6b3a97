package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-expense-ledger/internal/config"
	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/internal/mock"
	"github.com/MKhiriev/go-expense-ledger/internal/store"
	"github.com/MKhiriev/go-expense-ledger/internal/validators"
	"github.com/MKhiriev/go-expense-ledger/models"
)

type expenseMocks struct {
	expenses   *mock.MockExpenseRepository
	categories *mock.MockCategoryRepository
}

func newTestExpenseService(t *testing.T) (ExpenseService, expenseMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := expenseMocks{
		expenses:   mock.NewMockExpenseRepository(ctrl),
		categories: mock.NewMockCategoryRepository(ctrl),
	}
	return NewExpenseService(m.expenses, m.categories, config.App{DefaultCurrency: "GBR"}, logger.Nop()), m
}

func TestExpenseService_CreateExpense(t *testing.T) {
	svc, m := newTestExpenseService(t)

	raw := models.RawExpense{
		Amount:      models.NewField("12.345"),
		SpentAt:     models.NewField("2026-03-01T08:30"),
		Currency:    models.NewField("usd"),
		CategoryID:  models.NewField("4"),
		Description: models.NewField("  lunch "),
	}

	m.categories.EXPECT().FindCategory(gomock.Any(), int64(1), int64(4)).Return(models.Category{CategoryID: 4, UserID: 1}, nil)
	m.expenses.EXPECT().CreateExpense(gomock.Any(), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, e models.CanonicalExpense) (int64, error) {
			assert.True(t, e.Amount.Equal(decimal.RequireFromString("12.35")))
			assert.Equal(t, "USD", e.Currency)
			assert.Equal(t, "2026-03-01 08:30:00", e.SpentAt)
			require.NotNil(t, e.CategoryID)
			assert.Equal(t, int64(4), *e.CategoryID)
			require.NotNil(t, e.Description)
			assert.Equal(t, "lunch", *e.Description)
			return 11, nil
		})

	id, err := svc.CreateExpense(context.Background(), 1, raw)

	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
}

func TestExpenseService_CreateExpense_Uncategorized(t *testing.T) {
	svc, m := newTestExpenseService(t)

	m.expenses.EXPECT().CreateExpense(gomock.Any(), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, e models.CanonicalExpense) (int64, error) {
			assert.Nil(t, e.CategoryID)
			assert.Equal(t, "GBR", e.Currency)
			return 1, nil
		})

	_, err := svc.CreateExpense(context.Background(), 1, models.RawExpense{
		Amount:     models.NewField("5"),
		CategoryID: models.NewField("other"),
	})

	require.NoError(t, err)
}

func TestExpenseService_CreateExpense_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		raw       models.RawExpense
		setup     func(m expenseMocks)
		wantField string
	}{
		{
			name:      "zero amount",
			raw:       models.RawExpense{Amount: models.NewField("0")},
			wantField: validators.FieldAmount,
		},
		{
			name:      "negative amount",
			raw:       models.RawExpense{Amount: models.NewField("-3")},
			wantField: validators.FieldAmount,
		},
		{
			name:      "bad date",
			raw:       models.RawExpense{Amount: models.NewField("3"), SpentAt: models.NewField("yesterday")},
			wantField: validators.FieldSpentAt,
		},
		{
			name:      "two letter currency",
			raw:       models.RawExpense{Amount: models.NewField("3"), Currency: models.NewField("US")},
			wantField: validators.FieldCurrency,
		},
		{
			name: "category of another owner",
			raw:  models.RawExpense{Amount: models.NewField("3"), CategoryID: models.NewField("99")},
			setup: func(m expenseMocks) {
				m.categories.EXPECT().FindCategory(gomock.Any(), int64(1), int64(99)).Return(models.Category{}, store.ErrCategoryNotFound)
			},
			wantField: validators.FieldCategoryID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestExpenseService(t)
			if tt.setup != nil {
				tt.setup(m)
			}

			_, err := svc.CreateExpense(context.Background(), 1, tt.raw)

			var vErr *validators.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestExpenseService_GetExpense_OtherOwnerIsNotFound(t *testing.T) {
	svc, m := newTestExpenseService(t)
	m.expenses.EXPECT().GetExpense(gomock.Any(), int64(2), int64(11)).Return(models.Expense{}, store.ErrExpenseNotFound)

	_, err := svc.GetExpense(context.Background(), 2, 11)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpenseService_ListExpenses_ClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  uint64
	}{
		{name: "within bounds", limit: 20, want: 20},
		{name: "above maximum", limit: 1000, want: MaxListLimit},
		{name: "zero", limit: 0, want: MaxListLimit},
		{name: "negative", limit: -5, want: MaxListLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestExpenseService(t)
			m.expenses.EXPECT().ListExpenses(gomock.Any(), int64(1), tt.want).Return([]models.Expense{}, nil)

			_, err := svc.ListExpenses(context.Background(), 1, tt.limit)

			require.NoError(t, err)
		})
	}
}

func TestExpenseService_UpdateExpense(t *testing.T) {
	raw := models.RawExpense{Amount: models.NewField("7.5"), SpentAt: models.NewField("2026-03-02")}

	t.Run("success", func(t *testing.T) {
		svc, m := newTestExpenseService(t)
		m.expenses.EXPECT().UpdateExpense(gomock.Any(), int64(1), int64(11), gomock.Any()).Return(nil)

		assert.NoError(t, svc.UpdateExpense(context.Background(), 1, 11, raw))
	})

	t.Run("not owned", func(t *testing.T) {
		svc, m := newTestExpenseService(t)
		m.expenses.EXPECT().UpdateExpense(gomock.Any(), int64(2), int64(11), gomock.Any()).Return(store.ErrExpenseNotFound)

		assert.ErrorIs(t, svc.UpdateExpense(context.Background(), 2, 11, raw), ErrNotFound)
	})

	t.Run("invalid payload never reaches storage", func(t *testing.T) {
		svc, _ := newTestExpenseService(t)

		err := svc.UpdateExpense(context.Background(), 1, 11, models.RawExpense{Amount: models.NewField("abc")})

		assert.ErrorIs(t, err, validators.ErrInvalidAmount)
	})
}

func TestExpenseService_DeleteExpense(t *testing.T) {
	svc, m := newTestExpenseService(t)
	dbErr := errors.New("db down")

	m.expenses.EXPECT().DeleteExpense(gomock.Any(), int64(1), int64(11)).Return(nil)
	m.expenses.EXPECT().DeleteExpense(gomock.Any(), int64(2), int64(11)).Return(store.ErrExpenseNotFound)
	m.expenses.EXPECT().DeleteExpense(gomock.Any(), int64(1), int64(12)).Return(dbErr)

	assert.NoError(t, svc.DeleteExpense(context.Background(), 1, 11))
	assert.ErrorIs(t, svc.DeleteExpense(context.Background(), 2, 11), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteExpense(context.Background(), 1, 12), dbErr)
}
