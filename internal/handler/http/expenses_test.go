package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-expense-ledger/internal/service"
	"github.com/MKhiriev/go-expense-ledger/internal/validators"
	"github.com/MKhiriev/go-expense-ledger/models"
)

func serveAuthed(h *Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, withSessionCookie(req))
	return rr
}

func TestCreateExpense_Success(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		ExpenseService: &fakeExpenseService{
			createFn: func(_ context.Context, userID int64, raw models.RawExpense) (int64, error) {
				assert.Equal(t, testUserID, userID)
				assert.Equal(t, models.NewField("12.50"), raw.Amount)
				assert.Equal(t, models.NewField("4"), raw.CategoryID)
				assert.False(t, raw.Currency.Present)
				return 7, nil
			},
		},
	})

	rr := serveAuthed(h, http.MethodPost, "/api/expenses", `{"amount":"12.50","categoryId":4}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"id":7}`, rr.Body.String())
}

func TestCreateExpense_ValidationError(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		ExpenseService: &fakeExpenseService{
			createFn: func(context.Context, int64, models.RawExpense) (int64, error) {
				return 0, &validators.ValidationError{Field: validators.FieldAmount, Err: validators.ErrInvalidAmount}
			},
		},
	})

	rr := serveAuthed(h, http.MethodPost, "/api/expenses", `{"amount":-5}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "amount: invalid amount", decodeError(t, rr))
}

func TestCreateExpense_Anonymous(t *testing.T) {
	h := newTestHandler(t, &service.Services{})

	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(`{"amount":1}`))
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "expired-token"})
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "unauthorized", decodeError(t, rr))

	cookie := findCookie(rr.Result(), testCookieName)
	require.NotNil(t, cookie)
	assert.Negative(t, cookie.MaxAge)
}

func TestListExpenses_PassesLimit(t *testing.T) {
	tests := []struct {
		query     string
		wantLimit int
	}{
		{query: "", wantLimit: 0},
		{query: "?limit=25", wantLimit: 25},
		{query: "?limit=abc", wantLimit: 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			h := newTestHandler(t, &service.Services{
				ExpenseService: &fakeExpenseService{
					listFn: func(_ context.Context, _ int64, limit int) ([]models.Expense, error) {
						assert.Equal(t, tt.wantLimit, limit)
						return nil, nil
					},
				},
			})

			rr := serveAuthed(h, http.MethodGet, "/api/expenses"+tt.query, "")

			require.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, `[]`, rr.Body.String())
		})
	}
}

func TestGetExpense(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		ExpenseService: &fakeExpenseService{
			getFn: func(_ context.Context, userID, expenseID int64) (models.Expense, error) {
				if expenseID != 7 {
					return models.Expense{}, service.ErrNotFound
				}
				return models.Expense{ExpenseID: 7, UserID: userID, Amount: decimal.RequireFromString("12.5"), Currency: "GBR"}, nil
			},
		},
	})

	rr := serveAuthed(h, http.MethodGet, "/api/expenses/7", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var expense models.Expense
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&expense))
	assert.Equal(t, int64(7), expense.ExpenseID)
	assert.True(t, expense.Amount.Equal(decimal.RequireFromString("12.5")))

	rr = serveAuthed(h, http.MethodGet, "/api/expenses/8", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "not found", decodeError(t, rr))

	rr = serveAuthed(h, http.MethodGet, "/api/expenses/abc", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateExpense(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "updated", wantStatus: http.StatusNoContent},
		{name: "foreign or missing", err: service.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "storage failure", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &service.Services{
				ExpenseService: &fakeExpenseService{
					updateFn: func(_ context.Context, userID, expenseID int64, raw models.RawExpense) error {
						assert.Equal(t, testUserID, userID)
						assert.Equal(t, int64(3), expenseID)
						assert.Equal(t, models.NewField("9.99"), raw.Amount)
						return tt.err
					},
				},
			})

			rr := serveAuthed(h, http.MethodPut, "/api/expenses/3", `{"amount":9.99}`)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestDeleteExpense(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		ExpenseService: &fakeExpenseService{
			deleteFn: func(_ context.Context, _ int64, expenseID int64) error {
				if expenseID == 3 {
					return nil
				}
				return service.ErrNotFound
			},
		},
	})

	assert.Equal(t, http.StatusNoContent, serveAuthed(h, http.MethodDelete, "/api/expenses/3", "").Code)
	assert.Equal(t, http.StatusNotFound, serveAuthed(h, http.MethodDelete, "/api/expenses/4", "").Code)
}
