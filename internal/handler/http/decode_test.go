package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-expense-ledger/models"
)

func TestDecodeBody_ExpenseForm_KeepsPresence(t *testing.T) {
	form := url.Values{"amount": {"4.20"}, "categoryId": {""}}
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")

	raw, err := decodeBody(httptest.NewRecorder(), req, expenseFromForm)

	require.NoError(t, err)
	assert.Equal(t, models.NewField("4.20"), raw.Amount)
	assert.Equal(t, models.NewField(""), raw.CategoryID)
	assert.False(t, raw.SpentAt.Present)
	assert.False(t, raw.Description.Present)
}

func TestDecodeBody_JSONNullIsAbsent(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(`{"amount":3,"currency":null}`))

	raw, err := decodeBody(httptest.NewRecorder(), req, expenseFromForm)

	require.NoError(t, err)
	assert.Equal(t, models.NewField("3"), raw.Amount)
	assert.False(t, raw.Currency.Present)
}

func TestDecodeBody_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`not json`))

	_, err := decodeBody(httptest.NewRecorder(), req, loginFromForm)

	assert.ErrorIs(t, err, ErrInvalidBody)
}

func TestCategoryFromForm(t *testing.T) {
	req := categoryFromForm(url.Values{"name": {"Food"}, "isDefault": {"on"}})

	assert.Equal(t, "Food", req.Name)
	assert.True(t, req.IsDefault)
	assert.Nil(t, req.Color)
}
