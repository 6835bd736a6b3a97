package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-expense-ledger/internal/service"
	"github.com/MKhiriev/go-expense-ledger/internal/store"
	"github.com/MKhiriev/go-expense-ledger/internal/validators"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "validation error",
			err:         &validators.ValidationError{Field: validators.FieldCurrency, Err: validators.ErrInvalidCurrency},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "currency: invalid currency",
		},
		{
			name:        "wrapped unauthorized",
			err:         fmt.Errorf("gate: %w", service.ErrUnauthorized),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "unauthorized",
		},
		{
			name:        "not found",
			err:         service.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "not found",
		},
		{
			name:        "duplicate category",
			err:         service.ErrDuplicateCategory,
			wantStatus:  http.StatusConflict,
			wantMessage: "category already exists",
		},
		{
			name:        "duplicate account stays 400",
			err:         service.ErrDuplicateAccount,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "account already exists",
		},
		{
			name:        "storage failure",
			err:         fmt.Errorf("%w: %w", store.ErrExecutingQuery, errors.New("relation \"users\" does not exist")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := statusFromError(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMessage, messageFromError(tt.err, status))
		})
	}
}
