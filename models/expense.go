// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SpentAtLayout is the timezone-naive, second-precision wire format used for
// spent_at values handed to the storage engine.
const SpentAtLayout = "2006-01-02 15:04:05"

// UncategorizedName is shown for expenses without a category.
const UncategorizedName = "Uncategorized"

// Field is a raw request value that remembers whether it was supplied at all.
// JSON strings, numbers and booleans are kept as their literal text; null and
// absent keys leave Present false.
type Field struct {
	Value   string
	Present bool
}

// NewField returns a present field holding v.
func NewField(v string) Field {
	return Field{Value: v, Present: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = Field{}
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = NewField(s)
		return nil
	}

	if len(b) > 0 && (b[0] == '{' || b[0] == '[') {
		return fmt.Errorf("unsupported field value %s", b)
	}

	*f = NewField(string(b))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.Present {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// RawExpense is an expense payload exactly as the client sent it.
type RawExpense struct {
	Amount      Field `json:"amount"`
	SpentAt     Field `json:"spentAt"`
	Currency    Field `json:"currency"`
	CategoryID  Field `json:"categoryId"`
	Description Field `json:"description"`
}

// CanonicalExpense is a validated, normalized expense ready for storage.
type CanonicalExpense struct {
	Amount      decimal.Decimal
	Currency    string
	SpentAt     string
	CategoryID  *int64
	Description *string
}

// Expense is a stored expense row joined with its category name.
type Expense struct {
	ExpenseID    int64           `json:"id"`
	UserID       int64           `json:"-"`
	CategoryID   *int64          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Description  *string         `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	SpentAt      time.Time       `json:"spentAt"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// TableName returns the name of the table that stores expenses.
func (e Expense) TableName() string {
	return "expenses"
}

// CategoryLabel returns the category name, or UncategorizedName when the
// expense has no category.
func (e Expense) CategoryLabel() string {
	if e.CategoryID == nil || e.CategoryName == "" {
		return UncategorizedName
	}
	return e.CategoryName
}
