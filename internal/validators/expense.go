package validators

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-expense-ledger/models"
)

const (
	FieldAmount      = "amount"
	FieldSpentAt     = "spentAt"
	FieldCurrency    = "currency"
	FieldCategoryID  = "categoryId"
	FieldDescription = "description"

	// noCategory is the form value of the "Other" option.
	noCategory = "other"

	amountPlaces = 2
)

// maxAmount is the largest amount a NUMERIC(12,2) column holds.
var maxAmount = decimal.RequireFromString("9999999999.99")

// spentAtLayouts are tried in order; layouts without a zone are read as UTC.
var spentAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	models.SpentAtLayout,
	"2006-01-02 15:04",
	time.DateOnly,
}

// ExpenseValidator normalizes expense payloads. Rules run in a fixed order
// and the first failure wins: amount, spentAt, currency, categoryId,
// description.
type ExpenseValidator struct {
	defaultCurrency string
	now             func() time.Time
}

// NewExpenseValidator returns a validator that fills absent currencies with
// defaultCurrency.
func NewExpenseValidator(defaultCurrency string) *ExpenseValidator {
	return &ExpenseValidator{
		defaultCurrency: defaultCurrency,
		now:             time.Now,
	}
}

// Validate implements [Validator] for raw expense payloads.
func (v *ExpenseValidator) Validate(_ context.Context, obj any, _ ...string) error {
	switch value := obj.(type) {
	case models.RawExpense:
		_, err := v.Normalize(value)
		return err
	case *models.RawExpense:
		_, err := v.Normalize(*value)
		return err
	default:
		return ErrUnsupportedType
	}
}

// Normalize implements [ExpenseNormalizer].
func (v *ExpenseValidator) Normalize(raw models.RawExpense) (models.CanonicalExpense, error) {
	var (
		out models.CanonicalExpense
		err error
	)

	if out.Amount, err = parseAmount(raw.Amount); err != nil {
		return models.CanonicalExpense{}, fieldError(FieldAmount, err)
	}

	if out.SpentAt, err = v.parseSpentAt(raw.SpentAt); err != nil {
		return models.CanonicalExpense{}, fieldError(FieldSpentAt, err)
	}

	if out.Currency, err = v.parseCurrency(raw.Currency); err != nil {
		return models.CanonicalExpense{}, fieldError(FieldCurrency, err)
	}

	if out.CategoryID, err = parseCategoryID(raw.CategoryID); err != nil {
		return models.CanonicalExpense{}, fieldError(FieldCategoryID, err)
	}

	out.Description = parseDescription(raw.Description)

	return out, nil
}

func parseAmount(f models.Field) (decimal.Decimal, error) {
	if !f.Present {
		return decimal.Zero, ErrInvalidAmount
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(f.Value))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	amount = amount.Round(amountPlaces)
	if !amount.IsPositive() || amount.GreaterThan(maxAmount) {
		return decimal.Zero, ErrInvalidAmount
	}

	return amount, nil
}

func (v *ExpenseValidator) parseSpentAt(f models.Field) (string, error) {
	value := strings.TrimSpace(f.Value)
	if !f.Present || value == "" {
		return v.now().UTC().Format(models.SpentAtLayout), nil
	}

	for _, layout := range spentAtLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC().Format(models.SpentAtLayout), nil
		}
	}

	return "", ErrInvalidDate
}

func (v *ExpenseValidator) parseCurrency(f models.Field) (string, error) {
	value := strings.TrimSpace(f.Value)
	if !f.Present || value == "" {
		value = v.defaultCurrency
	}

	if len(value) != 3 {
		return "", ErrInvalidCurrency
	}
	for _, r := range value {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return "", ErrInvalidCurrency
		}
	}

	return strings.ToUpper(value), nil
}

func parseCategoryID(f models.Field) (*int64, error) {
	value := strings.TrimSpace(f.Value)
	if !f.Present || value == "" || value == noCategory {
		return nil, nil
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return nil, ErrInvalidCategory
	}

	return &id, nil
}

func parseDescription(f models.Field) *string {
	value := strings.TrimSpace(f.Value)
	if !f.Present || value == "" {
		return nil
	}
	return &value
}
