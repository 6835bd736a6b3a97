// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation and normalization for the
// expense ledger.
//
// Core concepts:
//   - Validator: generic interface to validate request payloads, optionally
//     restricted to a subset of named fields.
//   - ExpenseNormalizer: turns a raw expense payload into a canonical record
//     or a *ValidationError naming the first offending field.
//
// Every failure is a *ValidationError wrapping one of the package sentinels,
// so callers can match with errors.Is or extract the field with errors.As.
package validators

import (
	"context"

	"github.com/MKhiriev/go-expense-ledger/models"
)

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}

// ExpenseNormalizer validates a raw expense payload and returns its canonical
// form.
type ExpenseNormalizer interface {
	Normalize(raw models.RawExpense) (models.CanonicalExpense, error)
}
