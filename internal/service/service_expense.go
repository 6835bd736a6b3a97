package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-expense-ledger/internal/config"
	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/internal/store"
	"github.com/MKhiriev/go-expense-ledger/internal/validators"
	"github.com/MKhiriev/go-expense-ledger/models"
)

const (
	// MaxListLimit bounds every expense listing.
	MaxListLimit = 100
	// RecentExpensesLimit is the size of the dashboard's recent list.
	RecentExpensesLimit = 10
)

type expenseService struct {
	expenseRepository  store.ExpenseRepository
	categoryRepository store.CategoryRepository
	normalizer         validators.ExpenseNormalizer

	logger *logger.Logger
}

// NewExpenseService constructs an ExpenseService. Payloads are normalized
// with the default currency from cfg.
func NewExpenseService(expenses store.ExpenseRepository, categories store.CategoryRepository, cfg config.App, logger *logger.Logger) ExpenseService {
	currency := cfg.DefaultCurrency
	if currency == "" {
		currency = config.DefaultCurrency
	}

	return &expenseService{
		expenseRepository:  expenses,
		categoryRepository: categories,
		normalizer:         validators.NewExpenseValidator(currency),
		logger:             logger,
	}
}

func (s *expenseService) CreateExpense(ctx context.Context, userID int64, raw models.RawExpense) (int64, error) {
	log := logger.FromContext(ctx)

	expense, err := s.normalize(ctx, userID, raw)
	if err != nil {
		return 0, err
	}

	id, err := s.expenseRepository.CreateExpense(context.WithoutCancel(ctx), userID, expense)
	if errors.Is(err, store.ErrCategoryNotFound) {
		return 0, &validators.ValidationError{Field: validators.FieldCategoryID, Err: validators.ErrInvalidCategory}
	}
	if err != nil {
		log.Err(err).Str("func", "*expenseService.CreateExpense").Int64("user_id", userID).Msg("error creating expense")
		return 0, fmt.Errorf("error creating expense: %w", err)
	}

	log.Debug().Int64("user_id", userID).Int64("expense_id", id).Msg("expense created")
	return id, nil
}

func (s *expenseService) GetExpense(ctx context.Context, userID, expenseID int64) (models.Expense, error) {
	expense, err := s.expenseRepository.GetExpense(ctx, userID, expenseID)
	if errors.Is(err, store.ErrExpenseNotFound) {
		return models.Expense{}, ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*expenseService.GetExpense").Int64("expense_id", expenseID).Msg("error getting expense")
		return models.Expense{}, fmt.Errorf("error getting expense: %w", err)
	}

	return expense, nil
}

// ListExpenses returns the newest expenses first. Limits outside
// (0, MaxListLimit] are clamped to MaxListLimit.
func (s *expenseService) ListExpenses(ctx context.Context, userID int64, limit int) ([]models.Expense, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}

	expenses, err := s.expenseRepository.ListExpenses(ctx, userID, uint64(limit))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*expenseService.ListExpenses").Int64("user_id", userID).Msg("error listing expenses")
		return nil, fmt.Errorf("error listing expenses: %w", err)
	}

	return expenses, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, userID, expenseID int64, raw models.RawExpense) error {
	log := logger.FromContext(ctx)

	expense, err := s.normalize(ctx, userID, raw)
	if err != nil {
		return err
	}

	err = s.expenseRepository.UpdateExpense(context.WithoutCancel(ctx), userID, expenseID, expense)
	switch {
	case errors.Is(err, store.ErrExpenseNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrCategoryNotFound):
		return &validators.ValidationError{Field: validators.FieldCategoryID, Err: validators.ErrInvalidCategory}
	case err != nil:
		log.Err(err).Str("func", "*expenseService.UpdateExpense").Int64("expense_id", expenseID).Msg("error updating expense")
		return fmt.Errorf("error updating expense: %w", err)
	}

	return nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, userID, expenseID int64) error {
	err := s.expenseRepository.DeleteExpense(context.WithoutCancel(ctx), userID, expenseID)
	if errors.Is(err, store.ErrExpenseNotFound) {
		return ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*expenseService.DeleteExpense").Int64("expense_id", expenseID).Msg("error deleting expense")
		return fmt.Errorf("error deleting expense: %w", err)
	}

	return nil
}

// normalize validates raw and checks that a referenced category belongs to
// the owner. A foreign category is reported exactly like a missing one.
func (s *expenseService) normalize(ctx context.Context, userID int64, raw models.RawExpense) (models.CanonicalExpense, error) {
	expense, err := s.normalizer.Normalize(raw)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*expenseService.normalize").Msg("invalid expense payload")
		return models.CanonicalExpense{}, err
	}

	if expense.CategoryID == nil {
		return expense, nil
	}

	_, err = s.categoryRepository.FindCategory(ctx, userID, *expense.CategoryID)
	if errors.Is(err, store.ErrCategoryNotFound) {
		return models.CanonicalExpense{}, &validators.ValidationError{Field: validators.FieldCategoryID, Err: validators.ErrInvalidCategory}
	}
	if err != nil {
		return models.CanonicalExpense{}, fmt.Errorf("error checking category: %w", err)
	}

	return expense, nil
}
