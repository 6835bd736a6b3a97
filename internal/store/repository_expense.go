package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/models"
)

// expenseRepository is the SQL implementation of [ExpenseRepository]. Every
// statement carries the owner id in its predicate.
type expenseRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewExpenseRepository constructs an [ExpenseRepository].
func NewExpenseRepository(db *DB, logger *logger.Logger) ExpenseRepository {
	logger.Debug().Msg("creating expense repository")
	return &expenseRepository{
		db:     db,
		logger: logger,
	}
}

func (r *expenseRepository) CreateExpense(ctx context.Context, userID int64, expense models.CanonicalExpense) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateExpenseQuery(r.db.builder(), userID, expense)
	if err != nil {
		log.Err(err).Str("func", "*expenseRepository.CreateExpense").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if r.db.isForeignKeyViolation(err) {
			return 0, ErrCategoryNotFound
		}
		log.Err(err).Str("func", "*expenseRepository.CreateExpense").Int64("user_id", userID).Msg("error inserting expense")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return id, nil
}

func (r *expenseRepository) GetExpense(ctx context.Context, userID, expenseID int64) (models.Expense, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetExpenseQuery(r.db.builder(), userID, expenseID)
	if err != nil {
		log.Err(err).Str("func", "*expenseRepository.GetExpense").Msg("failed to build query")
		return models.Expense{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var expense models.Expense
	err = r.db.retry(ctx, func() error {
		return scanExpense(r.db.QueryRowContext(ctx, query, args...), &expense)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Expense{}, ErrExpenseNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*expenseRepository.GetExpense").Int64("expense_id", expenseID).Msg("error getting expense")
		return models.Expense{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return expense, nil
}

// ListExpenses returns up to limit expenses, most recent spent_at first.
func (r *expenseRepository) ListExpenses(ctx context.Context, userID int64, limit uint64) ([]models.Expense, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListExpensesQuery(r.db.builder(), userID, limit)
	if err != nil {
		log.Err(err).Str("func", "*expenseRepository.ListExpenses").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var expenses []models.Expense
	err = r.db.retry(ctx, func() error {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		expenses = make([]models.Expense, 0, limit)
		for rows.Next() {
			var expense models.Expense
			if err = scanExpense(rows, &expense); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			expenses = append(expenses, expense)
		}
		if err = rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*expenseRepository.ListExpenses").Int64("user_id", userID).Msg("error listing expenses")
		return nil, err
	}

	return expenses, nil
}

// UpdateExpense replaces every mutable field of an owned expense. A missing
// and a foreign-owned id both yield [ErrExpenseNotFound].
func (r *expenseRepository) UpdateExpense(ctx context.Context, userID, expenseID int64, expense models.CanonicalExpense) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateExpenseQuery(r.db.builder(), userID, expenseID, expense)
	if err != nil {
		log.Err(err).Str("func", "*expenseRepository.UpdateExpense").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if r.db.isForeignKeyViolation(err) {
			return ErrCategoryNotFound
		}
		log.Err(err).Str("func", "*expenseRepository.UpdateExpense").Int64("expense_id", expenseID).Msg("error updating expense")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(res, ErrExpenseNotFound)
}

func (r *expenseRepository) DeleteExpense(ctx context.Context, userID, expenseID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteExpenseQuery(r.db.builder(), userID, expenseID)
	if err != nil {
		log.Err(err).Str("func", "*expenseRepository.DeleteExpense").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*expenseRepository.DeleteExpense").Int64("expense_id", expenseID).Msg("error deleting expense")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(res, ErrExpenseNotFound)
}

func scanExpense(row rowScanner, expense *models.Expense) error {
	var (
		categoryID  sql.NullInt64
		description sql.NullString
	)

	err := row.Scan(
		&expense.ExpenseID,
		&expense.UserID,
		&categoryID,
		&expense.CategoryName,
		&description,
		&expense.Amount,
		&expense.Currency,
		&expense.SpentAt,
		&expense.CreatedAt,
	)
	if err != nil {
		return err
	}

	expense.CategoryID = nil
	if categoryID.Valid {
		expense.CategoryID = &categoryID.Int64
	}
	expense.Description = nil
	if description.Valid {
		expense.Description = &description.String
	}
	expense.SpentAt = expense.SpentAt.UTC()
	expense.CreatedAt = expense.CreatedAt.UTC()
	return nil
}
