package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/models"
)

type dashboardRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDashboardRepository constructs a [DashboardRepository].
func NewDashboardRepository(db *DB, logger *logger.Logger) DashboardRepository {
	logger.Debug().Msg("creating dashboard repository")
	return &dashboardRepository{
		db:     db,
		logger: logger,
	}
}

// SumExpenses never returns NULL: an empty set sums to zero.
func (r *dashboardRepository) SumExpenses(ctx context.Context, userID int64, period *models.MonthRange) (decimal.Decimal, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSumExpensesQuery(r.db.builder(), userID, period)
	if err != nil {
		log.Err(err).Str("func", "*dashboardRepository.SumExpenses").Msg("failed to build query")
		return decimal.Zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var sum decimal.NullDecimal
	err = r.db.retry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&sum)
	})
	if err != nil {
		log.Err(err).Str("func", "*dashboardRepository.SumExpenses").Int64("user_id", userID).Msg("error summing expenses")
		return decimal.Zero, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *dashboardRepository) CountCategories(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountCategoriesQuery(r.db.builder(), userID)
	if err != nil {
		log.Err(err).Str("func", "*dashboardRepository.CountCategories").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	err = r.db.retry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		log.Err(err).Str("func", "*dashboardRepository.CountCategories").Int64("user_id", userID).Msg("error counting categories")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// CategoryTotals returns every owner category with the all-time sum of its
// expenses, zero for categories without any.
func (r *dashboardRepository) CategoryTotals(ctx context.Context, userID int64) ([]models.CategoryTotal, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCategoryTotalsQuery(r.db.builder(), userID)
	if err != nil {
		log.Err(err).Str("func", "*dashboardRepository.CategoryTotals").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*dashboardRepository.CategoryTotals").Int64("user_id", userID).Msg("error querying category totals")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	totals := make([]models.CategoryTotal, 0)
	for rows.Next() {
		var (
			total models.CategoryTotal
			color sql.NullString
			sum   decimal.NullDecimal
		)
		if err = rows.Scan(&total.CategoryID, &total.Name, &color, &sum); err != nil {
			log.Err(err).Str("func", "*dashboardRepository.CategoryTotals").Msg("error scanning category total")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if color.Valid {
			total.Color = &color.String
		}
		total.Total = decimal.Zero
		if sum.Valid {
			total.Total = sum.Decimal
		}
		totals = append(totals, total)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*dashboardRepository.CategoryTotals").Msg("error iterating category totals")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return totals, nil
}
