package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/internal/store"
	"github.com/MKhiriev/go-expense-ledger/models"
)

const moneyPlaces = 2

// dashboardService recomputes every figure from the ledger on each call.
type dashboardService struct {
	dashboardRepository store.DashboardRepository
	expenseRepository   store.ExpenseRepository

	now func() time.Time

	logger *logger.Logger
}

func NewDashboardService(dashboard store.DashboardRepository, expenses store.ExpenseRepository, logger *logger.Logger) DashboardService {
	return &dashboardService{
		dashboardRepository: dashboard,
		expenseRepository:   expenses,
		now:                 time.Now,
		logger:              logger,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, userID int64) (models.Dashboard, error) {
	log := logger.FromContext(ctx)

	now := s.now().UTC()
	period := MonthRange(now)

	var (
		dashboard models.Dashboard
		recent    []models.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sum, err := s.dashboardRepository.SumExpenses(gctx, userID, &period)
		dashboard.MonthTotal = sum
		return err
	})
	g.Go(func() error {
		sum, err := s.dashboardRepository.SumExpenses(gctx, userID, nil)
		dashboard.TotalExpenses = sum
		return err
	})
	g.Go(func() error {
		count, err := s.dashboardRepository.CountCategories(gctx, userID)
		dashboard.Categories = count
		return err
	})
	g.Go(func() error {
		totals, err := s.dashboardRepository.CategoryTotals(gctx, userID)
		dashboard.CategoryBreakdown = totals
		return err
	})
	g.Go(func() error {
		expenses, err := s.expenseRepository.ListExpenses(gctx, userID, RecentExpensesLimit)
		recent = expenses
		return err
	})
	if err := g.Wait(); err != nil {
		log.Err(err).Str("func", "*dashboardService.GetDashboard").Int64("user_id", userID).Msg("error aggregating dashboard")
		return models.Dashboard{}, fmt.Errorf("error aggregating dashboard: %w", err)
	}

	dashboard.MonthTotal = dashboard.MonthTotal.Round(moneyPlaces)
	dashboard.TotalExpenses = dashboard.TotalExpenses.Round(moneyPlaces)
	dashboard.AvgPerDay = dashboard.MonthTotal.
		Div(decimal.NewFromInt(int64(DaysInMonth(now)))).
		Round(moneyPlaces)

	if dashboard.CategoryBreakdown == nil {
		dashboard.CategoryBreakdown = []models.CategoryTotal{}
	}
	for i := range dashboard.CategoryBreakdown {
		dashboard.CategoryBreakdown[i].Total = dashboard.CategoryBreakdown[i].Total.Round(moneyPlaces)
	}
	sortBreakdown(dashboard.CategoryBreakdown)

	dashboard.RecentExpenses = make([]models.RecentExpense, 0, len(recent))
	for _, e := range recent {
		dashboard.RecentExpenses = append(dashboard.RecentExpenses, models.RecentExpense{
			Expense:  e,
			Category: e.CategoryLabel(),
		})
	}

	return dashboard, nil
}

// MonthRange returns the calendar month containing now as a half-open
// interval in the storage timestamp layout.
func MonthRange(now time.Time) models.MonthRange {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	return models.MonthRange{
		Start: start.Format(models.SpentAtLayout),
		End:   end.Format(models.SpentAtLayout),
	}
}

// DaysInMonth returns the number of days of the month containing t.
func DaysInMonth(t time.Time) int {
	t = t.UTC()
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// sortBreakdown orders by total descending, then name ascending.
func sortBreakdown(totals []models.CategoryTotal) {
	sort.SliceStable(totals, func(i, j int) bool {
		if c := totals[i].Total.Cmp(totals[j].Total); c != 0 {
			return c > 0
		}
		return totals[i].Name < totals[j].Name
	})
}
