package models

import "github.com/shopspring/decimal"

// Dashboard is the aggregated view model computed per request.
type Dashboard struct {
	MonthTotal        decimal.Decimal `json:"monthTotal"`
	AvgPerDay         decimal.Decimal `json:"avgPerDay"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	Categories        int64           `json:"categories"`
	CategoryBreakdown []CategoryTotal `json:"categoryBreakdown"`
	RecentExpenses    []RecentExpense `json:"recentExpenses"`
}

// RecentExpense is an expense as listed on the dashboard.
type RecentExpense struct {
	Expense
	Category string `json:"category"`
}

// MonthRange is a half-open [Start, End) interval in SpentAtLayout.
type MonthRange struct {
	Start string
	End   string
}

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// IDResponse is returned after a resource is created.
type IDResponse struct {
	ID int64 `json:"id"`
}

// Health is the body of the health endpoint.
type Health struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}
