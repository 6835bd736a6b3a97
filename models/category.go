package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups expenses of a single owner. Names are unique per owner
// and compared case-sensitively.
type Category struct {
	CategoryID int64     `json:"id"`
	UserID     int64     `json:"-"`
	Name       string    `json:"name"`
	Color      *string   `json:"color"`
	IsDefault  bool      `json:"isDefault"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName returns the name of the table that stores categories.
func (c Category) TableName() string {
	return "categories"
}

// CategoryRequest is the payload for creating or renaming a category.
type CategoryRequest struct {
	Name      string  `json:"name"`
	Color     *string `json:"color,omitempty"`
	IsDefault bool    `json:"isDefault,omitempty"`
}

// CategoryTotal is one row of the dashboard category breakdown.
type CategoryTotal struct {
	CategoryID int64           `json:"id"`
	Name       string          `json:"name"`
	Color      *string         `json:"color"`
	Total      decimal.Decimal `json:"total"`
}
