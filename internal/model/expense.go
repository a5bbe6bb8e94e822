package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is one recorded expense entry.
type Expense struct {
	ID          string // creation timestamp in Unix milliseconds, stable for the record's lifetime
	Description string
	Amount      decimal.Decimal
	Category    Category
	Date        time.Time
}

// Equal reports whether two expenses carry the same id and field values.
// Dates compare as instants so a round-trip through UTC still matches.
func (e Expense) Equal(other Expense) bool {
	return e.ID == other.ID &&
		e.Description == other.Description &&
		e.Amount.Equal(other.Amount) &&
		e.Category == other.Category &&
		e.Date.Equal(other.Date)
}
