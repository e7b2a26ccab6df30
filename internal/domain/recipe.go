package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price bounds for NUMERIC(5,2).
const (
	PriceMaxDigits      = 5
	PriceDecimalPlaces  = 2
	RecipeLinkMaxLength = 255
)

// Recipe is a priced, timed item owned by exactly one account.
type Recipe struct {
	ID          string
	OwnerID     string
	Title       string
	Price       decimal.Decimal
	Description string
	TimeMinutes int
	Link        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r *Recipe) String() string {
	return r.Title
}
