package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service represents a bookable offering of a business. Duration drives the
// slot width, price drives deposit and revenue computations.
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	Price           decimal.Decimal // non-negative
	DurationMinutes int             // positive
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
