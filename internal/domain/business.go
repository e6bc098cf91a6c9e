package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositType determines how the deposit value is interpreted
type DepositType string

const (
	DepositFixed      DepositType = "fixed"
	DepositPercentage DepositType = "percentage"
)

// DepositPolicy is the optional upfront-payment requirement of a business.
// When enabled, new bookings start as pending until the deposit is paid.
type DepositPolicy struct {
	Enabled bool
	Type    DepositType
	Value   decimal.Decimal // fixed amount or percentage of the service price
}

// Business represents a service business that owns schedules, services,
// exception dates and bookings.
type Business struct {
	ID                  int64
	Slug                string
	Name                string
	SlotIntervalMinutes int // default slot width, may be stretched by service duration
	Deposit             DepositPolicy

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequiresDeposit reports whether bookings for this business must be funded
// before confirmation.
func (b *Business) RequiresDeposit() bool {
	return b.Deposit.Enabled && b.Deposit.Value.IsPositive()
}
