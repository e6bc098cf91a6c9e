package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kmlvsk/SBS-BookingEngine/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// legalTransitions перечисляет допустимые переходы статусов.
// cancelled и no_show - терминальные состояния.
var legalTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusNoShow, StatusCancelled},
}

// Customer is the public visitor who submitted the booking.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// Booking represents a reserved slot for a business service.
// Bookings are never physically deleted, only status-transitioned.
type Booking struct {
	ID         int64
	Reference  string // public opaque identifier (uuid)
	BusinessID int64
	ServiceID  int64
	Date       time.Time
	SlotStart  types.TimeString
	Customer   Customer
	Status     BookingStatus

	// Denormalized at booking time so history survives service edits
	ServiceName  string
	ServicePrice decimal.Decimal

	DepositPaid       bool
	DepositReceiptRef *string // payment provider session/payment id

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanTransitionTo reports whether the status change from b.Status to target
// is one of the legal lifecycle transitions.
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range legalTransitions[b.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ConsumesCapacity reports whether the booking occupies a spot in its slot.
// Pending and confirmed both consume; cancelled frees the spot, and no_show
// frees it retroactively (it is only assigned after the slot has passed).
func (b *Booking) ConsumesCapacity() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal reports whether no further transitions are possible.
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusNoShow
}

// BookingsFilter фильтр для выборки бронирований бизнеса
type BookingsFilter struct {
	BusinessID      int64             // Обязательный параметр
	Date            *time.Time        // Фильтр по дате (опционально)
	SlotStart       *types.TimeString // Фильтр по началу слота (опционально)
	Status          *BookingStatus    // Фильтр по статусу (опционально)
	IncludeInactive bool              // Включать ли cancelled и no_show
}
