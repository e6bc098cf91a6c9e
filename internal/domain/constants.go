package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes = 30
	DefaultCapacityPerSlot     = 1
)

// Business validation constants
const (
	MinSlotIntervalMinutes = 5
	MaxSlotIntervalMinutes = 480 // 8 hours
	MinCapacityPerSlot     = 1
	MaxCapacityPerSlot     = 100
	MaxReasonLength        = 500
	MaxCustomerNameLength  = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ConsumingStatuses список статусов, занимающих место в слоте.
// Используется при подсчёте занятости слотов.
var ConsumingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses список статусов, не занимающих место
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}
