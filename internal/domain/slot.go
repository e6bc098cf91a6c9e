package domain

import "github.com/kmlvsk/SBS-BookingEngine/pkg/types"

// Slot represents a fixed-width bookable start-time derived from a weekly
// window and an interval.
type Slot struct {
	StartTime         types.TimeString
	DurationMinutes   int
	Capacity          int // capacity_per_slot of the covering schedule entry
	RemainingCapacity int // Capacity minus consumed (pending + confirmed) bookings
}

// IsBookable reports whether at least one spot is free.
func (s *Slot) IsBookable() bool {
	return s.RemainingCapacity > 0
}

// IsFull returns true if the slot has no free spots.
func (s *Slot) IsFull() bool {
	return s.RemainingCapacity <= 0
}

// Consumed returns the number of occupied spots.
func (s *Slot) Consumed() int {
	return s.Capacity - s.RemainingCapacity
}
