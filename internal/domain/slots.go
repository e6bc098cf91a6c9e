package domain

import (
	"sort"

	"github.com/kmlvsk/SBS-BookingEngine/pkg/types"
)

// EffectiveInterval returns the slot width for a service on a business:
// the business default stretched to the service duration when that is
// longer. A nil service means occupancy-only mode at the default interval.
func EffectiveInterval(business *Business, service *Service) int {
	interval := business.SlotIntervalMinutes
	if interval <= 0 {
		interval = DefaultSlotIntervalMinutes
	}
	if service != nil && service.DurationMinutes > interval {
		interval = service.DurationMinutes
	}
	return interval
}

// GenerateSlots expands weekly windows into candidate slots of the given
// width. For each window the walk emits a slot at every interval step while
// the start remains before the window end. A slot starting before the end is
// emitted even when it runs past it: the window end bounds slot starts, not
// slot ends.
//
// Slots from multiple windows are merged in ascending start order. Duplicate
// starts cannot occur: windows on one weekday are validated to not overlap.
func GenerateSlots(entries []*WeeklyScheduleEntry, intervalMinutes int) ([]Slot, error) {
	slots := make([]Slot, 0)

	for _, entry := range entries {
		current := entry.StartTime
		for current.IsBefore(entry.EndTime) {
			slots = append(slots, Slot{
				StartTime:         current,
				DurationMinutes:   intervalMinutes,
				Capacity:          entry.CapacityPerSlot,
				RemainingCapacity: entry.CapacityPerSlot,
			})

			next, err := current.AddMinutes(intervalMinutes)
			if err != nil {
				return nil, err
			}
			if !current.IsBefore(next) {
				// step wrapped past midnight, window exhausted
				break
			}
			current = next
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	return slots, nil
}

// ApplyConsumption subtracts already-consumed counts from slot capacities.
// Only bookings with an exact matching start consume a slot; consumed can
// temporarily exceed capacity in historical data, so the remainder is
// clamped at zero.
func ApplyConsumption(slots []Slot, bookings []*Booking) []Slot {
	consumed := make(map[types.TimeString]int, len(bookings))
	for _, b := range bookings {
		if b.ConsumesCapacity() {
			consumed[b.SlotStart]++
		}
	}

	result := make([]Slot, len(slots))
	for i, slot := range slots {
		remaining := slot.Capacity - consumed[slot.StartTime]
		if remaining < 0 {
			remaining = 0
		}
		slot.RemainingCapacity = remaining
		result[i] = slot
	}

	return result
}

// SlotAligned reports whether start is a valid candidate start inside the
// window: covered by it and on the interval grid counted from the window
// start.
func (e *WeeklyScheduleEntry) SlotAligned(start types.TimeString, intervalMinutes int) (bool, error) {
	if !e.Covers(start) {
		return false, nil
	}

	startMin, err := start.TotalMinutes()
	if err != nil {
		return false, err
	}
	windowMin, err := e.StartTime.TotalMinutes()
	if err != nil {
		return false, err
	}

	return (startMin-windowMin)%intervalMinutes == 0, nil
}
