package domain

import (
	"time"

	"github.com/kmlvsk/SBS-BookingEngine/pkg/types"
)

// WeeklyScheduleEntry is a recurring availability window on one weekday.
// Entries on the same weekday must not overlap (enforced at creation, not
// just in the UI). There is no update-in-place: delete and recreate.
type WeeklyScheduleEntry struct {
	ID              int64
	BusinessID      int64
	Weekday         Weekday
	StartTime       types.TimeString // start < end, both on a minute grid
	EndTime         types.TimeString
	CapacityPerSlot int // positive, default 1

	CreatedAt time.Time
}

// Covers reports whether a slot starting at start falls inside the window,
// half-open: StartTime <= start < EndTime.
func (e *WeeklyScheduleEntry) Covers(start types.TimeString) bool {
	return !start.IsBefore(e.StartTime) && start.IsBefore(e.EndTime)
}

// OverlapsWith reports whether two windows intersect under half-open
// semantics. Windows that merely touch at a boundary do not overlap.
func (e *WeeklyScheduleEntry) OverlapsWith(other *WeeklyScheduleEntry) bool {
	return types.Overlaps(e.StartTime, e.EndTime, other.StartTime, other.EndTime)
}
