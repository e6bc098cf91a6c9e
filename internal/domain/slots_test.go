package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/types"
)

func entry(weekday domain.Weekday, start, end string, capacity int) *domain.WeeklyScheduleEntry {
	return &domain.WeeklyScheduleEntry{
		Weekday:         weekday,
		StartTime:       types.TimeString(start),
		EndTime:         types.TimeString(end),
		CapacityPerSlot: capacity,
	}
}

func slotStarts(slots []domain.Slot) []string {
	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartTime.String())
	}
	return starts
}

func TestGenerateSlots(t *testing.T) {
	t.Run("single window half hour interval", func(t *testing.T) {
		slots, err := domain.GenerateSlots([]*domain.WeeklyScheduleEntry{
			entry(domain.Monday, "09:00", "12:00", 2),
		}, 30)
		require.NoError(t, err)

		assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, slotStarts(slots))
		for _, s := range slots {
			assert.Equal(t, 2, s.Capacity)
			assert.Equal(t, 2, s.RemainingCapacity)
			assert.Equal(t, 30, s.DurationMinutes)
		}
	})

	t.Run("window end bounds starts not ends", func(t *testing.T) {
		// 10:30 начинается до конца окна, хотя длится за его пределы
		slots, err := domain.GenerateSlots([]*domain.WeeklyScheduleEntry{
			entry(domain.Tuesday, "10:00", "11:00", 1),
		}, 45)
		require.NoError(t, err)

		assert.Equal(t, []string{"10:00", "10:45"}, slotStarts(slots))
	})

	t.Run("multiple windows merged in ascending order", func(t *testing.T) {
		slots, err := domain.GenerateSlots([]*domain.WeeklyScheduleEntry{
			entry(domain.Monday, "14:00", "15:00", 1),
			entry(domain.Monday, "09:00", "10:00", 3),
		}, 30)
		require.NoError(t, err)

		assert.Equal(t, []string{"09:00", "09:30", "14:00", "14:30"}, slotStarts(slots))
		assert.Equal(t, 3, slots[0].Capacity)
		assert.Equal(t, 1, slots[2].Capacity)
	})

	t.Run("walk stops on midnight wrap", func(t *testing.T) {
		slots, err := domain.GenerateSlots([]*domain.WeeklyScheduleEntry{
			entry(domain.Sunday, "23:00", "23:59", 1),
		}, 30)
		require.NoError(t, err)

		// 23:30 + 30 оборачивается в 00:00, обход окна прекращается
		assert.Equal(t, []string{"23:00", "23:30"}, slotStarts(slots))
	})

	t.Run("no entries yields empty slice", func(t *testing.T) {
		slots, err := domain.GenerateSlots(nil, 30)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}

func TestApplyConsumption(t *testing.T) {
	slots := []domain.Slot{
		{StartTime: "09:00", Capacity: 2, RemainingCapacity: 2},
		{StartTime: "09:30", Capacity: 2, RemainingCapacity: 2},
		{StartTime: "10:00", Capacity: 1, RemainingCapacity: 1},
	}

	bookings := []*domain.Booking{
		{SlotStart: "09:00", Status: domain.StatusConfirmed},
		{SlotStart: "09:00", Status: domain.StatusPending},
		{SlotStart: "09:30", Status: domain.StatusCancelled},
		{SlotStart: "09:30", Status: domain.StatusNoShow},
		{SlotStart: "10:00", Status: domain.StatusConfirmed},
		{SlotStart: "10:00", Status: domain.StatusConfirmed}, // исторический перебук
	}

	result := domain.ApplyConsumption(slots, bookings)
	require.Len(t, result, 3)

	assert.Equal(t, 0, result[0].RemainingCapacity)
	assert.True(t, result[0].IsFull())

	// cancelled и no_show место не занимают
	assert.Equal(t, 2, result[1].RemainingCapacity)
	assert.True(t, result[1].IsBookable())

	// остаток не уходит в минус
	assert.Equal(t, 0, result[2].RemainingCapacity)
}

func TestEffectiveInterval(t *testing.T) {
	biz := &domain.Business{SlotIntervalMinutes: 30}

	t.Run("nil service uses business default", func(t *testing.T) {
		assert.Equal(t, 30, domain.EffectiveInterval(biz, nil))
	})

	t.Run("short service keeps business interval", func(t *testing.T) {
		svc := &domain.Service{DurationMinutes: 15}
		assert.Equal(t, 30, domain.EffectiveInterval(biz, svc))
	})

	t.Run("long service stretches interval", func(t *testing.T) {
		svc := &domain.Service{DurationMinutes: 90}
		assert.Equal(t, 90, domain.EffectiveInterval(biz, svc))
	})

	t.Run("unset business interval falls back to default", func(t *testing.T) {
		assert.Equal(t, domain.DefaultSlotIntervalMinutes, domain.EffectiveInterval(&domain.Business{}, nil))
	})
}

func TestWeeklyScheduleEntry_SlotAligned(t *testing.T) {
	e := entry(domain.Monday, "09:00", "12:00", 1)

	tests := []struct {
		name  string
		start string
		want  bool
	}{
		{name: "window start", start: "09:00", want: true},
		{name: "on grid", start: "10:30", want: true},
		{name: "off grid", start: "09:15", want: false},
		{name: "before window", start: "08:30", want: false},
		{name: "at window end", start: "12:00", want: false},
		{name: "after window", start: "13:00", want: false},
		{name: "last aligned start", start: "11:30", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aligned, err := e.SlotAligned(types.TimeString(tt.start), 30)
			require.NoError(t, err)
			assert.Equal(t, tt.want, aligned)
		})
	}
}

func TestWeeklyScheduleEntry_OverlapsWith(t *testing.T) {
	a := entry(domain.Monday, "09:00", "10:00", 1)

	assert.True(t, a.OverlapsWith(entry(domain.Monday, "09:30", "10:30", 1)))
	assert.True(t, a.OverlapsWith(entry(domain.Monday, "08:00", "09:01", 1)))
	// касание границ пересечением не считается
	assert.False(t, a.OverlapsWith(entry(domain.Monday, "10:00", "11:00", 1)))
	assert.False(t, a.OverlapsWith(entry(domain.Monday, "08:00", "09:00", 1)))
}
