package add_weekly_schedule

import (
	"fmt"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
)

const maxEntriesPerRequest = 50

// validateRequest валидация входных данных запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: business_id must be positive", ErrInvalidInput)
	}

	if len(req.Entries) == 0 {
		return fmt.Errorf("%w: at least one entry is required", ErrInvalidInput)
	}
	if len(req.Entries) > maxEntriesPerRequest {
		return fmt.Errorf("%w: too many entries (max %d)", ErrInvalidInput, maxEntriesPerRequest)
	}

	for i, entry := range req.Entries {
		if err := validateEntry(entry); err != nil {
			return fmt.Errorf("%w: entry %d: %v", ErrInvalidInput, i, err)
		}
	}

	return nil
}

func validateEntry(entry EntryInput) error {
	if len(entry.Weekdays) == 0 {
		return fmt.Errorf("at least one weekday is required")
	}

	seen := make(map[string]struct{}, len(entry.Weekdays))
	for _, day := range entry.Weekdays {
		if _, err := domain.ParseWeekday(day); err != nil {
			return err
		}
		if _, ok := seen[day]; ok {
			return fmt.Errorf("duplicate weekday %q", day)
		}
		seen[day] = struct{}{}
	}

	if err := entry.StartTime.Validate(); err != nil {
		return fmt.Errorf("start_time: %v", err)
	}
	if err := entry.EndTime.Validate(); err != nil {
		return fmt.Errorf("end_time: %v", err)
	}
	if !entry.StartTime.IsBefore(entry.EndTime) {
		return fmt.Errorf("start_time %s must be before end_time %s", entry.StartTime, entry.EndTime)
	}

	if entry.CapacityPerSlot < 0 || entry.CapacityPerSlot > domain.MaxCapacityPerSlot {
		return fmt.Errorf("capacity_per_slot must be between %d and %d, or 0 for the default",
			domain.MinCapacityPerSlot, domain.MaxCapacityPerSlot)
	}

	return nil
}
