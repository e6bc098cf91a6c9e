package add_weekly_schedule

import (
	"strconv"
	"time"

	addWeeklySchedule "github.com/kmlvsk/SBS-BookingEngine/internal/usecase/add_weekly_schedule"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/types"
)

// ScheduleEntryRequest HTTP модель одного окна в запросе
type ScheduleEntryRequest struct {
	Weekdays        []string `json:"weekdays"`  // ["monday", "wednesday"]
	StartTime       string   `json:"startTime"` // "09:00"
	EndTime         string   `json:"endTime"`   // "13:00"
	CapacityPerSlot int      `json:"capacityPerSlot,omitempty"`
}

// AddScheduleRequest HTTP request model
type AddScheduleRequest struct {
	Entries []ScheduleEntryRequest `json:"entries"`
}

// ScheduleEntryResponse HTTP модель созданного окна
type ScheduleEntryResponse struct {
	ID              int64  `json:"id"`
	Weekday         string `json:"weekday"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	CapacityPerSlot int    `json:"capacityPerSlot"`
	CreatedAt       string `json:"createdAt"`
}

// AddScheduleResponse HTTP response model
type AddScheduleResponse struct {
	Entries []ScheduleEntryResponse `json:"entries"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AddScheduleRequest) ToUseCaseRequest(businessIDStr string) (*addWeeklySchedule.Request, error) {
	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		return nil, err
	}

	entries := make([]addWeeklySchedule.EntryInput, 0, len(r.Entries))
	for _, entry := range r.Entries {
		startTime, err := types.NewTimeStringFromString(entry.StartTime)
		if err != nil {
			return nil, err
		}
		endTime, err := types.NewTimeStringFromString(entry.EndTime)
		if err != nil {
			return nil, err
		}
		entries = append(entries, addWeeklySchedule.EntryInput{
			Weekdays:        entry.Weekdays,
			StartTime:       startTime,
			EndTime:         endTime,
			CapacityPerSlot: entry.CapacityPerSlot,
		})
	}

	return &addWeeklySchedule.Request{
		BusinessID: businessID,
		Entries:    entries,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *addWeeklySchedule.Response) *AddScheduleResponse {
	out := &AddScheduleResponse{
		Entries: make([]ScheduleEntryResponse, 0, len(resp.Entries)),
	}

	for _, entry := range resp.Entries {
		out.Entries = append(out.Entries, ScheduleEntryResponse{
			ID:              entry.ID,
			Weekday:         string(entry.Weekday),
			StartTime:       entry.StartTime.String(),
			EndTime:         entry.EndTime.String(),
			CapacityPerSlot: entry.CapacityPerSlot,
			CreatedAt:       entry.CreatedAt.Format(time.RFC3339),
		})
	}

	return out
}
