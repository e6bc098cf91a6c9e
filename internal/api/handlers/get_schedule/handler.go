package get_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers"
	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	scheduleService "github.com/kmlvsk/SBS-BookingEngine/internal/service/schedule"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgBusinessNotFound  = "бизнес не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/schedule - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Блокировки возвращаются начиная с сегодняшнего дня
	result, err := h.service.GetSchedule(r.Context(), businessID, time.Now().Truncate(24*time.Hour))
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/schedule - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		default:
			h.logger.Error("GET /businesses/{id}/schedule - Failed: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

// ScheduleEntryResponse HTTP модель окна расписания
type ScheduleEntryResponse struct {
	ID              int64  `json:"id"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	CapacityPerSlot int    `json:"capacityPerSlot"`
}

// WeekdayScheduleResponse окна одного дня недели
type WeekdayScheduleResponse struct {
	Weekday string                  `json:"weekday"`
	Entries []ScheduleEntryResponse `json:"entries"`
}

// ExceptionResponse HTTP модель блокировки даты
type ExceptionResponse struct {
	ID     int64   `json:"id"`
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	BusinessID int64                     `json:"businessId"`
	Weekdays   []WeekdayScheduleResponse `json:"weekdays"`
	Exceptions []ExceptionResponse       `json:"exceptions"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *scheduleService.ScheduleResponse) *ScheduleResponse {
	out := &ScheduleResponse{
		BusinessID: resp.BusinessID,
		Weekdays:   make([]WeekdayScheduleResponse, 0, len(resp.Weekdays)),
		Exceptions: make([]ExceptionResponse, 0, len(resp.Exceptions)),
	}

	for _, day := range resp.Weekdays {
		entries := make([]ScheduleEntryResponse, 0, len(day.Entries))
		for _, entry := range day.Entries {
			entries = append(entries, ScheduleEntryResponse{
				ID:              entry.ID,
				StartTime:       entry.StartTime.String(),
				EndTime:         entry.EndTime.String(),
				CapacityPerSlot: entry.CapacityPerSlot,
			})
		}
		out.Weekdays = append(out.Weekdays, WeekdayScheduleResponse{
			Weekday: string(day.Weekday),
			Entries: entries,
		})
	}

	for _, exc := range resp.Exceptions {
		out.Exceptions = append(out.Exceptions, ExceptionResponse{
			ID:     exc.ID,
			Date:   exc.Date.Format(domain.DateFormat),
			Reason: exc.Reason,
		})
	}

	return out
}
