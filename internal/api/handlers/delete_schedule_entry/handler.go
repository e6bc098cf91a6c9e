package delete_schedule_entry

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers"
	scheduleService "github.com/kmlvsk/SBS-BookingEngine/internal/service/schedule"
)

const (
	msgInvalidIDs    = "некорректный ID бизнеса или окна расписания"
	msgEntryNotFound = "окно расписания не найдено"
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

// Handle DELETE /api/v1/businesses/{businessId}/schedule/{entryId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/schedule/{entryId} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIDs)
		return
	}

	entryID, err := strconv.ParseInt(vars["entryId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/schedule/{entryId} - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIDs)
		return
	}

	if err := h.service.DeleteEntry(r.Context(), businessID, entryID); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrEntryNotFound):
			h.logger.Warn("DELETE /businesses/{id}/schedule/{entryId} - Entry not found: business_id=%d, entry_id=%d",
				businessID, entryID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidIDs)

		default:
			h.logger.Error("DELETE /businesses/{id}/schedule/{entryId} - Failed: business_id=%d, entry_id=%d, error=%v",
				businessID, entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{id}/schedule/{entryId} - Deleted: business_id=%d, entry_id=%d",
		businessID, entryID)
	handlers.RespondNoContent(w)
}
