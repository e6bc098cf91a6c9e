package delete_exception

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers"
	scheduleService "github.com/kmlvsk/SBS-BookingEngine/internal/service/schedule"
)

const (
	msgInvalidIDs        = "некорректный ID бизнеса или блокировки"
	msgExceptionNotFound = "блокировка даты не найдена"
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

// Handle DELETE /api/v1/businesses/{businessId}/blocked-dates/{exceptionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/blocked-dates/{exceptionId} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIDs)
		return
	}

	exceptionID, err := strconv.ParseInt(vars["exceptionId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/blocked-dates/{exceptionId} - Invalid exception ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIDs)
		return
	}

	if err := h.service.DeleteException(r.Context(), businessID, exceptionID); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrExceptionNotFound):
			h.logger.Warn("DELETE /businesses/{id}/blocked-dates/{exceptionId} - Not found: business_id=%d, exception_id=%d",
				businessID, exceptionID)
			handlers.RespondNotFound(w, msgExceptionNotFound)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidIDs)

		default:
			h.logger.Error("DELETE /businesses/{id}/blocked-dates/{exceptionId} - Failed: business_id=%d, exception_id=%d, error=%v",
				businessID, exceptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{id}/blocked-dates/{exceptionId} - Deleted: business_id=%d, exception_id=%d",
		businessID, exceptionID)
	handlers.RespondNoContent(w)
}
