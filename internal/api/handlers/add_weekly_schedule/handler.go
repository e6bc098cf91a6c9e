package add_weekly_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers"
	addWeeklySchedule "github.com/kmlvsk/SBS-BookingEngine/internal/usecase/add_weekly_schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBusinessNotFound   = "бизнес не найден"
	msgScheduleOverlap    = "окна расписания пересекаются"
)

type Handler struct {
	useCase AddWeeklyScheduleUseCase
	logger  Logger
}

func NewHandler(useCase AddWeeklyScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req AddScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(vars["businessId"])
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/schedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, addWeeklySchedule.ErrScheduleOverlap):
			// Текст ошибки называет конкретное пересечение
			h.logger.Warn("POST /businesses/{id}/schedule - Overlap: business_id=%d, %v",
				useCaseReq.BusinessID, err)
			handlers.RespondError(w, http.StatusConflict, msgScheduleOverlap+": "+err.Error())

		case errors.Is(err, addWeeklySchedule.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/schedule - Business not found: business_id=%d",
				useCaseReq.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, addWeeklySchedule.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /businesses/{id}/schedule - Failed: business_id=%d, error=%v",
				useCaseReq.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/schedule - Created %d entries: business_id=%d",
		len(result.Entries), useCaseReq.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
