package block_dates

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers"
	blockDate "github.com/kmlvsk/SBS-BookingEngine/internal/usecase/block_date"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBusinessNotFound   = "бизнес не найден"
	msgInvalidRange       = "некорректный диапазон дат"
)

type Handler struct {
	useCase BlockDateUseCase
	logger  Logger
}

func NewHandler(useCase BlockDateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req BlockDatesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(vars["businessId"])
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/blocked-dates - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, blockDate.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/blocked-dates - Business not found: business_id=%d",
				useCaseReq.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, blockDate.ErrInvalidRange):
			h.logger.Warn("POST /businesses/{id}/blocked-dates - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, blockDate.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/blocked-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /businesses/{id}/blocked-dates - Failed: business_id=%d, error=%v",
				useCaseReq.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/blocked-dates - Blocked %d dates: business_id=%d",
		len(result.BlockedDates), useCaseReq.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
