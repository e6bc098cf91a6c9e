package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers"
	getAvailableSlots "github.com/kmlvsk/SBS-BookingEngine/internal/usecase/get_available_slots"
)

const (
	msgInvalidParams    = "некорректные параметры запроса, ожидается date=YYYY-MM-DD"
	msgBusinessNotFound = "бизнес не найден"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/available-slots?date=YYYY-MM-DD&serviceId=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	req, err := ToUseCaseRequest(
		vars["businessId"],
		r.URL.Query().Get("date"),
		r.URL.Query().Get("serviceId"),
	)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/available-slots - Business not found: business_id=%d", req.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /businesses/{id}/available-slots - Service not found: business_id=%d", req.BusinessID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /businesses/{id}/available-slots - Failed: business_id=%d, error=%v",
				req.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleBySlug GET /api/v1/b/{businessSlug}/available-slots?date=YYYY-MM-DD&serviceId=N
// Публичный роут страницы бронирования: бизнес адресуется по slug
func (h *Handler) HandleBySlug(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	req, err := ToUseCaseRequestBySlug(
		vars["businessSlug"],
		r.URL.Query().Get("date"),
		r.URL.Query().Get("serviceId"),
	)
	if err != nil {
		h.logger.Warn("GET /b/{slug}/available-slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrBusinessNotFound):
			h.logger.Warn("GET /b/{slug}/available-slots - Business not found: slug=%s", req.BusinessSlug)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /b/{slug}/available-slots - Service not found: slug=%s", req.BusinessSlug)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /b/{slug}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /b/{slug}/available-slots - Failed: slug=%s, error=%v",
				req.BusinessSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
