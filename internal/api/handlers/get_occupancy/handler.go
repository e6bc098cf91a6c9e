package get_occupancy

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers"
	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	occupancyService "github.com/kmlvsk/SBS-BookingEngine/internal/service/occupancy"
)

const (
	msgInvalidParams    = "некорректные параметры запроса, ожидается date=YYYY-MM-DD"
	msgBusinessNotFound = "бизнес не найден"
)

type Handler struct {
	service OccupancyService
	logger  Logger
}

func NewHandler(service OccupancyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// OccupancyResponse HTTP response model
type OccupancyResponse struct {
	BusinessID        int64  `json:"businessId"`
	Date              string `json:"date"`
	TotalCapacity     int    `json:"totalCapacity"`
	ConfirmedBookings int    `json:"confirmedBookings"`
	OccupancyPercent  int    `json:"occupancyPercent"`
	DateBlocked       bool   `json:"dateBlocked,omitempty"`
}

// Handle GET /api/v1/businesses/{businessId}/occupancy?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/occupancy - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/occupancy - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	report, err := h.service.GetDailyOccupancy(r.Context(), businessID, date)
	if err != nil {
		switch {
		case errors.Is(err, occupancyService.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/occupancy - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, occupancyService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /businesses/{id}/occupancy - Failed: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &OccupancyResponse{
		BusinessID:        report.BusinessID,
		Date:              report.Date.Format(domain.DateFormat),
		TotalCapacity:     report.TotalCapacity,
		ConfirmedBookings: report.ConfirmedBookings,
		OccupancyPercent:  report.OccupancyPercent,
		DateBlocked:       report.DateBlocked,
	})
}
