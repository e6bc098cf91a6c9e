package get_booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers"
	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	bookingsService "github.com/kmlvsk/SBS-BookingEngine/internal/service/bookings"
	"github.com/kmlvsk/SBS-BookingEngine/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgBookingNotFound  = "бронирование не найдено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		h.respondError(w, err, strconv.FormatInt(bookingID, 10))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, toResponse(result))
}

// HandleByReference GET /api/v1/bookings/ref/{reference}
// Публичный роут: клиент смотрит своё бронирование по ссылке из письма
func (h *Handler) HandleByReference(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reference := vars["reference"]

	result, err := h.service.GetByReference(r.Context(), reference)
	if err != nil {
		h.respondError(w, err, reference)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, toResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, err error, id string) {
	switch {
	case errors.Is(err, bookingsService.ErrBookingNotFound):
		h.logger.Warn("GET /bookings - Booking not found: id=%s", id)
		handlers.RespondNotFound(w, msgBookingNotFound)

	case errors.Is(err, bookingsService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidBookingID)

	default:
		h.logger.Error("GET /bookings - Failed: id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
	}
}

type bookingResponse struct {
	ID            int64   `json:"id"`
	Reference     string  `json:"reference"`
	BusinessID    int64   `json:"businessId"`
	ServiceID     int64   `json:"serviceId"`
	Date          string  `json:"date"`
	SlotStart     string  `json:"slotStart"`
	Status        string  `json:"status"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	ServiceName   string  `json:"serviceName"`
	ServicePrice  string  `json:"servicePrice"`
	DepositPaid   bool    `json:"depositPaid"`
	DepositRef    *string `json:"depositReceiptRef,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func toResponse(resp *models.BookingResponse) *bookingResponse {
	return &bookingResponse{
		ID:            resp.ID,
		Reference:     resp.Reference,
		BusinessID:    resp.BusinessID,
		ServiceID:     resp.ServiceID,
		Date:          resp.Date.Format(domain.DateFormat),
		SlotStart:     resp.SlotStart.String(),
		Status:        resp.Status,
		CustomerName:  resp.CustomerName,
		CustomerEmail: resp.CustomerEmail,
		CustomerPhone: resp.CustomerPhone,
		ServiceName:   resp.ServiceName,
		ServicePrice:  resp.ServicePrice.String(),
		DepositPaid:   resp.DepositPaid,
		DepositRef:    resp.DepositReceiptRef,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
