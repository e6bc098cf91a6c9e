package transition_booking

import (
	"time"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	"github.com/kmlvsk/SBS-BookingEngine/internal/service/bookings/models"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	Status string `json:"status"` // "confirmed", "cancelled", "no_show"
}

// BookingResponse HTTP response model
type BookingResponse struct {
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

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.BookingResponse) *BookingResponse {
	return &BookingResponse{
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
