package create_booking

import (
	"time"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	createBooking "github.com/kmlvsk/SBS-BookingEngine/internal/usecase/create_booking"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BusinessID    int64  `json:"businessId"`
	ServiceID     int64  `json:"serviceId"`
	Date          string `json:"date"`      // "2026-09-14"
	SlotStart     string `json:"slotStart"` // "10:00"
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64  `json:"id"`
	Reference       string `json:"reference"`
	BusinessID      int64  `json:"businessId"`
	ServiceID       int64  `json:"serviceId"`
	Date            string `json:"date"`
	SlotStart       string `json:"slotStart"`
	Status          string `json:"status"`
	ServiceName     string `json:"serviceName"`
	ServicePrice    string `json:"servicePrice"`
	DepositRequired bool   `json:"depositRequired"`
	DepositAmount   string `json:"depositAmount,omitempty"`
	PaymentURL      string `json:"paymentUrl,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slotStart, err := types.NewTimeStringFromString(r.SlotStart)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		BusinessID:    r.BusinessID,
		ServiceID:     r.ServiceID,
		Date:          date,
		SlotStart:     slotStart,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:              resp.ID,
		Reference:       resp.Reference,
		BusinessID:      resp.BusinessID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		SlotStart:       resp.SlotStart.String(),
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice.String(),
		DepositRequired: resp.DepositRequired,
		PaymentURL:      resp.PaymentURL,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}

	if resp.DepositRequired {
		out.DepositAmount = resp.DepositAmount.String()
	}

	return out
}
