package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/types"
)

// BookingResponse представление бронирования для вызывающего слоя
type BookingResponse struct {
	ID            int64
	Reference     string
	BusinessID    int64
	ServiceID     int64
	Date          time.Time
	SlotStart     types.TimeString
	Status        string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	ServiceName  string
	ServicePrice decimal.Decimal

	DepositPaid       bool
	DepositReceiptRef *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse
	Total    int
}

// GetBusinessBookingsRequest запрос списка бронирований бизнеса
type GetBusinessBookingsRequest struct {
	BusinessID      int64
	Date            *time.Time
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует запрос в доменный фильтр
func (r *GetBusinessBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		BusinessID:      r.BusinessID,
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return domain.BookingsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainBookingStatus конвертирует строку в доменный статус
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled, domain.StatusNoShow:
		return domain.BookingStatus(status), nil
	default:
		return "", fmt.Errorf("unknown booking status: %q", status)
	}
}

// FromDomainBooking конвертирует доменное бронирование в ответ сервиса
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                b.ID,
		Reference:         b.Reference,
		BusinessID:        b.BusinessID,
		ServiceID:         b.ServiceID,
		Date:              b.Date,
		SlotStart:         b.SlotStart,
		Status:            string(b.Status),
		CustomerName:      b.Customer.Name,
		CustomerEmail:     b.Customer.Email,
		CustomerPhone:     b.Customer.Phone,
		ServiceName:       b.ServiceName,
		ServicePrice:      b.ServicePrice,
		DepositPaid:       b.DepositPaid,
		DepositReceiptRef: b.DepositReceiptRef,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список доменных бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}
