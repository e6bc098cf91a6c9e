package get_business_bookings

import (
	"strconv"
	"time"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	"github.com/kmlvsk/SBS-BookingEngine/internal/service/bookings/models"
)

// BookingResponse HTTP модель бронирования в списке
type BookingResponse struct {
	ID            int64  `json:"id"`
	Reference     string `json:"reference"`
	ServiceID     int64  `json:"serviceId"`
	Date          string `json:"date"`
	SlotStart     string `json:"slotStart"`
	Status        string `json:"status"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	ServiceName   string `json:"serviceName"`
	ServicePrice  string `json:"servicePrice"`
	DepositPaid   bool   `json:"depositPaid"`
	CreatedAt     string `json:"createdAt"`
}

// BookingListResponse HTTP response model
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// ToServiceRequest собирает запрос сервиса из параметров URL.
// dateStr, statusStr и includeInactiveStr опциональны
func ToServiceRequest(businessIDStr, dateStr, statusStr, includeInactiveStr string) (*models.GetBusinessBookingsRequest, error) {
	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		return nil, err
	}

	req := &models.GetBusinessBookingsRequest{BusinessID: businessID}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.BookingListResponse) *BookingListResponse {
	out := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(resp.Bookings)),
		Total:    resp.Total,
	}

	for _, b := range resp.Bookings {
		out.Bookings = append(out.Bookings, BookingResponse{
			ID:            b.ID,
			Reference:     b.Reference,
			ServiceID:     b.ServiceID,
			Date:          b.Date.Format(domain.DateFormat),
			SlotStart:     b.SlotStart.String(),
			Status:        b.Status,
			CustomerName:  b.CustomerName,
			CustomerEmail: b.CustomerEmail,
			ServiceName:   b.ServiceName,
			ServicePrice:  b.ServicePrice.String(),
			DepositPaid:   b.DepositPaid,
			CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		})
	}

	return out
}
