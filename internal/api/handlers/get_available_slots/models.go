package get_available_slots

import (
	"strconv"
	"time"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	getAvailableSlots "github.com/kmlvsk/SBS-BookingEngine/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartTime         string `json:"startTime"`
	DurationMinutes   int    `json:"durationMinutes"`
	RemainingCapacity int    `json:"remainingCapacity"`
	Capacity          int    `json:"capacity"`
	Bookable          bool   `json:"bookable"`
}

// AvailableSlotsResponse HTTP модель ответа
type AvailableSlotsResponse struct {
	BusinessID int64          `json:"businessId"`
	Date       string         `json:"date"`
	ServiceID  *int64         `json:"serviceId,omitempty"`
	Slots      []SlotResponse `json:"slots"`
}

// ToUseCaseRequest собирает запрос use case из параметров URL
func ToUseCaseRequest(businessIDStr, dateStr, serviceIDStr string) (*getAvailableSlots.Request, error) {
	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		BusinessID: businessID,
		Date:       date,
	}

	if serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ServiceID = &serviceID
	}

	return req, nil
}

// ToUseCaseRequestBySlug собирает запрос use case для адресации по slug
func ToUseCaseRequestBySlug(slug, dateStr, serviceIDStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		BusinessSlug: slug,
		Date:         date,
	}

	if serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ServiceID = &serviceID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		BusinessID: resp.BusinessID,
		Date:       resp.Date.Format(domain.DateFormat),
		ServiceID:  resp.ServiceID,
		Slots:      make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartTime:         slot.StartTime.String(),
			DurationMinutes:   slot.DurationMinutes,
			RemainingCapacity: slot.RemainingCapacity,
			Capacity:          slot.Capacity,
			Bookable:          slot.Bookable,
		})
	}

	return out
}
