package block_dates

import (
	"strconv"
	"time"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	blockDate "github.com/kmlvsk/SBS-BookingEngine/internal/usecase/block_date"
)

// BlockDatesRequest HTTP request model.
// EndDate опционален: пустое значение блокирует один день StartDate
type BlockDatesRequest struct {
	StartDate string  `json:"startDate"` // "2026-09-14"
	EndDate   string  `json:"endDate,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// BlockedDateResponse HTTP модель одной заблокированной даты
type BlockedDateResponse struct {
	ID     int64   `json:"id"`
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

// BlockDatesResponse HTTP response model
type BlockDatesResponse struct {
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BlockDatesRequest) ToUseCaseRequest(businessIDStr string) (*blockDate.Request, error) {
	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		return nil, err
	}

	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate := startDate
	if r.EndDate != "" {
		endDate, err = time.Parse(domain.DateFormat, r.EndDate)
		if err != nil {
			return nil, err
		}
	}

	return &blockDate.Request{
		BusinessID: businessID,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     r.Reason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *blockDate.Response) *BlockDatesResponse {
	out := &BlockDatesResponse{
		BlockedDates: make([]BlockedDateResponse, 0, len(resp.BlockedDates)),
	}

	for _, blocked := range resp.BlockedDates {
		out.BlockedDates = append(out.BlockedDates, BlockedDateResponse{
			ID:     blocked.ID,
			Date:   blocked.Date.Format(domain.DateFormat),
			Reason: blocked.Reason,
		})
	}

	return out
}
