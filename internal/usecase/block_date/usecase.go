package block_date

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	"github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/business"
)

// MaxRangeDays максимальная длина блокируемого диапазона
const MaxRangeDays = 366

// UseCase блокировка диапазона дат целиком
type UseCase struct {
	businessRepo  BusinessRepository
	exceptionRepo ExceptionRepository
	txManager     TransactionManager
	logger        Logger
}

func NewUseCase(
	businessRepo BusinessRepository,
	exceptionRepo ExceptionRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo:  businessRepo,
		exceptionRepo: exceptionRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute блокирует каждый день диапазона [StartDate, EndDate] включительно.
// Вставка выполняется в транзакции: либо блокируется весь диапазон, либо ничего.
// Существующие бронирования на заблокированные даты остаются нетронутыми
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("[block_date] starting: businessID=%d, range=%s..%s",
		req.BusinessID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("[block_date] validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование бизнеса
	if _, err := uc.businessRepo.GetByID(ctx, req.BusinessID); err != nil {
		if errors.Is(err, business.ErrBusinessNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrBusinessNotFound, req.BusinessID)
		}
		uc.logger.Error("[block_date] failed to get business: %v", err)
		return nil, fmt.Errorf("%w: get business: %v", ErrInternal, err)
	}

	// 3. Вставляем все дни диапазона атомарно
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		return uc.exceptionRepo.CreateRange(txCtx, req.BusinessID, req.StartDate, req.EndDate, req.Reason)
	})
	if err != nil {
		uc.logger.Error("[block_date] failed to block range: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Перечитываем заблокированные даты, чтобы вернуть их с ID
	all, err := uc.exceptionRepo.GetByBusiness(ctx, req.BusinessID, req.StartDate)
	if err != nil {
		uc.logger.Error("[block_date] failed to re-read blocked dates: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp := &Response{BlockedDates: make([]BlockedDate, 0)}
	for _, exc := range all {
		if exc.Date.After(req.EndDate) {
			continue
		}
		resp.BlockedDates = append(resp.BlockedDates, BlockedDate{
			ID:     exc.ID,
			Date:   exc.Date,
			Reason: exc.Reason,
		})
	}

	uc.logger.Info("[block_date] blocked %d dates for businessID=%d",
		len(resp.BlockedDates), req.BusinessID)

	return resp, nil
}

// validateRequest валидация входных данных запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: business_id must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: end_date %s is before start_date %s", ErrInvalidRange,
			req.EndDate.Format(domain.DateFormat), req.StartDate.Format(domain.DateFormat))
	}

	if req.EndDate.Sub(req.StartDate).Hours() > 24*MaxRangeDays {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, MaxRangeDays)
	}

	if req.Reason != nil {
		reason := strings.TrimSpace(*req.Reason)
		if len(reason) > domain.MaxReasonLength {
			return fmt.Errorf("%w: reason too long (max %d)", ErrInvalidInput, domain.MaxReasonLength)
		}
	}

	return nil
}
