package occupancy

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	businessRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/business"
)

// Report занятость бизнеса на дату
type Report struct {
	BusinessID        int64
	Date              time.Time
	TotalCapacity     int // сумма вместимостей всех слотов дня
	ConfirmedBookings int
	OccupancyPercent  int // round(confirmed / total * 100), 0 при total = 0
	DateBlocked       bool
}

// Service калькулятор занятости по дням
type Service struct {
	businessRepo  BusinessRepository
	scheduleRepo  ScheduleRepository
	exceptionRepo ExceptionRepository
	bookingRepo   BookingRepository
	logger        Logger
}

// NewService создает новый экземпляр калькулятора занятости
func NewService(
	businessRepo BusinessRepository,
	scheduleRepo ScheduleRepository,
	exceptionRepo ExceptionRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		businessRepo:  businessRepo,
		scheduleRepo:  scheduleRepo,
		exceptionRepo: exceptionRepo,
		bookingRepo:   bookingRepo,
		logger:        logger,
	}
}

// GetDailyOccupancy считает занятость бизнеса на дату.
// Вместимость дня считается по сетке слотов с интервалом бизнеса
// (без учёта услуг); занятость считают только confirmed-бронирования.
// Заблокированная дата и день без расписания дают 0%
func (s *Service) GetDailyOccupancy(ctx context.Context, businessID int64, date time.Time) (*Report, error) {
	if businessID <= 0 {
		return nil, fmt.Errorf("%w: business_id must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	biz, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrBusinessNotFound, businessID)
		}
		s.logger.Error("GetDailyOccupancy: failed to get business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: get business: %v", ErrInternal, err)
	}

	report := &Report{BusinessID: businessID, Date: date}

	blocked, err := s.exceptionRepo.IsBlocked(ctx, businessID, date)
	if err != nil {
		s.logger.Error("GetDailyOccupancy: failed to check exceptions for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: check exceptions: %v", ErrInternal, err)
	}
	if blocked {
		report.DateBlocked = true
		return report, nil
	}

	entries, err := s.scheduleRepo.GetByBusinessAndWeekday(ctx, businessID, domain.WeekdayOf(date))
	if err != nil {
		s.logger.Error("GetDailyOccupancy: failed to get schedule for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: get schedule: %v", ErrInternal, err)
	}
	if len(entries) == 0 {
		return report, nil
	}

	slots, err := domain.GenerateSlots(entries, domain.EffectiveInterval(biz, nil))
	if err != nil {
		s.logger.Error("GetDailyOccupancy: failed to generate slots for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: generate slots: %v", ErrInternal, err)
	}
	for _, slot := range slots {
		report.TotalCapacity += slot.Capacity
	}

	confirmed, err := s.bookingRepo.CountConfirmedByDate(ctx, businessID, date)
	if err != nil {
		s.logger.Error("GetDailyOccupancy: failed to count bookings for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: count bookings: %v", ErrInternal, err)
	}
	report.ConfirmedBookings = confirmed

	if report.TotalCapacity > 0 {
		ratio := float64(confirmed) / float64(report.TotalCapacity)
		report.OccupancyPercent = int(math.Round(ratio * 100))
	}

	s.logger.Info("GetDailyOccupancy: business=%d date=%s occupancy=%d%% (%d/%d)",
		businessID, date.Format(domain.DateFormat), report.OccupancyPercent,
		confirmed, report.TotalCapacity)

	return report, nil
}
