package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	businessRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/business"
	exceptionRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/exception"
	scheduleRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/schedule"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/types"
)

// WeekdaySchedule окна одного дня недели
type WeekdaySchedule struct {
	Weekday domain.Weekday
	Entries []EntryView
}

// EntryView представление окна расписания
type EntryView struct {
	ID              int64
	StartTime       types.TimeString
	EndTime         types.TimeString
	CapacityPerSlot int
}

// ExceptionView представление блокировки даты
type ExceptionView struct {
	ID     int64
	Date   time.Time
	Reason *string
}

// ScheduleResponse недельное расписание бизнеса с блокировками дат
type ScheduleResponse struct {
	BusinessID int64
	Weekdays   []WeekdaySchedule
	Exceptions []ExceptionView
}

// Service чтение и удаление элементов расписания
type Service struct {
	businessRepo  BusinessRepository
	scheduleRepo  ScheduleRepository
	exceptionRepo ExceptionRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	businessRepo BusinessRepository,
	scheduleRepo ScheduleRepository,
	exceptionRepo ExceptionRepository,
	logger Logger,
) *Service {
	return &Service{
		businessRepo:  businessRepo,
		scheduleRepo:  scheduleRepo,
		exceptionRepo: exceptionRepo,
		logger:        logger,
	}
}

// GetSchedule возвращает полное недельное расписание бизнеса
// и будущие блокировки дат, сгруппированные по дням недели
func (s *Service) GetSchedule(ctx context.Context, businessID int64, exceptionsFrom time.Time) (*ScheduleResponse, error) {
	if businessID <= 0 {
		return nil, fmt.Errorf("%w: business_id must be positive", ErrInvalidInput)
	}

	if _, err := s.businessRepo.GetByID(ctx, businessID); err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrBusinessNotFound, businessID)
		}
		s.logger.Error("GetSchedule: failed to get business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: get business: %v", ErrInternal, err)
	}

	entries, err := s.scheduleRepo.GetByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("GetSchedule: failed to get entries for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: get entries: %v", ErrInternal, err)
	}

	exceptions, err := s.exceptionRepo.GetByBusiness(ctx, businessID, exceptionsFrom)
	if err != nil {
		s.logger.Error("GetSchedule: failed to get exceptions for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: get exceptions: %v", ErrInternal, err)
	}

	resp := &ScheduleResponse{
		BusinessID: businessID,
		Weekdays:   make([]WeekdaySchedule, 0, len(domain.AllWeekdays)),
		Exceptions: make([]ExceptionView, 0, len(exceptions)),
	}

	byWeekday := make(map[domain.Weekday][]EntryView)
	for _, entry := range entries {
		byWeekday[entry.Weekday] = append(byWeekday[entry.Weekday], EntryView{
			ID:              entry.ID,
			StartTime:       entry.StartTime,
			EndTime:         entry.EndTime,
			CapacityPerSlot: entry.CapacityPerSlot,
		})
	}
	// Дни возвращаются в порядке недели, пустые дни опускаются
	for _, weekday := range domain.AllWeekdays {
		if views, ok := byWeekday[weekday]; ok {
			resp.Weekdays = append(resp.Weekdays, WeekdaySchedule{Weekday: weekday, Entries: views})
		}
	}

	for _, exc := range exceptions {
		resp.Exceptions = append(resp.Exceptions, ExceptionView{
			ID:     exc.ID,
			Date:   exc.Date,
			Reason: exc.Reason,
		})
	}

	return resp, nil
}

// DeleteEntry удаляет окно расписания. Уже созданные бронирования
// на слоты этого окна остаются нетронутыми
func (s *Service) DeleteEntry(ctx context.Context, businessID, entryID int64) error {
	if businessID <= 0 || entryID <= 0 {
		return fmt.Errorf("%w: business_id and entry_id must be positive", ErrInvalidInput)
	}

	if err := s.scheduleRepo.Delete(ctx, businessID, entryID); err != nil {
		if errors.Is(err, scheduleRepo.ErrEntryNotFound) {
			s.logger.Warn("DeleteEntry: entry id=%d not found for business=%d", entryID, businessID)
			return ErrEntryNotFound
		}
		s.logger.Error("DeleteEntry: failed to delete entry id=%d: %v", entryID, err)
		return fmt.Errorf("%w: delete entry: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteEntry: deleted entry id=%d for business=%d", entryID, businessID)
	return nil
}

// DeleteException снимает блокировку даты
func (s *Service) DeleteException(ctx context.Context, businessID, exceptionID int64) error {
	if businessID <= 0 || exceptionID <= 0 {
		return fmt.Errorf("%w: business_id and exception_id must be positive", ErrInvalidInput)
	}

	if err := s.exceptionRepo.Delete(ctx, businessID, exceptionID); err != nil {
		if errors.Is(err, exceptionRepo.ErrExceptionNotFound) {
			s.logger.Warn("DeleteException: exception id=%d not found for business=%d", exceptionID, businessID)
			return ErrExceptionNotFound
		}
		s.logger.Error("DeleteException: failed to delete exception id=%d: %v", exceptionID, err)
		return fmt.Errorf("%w: delete exception: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteException: deleted exception id=%d for business=%d", exceptionID, businessID)
	return nil
}
