package add_weekly_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	"github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/business"
)

// UseCase добавление окон недельного расписания
type UseCase struct {
	businessRepo BusinessRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

func NewUseCase(
	businessRepo BusinessRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo: businessRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute атомарно добавляет окна расписания:
// при пересечении любого нового окна с существующим (или с другим новым)
// не сохраняется ни одно окно из запроса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("[add_weekly_schedule] starting: businessID=%d, entries=%d",
		req.BusinessID, len(req.Entries))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("[add_weekly_schedule] validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование бизнеса
	if _, err := uc.businessRepo.GetByID(ctx, req.BusinessID); err != nil {
		if errors.Is(err, business.ErrBusinessNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrBusinessNotFound, req.BusinessID)
		}
		uc.logger.Error("[add_weekly_schedule] failed to get business: %v", err)
		return nil, fmt.Errorf("%w: get business: %v", ErrInternal, err)
	}

	// 3. Разворачиваем входные окна по дням недели
	newEntries := expandEntries(req)

	// 4. В serializable-транзакции проверяем пересечения и сохраняем.
	// Снимок существующих окон читается с FOR UPDATE, поэтому два
	// конкурентных запроса не создадут пересекающиеся окна
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		byWeekday := make(map[domain.Weekday][]*domain.WeeklyScheduleEntry)
		for _, entry := range newEntries {
			if _, ok := byWeekday[entry.Weekday]; ok {
				continue
			}
			existing, err := uc.scheduleRepo.GetByBusinessAndWeekday(txCtx, req.BusinessID, entry.Weekday)
			if err != nil {
				return fmt.Errorf("get schedule for %s: %w", entry.Weekday, err)
			}
			byWeekday[entry.Weekday] = existing
		}

		for _, entry := range newEntries {
			for _, other := range byWeekday[entry.Weekday] {
				if entry.OverlapsWith(other) {
					return &OverlapError{
						Weekday:       entry.Weekday,
						NewStart:      entry.StartTime,
						NewEnd:        entry.EndTime,
						ExistingStart: other.StartTime,
						ExistingEnd:   other.EndTime,
					}
				}
			}
			// Новые окна проверяются и друг против друга
			byWeekday[entry.Weekday] = append(byWeekday[entry.Weekday], entry)
		}

		if err := uc.scheduleRepo.CreateBatch(txCtx, newEntries); err != nil {
			return fmt.Errorf("create entries: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrScheduleOverlap) {
			uc.logger.Warn("[add_weekly_schedule] overlap rejected: %v", err)
			return nil, err
		}
		uc.logger.Error("[add_weekly_schedule] transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp := &Response{Entries: make([]EntryResponse, 0, len(newEntries))}
	for _, entry := range newEntries {
		resp.Entries = append(resp.Entries, EntryResponse{
			ID:              entry.ID,
			Weekday:         entry.Weekday,
			StartTime:       entry.StartTime,
			EndTime:         entry.EndTime,
			CapacityPerSlot: entry.CapacityPerSlot,
			CreatedAt:       entry.CreatedAt,
		})
	}

	uc.logger.Info("[add_weekly_schedule] created %d entries for businessID=%d",
		len(newEntries), req.BusinessID)

	return resp, nil
}

// expandEntries превращает входные окна (каждое с набором дней недели)
// в плоский список доменных окон
func expandEntries(req *Request) []*domain.WeeklyScheduleEntry {
	entries := make([]*domain.WeeklyScheduleEntry, 0, len(req.Entries))
	for _, input := range req.Entries {
		capacity := input.CapacityPerSlot
		if capacity == 0 {
			capacity = domain.DefaultCapacityPerSlot
		}
		for _, day := range input.Weekdays {
			weekday, _ := domain.ParseWeekday(day) // валидация уже прошла
			entries = append(entries, &domain.WeeklyScheduleEntry{
				BusinessID:      req.BusinessID,
				Weekday:         weekday,
				StartTime:       input.StartTime,
				EndTime:         input.EndTime,
				CapacityPerSlot: capacity,
			})
		}
	}
	return entries
}
