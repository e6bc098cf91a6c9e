package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	businessRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/business"
	serviceRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/service"
)

// UseCase use case для получения слотов на дату
type UseCase struct {
	businessRepo  BusinessRepository
	serviceRepo   ServiceRepository
	scheduleRepo  ScheduleRepository
	exceptionRepo ExceptionRepository
	bookingRepo   BookingRepository
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	exceptionRepo ExceptionRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo:  businessRepo,
		serviceRepo:   serviceRepo,
		scheduleRepo:  scheduleRepo,
		exceptionRepo: exceptionRepo,
		bookingRepo:   bookingRepo,
		logger:        logger,
	}
}

// Execute выполняет use case получения слотов.
// Вычисление полностью read-only: отмена контекста безопасна в любой точке.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бизнес по ID или slug
	business, err := uc.resolveBusiness(ctx, req)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: business=%d, service=%v, date=%s",
		business.ID, req.ServiceID, req.Date.Format(domain.DateFormat))

	emptyResponse := &Response{
		Date:       req.Date,
		BusinessID: business.ID,
		ServiceID:  req.ServiceID,
		Slots:      []Slot{},
	}

	// 3. Блокировка даты перекрывает всё недельное расписание
	blocked, err := uc.exceptionRepo.IsBlocked(ctx, business.ID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check exception dates: %v", err)
		return nil, fmt.Errorf("%w: failed to check exception dates: %v", ErrInternal, err)
	}
	if blocked {
		uc.logger.Info("GetAvailableSlots: date %s is blocked for business=%d",
			req.Date.Format(domain.DateFormat), business.ID)
		return emptyResponse, nil
	}

	// 4. Получаем услугу, если запрошена (occupancy-only режим без услуги)
	var service *domain.Service
	if req.ServiceID != nil {
		service, err = uc.serviceRepo.GetByID(ctx, business.ID, *req.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if !service.Active {
			uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", *req.ServiceID)
			return nil, ErrServiceNotFound
		}
	}

	// 5. День недели вычисляется из даты напрямую, не из локализованной строки
	weekday := domain.WeekdayOf(req.Date)

	entries, err := uc.scheduleRepo.GetByBusinessAndWeekday(ctx, business.ID, weekday)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule entries: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule entries: %v", ErrInternal, err)
	}
	if len(entries) == 0 {
		uc.logger.Info("GetAvailableSlots: no schedule for business=%d on %s", business.ID, weekday)
		return emptyResponse, nil
	}

	// 6. Эффективный интервал: max(интервал бизнеса, длительность услуги)
	interval := domain.EffectiveInterval(business, service)

	// 7. Разворачиваем окна в слоты
	slots, err := domain.GenerateSlots(entries, interval)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 8. Вычитаем занятые места (pending + confirmed)
	bookings, err := uc.bookingRepo.GetByBusinessWithFilter(ctx, domain.BookingsFilter{
		BusinessID: business.ID,
		Date:       &req.Date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	annotated := domain.ApplyConsumption(slots, bookings)

	result := make([]Slot, len(annotated))
	for i, slot := range annotated {
		result[i] = Slot{
			StartTime:         slot.StartTime,
			DurationMinutes:   slot.DurationMinutes,
			RemainingCapacity: slot.RemainingCapacity,
			Capacity:          slot.Capacity,
			Bookable:          slot.IsBookable(),
		}
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for business=%d, date=%s",
		len(result), business.ID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       req.Date,
		BusinessID: business.ID,
		ServiceID:  req.ServiceID,
		Slots:      result,
	}, nil
}

// resolveBusiness находит бизнес по ID или публичному slug
func (uc *UseCase) resolveBusiness(ctx context.Context, req *Request) (*domain.Business, error) {
	var (
		business *domain.Business
		err      error
	)

	if req.BusinessID > 0 {
		business, err = uc.businessRepo.GetByID(ctx, req.BusinessID)
	} else {
		business, err = uc.businessRepo.GetBySlug(ctx, req.BusinessSlug)
	}

	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business not found (id=%d, slug=%q)",
				req.BusinessID, req.BusinessSlug)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business: %v", err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	return business, nil
}
