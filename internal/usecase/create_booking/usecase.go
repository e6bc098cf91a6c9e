package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	"github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/booking"
	"github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/business"
	"github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/service"
	"github.com/kmlvsk/SBS-BookingEngine/internal/integrations/accessgate"
	"github.com/kmlvsk/SBS-BookingEngine/internal/integrations/notifier"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/ptr"
)

// UseCase создание бронирования на конкретный слот
type UseCase struct {
	businessRepo  BusinessRepository
	serviceRepo   ServiceRepository
	scheduleRepo  ScheduleRepository
	exceptionRepo ExceptionRepository
	bookingRepo   BookingRepository
	accessGate    AccessGateClient
	payments      PaymentsClient
	publisher     NotificationPublisher
	txManager     TransactionManager
	logger        Logger
}

func NewUseCase(
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	exceptionRepo ExceptionRepository,
	bookingRepo BookingRepository,
	accessGate AccessGateClient,
	payments PaymentsClient,
	publisher NotificationPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo:  businessRepo,
		serviceRepo:   serviceRepo,
		scheduleRepo:  scheduleRepo,
		exceptionRepo: exceptionRepo,
		bookingRepo:   bookingRepo,
		accessGate:    accessGate,
		payments:      payments,
		publisher:     publisher,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute создаёт бронирование:
// проверяет доступ бизнеса, валидность слота и остаток мест,
// считает депозит и при необходимости создаёт платёжную сессию
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("[create_booking] starting: businessID=%d, serviceID=%d, date=%s, slot=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), req.SlotStart)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("[create_booking] validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бизнес
	biz, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, business.ErrBusinessNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrBusinessNotFound, req.BusinessID)
		}
		uc.logger.Error("[create_booking] failed to get business: %v", err)
		return nil, fmt.Errorf("%w: get business: %v", ErrInternal, err)
	}

	// 3. Проверяем, что подписка бизнеса позволяет принимать бронирования
	allowed, err := uc.accessGate.CanAcceptBookings(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, accessgate.ErrBusinessNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrBusinessNotFound, req.BusinessID)
		}
		uc.logger.Error("[create_booking] access gate check failed: %v", err)
		return nil, fmt.Errorf("%w: access gate: %v", ErrInternal, err)
	}
	if !allowed {
		return nil, fmt.Errorf("%w: businessID=%d", ErrBookingsDisabled, req.BusinessID)
	}

	// 4. Получаем услугу (должна существовать и быть активной)
	svc, err := uc.serviceRepo.GetByID(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, req.ServiceID)
		}
		uc.logger.Error("[create_booking] failed to get service: %v", err)
		return nil, fmt.Errorf("%w: get service: %v", ErrInternal, err)
	}
	if !svc.Active {
		return nil, fmt.Errorf("%w: id=%d is inactive", ErrServiceNotFound, req.ServiceID)
	}

	// 5. Проверяем, что дата не заблокирована
	blocked, err := uc.exceptionRepo.IsBlocked(ctx, req.BusinessID, req.Date)
	if err != nil {
		uc.logger.Error("[create_booking] failed to check exception dates: %v", err)
		return nil, fmt.Errorf("%w: check exceptions: %v", ErrInternal, err)
	}
	if blocked {
		return nil, fmt.Errorf("%w: date=%s", ErrDateBlocked, req.Date.Format(domain.DateFormat))
	}

	// 6. Находим окно расписания, которому принадлежит слот
	weekday := domain.WeekdayOf(req.Date)

	entries, err := uc.scheduleRepo.GetByBusinessAndWeekday(ctx, req.BusinessID, weekday)
	if err != nil {
		uc.logger.Error("[create_booking] failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: get schedule: %v", ErrInternal, err)
	}

	interval := domain.EffectiveInterval(biz, svc)

	entry := findSlotEntry(entries, req, interval)
	if entry == nil {
		return nil, fmt.Errorf("%w: %s is not a valid slot for %s", ErrInvalidSlot, req.SlotStart, weekday)
	}

	// 7. Считаем депозит по политике бизнеса
	depositAmount := domain.RequiredDeposit(biz.Deposit, svc.Price)
	depositRequired := depositAmount.IsPositive()

	status := domain.StatusConfirmed
	if depositRequired {
		// Бронирование подтверждается только после оплаты депозита
		status = domain.StatusPending
	}

	newBooking := &domain.Booking{
		Reference:  uuid.NewString(),
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		SlotStart:  req.SlotStart,
		Customer: domain.Customer{
			Name:  req.CustomerName,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		},
		Status:       status,
		ServiceName:  svc.Name,
		ServicePrice: svc.Price,
	}

	// 8. В serializable-транзакции проверяем остаток мест и вставляем бронирование.
	// Конкурентные запросы на тот же слот сериализуются блокировкой FOR UPDATE
	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.bookingRepo.GetByBusinessWithFilter(txCtx, domain.BookingsFilter{
			BusinessID: req.BusinessID,
			Date:       ptr.Ptr(req.Date),
			SlotStart:  ptr.Ptr(req.SlotStart),
		})
		if err != nil && !errors.Is(err, booking.ErrBookingNotFound) {
			return fmt.Errorf("count consumed: %w", err)
		}

		consumed := 0
		for _, b := range existing {
			if b.ConsumesCapacity() {
				consumed++
			}
		}
		if consumed >= entry.CapacityPerSlot {
			return fmt.Errorf("%w: date=%s, slot=%s", ErrSlotUnavailable,
				req.Date.Format(domain.DateFormat), req.SlotStart)
		}

		created, err = uc.bookingRepo.Create(txCtx, newBooking)
		if err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotUnavailable) {
			return nil, err
		}
		uc.logger.Error("[create_booking] transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp := &Response{
		ID:              created.ID,
		Reference:       created.Reference,
		BusinessID:      created.BusinessID,
		ServiceID:       created.ServiceID,
		Date:            created.Date,
		SlotStart:       created.SlotStart,
		Status:          string(created.Status),
		ServiceName:     created.ServiceName,
		ServicePrice:    created.ServicePrice,
		DepositRequired: depositRequired,
		DepositAmount:   depositAmount,
		CreatedAt:       created.CreatedAt,
	}

	// 9. Платёжная сессия создаётся после коммита: бронирование остаётся pending,
	// если провайдер недоступен, и клиент может оплатить позже
	if depositRequired {
		checkout, err := uc.payments.CreateDepositCheckout(ctx, created.Reference, svc.Name, depositAmount)
		if err != nil {
			uc.logger.Error("[create_booking] failed to create deposit checkout: reference=%s: %v",
				created.Reference, err)
		} else {
			resp.PaymentURL = checkout.URL
		}
	}

	// 10. Событие публикуется fire-and-forget
	if err := uc.publisher.PublishBookingEvent(ctx, notifier.EventBookingCreated, created); err != nil {
		uc.logger.Warn("[create_booking] failed to publish event: reference=%s: %v", created.Reference, err)
	}

	uc.logger.Info("[create_booking] created: reference=%s, status=%s, deposit=%s",
		created.Reference, created.Status, depositAmount.String())

	return resp, nil
}

// findSlotEntry возвращает окно расписания, в котором запрошенное время
// лежит на сетке слотов, либо nil
func findSlotEntry(entries []*domain.WeeklyScheduleEntry, req *Request, interval int) *domain.WeeklyScheduleEntry {
	for _, e := range entries {
		// Ошибка невозможна: слот и окна прошли валидацию формата
		aligned, err := e.SlotAligned(req.SlotStart, interval)
		if err == nil && aligned {
			return e
		}
	}
	return nil
}
