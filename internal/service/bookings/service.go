package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	bookingRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/booking"
	"github.com/kmlvsk/SBS-BookingEngine/internal/integrations/notifier"
	"github.com/kmlvsk/SBS-BookingEngine/internal/service/bookings/models"
)

// Service сервис управления жизненным циклом бронирований
type Service struct {
	bookingRepo BookingRepository
	publisher   NotificationPublisher
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	publisher NotificationPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetByReference получает бронирование по публичному идентификатору
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	if reference == "" {
		return nil, fmt.Errorf("%w: reference is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking reference=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetBusinessBookings получает бронирования бизнеса с фильтрацией.
// Без явного статуса возвращаются только занимающие место бронирования
// (pending и confirmed); IncludeInactive добавляет отменённые и no_show
func (s *Service) GetBusinessBookings(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error) {
	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: business_id must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBusinessBookings: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	bookings, err := s.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessBookings: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessBookings: fetched %d bookings for business=%d", len(bookings), req.BusinessID)
	return models.FromDomainBookingList(bookings), nil
}

// Transition переводит бронирование в новый статус.
// Допустимые переходы: pending->confirmed, pending->cancelled,
// confirmed->no_show, confirmed->cancelled. Всё остальное отклоняется,
// включая любые переходы из терминальных статусов
func (s *Service) Transition(ctx context.Context, id int64, newStatus string) (*models.BookingResponse, error) {
	s.logger.Info("Transition: booking id=%d -> %s", id, newStatus)

	target, err := models.ToDomainBookingStatus(newStatus)
	if err != nil {
		s.logger.Warn("Transition: invalid status %q for booking id=%d", newStatus, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	var updated *domain.Booking
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Текущий статус читается с FOR UPDATE: конкурентные переходы
		// одного бронирования сериализуются
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get booking: %w", err)
		}

		if !booking.CanTransitionTo(target) {
			return &TransitionError{From: booking.Status, To: target}
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, target); err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		booking.Status = target
		updated = booking
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("Transition: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		case errors.Is(err, ErrIllegalTransition):
			s.logger.Warn("Transition: rejected for booking id=%d: %v", id, err)
			return nil, err
		default:
			s.logger.Error("Transition: transaction failed for booking id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Transition - transaction error: %v", ErrInternal, err)
		}
	}

	s.publishStatusEvent(ctx, updated)

	s.logger.Info("Transition: booking id=%d is now %s", id, updated.Status)
	return models.FromDomainBooking(updated), nil
}

// ConfirmDepositFromWebhook подтверждает бронирование после оплаты депозита.
// Идемпотентно: повторная доставка webhook для уже подтверждённого
// бронирования не является ошибкой
func (s *Service) ConfirmDepositFromWebhook(ctx context.Context, reference, receiptRef string) (*models.BookingResponse, error) {
	s.logger.Info("ConfirmDepositFromWebhook: reference=%s", reference)

	if reference == "" {
		return nil, fmt.Errorf("%w: reference is required", ErrInvalidInput)
	}

	var updated *domain.Booking
	var alreadyConfirmed bool
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByReference(txCtx, reference)
		if err != nil {
			return fmt.Errorf("get booking: %w", err)
		}

		if booking.Status == domain.StatusConfirmed && booking.DepositPaid {
			alreadyConfirmed = true
			updated = booking
			return nil
		}

		if !booking.CanTransitionTo(domain.StatusConfirmed) {
			return &TransitionError{From: booking.Status, To: domain.StatusConfirmed}
		}

		if err := s.bookingRepo.MarkDepositPaid(txCtx, booking.ID, receiptRef); err != nil {
			return fmt.Errorf("mark deposit paid: %w", err)
		}
		if err := s.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusConfirmed); err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		booking.Status = domain.StatusConfirmed
		booking.DepositPaid = true
		booking.DepositReceiptRef = &receiptRef
		updated = booking
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("ConfirmDepositFromWebhook: booking reference=%s not found", reference)
			return nil, ErrBookingNotFound
		case errors.Is(err, ErrIllegalTransition):
			s.logger.Warn("ConfirmDepositFromWebhook: rejected for reference=%s: %v", reference, err)
			return nil, err
		default:
			s.logger.Error("ConfirmDepositFromWebhook: transaction failed for reference=%s: %v", reference, err)
			return nil, fmt.Errorf("%w: ConfirmDepositFromWebhook - transaction error: %v", ErrInternal, err)
		}
	}

	if !alreadyConfirmed {
		s.publishStatusEvent(ctx, updated)
	}

	s.logger.Info("ConfirmDepositFromWebhook: booking reference=%s confirmed (already=%v)",
		reference, alreadyConfirmed)
	return models.FromDomainBooking(updated), nil
}

// publishStatusEvent публикует событие смены статуса fire-and-forget
func (s *Service) publishStatusEvent(ctx context.Context, booking *domain.Booking) {
	var routingKey string
	switch booking.Status {
	case domain.StatusConfirmed:
		routingKey = notifier.EventBookingConfirmed
	case domain.StatusCancelled:
		routingKey = notifier.EventBookingCancelled
	default:
		return
	}

	if err := s.publisher.PublishBookingEvent(ctx, routingKey, booking); err != nil {
		s.logger.Warn("publishStatusEvent: failed to publish %s for reference=%s: %v",
			routingKey, booking.Reference, err)
	}
}
