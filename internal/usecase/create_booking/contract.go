package create_booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	"github.com/kmlvsk/SBS-BookingEngine/internal/integrations/payments"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
}

// ScheduleRepository интерфейс репозитория недельного расписания
type ScheduleRepository interface {
	GetByBusinessAndWeekday(ctx context.Context, businessID int64, weekday domain.Weekday) ([]*domain.WeeklyScheduleEntry, error)
}

// ExceptionRepository интерфейс репозитория блокировок дат
type ExceptionRepository interface {
	IsBlocked(ctx context.Context, businessID int64, date time.Time) (bool, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// AccessGateClient интерфейс клиента подписочного сервиса
type AccessGateClient interface {
	CanAcceptBookings(ctx context.Context, businessID int64) (bool, error)
}

// PaymentsClient интерфейс платёжного клиента
type PaymentsClient interface {
	CreateDepositCheckout(ctx context.Context, bookingReference, serviceName string, amount decimal.Decimal) (*payments.Checkout, error)
}

// NotificationPublisher интерфейс публикации событий бронирования
type NotificationPublisher interface {
	PublishBookingEvent(ctx context.Context, routingKey string, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
