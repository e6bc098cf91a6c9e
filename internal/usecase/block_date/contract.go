package block_date

import (
	"context"
	"time"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// ExceptionRepository интерфейс репозитория блокировок дат
type ExceptionRepository interface {
	CreateRange(ctx context.Context, businessID int64, start, end time.Time, reason *string) error
	GetByBusiness(ctx context.Context, businessID int64, from time.Time) ([]*domain.ExceptionDate, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
