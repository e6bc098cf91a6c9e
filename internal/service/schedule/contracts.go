package schedule

import (
	"context"
	"time"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// ScheduleRepository интерфейс репозитория недельного расписания
type ScheduleRepository interface {
	GetByBusiness(ctx context.Context, businessID int64) ([]*domain.WeeklyScheduleEntry, error)
	Delete(ctx context.Context, businessID, entryID int64) error
}

// ExceptionRepository интерфейс репозитория блокировок дат
type ExceptionRepository interface {
	GetByBusiness(ctx context.Context, businessID int64, from time.Time) ([]*domain.ExceptionDate, error)
	Delete(ctx context.Context, businessID, exceptionID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
