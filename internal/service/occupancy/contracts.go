package occupancy

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
	GetByBusinessAndWeekday(ctx context.Context, businessID int64, weekday domain.Weekday) ([]*domain.WeeklyScheduleEntry, error)
}

// ExceptionRepository интерфейс репозитория блокировок дат
type ExceptionRepository interface {
	IsBlocked(ctx context.Context, businessID int64, date time.Time) (bool, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountConfirmedByDate(ctx context.Context, businessID int64, date time.Time) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
