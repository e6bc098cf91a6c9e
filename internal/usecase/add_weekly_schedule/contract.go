package add_weekly_schedule

import (
	"context"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// ScheduleRepository интерфейс репозитория недельного расписания
type ScheduleRepository interface {
	GetByBusinessAndWeekday(ctx context.Context, businessID int64, weekday domain.Weekday) ([]*domain.WeeklyScheduleEntry, error)
	CreateBatch(ctx context.Context, entries []*domain.WeeklyScheduleEntry) error
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
