package get_schedule

import (
	"context"
	"time"

	"github.com/kmlvsk/SBS-BookingEngine/internal/service/schedule"
)

type ScheduleService interface {
	GetSchedule(ctx context.Context, businessID int64, exceptionsFrom time.Time) (*schedule.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
