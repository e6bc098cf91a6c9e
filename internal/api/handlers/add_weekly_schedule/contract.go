package add_weekly_schedule

import (
	"context"

	addWeeklySchedule "github.com/kmlvsk/SBS-BookingEngine/internal/usecase/add_weekly_schedule"
)

type AddWeeklyScheduleUseCase interface {
	Execute(ctx context.Context, req *addWeeklySchedule.Request) (*addWeeklySchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
