package delete_schedule_entry

import "context"

type ScheduleService interface {
	DeleteEntry(ctx context.Context, businessID, entryID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
