package delete_exception

import "context"

type ScheduleService interface {
	DeleteException(ctx context.Context, businessID, exceptionID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
