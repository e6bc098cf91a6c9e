package get_occupancy

import (
	"context"
	"time"

	"github.com/kmlvsk/SBS-BookingEngine/internal/service/occupancy"
)

type OccupancyService interface {
	GetDailyOccupancy(ctx context.Context, businessID int64, date time.Time) (*occupancy.Report, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
