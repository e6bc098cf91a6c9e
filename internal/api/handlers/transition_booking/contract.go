package transition_booking

import (
	"context"

	"github.com/kmlvsk/SBS-BookingEngine/internal/service/bookings/models"
)

type BookingService interface {
	Transition(ctx context.Context, id int64, newStatus string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
