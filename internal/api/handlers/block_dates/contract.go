package block_dates

import (
	"context"

	blockDate "github.com/kmlvsk/SBS-BookingEngine/internal/usecase/block_date"
)

type BlockDateUseCase interface {
	Execute(ctx context.Context, req *blockDate.Request) (*blockDate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
