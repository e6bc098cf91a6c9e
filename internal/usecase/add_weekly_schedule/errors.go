package add_weekly_schedule

import (
	"errors"
	"fmt"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/types"
)

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("add_weekly_schedule: business not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("add_weekly_schedule: invalid input data")

	// ErrScheduleOverlap возвращается, когда новое окно пересекается
	// с существующим или с другим окном из того же запроса
	ErrScheduleOverlap = errors.New("add_weekly_schedule: schedule windows overlap")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("add_weekly_schedule: internal error")
)

// OverlapError описывает конкретное пересечение окон расписания.
// errors.Is(err, ErrScheduleOverlap) == true
type OverlapError struct {
	Weekday       domain.Weekday
	NewStart      types.TimeString
	NewEnd        types.TimeString
	ExistingStart types.TimeString
	ExistingEnd   types.TimeString
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("add_weekly_schedule: window %s-%s overlaps %s-%s on %s",
		e.NewStart, e.NewEnd, e.ExistingStart, e.ExistingEnd, e.Weekday)
}

func (e *OverlapError) Is(target error) bool {
	return target == ErrScheduleOverlap
}
