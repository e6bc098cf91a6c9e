package add_weekly_schedule

import (
	"time"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/types"
)

// EntryInput одно окно доступности в запросе
type EntryInput struct {
	Weekdays        []string         // Дни недели, к которым применяется окно
	StartTime       types.TimeString // Начало окна (включительно)
	EndTime         types.TimeString // Конец окна (исключительно)
	CapacityPerSlot int              // Вместимость каждого слота окна, 0 = значение по умолчанию
}

// Request модель запроса на добавление окон расписания.
// Все окна применяются атомарно: при любом пересечении не сохраняется ничего
type Request struct {
	BusinessID int64
	Entries    []EntryInput
}

// EntryResponse созданное окно расписания
type EntryResponse struct {
	ID              int64
	Weekday         domain.Weekday
	StartTime       types.TimeString
	EndTime         types.TimeString
	CapacityPerSlot int
	CreatedAt       time.Time
}

// Response модель ответа со всеми созданными окнами
type Response struct {
	Entries []EntryResponse
}
