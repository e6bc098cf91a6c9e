package get_available_slots

import (
	"time"

	"github.com/kmlvsk/SBS-BookingEngine/pkg/types"
)

// Request модель запроса на получение доступных слотов.
// Бизнес адресуется по ID либо по публичному slug (страница бронирования).
// ServiceID == nil включает режим occupancy-only: слоты разворачиваются
// по интервалу бизнеса без учёта длительности услуги.
type Request struct {
	BusinessID   int64     // ID бизнеса (0, если задан slug)
	BusinessSlug string    // Публичный slug бизнеса
	ServiceID    *int64    // ID услуги (опционально)
	Date         time.Time // Дата, на которую запрашиваются слоты
}

// Response модель ответа со списком слотов
type Response struct {
	Date       time.Time
	BusinessID int64
	ServiceID  *int64
	Slots      []Slot // Все слоты дня в порядке возрастания времени начала
}

// Slot модель временного слота
type Slot struct {
	StartTime         types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes   int              // Эффективный интервал слота
	RemainingCapacity int              // Количество свободных мест
	Capacity          int              // Вместимость слота
	Bookable          bool             // RemainingCapacity > 0
}
