package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kmlvsk/SBS-BookingEngine/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	BusinessID int64            // ID бизнеса
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата бронирования (без времени)
	SlotStart  types.TimeString // Время начала слота (например, "10:00")

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	Reference  string // Публичный идентификатор бронирования
	BusinessID int64
	ServiceID  int64
	Date       time.Time
	SlotStart  types.TimeString
	Status     string // confirmed без депозита, pending с депозитом

	// Денормализованные данные услуги
	ServiceName  string
	ServicePrice decimal.Decimal

	// Депозит
	DepositRequired bool
	DepositAmount   decimal.Decimal
	PaymentURL      string // Redirect URL платёжного провайдера (если требуется депозит)

	CreatedAt time.Time
}
