package create_booking

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("create_booking: business not found")

	// ErrBookingsDisabled возвращается, когда подписка бизнеса не позволяет
	// принимать бронирования
	ErrBookingsDisabled = errors.New("create_booking: business cannot accept bookings")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrDateBlocked возвращается, когда дата заблокирована exception-датой
	ErrDateBlocked = errors.New("create_booking: date is blocked")

	// ErrInvalidSlot возвращается, когда время начала не является валидным
	// слотом расписания (вне окон или не на сетке интервала)
	ErrInvalidSlot = errors.New("create_booking: invalid slot start time")

	// ErrSlotUnavailable возвращается, когда все места слота заняты
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
