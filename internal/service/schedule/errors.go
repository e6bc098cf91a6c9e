package schedule

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrEntryNotFound возвращается, когда окно расписания не найдено
	ErrEntryNotFound = errors.New("schedule entry not found")

	// ErrExceptionNotFound возвращается, когда блокировка даты не найдена
	ErrExceptionNotFound = errors.New("exception date not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
