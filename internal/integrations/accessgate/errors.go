package accessgate

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда подписочный сервис не знает бизнес
	ErrBusinessNotFound = errors.New("accessgate client: business not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("accessgate client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("accessgate client: invalid response")
)
