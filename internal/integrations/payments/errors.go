package payments

import "errors"

var (
	// ErrCheckoutFailed возвращается при ошибке создания checkout-сессии
	ErrCheckoutFailed = errors.New("payments: failed to create checkout session")

	// ErrInvalidSignature возвращается при невалидной подписи вебхука
	ErrInvalidSignature = errors.New("payments: invalid webhook signature")

	// ErrInvalidAmount возвращается при некорректной сумме депозита
	ErrInvalidAmount = errors.New("payments: invalid deposit amount")
)
