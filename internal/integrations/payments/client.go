// Package payments wraps the Stripe checkout flow used for booking deposits.
// The engine only ever needs two things from the provider: a redirect URL to
// collect a deposit, and later a signed webhook matching that payment back to
// the pending booking it funds.
package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

// MetadataBookingReference ключ метаданных checkout-сессии, связывающий
// платёж с бронированием
const MetadataBookingReference = "booking_reference"

const webhookTolerance = 5 * time.Minute

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Checkout результат создания checkout-сессии
type Checkout struct {
	SessionID string
	URL       string
}

// Client клиент платёжного провайдера (Stripe)
type Client struct {
	api           *client.API
	webhookSecret string
	successURL    string
	cancelURL     string
	currency      string
	log           Logger
}

// NewClient создает новый экземпляр платёжного клиента
func NewClient(apiKey, webhookSecret, successURL, cancelURL, currency string, log Logger) *Client {
	api := &client.API{}
	api.Init(apiKey, nil)

	return &Client{
		api:           api,
		webhookSecret: webhookSecret,
		successURL:    successURL,
		cancelURL:     cancelURL,
		currency:      currency,
		log:           log,
	}
}

// CreateDepositCheckout создает checkout-сессию на сумму депозита.
// Сумма в целых единицах валюты; провайдеру передается в минорных единицах.
func (c *Client) CreateDepositCheckout(ctx context.Context, bookingReference, serviceName string, amount decimal.Decimal) (*Checkout, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	unitAmount := amount.Mul(decimal.NewFromInt(100)).IntPart()

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(c.successURL),
		CancelURL:  stripe.String(c.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(c.currency),
					UnitAmount: stripe.Int64(unitAmount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Deposit: %s", serviceName)),
					},
				},
			},
		},
	}
	params.Context = ctx
	params.AddMetadata(MetadataBookingReference, bookingReference)

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}

	c.log.Info("payments: checkout session created: session_id=%s, booking_reference=%s, amount=%s %s",
		sess.ID, bookingReference, amount, c.currency)

	return &Checkout{SessionID: sess.ID, URL: sess.URL}, nil
}

// VerifyWebhook проверяет подпись вебхука и возвращает событие.
// Подпись и есть аутентификация этого endpoint'а.
func (c *Client) VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error) {
	event, err := webhook.ConstructEventWithTolerance(payload, signatureHeader, c.webhookSecret, webhookTolerance)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return event, nil
}
