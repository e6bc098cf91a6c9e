package payment_webhook

import (
	"context"

	"github.com/stripe/stripe-go/v79"

	"github.com/kmlvsk/SBS-BookingEngine/internal/service/bookings/models"
)

type PaymentsClient interface {
	VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error)
}

type BookingService interface {
	ConfirmDepositFromWebhook(ctx context.Context, reference, receiptRef string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
