package payment_webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v79"

	"github.com/kmlvsk/SBS-BookingEngine/internal/api/handlers"
	"github.com/kmlvsk/SBS-BookingEngine/internal/integrations/payments"
	bookingsService "github.com/kmlvsk/SBS-BookingEngine/internal/service/bookings"
)

// Stripe рекомендует ограничивать размер тела вебхука
const maxBodyBytes = int64(65536)

const (
	msgInvalidPayload   = "некорректное тело вебхука"
	msgInvalidSignature = "некорректная подпись вебхука"
)

type Handler struct {
	payments PaymentsClient
	service  BookingService
	logger   Logger
}

func NewHandler(payments PaymentsClient, service BookingService, logger Logger) *Handler {
	return &Handler{
		payments: payments,
		service:  service,
		logger:   logger,
	}
}

// Handle POST /api/v1/webhooks/payments
// Аутентификация endpoint'а - подпись Stripe в заголовке Stripe-Signature
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Warn("POST /webhooks/payments - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	event, err := h.payments.VerifyWebhook(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		h.logger.Warn("POST /webhooks/payments - Signature verification failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSignature)
		return
	}

	// Интересует только завершённый checkout; остальные события подтверждаются
	// без обработки, чтобы Stripe не ретраил их бесконечно
	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		h.logger.Info("POST /webhooks/payments - Ignoring event type=%s", event.Type)
		w.WriteHeader(http.StatusOK)
		return
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		h.logger.Warn("POST /webhooks/payments - Failed to parse session: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	reference := session.Metadata[payments.MetadataBookingReference]
	if reference == "" {
		// Сессия создана не этим сервисом
		h.logger.Warn("POST /webhooks/payments - Session %s has no booking reference", session.ID)
		w.WriteHeader(http.StatusOK)
		return
	}

	result, err := h.service.ConfirmDepositFromWebhook(r.Context(), reference, session.ID)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			// Бронирование могло быть удалено; ретраи бессмысленны
			h.logger.Warn("POST /webhooks/payments - Booking not found: reference=%s", reference)
			w.WriteHeader(http.StatusOK)

		case errors.Is(err, bookingsService.ErrIllegalTransition):
			// Платёж пришёл для отменённого бронирования; подтверждаем
			// доставку, ручной возврат остаётся за оператором
			h.logger.Warn("POST /webhooks/payments - Cannot confirm: reference=%s, %v", reference, err)
			w.WriteHeader(http.StatusOK)

		default:
			// 5xx заставит Stripe повторить доставку позже
			h.logger.Error("POST /webhooks/payments - Failed: reference=%s, error=%v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /webhooks/payments - Deposit confirmed: reference=%s, status=%s",
		reference, result.Status)
	w.WriteHeader(http.StatusOK)
}
