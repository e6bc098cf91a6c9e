// Package notifier publishes booking lifecycle events to RabbitMQ.
// Delivery is fire-and-forget: a failed publish is logged by the caller and
// never rolls back the booking it announces.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
)

// Routing keys событий бронирования
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent полезная нагрузка события бронирования
type BookingEvent struct {
	Reference    string `json:"reference"`
	BusinessID   int64  `json:"businessId"`
	ServiceName  string `json:"serviceName"`
	Date         string `json:"date"`
	SlotStart    string `json:"slotStart"`
	Status       string `json:"status"`
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	OccurredAt   string `json:"occurredAt"`
}

// Publisher интерфейс публикации событий (реализации: AMQP и no-op)
type Publisher interface {
	PublishBookingEvent(ctx context.Context, routingKey string, booking *domain.Booking) error
	Close() error
}

// AMQPPublisher публикует события в topic exchange RabbitMQ
type AMQPPublisher struct {
	conn     *amqp091.Connection
	ch       *amqp091.Channel
	exchange string
}

// NewAMQPPublisher подключается к брокеру и объявляет exchange
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange: %v", ErrConnect, err)
	}

	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// PublishBookingEvent публикует событие бронирования
func (p *AMQPPublisher) PublishBookingEvent(ctx context.Context, routingKey string, booking *domain.Booking) error {
	event := BookingEvent{
		Reference:    booking.Reference,
		BusinessID:   booking.BusinessID,
		ServiceName:  booking.ServiceName,
		Date:         booking.Date.Format(domain.DateFormat),
		SlotStart:    booking.SlotStart.String(),
		Status:       string(booking.Status),
		CustomerName: booking.Customer.Name,
		Email:        booking.Customer.Email,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	msg := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	return nil
}

// Close закрывает канал и соединение с брокером
func (p *AMQPPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}

// NopPublisher используется, когда брокер выключен в конфигурации
type NopPublisher struct{}

func (NopPublisher) PublishBookingEvent(context.Context, string, *domain.Booking) error { return nil }
func (NopPublisher) Close() error                                                       { return nil }
