package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/court-booking-engine/internal/config"
	"github.com/suchimauz/court-booking-engine/internal/core/domain"
	"github.com/suchimauz/court-booking-engine/internal/core/ports/out"
)

const (
	routingKeyBookingCreated  = "booking.created"
	routingKeyBookingCanceled = "booking.canceled"
)

// EventsPublisher публикует события жизненного цикла бронирований
// в topic-exchange RabbitMQ
type EventsPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   out.LoggerPort
}

type bookingEvent struct {
	BookingID int    `json:"bookingId"`
	Court     string `json:"court"`
	Day       string `json:"day"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Owner     string `json:"owner"`
}

func NewEventsPublisher(cfg *config.Config, logger out.LoggerPort) (*EventsPublisher, error) {
	conn, err := amqp.Dial(cfg.RabbitMq.AmqpUri)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMq.AmqpUri,
		})
		return nil, fmt.Errorf("rabbitmq.connect.failed: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("rabbitmq.channel.failed: %w", err)
	}

	if err := channel.ExchangeDeclare(cfg.RabbitMq.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq.exchange.declare_failed: %w", err)
	}

	return &EventsPublisher{
		conn:     conn,
		channel:  channel,
		exchange: cfg.RabbitMq.Exchange,
		logger:   logger.WithModule("EventsPublisher"),
	}, nil
}

func (p *EventsPublisher) BookingCreated(ctx context.Context, booking domain.Booking) error {
	return p.publish(ctx, routingKeyBookingCreated, booking)
}

func (p *EventsPublisher) BookingCanceled(ctx context.Context, booking domain.Booking) error {
	return p.publish(ctx, routingKeyBookingCanceled, booking)
}

func (p *EventsPublisher) publish(ctx context.Context, routingKey string, booking domain.Booking) error {
	body, err := json.Marshal(bookingEvent{
		BookingID: booking.ID,
		Court:     string(booking.Court),
		Day:       string(booking.Day),
		Start:     booking.Start.String(),
		End:       booking.End.String(),
		Owner:     booking.Owner,
	})
	if err != nil {
		return err
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   uuid.NewString(),
		Timestamp:   time.Now(),
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq.publish.failed: %w", err)
	}

	p.logger.Debug("rabbitmq.publish.finished", out.LogFields{
		"routingKey": routingKey,
		"bookingId":  booking.ID,
	})
	return nil
}

func (p *EventsPublisher) Close() error {
	if p == nil || p.channel == nil {
		return nil
	}

	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}

var _ out.EventPublisherPort = (*EventsPublisher)(nil)
