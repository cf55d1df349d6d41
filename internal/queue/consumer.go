package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/seatlabs/library-layout-backend/internal/config"
	"github.com/seatlabs/library-layout-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// SeatStatusApplier applies an external availability change to a layout
type SeatStatusApplier interface {
	SetSeatStatus(ctx context.Context, layoutID uuid.UUID, seatID string, status models.SeatStatus) error
}

// AvailabilityConsumer listens to the seat-availability queue and applies
// each event to the layout service. It runs a reconnect loop with capped
// backoff and never gives up unless the context is cancelled: a broker
// outage degrades freshness, not the designer itself.
type AvailabilityConsumer struct {
	cfg     config.QueueConfig
	applier SeatStatusApplier
	logger  *logrus.Logger
}

// NewAvailabilityConsumer creates a new availability consumer
func NewAvailabilityConsumer(cfg config.QueueConfig, applier SeatStatusApplier, logger *logrus.Logger) *AvailabilityConsumer {
	return &AvailabilityConsumer{
		cfg:     cfg,
		applier: applier,
		logger:  logger,
	}
}

// Run connects to the broker and consumes until the context is cancelled
func (c *AvailabilityConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		conn, err := amqp.Dial(c.cfg.URL)
		if err != nil {
			c.logger.WithError(err).WithField("backoff", backoff.String()).Warn("Failed to dial broker, retrying")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := c.consumeLoop(ctx, conn); err != nil {
			if errors.Is(err, context.Canceled) {
				conn.Close()
				return err
			}
			c.logger.WithError(err).Warn("Consume loop ended, reconnecting")
			conn.Close()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(2 * time.Second):
			}
		}
	}
}

func (c *AvailabilityConsumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.logger.WithError(err).Warn("Failed to set channel QoS")
	}

	if _, err := ch.QueueDeclare(c.cfg.AvailabilityName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(c.cfg.AvailabilityName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handleMessage(ctx, d.Body); err != nil {
				c.logger.WithError(err).Warn("Failed to handle availability event")
				// reject without requeue to avoid a poison-message loop
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *AvailabilityConsumer) handleMessage(ctx context.Context, body []byte) error {
	var ev SeatAvailabilityEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.LayoutID == uuid.Nil || ev.SeatID == "" {
		return fmt.Errorf("event missing layout or seat ID")
	}

	if err := c.applier.SetSeatStatus(ctx, ev.LayoutID, ev.SeatID, ev.Status); err != nil {
		return fmt.Errorf("apply seat status: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"layout_id":  ev.LayoutID,
		"seat_id":    ev.SeatID,
		"status":     ev.Status,
		"booking_id": ev.BookingID,
	}).Info("Applied seat availability event")
	return nil
}
