package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/streamhub/video-platform-go/internal/config"
	"github.com/streamhub/video-platform-go/pkg/logger"
)

// Domain event routing keys.
const (
	EventVideoPublished     = "video.published"
	EventVideoDeleted       = "video.deleted"
	EventReactionToggled    = "reaction.toggled"
	EventSubscriptionToggle = "subscription.toggled"
)

// confirmTimeout bounds the wait for a broker publish confirmation.
const confirmTimeout = 5 * time.Second

// DomainEventPublisher emits domain events for downstream consumers
// (recommendations, notifications, analytics). Implementations must be safe
// for concurrent use.
type DomainEventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// publishEvent emits a domain event best effort. A failed publish is logged
// and never fails the request that produced it.
func publishEvent(ctx context.Context, events DomainEventPublisher, routingKey string, payload interface{}) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, routingKey, payload); err != nil {
		logger.Log.Warn("Failed to publish domain event",
			zap.Error(err),
			zap.String("routingKey", routingKey),
		)
	}
}

// EventPublisher publishes domain events to a RabbitMQ topic exchange with
// publisher confirms.
type EventPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	config  *config.RabbitMQConfig
	mu      sync.RWMutex
}

// NewEventPublisher connects to RabbitMQ and declares the exchange and
// queue.
func NewEventPublisher(cfg *config.RabbitMQConfig) (*EventPublisher, error) {
	ep := &EventPublisher{
		config: cfg,
	}

	if err := ep.connect(); err != nil {
		return nil, err
	}

	return ep, nil
}

func (ep *EventPublisher) connect() error {
	ep.mu.Lock()
	defer ep.mu.Unlock()

	connURL := fmt.Sprintf("amqp://%s:%s@%s:%d/",
		ep.config.User, ep.config.Password, ep.config.Host, ep.config.Port)

	conn, err := amqp.Dial(connURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	// Enable publisher confirms
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	// Declare exchange
	if err := ch.ExchangeDeclare(
		ep.config.Exchange, // name
		"topic",            // type
		true,               // durable
		false,              // auto-deleted
		false,              // internal
		false,              // no-wait
		nil,                // arguments
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	// Declare queue bound to all event kinds
	_, err = ch.QueueDeclare(
		ep.config.Queue, // name
		true,            // durable
		false,           // delete when unused
		false,           // exclusive
		false,           // no-wait
		amqp.Table{
			"x-message-ttl": 86400000, // 24 hours
			"x-max-length":  100000,   // max 100k messages
		},
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(
		ep.config.Queue,    // queue name
		"#",                // routing key: every domain event
		ep.config.Exchange, // exchange
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	ep.conn = conn
	ep.channel = ch

	logger.Log.Info("Connected to RabbitMQ",
		zap.String("exchange", ep.config.Exchange),
		zap.String("queue", ep.config.Queue),
	)

	return nil
}

// Publish emits one domain event and waits for broker confirmation.
// Each publish tracks its own deferred confirmation; a NotifyPublish
// listener must never be registered per call, since the channel delivers
// every confirmation to every registered listener and an abandoned one
// eventually blocks the dispatch goroutine.
func (ep *EventPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	ep.mu.RLock()
	defer ep.mu.RUnlock()

	if ep.channel == nil {
		return fmt.Errorf("channel is not initialized")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	confirmation, err := ep.channel.PublishWithDeferredConfirmWithContext(
		ctx,
		ep.config.Exchange, // exchange
		routingKey,         // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			MessageId:    uuid.NewString(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	// Wait for confirmation with timeout
	select {
	case <-confirmation.Done():
		if !confirmation.Acked() {
			return fmt.Errorf("message was not acknowledged by broker")
		}
	case <-time.After(confirmTimeout):
		return fmt.Errorf("timeout waiting for publish confirmation")
	case <-ctx.Done():
		return ctx.Err()
	}

	logger.Log.Debug("Published domain event",
		zap.String("routingKey", routingKey),
	)

	return nil
}

// Close closes the channel and connection.
func (ep *EventPublisher) Close() error {
	ep.mu.Lock()
	defer ep.mu.Unlock()

	var errs []error
	if ep.channel != nil {
		if err := ep.channel.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if ep.conn != nil {
		if err := ep.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing publisher: %v", errs)
	}

	logger.Log.Info("RabbitMQ publisher closed")
	return nil
}

// IsHealthy reports whether the broker connection is open.
func (ep *EventPublisher) IsHealthy() bool {
	ep.mu.RLock()
	defer ep.mu.RUnlock()

	return ep.conn != nil && !ep.conn.IsClosed() && ep.channel != nil
}
