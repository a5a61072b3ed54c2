// Package events publishes billing events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/fee_management_app/internal/core/ports"
	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

// Exchange is the durable topic exchange billing events are published on.
const Exchange = "billing_events"

const dialTimeout = 10 * time.Second

// amqpChannel is the part of *amqp091.Channel the publisher uses.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher sends JSON events to the billing exchange. A failed publish
// reopens the channel once and retries.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  amqpChannel
	reopen   func() (amqpChannel, error)
	exchange string
	logger   *slog.Logger
	now      func() time.Time
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher dials RabbitMQ and declares the billing exchange.
func NewPublisher(amqpURL string, logger *slog.Logger) (*Publisher, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp091.DialConfig(cleanURL, amqp091.Config{Dial: amqp091.DefaultDial(dialTimeout)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	reopen := func() (amqpChannel, error) {
		return conn.Channel()
	}
	ch, err := reopen()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	p := newPublisher(ch, reopen, logger)
	p.conn = conn
	if err := p.declare(ch); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func newPublisher(ch amqpChannel, reopen func() (amqpChannel, error), logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		channel:  ch,
		reopen:   reopen,
		exchange: Exchange,
		logger:   logger.With(slog.String("component", "event_publisher")),
		now:      time.Now,
	}
}

func (p *Publisher) declare(ch amqpChannel) error {
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", p.exchange, err)
	}
	return nil
}

// Publish marshals payload to JSON and publishes it with routingKey.
func (p *Publisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", routingKey, err)
	}
	msg := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    p.now(),
		Type:         routingKey,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
	if err == nil {
		return nil
	}
	p.logger.Warn("Publish failed, reopening channel", slog.String("routing_key", routingKey), slog.String("error", err.Error()))

	if p.reopen == nil {
		return err
	}
	ch, chErr := p.reopen()
	if chErr != nil {
		return errors.Join(err, chErr)
	}
	if declErr := p.declare(ch); declErr != nil {
		ch.Close()
		return errors.Join(err, declErr)
	}
	p.channel.Close()
	p.channel = ch
	return p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
}

// Close closes the channel and the connection.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// NoopPublisher drops events. It stands in when no broker is configured.
type NoopPublisher struct {
	Logger *slog.Logger
}

var _ ports.EventPublisher = NoopPublisher{}

func (n NoopPublisher) Publish(ctx context.Context, routingKey string, _ any) error {
	if n.Logger != nil {
		n.Logger.DebugContext(ctx, "Event publishing disabled, dropping event", slog.String("routing_key", routingKey))
	}
	return nil
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", fmt.Errorf("invalid AMQP_URL: %w", err)
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP_URL scheme must be amqp:// or amqps://")
	}
	return clean, nil
}
