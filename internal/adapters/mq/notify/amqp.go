package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/streadway/amqp"

	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/metrics"
)

// DefaultExchange is the topic exchange used when none is configured.
const DefaultExchange = "hrms.interns"

// Channel is the subset of *amqp.Channel used for publishing.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes JSON events to a topic exchange.
type AMQPPublisher struct {
	mu       sync.Mutex
	ch       Channel
	conn     *amqp.Connection
	exchange string
	log      logger.Logger
	closed   bool
}

var _ Publisher = (*AMQPPublisher)(nil)

// DialAMQP connects to url and declares a durable topic exchange.
func DialAMQP(url, exchange string, l logger.Logger) (*AMQPPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %w", ErrPublish, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %w", ErrPublish, err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %w", ErrPublish, exchange, err)
	}
	p := NewChannelPublisher(ch, exchange, l)
	p.conn = conn
	return p, nil
}

// NewChannelPublisher publishes on an already open channel.
func NewChannelPublisher(ch Channel, exchange string, l logger.Logger) *AMQPPublisher {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if l == nil {
		l = logger.Nop()
	}
	return &AMQPPublisher{ch: ch, exchange: exchange, log: l.Named("notify")}
}

// Publish implements Publisher. Channels are not safe for concurrent
// publishing, so calls are serialized.
func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, e Event) error {
	if e.Type == "" {
		e.Type = routingKey
	}
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrPublish, err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublish, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	err = p.ch.Publish(p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    e.OccurredAt,
		Body:         body,
	})
	if err != nil {
		metrics.RecordNotification(routingKey, "error")
		return fmt.Errorf("%w: %s: %w", ErrPublish, routingKey, err)
	}
	metrics.RecordNotification(routingKey, "published")
	p.log.Debug(ctx, "notification published", logger.String("routing_key", routingKey))
	return nil
}

// Close implements Publisher.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
