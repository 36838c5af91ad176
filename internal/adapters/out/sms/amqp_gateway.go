// Package sms implements ports.NotificationGateway. AMQPGateway hands text
// messages to the SMS worker through a fanout exchange; LogGateway only logs
// them and serves deployments without a broker.
package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultExchange = "notifications_fanout"

// Message is the body published for every SMS.
type Message struct {
	Phone  string    `json:"phone"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// Publisher is the part of *amqp.Channel the gateway uses.
type Publisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange string,
		key string,
		mandatory bool,
		immediate bool,
		msg amqp.Publishing,
	) error
}

type AMQPGateway struct {
	publisher Publisher
	exchange  string
	now       func() time.Time
}

func NewAMQPGateway(publisher Publisher, exchange string) *AMQPGateway {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &AMQPGateway{
		publisher: publisher,
		exchange:  exchange,
		now:       time.Now,
	}
}

// Send publishes one persistent JSON message. Delivery to the phone is the
// worker's business; no retry happens here.
func (g *AMQPGateway) Send(ctx context.Context, phone string, message string) error {
	sentAt := g.now().UTC()
	body, err := json.Marshal(Message{Phone: phone, Text: message, SentAt: sentAt})
	if err != nil {
		return err
	}

	err = g.publisher.PublishWithContext(ctx,
		g.exchange,
		"",
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    sentAt,
		})
	if err != nil {
		return fmt.Errorf("publish sms to %s: %w", g.exchange, err)
	}
	return nil
}

// Connection owns the broker connection and the channel the gateway publishes on.
type Connection struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects to the broker and declares exchange as a durable fanout.
func Dial(url string, exchange string) (*Connection, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &Connection{conn: conn, ch: ch}, nil
}

func (c *Connection) Channel() *amqp.Channel {
	return c.ch
}

func (c *Connection) Close() error {
	if c.ch != nil && !c.ch.IsClosed() {
		if err := c.ch.Close(); err != nil {
			return fmt.Errorf("close rabbitmq channel: %w", err)
		}
	}
	if c.conn != nil && !c.conn.IsClosed() {
		if err := c.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %w", err)
		}
	}
	return nil
}
