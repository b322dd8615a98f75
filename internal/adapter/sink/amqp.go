package sink

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/localize/datagen/internal/usecase"
)

// ErrInvalidAMQPURL is returned for URLs without an amqp or amqps scheme.
var ErrInvalidAMQPURL = errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")

const amqpDialTimeout = 10 * time.Second

// AMQPChannel is the subset of *amqp.Channel the sink uses.
type AMQPChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPSink publishes messages to a durable topic exchange with routing key
// "mock.<kind>".
type AMQPSink struct {
	conn     *amqp.Connection
	channel  AMQPChannel
	exchange string
}

// NewAMQPSink dials rawURL and declares exchange.
func NewAMQPSink(rawURL, exchange string) (*AMQPSink, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse amqp url: %w", err)
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return nil, ErrInvalidAMQPURL
	}

	conn, err := amqp.DialConfig(u.String(), amqp.Config{Dial: amqp.DefaultDial(amqpDialTimeout)})
	if err != nil {
		return nil, fmt.Errorf("dial amqp %s: %w", u.Host, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}

	s, err := NewAMQPSinkWithChannel(ch, exchange)
	if err != nil {
		conn.Close()
		return nil, err
	}
	s.conn = conn

	return s, nil
}

// NewAMQPSinkWithChannel declares exchange on ch and publishes through it.
func NewAMQPSinkWithChannel(ch AMQPChannel, exchange string) (*AMQPSink, error) {
	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // autoDelete
		false,    // internal
		false,    // noWait
		nil,      // args
	); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &AMQPSink{channel: ch, exchange: exchange}, nil
}

// RoutingKey returns the routing key for a message kind.
func RoutingKey(kind string) string {
	return "mock." + kind
}

func (s *AMQPSink) Name() string { return "amqp" }

func (s *AMQPSink) Send(ctx context.Context, msg *usecase.Message) (string, error) {
	key := RoutingKey(msg.Kind.String())

	err := s.channel.PublishWithContext(ctx,
		s.exchange, // exchange
		key,        // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.ID,
			Type:         msg.Kind.String(),
			Timestamp:    msg.CreatedAt,
			Body:         msg.Body,
		},
	)
	if err != nil {
		return "", fmt.Errorf("publish %s: %w", key, err)
	}

	return "routed " + key, nil
}

func (s *AMQPSink) Close() error {
	var errs []error
	if s.channel != nil {
		errs = append(errs, s.channel.Close())
	}
	if s.conn != nil {
		errs = append(errs, s.conn.Close())
	}
	return errors.Join(errs...)
}
