package output

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitMQOutput publishes each report to a durable topic exchange.
type RabbitMQOutput struct {
	conn       *amqp.Connection
	ch         publisher
	exchange   string
	routingKey string
}

func NewRabbitMQOutput(url, exchange, routingKey string) (*RabbitMQOutput, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &RabbitMQOutput{conn: conn, ch: ch, exchange: exchange, routingKey: routingKey}, nil
}

func (r *RabbitMQOutput) WriteResult(ctx context.Context, report Report) error {
	body, err := report.marshal()
	if err != nil {
		return err
	}
	err = r.ch.PublishWithContext(ctx, r.exchange, r.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    report.key(),
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", r.exchange, err)
	}
	return nil
}

func (r *RabbitMQOutput) Close() error {
	if c, ok := r.ch.(interface{ Close() error }); ok {
		_ = c.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
