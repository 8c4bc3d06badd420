package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

type QueueName string

// Publisher is the part of RabbitMQ producers depend on.
type Publisher interface {
	Publish(ctx context.Context, queue QueueName, body []byte) error
}

const (
	QueueMail QueueName = "mail_queue"
	// Jobs nacked without requeue on QueueMail land here for inspection.
	QueueMailDead QueueName = "mail_queue.dead"
)

const (
	MAX_QUEUE_RETRY = 3

	publishTimeout = 5 * time.Second
)

type queueSpec struct {
	name QueueName
	args amqp.Table
}

var queues = []queueSpec{
	{name: QueueMailDead},
	{name: QueueMail, args: amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": string(QueueMailDead),
	}},
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	// Declare every queue before anything is published. Durable, not exclusive, not auto deleted.
	for _, q := range queues {
		if _, err := channel.QueueDeclare(string(q.name), true, false, false, false, q.args); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to declare queue %s: %w", q.name, err)
		}
	}

	return &RabbitMQ{
		conn:    conn,
		channel: channel,
	}, nil
}

func (r *RabbitMQ) Close() error {
	if err := r.channel.Close(); err != nil {
		return err
	}
	return r.conn.Close()
}

// Publish sends body to queue through the default exchange as a persistent message.
func (r *RabbitMQ) Publish(ctx context.Context, queue QueueName, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return r.channel.PublishWithContext(ctx,
		"", // default exchange
		string(queue),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now(),
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		},
	)
}

// Tell RabbitMQ to deliver messages one at a time to consumers
// until it has processed and acknowledged the previous one.
// Docs: https://www.rabbitmq.com/tutorials/tutorial-two-go#fair-dispatch
func (r *RabbitMQ) Consume(queue QueueName) (<-chan amqp.Delivery, error) {
	if err := r.channel.Qos(1, 0, false); err != nil {
		return nil, err
	}

	// manual ack, shared consumer
	return r.channel.Consume(string(queue), "", false, false, false, false, nil)
}

func (r *RabbitMQ) Ack(delivery amqp.Delivery) error {
	return delivery.Ack(false)
}

// Nack without requeue dead letters the delivery.
func (r *RabbitMQ) Nack(delivery amqp.Delivery, requeue bool) error {
	return delivery.Nack(false, requeue)
}
