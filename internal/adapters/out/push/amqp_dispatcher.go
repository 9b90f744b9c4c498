// Package push hands proximity notifications to the message broker feeding
// the external mobile push service. Delivery is best-effort by contract:
// callers log a failed Send and move on.
package push

import (
	"context"
	"encoding/json"
	"time"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/ports"
	"livetrack/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// QueueName is the broker queue consumed by the push delivery worker.
const QueueName = "push_notifications"

const publishTimeout = 5 * time.Second

// message is the queue payload for one push notification.
type message struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	SentAt string `json:"sent_at"`
}

// AmqpDispatcher implements ports.PushDispatcher on a RabbitMQ channel.
type AmqpDispatcher struct {
	channel *amqp.Channel
}

// NewAmqpDispatcher creates a dispatcher and declares the durable push
// queue so publishes never race the consumer's setup.
func NewAmqpDispatcher(channel *amqp.Channel) (*AmqpDispatcher, error) {
	if channel == nil {
		return nil, errs.NewValueIsRequiredError("channel")
	}

	_, err := channel.QueueDeclare(QueueName, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return &AmqpDispatcher{channel: channel}, nil
}

// Send publishes one notification to the push queue.
func (d *AmqpDispatcher) Send(ctx context.Context, userID kernel.UUID, notification ports.Notification) error {
	body, err := json.Marshal(message{
		UserID: userID.String(),
		Title:  notification.Title,
		Body:   notification.Body,
		SentAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return d.channel.PublishWithContext(ctx, "", QueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

var _ ports.PushDispatcher = (*AmqpDispatcher)(nil)
