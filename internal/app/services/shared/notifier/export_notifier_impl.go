package notifier

import (
	"context"

	"roster-service/internal/app/contracts"
	"roster-service/internal/pkg/constvars"
	"roster-service/internal/pkg/dto/requests"
	"roster-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
)

// Publisher is the part of *amqp091.Channel the notifier needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type exportNotifier struct {
	Channel Publisher
	Queue   string
}

// NewExportNotifier opens a channel on conn and declares the durable export
// queue.
func NewExportNotifier(rabbitMQConnection *amqp091.Connection, queue string) (contracts.ExportNotifier, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		return nil, err
	}

	return NewExportNotifierWithPublisher(channel, queue), nil
}

func NewExportNotifierWithPublisher(publisher Publisher, queue string) contracts.ExportNotifier {
	return &exportNotifier{
		Channel: publisher,
		Queue:   queue,
	}
}

func (s *exportNotifier) PublishScheduleExported(ctx context.Context, event *requests.ScheduleExportedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp091.Table{
		"message_type":     "JSON",
		"event":            event.Event,
		"requeue_strategy": "DROP",
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		MessageId:    event.ExportID,
		Timestamp:    event.ExportedAt,
		Headers:      headers,
	}

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}
	return nil
}
