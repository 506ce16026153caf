package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"roster-service/internal/pkg/dto/requests"
	"roster-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	queue    string
	messages []amqp091.Publishing
	err      error
}

func (p *fakePublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	if p.err != nil {
		return p.err
	}
	p.queue = key
	p.messages = append(p.messages, msg)
	return nil
}

func TestPublishScheduleExported(t *testing.T) {
	publisher := &fakePublisher{}
	notifier := NewExportNotifierWithPublisher(publisher, "roster.exports")

	exportedAt := time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC)
	event := &requests.ScheduleExportedEvent{
		Event:       "schedule.exported",
		ExportID:    "exp-1",
		FileName:    "plan_final_20240304_103000.xlsx",
		Bucket:      "rosters",
		Format:      "xlsx",
		RecordCount: 14,
		AgentCount:  2,
		ExportedAt:  exportedAt,
	}

	err := notifier.PublishScheduleExported(context.Background(), event)
	require.NoError(t, err)
	require.Len(t, publisher.messages, 1)
	assert.Equal(t, "roster.exports", publisher.queue)

	msg := publisher.messages[0]
	assert.Equal(t, amqp091.Persistent, msg.DeliveryMode)
	assert.Equal(t, "exp-1", msg.MessageId)
	assert.Equal(t, "schedule.exported", msg.Headers["event"])

	var decoded requests.ScheduleExportedEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, 14, decoded.RecordCount)
	assert.True(t, exportedAt.Equal(decoded.ExportedAt))
}

func TestPublishScheduleExported_Error(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("channel closed")}
	notifier := NewExportNotifierWithPublisher(publisher, "roster.exports")

	err := notifier.PublishScheduleExported(context.Background(), &requests.ScheduleExportedEvent{ExportID: "x"})
	require.Error(t, err)

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, 500, customErr.StatusCode)
}
