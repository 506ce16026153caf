package contracts

import (
	"context"

	"roster-service/internal/pkg/dto/requests"
)

type ExportNotifier interface {
	PublishScheduleExported(ctx context.Context, event *requests.ScheduleExportedEvent) error
}
