package contracts

import (
	"context"
	"io"

	"roster-service/internal/pkg/dto/requests"
	"roster-service/internal/pkg/dto/responses"
	"roster-service/internal/pkg/planfile"
	"roster-service/internal/pkg/roster"
)

type PlanUsecase interface {
	Parse(ctx context.Context, fileName string, file io.Reader) ([]roster.PlanRow, error)
	FromRequest(ctx context.Context, request *requests.ExpandPlan) ([]roster.PlanRow, error)
	Expand(ctx context.Context, rows []roster.PlanRow) ([]roster.Record, error)
	Render(ctx context.Context, records []roster.Record, format string) (*planfile.Document, error)
	Export(ctx context.Context, records []roster.Record, format string) (*responses.PlanExport, error)
}
