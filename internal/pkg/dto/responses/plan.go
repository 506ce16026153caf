package responses

import (
	"time"

	"roster-service/internal/pkg/roster"
)

type ExpandedPlan struct {
	Summary roster.Summary  `json:"summary"`
	Records []roster.Record `json:"records"`
}

type PlanExport struct {
	ExportID    string    `json:"export_id"`
	FileName    string    `json:"file_name"`
	Format      string    `json:"format"`
	URL         string    `json:"url"`
	RecordCount int       `json:"record_count"`
	ExportedAt  time.Time `json:"exported_at"`
}
