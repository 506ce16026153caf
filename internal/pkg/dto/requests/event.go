package requests

import "time"

// ScheduleExportedEvent is published after an expanded roster has been
// stored.
type ScheduleExportedEvent struct {
	Event       string    `json:"event"`
	ExportID    string    `json:"export_id"`
	RequestID   string    `json:"request_id,omitempty"`
	FileName    string    `json:"file_name"`
	Bucket      string    `json:"bucket"`
	Format      string    `json:"format"`
	RecordCount int       `json:"record_count"`
	AgentCount  int       `json:"agent_count"`
	ExportedAt  time.Time `json:"exported_at"`
}
