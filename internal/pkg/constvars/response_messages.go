package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"

	HealthCheckSuccessMessage    = "service is healthy"
	ExpandPlanSuccessMessage     = "plan expanded successfully"
	ExportPlanSuccessMessage     = "plan exported successfully"
	GetCoveragesSuccessMessage   = "get shift coverages successfully"
	GetCoverageSuccessMessage    = "get shift coverage successfully"
	UpsertCoverageSuccessMessage = "shift coverage saved successfully"
)
