package constvars

const (
	LoggingRequestIDKey  = "request_id"
	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"
	LoggingOperationKey  = "operation"

	LoggingShiftCodeKey     = "shift_code"
	LoggingPlanRowCountKey  = "plan_row_count"
	LoggingRecordCountKey   = "record_count"
	LoggingAgentCountKey    = "agent_count"
	LoggingCoverageCountKey = "coverage_count"
	LoggingFileNameKey      = "file_name"
	LoggingFormatKey        = "format"
	LoggingBucketKey        = "bucket"
	LoggingQueueKey         = "queue"
	LoggingCacheHitKey      = "cache_hit"
)
