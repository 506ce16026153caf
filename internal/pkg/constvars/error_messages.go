package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must have at least %s items",
	"max":      "maximum at %s characters long",
	"len":      "must have exactly %s items",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
	"weekday":  "must be a weekday name (Monday..Sunday or Lunes..Domingo)",
	"uuid":     "must be a valid UUID",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"gt":    true,
	"gte":   true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientMalformedPlanRow              = "plan row %d is invalid: %s"
	ErrClientMalformedPlanFile             = "the uploaded plan could not be read: %s"
	ErrClientUnsupportedPlanFile           = "plan file must be .xlsx or .csv"
	ErrClientUnsupportedFormat             = "format must be one of [%s]"
	ErrClientExportUnavailable             = "exporting is not available right now"
	ErrClientInvalidCoverageMask           = "hours must contain exactly 24 values of 0 or 1"
	ErrClientTooManyRequests               = "too many requests, you are blocked temporarily"
	ErrClientExportQuotaExceeded           = "export quota reached, retry in %d seconds"
	ErrClientRequestTooLarge               = "request body is larger than %d MB"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseMultipartForm = "cannot parse multipart form body"
	ErrDevMissingRequestID         = "request ID missing from context"
	ErrDevValidationFailed         = "validation failed"
	ErrDevMalformedPlanRow         = "plan row %d failed validation"
	ErrDevMalformedPlanFile        = "plan file %q could not be parsed"
	ErrDevUnsupportedPlanFile      = "plan file %q has an unsupported extension"
	ErrDevUnsupportedFormat        = "unsupported output format %q"
	ErrDevRenderSchedule           = "failed to render schedule as %s"
	ErrDevExportStorageDisabled    = "export storage is disabled in configuration"
	ErrDevInvalidCoverageMask      = "coverage mask for %q is invalid"
	ErrDevCoverageFileRead         = "failed to read coverage file %s"
	ErrDevCoverageFileWrite        = "failed to write coverage file %s"
	ErrDevExportQuotaExceeded      = "export quota exceeded"

	// Authentication messages
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthPermissionDenied      = "permission denied"

	// Database messages
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToIterateDocuments = "failed when iterating documents from database"

	// Minio messages
	ErrDevMinioFailedToCreateObject          = "failed to create object into minio storage with bucket name '%s'"
	ErrDevMinioFailedToGetObjectPresignedURL = "failed to get object URL from minio storage with bucket name '%s'"

	// Redis messages
	ErrDevRedisSetData       = "failed to SET data into redis"
	ErrDevRedisGetData       = "failed to GET data from redis, key %s"
	ErrDevRedisDeleteData    = "failed to DELETE data from redis"
	ErrDevRedisIncrementData = "failed to INCR data in redis, key %s"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message into queue %s"

	// Server messages
	ErrDevServerPanic            = "recovered from panic"
	ErrDevRequestTooLarge        = "request body exceeds the configured limit"
	ErrDevTooManyRequests        = "rate limit exceeded"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
)
