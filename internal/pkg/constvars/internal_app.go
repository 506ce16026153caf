package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_ADMIN_SUBJECT_KEY        ContextKey = "admin_subject"
)

const (
	REQUEST_ID_PREFIX = "RSTR_SVC_"
)

const (
	ResourcePlans     = "plans"
	ResourceCoverages = "coverages"
	ResourceHealth    = "health"
)

const (
	CoverageSourceFile  = "file"
	CoverageSourceMongo = "mongo"
)

const (
	MongoCollectionShiftCoverages = "shift_coverages"
	RedisKeyCoverageTable         = "coverage:table"
)

const (
	QueryParamFormat    = "format"
	URLParamShiftCode   = "code"
	FormFieldPlanFile   = "file"
	RoleAdmin           = "admin"
	JWTClaimRole        = "role"
	JWTClaimSubject     = "sub"
	ExportObjectPrefix  = "exports/"
	EventScheduleExport = "schedule.exported"
)

const (
	RedisKeyQuotaPrefix = "quota"
	QuotaGroupExport    = "export"
)
