package config

type InternalConfig struct {
	App      App         `mapstructure:"app"`
	Coverage AppCoverage `mapstructure:"coverage"`
	Export   AppExport   `mapstructure:"export"`
	JWT      AppJWT      `mapstructure:"jwt"`
}

type App struct {
	Env                        string `mapstructure:"env"`
	Port                       string `mapstructure:"port"`
	Version                    string `mapstructure:"version"`
	Timezone                   string `mapstructure:"timezone"`
	EndpointPrefix             string `mapstructure:"endpoint_prefix"`
	MaxRequests                int    `mapstructure:"max_requests"`
	ShutdownTimeout            int    `mapstructure:"shutdown_timeout"`
	RequestTimeoutInSeconds    int    `mapstructure:"request_timeout_in_seconds"`
	RequestBodyLimitInMegabyte int    `mapstructure:"request_body_limit_in_megabyte"`
	// UploadRequestsPerMinute caps plan uploads per client IP
	UploadRequestsPerMinute  int `mapstructure:"upload_requests_per_minute"`
	UploadBlockTimeInSeconds int `mapstructure:"upload_block_time_in_seconds"`
}

// AppCoverage selects where the shift coverage table comes from.
type AppCoverage struct {
	// Source is either "file" (YAML at FilePath) or "mongo"
	Source                string `mapstructure:"source"`
	FilePath              string `mapstructure:"file_path"`
	CacheExpiryTimeInHour int    `mapstructure:"cache_expiry_time_in_hour"`
	// RefreshCronSpec schedules table reloads; empty disables them
	RefreshCronSpec string `mapstructure:"refresh_cron_spec"`
}

type AppExport struct {
	// Locale picks weekday names and column headers, "en" or "es"
	Locale                       string `mapstructure:"locale"`
	DefaultFormat                string `mapstructure:"default_format"`
	BucketName                   string `mapstructure:"bucket_name"`
	PresignedURLExpiryTimeInHour int    `mapstructure:"presigned_url_expiry_time_in_hour"`
	RabbitMQQueue                string `mapstructure:"rabbitmq_queue"`
	QuotaPerHour                 int    `mapstructure:"quota_per_hour"`
}

type AppJWT struct {
	Secret        string `mapstructure:"secret"`
	ExpTimeInHour int    `mapstructure:"exp_time_in_hour"`
}
