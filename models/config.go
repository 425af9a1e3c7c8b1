package models

// Config holds all configuration for the application
type Config struct {
	// Application
	AppName    string `mapstructure:"app_name"`
	AppVersion string `mapstructure:"app_version"`
	AppEnv     string `mapstructure:"app_env"`
	AppHost    string `mapstructure:"app_host"`
	AppPort    string `mapstructure:"app_port"`

	// Store
	StoreDriver   string `mapstructure:"store_driver"` // memory, dynamodb or mongodb
	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`

	// AWS
	AWSRegion           string `mapstructure:"aws_region"`
	AWSAccessKeyID      string `mapstructure:"aws_access_key_id"`
	AWSSecretAccessKey  string `mapstructure:"aws_secret_access_key"`
	DynamoDBEndpoint    string `mapstructure:"dynamodb_endpoint"`
	DynamoDBTablePrefix string `mapstructure:"dynamodb_table_prefix"`

	// Attachment storage
	S3Bucket        string `mapstructure:"s3_bucket"`
	S3Region        string `mapstructure:"s3_region"`
	S3Endpoint      string `mapstructure:"s3_endpoint"`
	S3PublicBaseURL string `mapstructure:"s3_public_base_url"`

	// SMTP
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUsername string `mapstructure:"smtp_username"`
	SMTPPassword string `mapstructure:"smtp_password"`
	SMTPFrom     string `mapstructure:"smtp_from"`

	// Redis (rate limiting and worker locks)
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisPrefix   string `mapstructure:"redis_prefix"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// CORS
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Rate Limiting
	RateLimitRequestsPerMinute int `mapstructure:"rate_limit_requests_per_minute"`

	// Alerts
	AlertsCronSchedule string `mapstructure:"alerts_cron_schedule"`
	AlertsRecipient    string `mapstructure:"alerts_recipient"`

	// Base Path
	BasePath string `mapstructure:"basePath"`

	Tables []string `mapstructure:"tables"`
}

// Store drivers
const (
	DriverMemory   = "memory"
	DriverDynamoDB = "dynamodb"
	DriverMongoDB  = "mongodb"
)

// TableName returns the prefixed name of a collection.
func (c *Config) TableName(base string) string {
	if c.DynamoDBTablePrefix == "" {
		return base
	}
	return c.DynamoDBTablePrefix + "_" + base
}
