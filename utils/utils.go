package utils

import (
	"encoding/json"
	"fmt"
	"fooddonation-backend/models"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// GetConfig read the configuration from environment variables or config files
func GetConfig() (*models.Config, error) {
	config, err := Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return config, nil
}

// Load initializes and returns the application configuration using Viper.
// A .env file, when present, is loaded into the environment first.
func Load() (*models.Config, error) {
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded environment from .env")
	}

	v := viper.New()

	// Set configuration file details
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../")

	setDefaults(v)

	// Enable environment variable support
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Config file not found (%v), using defaults and environment variables\n", err)
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	return decode(v)
}

// decode flattens the nested config sections and validates the result
func decode(v *viper.Viper) (*models.Config, error) {
	flattenNestedConfig(v)

	var config models.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Application defaults
	v.SetDefault("app_name", "Food Donation Backend")
	v.SetDefault("app_version", "1.0.0")
	v.SetDefault("app_env", "development")
	v.SetDefault("app_host", "0.0.0.0")
	v.SetDefault("app_port", "5000")

	// Store defaults
	v.SetDefault("store_driver", models.DriverMemory)
	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_database", "food-donation")

	// AWS defaults
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("aws_access_key_id", "")
	v.SetDefault("aws_secret_access_key", "")
	v.SetDefault("dynamodb_endpoint", "")
	v.SetDefault("dynamodb_table_prefix", "dev")

	// Attachments are disabled until a bucket is set
	v.SetDefault("s3_bucket", "")
	v.SetDefault("s3_region", "")
	v.SetDefault("s3_endpoint", "")
	v.SetDefault("s3_public_base_url", "")

	// Email delivery is disabled until a host is set
	v.SetDefault("smtp_host", "")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_username", "")
	v.SetDefault("smtp_password", "")
	v.SetDefault("smtp_from", "")

	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_prefix", "fooddonation")

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// CORS defaults
	v.SetDefault("cors_origins", []string{"*"})

	// Rate limiting defaults
	v.SetDefault("rate_limit_requests_per_minute", 100)

	// Expiry digest every morning
	v.SetDefault("alerts_cron_schedule", "0 0 7 * * *")
	v.SetDefault("alerts_recipient", "")

	// Base Path default
	v.SetDefault("basePath", "/api")

	v.SetDefault("tables", []string{"donations", "food", "ngos", "communications", "unique"})
}

// validate checks if all required configuration is provided
func validate(c *models.Config) error {
	switch c.StoreDriver {
	case models.DriverMemory, models.DriverDynamoDB, models.DriverMongoDB:
	default:
		return fmt.Errorf("unsupported store driver %q", c.StoreDriver)
	}

	if c.StoreDriver == models.DriverMemory && c.AppEnv == "production" {
		return fmt.Errorf("the memory store cannot be used in production")
	}

	if c.StoreDriver == models.DriverMongoDB && c.MongoURI == "" {
		return fmt.Errorf("mongo uri must be set for the mongodb driver")
	}

	if c.SMTPHost != "" && c.SMTPFrom == "" {
		return fmt.Errorf("smtp from address must be set when smtp host is configured")
	}

	if c.RateLimitRequestsPerMinute < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}

	return nil
}

// flattenNestedConfig flattens the nested JSON structure to flat keys for easier mapping
func flattenNestedConfig(v *viper.Viper) {
	sections := map[string]string{
		"app.name":    "app_name",
		"app.version": "app_version",
		"app.env":     "app_env",
		"app.host":    "app_host",
		"app.port":    "app_port",

		"store.driver":         "store_driver",
		"store.mongo_uri":      "mongo_uri",
		"store.mongo_database": "mongo_database",

		"aws.region":                "aws_region",
		"aws.access_key_id":         "aws_access_key_id",
		"aws.secret_access_key":     "aws_secret_access_key",
		"aws.dynamodb_endpoint":     "dynamodb_endpoint",
		"aws.dynamodb_table_prefix": "dynamodb_table_prefix",

		"s3.bucket":          "s3_bucket",
		"s3.region":          "s3_region",
		"s3.endpoint":        "s3_endpoint",
		"s3.public_base_url": "s3_public_base_url",

		"smtp.host":     "smtp_host",
		"smtp.port":     "smtp_port",
		"smtp.username": "smtp_username",
		"smtp.password": "smtp_password",
		"smtp.from":     "smtp_from",

		"redis.addr":     "redis_addr",
		"redis.password": "redis_password",
		"redis.prefix":   "redis_prefix",

		"logging.level":  "log_level",
		"logging.format": "log_format",

		"rate_limit.requests_per_minute": "rate_limit_requests_per_minute",

		"alerts.cron_schedule": "alerts_cron_schedule",
		"alerts.recipient":     "alerts_recipient",
	}
	for nested, flat := range sections {
		if v.IsSet(nested) {
			v.Set(flat, v.Get(nested))
		}
	}

	// CORS section
	if v.IsSet("cors.origins") {
		v.Set("cors_origins", v.GetStringSlice("cors.origins"))
	}
}

// ParseDate accepts RFC3339 timestamps or plain YYYY-MM-DD dates (midnight UTC)
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// PrintPrettyJSON takes any struct or map and prints it as pretty JSON
func PrintPrettyJSON(data interface{}) string {
	prettyJSON, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		fmt.Println("Failed to generate JSON:", err)
		return ""
	}
	return string(prettyJSON)
}

// GenerateUUID returns a new UUID string
func GenerateUUID() string {
	return uuid.New().String()
}
