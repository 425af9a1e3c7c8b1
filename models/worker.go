package models

import "time"

// WorkerConfig holds configuration for the background worker
type WorkerConfig struct {
	// Expiry digest schedule (seconds field included)
	DigestSchedule string `json:"digest_schedule"`
	// Table health check schedule, only used when tables are provisioned
	HealthSchedule string `json:"health_schedule"`

	// Lock settings
	LockKey      string        `json:"lock_key"`
	LockTimeout  time.Duration `json:"lock_timeout"`
	LockDir      string        `json:"lock_dir"`

	// Provisioning retry settings
	MaxRetries        int           `json:"max_retries"`
	RetryDelay        time.Duration `json:"retry_delay"`
	BackoffMultiplier float64       `json:"backoff_multiplier"`

	StatusFilePath string `json:"status_file_path"`
	Environment    string `json:"environment"`
}

// LockInfo is the content of a file lock
type LockInfo struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	AcquiredAt  time.Time `json:"acquired_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Environment string    `json:"environment"`
}

// WorkerStatus represents the current state of table provisioning
type WorkerStatus string

const (
	StatusIdle           WorkerStatus = "idle"
	StatusCreatingTables WorkerStatus = "creating_tables"
	StatusRetrying       WorkerStatus = "retrying"
	StatusCompleted      WorkerStatus = "completed"
	StatusFailed         WorkerStatus = "failed"
)

// ExecutionResult is persisted to the status file after each provisioning step
type ExecutionResult struct {
	Success       bool                   `json:"success"`
	Status        WorkerStatus           `json:"status"`
	StartTime     time.Time              `json:"start_time"`
	EndTime       *time.Time             `json:"end_time,omitempty"`
	Duration      time.Duration          `json:"duration"`
	TablesCreated []TableStatus          `json:"tables_created"`
	ErrorMessage  string                 `json:"error_message,omitempty"`
	RetryCount    int                    `json:"retry_count"`
	Environment   string                 `json:"environment"`
	Metadata      map[string]interface{} `json:"metadata"`
}

// TableStatus records one provisioned table
type TableStatus struct {
	Name      string    `json:"name"`
	Status    string    `json:"status"` // CREATED, EXISTING
	CreatedAt time.Time `json:"created_at"`
}

// ExpiryDigest summarises the food items that expire soon
type ExpiryDigest struct {
	GeneratedAt time.Time   `json:"generatedAt"`
	Items       []*FoodItem `json:"items"`
}
