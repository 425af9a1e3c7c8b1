package worker

import (
	"encoding/json"
	"fmt"
	"fooddonation-backend/models"
	"os"
	"path/filepath"
	"time"
)

// StatusManager persists provisioning progress to a JSON file
type StatusManager struct {
	path        string
	environment string
	now         func() time.Time
}

// NewStatusManager creates a new status manager
func NewStatusManager(statusPath, environment string) *StatusManager {
	return &StatusManager{path: statusPath, environment: environment, now: time.Now}
}

func (sm *StatusManager) SaveStatus(result *models.ExecutionResult) error {
	if err := os.MkdirAll(filepath.Dir(sm.path), 0755); err != nil {
		return fmt.Errorf("failed to create status directory: %w", err)
	}

	if result.EndTime == nil && (result.Status == models.StatusCompleted || result.Status == models.StatusFailed) {
		now := sm.now()
		result.EndTime = &now
		result.Duration = now.Sub(result.StartTime)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	// Write atomically
	tempFile := sm.path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp status file: %w", err)
	}
	if err := os.Rename(tempFile, sm.path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename status file: %w", err)
	}
	return nil
}

func (sm *StatusManager) LoadStatus() (*models.ExecutionResult, error) {
	data, err := os.ReadFile(sm.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read status file: %w", err)
	}

	var result models.ExecutionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status: %w", err)
	}
	return &result, nil
}

// IsSetupCompleted reports whether a previous run provisioned every table
func (sm *StatusManager) IsSetupCompleted() bool {
	status, err := sm.LoadStatus()
	if err != nil {
		return false
	}
	return status.Status == models.StatusCompleted && status.Success
}

// Begin starts a fresh execution record
func (sm *StatusManager) Begin() error {
	return sm.SaveStatus(&models.ExecutionResult{
		Status:        models.StatusCreatingTables,
		StartTime:     sm.now(),
		TablesCreated: make([]models.TableStatus, 0),
		Environment:   sm.environment,
		Metadata:      make(map[string]interface{}),
	})
}

func (sm *StatusManager) update(fn func(*models.ExecutionResult)) error {
	status, err := sm.LoadStatus()
	if err != nil {
		return err
	}
	fn(status)
	return sm.SaveStatus(status)
}

// RecordTable adds a table to the created list once
func (sm *StatusManager) RecordTable(tableName, state string) error {
	return sm.update(func(status *models.ExecutionResult) {
		for _, table := range status.TablesCreated {
			if table.Name == tableName {
				return
			}
		}
		status.TablesCreated = append(status.TablesCreated, models.TableStatus{
			Name:      tableName,
			Status:    state,
			CreatedAt: sm.now(),
		})
	})
}

// MarkRetrying records a failed attempt that will be retried
func (sm *StatusManager) MarkRetrying(attempt int, message string) error {
	return sm.update(func(status *models.ExecutionResult) {
		status.Status = models.StatusRetrying
		status.RetryCount = attempt
		status.ErrorMessage = message
	})
}

// MarkCompleted marks the setup as completed
func (sm *StatusManager) MarkCompleted() error {
	return sm.update(func(status *models.ExecutionResult) {
		status.Success = true
		status.Status = models.StatusCompleted
		status.ErrorMessage = ""
	})
}

// MarkFailed marks the setup as failed
func (sm *StatusManager) MarkFailed(errorMsg string) error {
	return sm.update(func(status *models.ExecutionResult) {
		status.Success = false
		status.Status = models.StatusFailed
		status.ErrorMessage = errorMsg
	})
}

// RecordHealth stores the outcome of the last table health check
func (sm *StatusManager) RecordHealth(healthErr error) error {
	return sm.update(func(status *models.ExecutionResult) {
		if status.Metadata == nil {
			status.Metadata = make(map[string]interface{})
		}
		status.Metadata["last_health_check"] = sm.now()
		if healthErr != nil {
			status.Metadata["health"] = "unhealthy"
			status.Metadata["health_error"] = healthErr.Error()
			return
		}
		status.Metadata["health"] = "healthy"
		delete(status.Metadata, "health_error")
	})
}
