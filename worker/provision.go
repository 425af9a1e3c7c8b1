package worker

import (
	"context"
	"errors"
	"fmt"
	"fooddonation-backend/dal"
	"fooddonation-backend/infrastructure"
	"fooddonation-backend/models"
	"fooddonation-backend/utils/logger"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// TableProvisioner creates the DynamoDB tables declared in the embedded schema
type TableProvisioner struct {
	admin  dal.TableAdmin
	config *models.Config
	status *StatusManager
	logger logger.Logger

	maxRetries        int
	retryDelay        time.Duration
	backoffMultiplier float64
	sleep             func(ctx context.Context, d time.Duration) error
}

// NewTableProvisioner creates a new provisioner
func NewTableProvisioner(admin dal.TableAdmin, cfg *models.Config, wc *models.WorkerConfig, status *StatusManager, log logger.Logger) *TableProvisioner {
	return &TableProvisioner{
		admin:             admin,
		config:            cfg,
		status:            status,
		logger:            log,
		maxRetries:        wc.MaxRetries,
		retryDelay:        wc.RetryDelay,
		backoffMultiplier: wc.BackoffMultiplier,
		sleep:             sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TableNames returns the prefixed names of every table to provision
func (tp *TableProvisioner) TableNames() []string {
	bases := tp.config.Tables
	if len(bases) == 0 {
		bases = infrastructure.TableNames()
	}
	names := make([]string, 0, len(bases))
	for _, base := range bases {
		names = append(names, tp.config.TableName(base))
	}
	return names
}

// Provision creates every missing table, retrying the whole pass with exponential backoff
func (tp *TableProvisioner) Provision(ctx context.Context) error {
	if tp.status.IsSetupCompleted() {
		tp.logger.Info("Table setup already completed, verifying tables")
		return tp.CheckHealth(ctx)
	}

	if err := tp.status.Begin(); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= tp.maxRetries; attempt++ {
		if attempt > 0 {
			delay := tp.retryDelayFor(attempt - 1)
			tp.logger.WithFields(map[string]interface{}{
				"attempt": attempt + 1,
				"delay":   delay.String(),
			}).Warnf("Retrying table setup: %v", lastErr)
			if err := tp.status.MarkRetrying(attempt, lastErr.Error()); err != nil {
				tp.logger.Errorf("Failed to record retry: %v", err)
			}
			if err := tp.sleep(ctx, delay); err != nil {
				return err
			}
		}

		if lastErr = tp.createMissingTables(ctx); lastErr == nil {
			tp.logger.Info("Table setup completed")
			return tp.status.MarkCompleted()
		}
	}

	err := fmt.Errorf("table setup failed after %d attempts: %w", tp.maxRetries+1, lastErr)
	if markErr := tp.status.MarkFailed(err.Error()); markErr != nil {
		tp.logger.Errorf("Failed to record failure: %v", markErr)
	}
	return err
}

// Tables are created sequentially to avoid throttling
func (tp *TableProvisioner) createMissingTables(ctx context.Context) error {
	for _, name := range tp.TableNames() {
		exists, err := tp.tableExists(ctx, name)
		if err != nil {
			return fmt.Errorf("describe table %s: %w", name, err)
		}
		if exists {
			tp.logger.Infof("Table %s already exists, skipping creation", name)
			tp.recordTable(name, "EXISTING")
			continue
		}

		input, err := infrastructure.GetTables(name)
		if err != nil {
			return err
		}
		if err := tp.admin.CreateTable(ctx, input); err != nil {
			if isResourceInUse(err) {
				tp.recordTable(name, "EXISTING")
				continue
			}
			return fmt.Errorf("create table %s: %w", name, err)
		}
		tp.logger.Infof("Created table %s", name)
		tp.recordTable(name, "CREATED")
	}
	return nil
}

func (tp *TableProvisioner) recordTable(name, state string) {
	if err := tp.status.RecordTable(name, state); err != nil {
		tp.logger.Errorf("Failed to record table %s: %v", name, err)
	}
}

// CheckHealth verifies that every table exists and is ACTIVE
func (tp *TableProvisioner) CheckHealth(ctx context.Context) error {
	var problems []string
	for _, name := range tp.TableNames() {
		out, err := tp.admin.DescribeTable(ctx, name)
		switch {
		case isTableNotFoundError(err):
			problems = append(problems, name+" missing")
		case err != nil:
			problems = append(problems, fmt.Sprintf("%s: %v", name, err))
		case out.Table != nil && out.Table.TableStatus != types.TableStatusActive:
			problems = append(problems, fmt.Sprintf("%s is %s", name, out.Table.TableStatus))
		}
	}

	var healthErr error
	if len(problems) > 0 {
		healthErr = errors.New(strings.Join(problems, "; "))
	}
	if err := tp.status.RecordHealth(healthErr); err != nil {
		tp.logger.Errorf("Failed to record health check: %v", err)
	}
	return healthErr
}

func (tp *TableProvisioner) retryDelayFor(retryCount int) time.Duration {
	delay := float64(tp.retryDelay)
	for range retryCount {
		delay *= tp.backoffMultiplier
	}

	// Cap at one hour
	if maxDelay := float64(time.Hour); delay > maxDelay {
		delay = maxDelay
	}
	return time.Duration(int64(delay))
}

func (tp *TableProvisioner) tableExists(ctx context.Context, tableName string) (bool, error) {
	_, err := tp.admin.DescribeTable(ctx, tableName)
	if err != nil {
		if isTableNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isTableNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceNotFoundException"
}

func isResourceInUse(err error) bool {
	var inUse *types.ResourceInUseException
	if errors.As(err, &inUse) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceInUseException"
}
