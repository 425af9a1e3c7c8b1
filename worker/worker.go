package worker

import (
	"context"
	"errors"
	"fmt"
	"fooddonation-backend/dal"
	"fooddonation-backend/models"
	"fooddonation-backend/services"
	"fooddonation-backend/utils"
	"fooddonation-backend/utils/logger"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron"
)

const digestLockKey = "expiry-digest"

// Dependencies are the collaborators the worker drives. TableAdmin is only set for
// drivers whose tables must be provisioned, Redis and Mailer are optional.
type Dependencies struct {
	TableAdmin dal.TableAdmin
	Alerts     AlertSource
	Mailer     services.Mailer
	Redis      *redis.Client
}

// Worker runs the table provisioning and the scheduled jobs
type Worker struct {
	config       *models.Config
	workerConfig *models.WorkerConfig
	logger       logger.Logger
	cron         *cron.Cron
	locker       Locker
	status       *StatusManager
	provisioner  *TableProvisioner
	digest       *ExpiryDigestJob
	ownerID      string

	mu       sync.Mutex
	running  bool
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// DefaultWorkerConfig derives the worker settings from the application config
func DefaultWorkerConfig(cfg *models.Config) *models.WorkerConfig {
	env := cfg.AppEnv
	if env == "" {
		env = "development"
	}
	return &models.WorkerConfig{
		DigestSchedule:    cfg.AlertsCronSchedule,
		HealthSchedule:    "0 */10 * * * *",
		LockKey:           digestLockKey,
		LockTimeout:       5 * time.Minute,
		LockDir:           filepath.Join(os.TempDir(), "fooddonation-locks-"+env),
		MaxRetries:        5,
		RetryDelay:        2 * time.Second,
		BackoffMultiplier: 2.0,
		StatusFilePath:    filepath.Join(os.TempDir(), fmt.Sprintf("fooddonation-status-%s.json", env)),
		Environment:       env,
	}
}

// NewWorker wires the worker. It does not start anything.
func NewWorker(cfg *models.Config, wc *models.WorkerConfig, deps Dependencies, log logger.Logger) (*Worker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if deps.Alerts == nil {
		return nil, fmt.Errorf("an alert source is required")
	}
	if wc == nil {
		wc = DefaultWorkerConfig(cfg)
	}
	if err := validateWorkerConfig(wc); err != nil {
		return nil, fmt.Errorf("invalid worker configuration: %w", err)
	}

	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "localhost"
	}
	ownerID := fmt.Sprintf("worker-%s-%s", hostname, uuid.New().String()[:8])

	var locker Locker
	if deps.Redis != nil {
		locker = NewRedisLocker(deps.Redis, cfg.RedisPrefix)
	} else {
		locker = NewFileLocker(wc.LockDir, ownerID, wc.Environment)
	}

	status := NewStatusManager(wc.StatusFilePath, wc.Environment)

	var provisioner *TableProvisioner
	if deps.TableAdmin != nil {
		provisioner = NewTableProvisioner(deps.TableAdmin, cfg, wc, status, log)
	}

	log.WithFields(map[string]interface{}{
		"owner":           ownerID,
		"digest_schedule": wc.DigestSchedule,
		"provision":       provisioner != nil,
		"redis_lock":      deps.Redis != nil,
	}).Debugf("Worker configuration: %s", utils.PrintPrettyJSON(wc))

	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		config:       cfg,
		workerConfig: wc,
		logger:       log,
		cron:         cron.New(),
		locker:       locker,
		status:       status,
		provisioner:  provisioner,
		digest:       NewExpiryDigestJob(deps.Alerts, deps.Mailer, cfg.AlertsRecipient, log),
		ownerID:      ownerID,
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

func validateWorkerConfig(config *models.WorkerConfig) error {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(config.DigestSchedule); err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", config.DigestSchedule, err)
	}
	if _, err := parser.Parse(config.HealthSchedule); err != nil {
		return fmt.Errorf("invalid health schedule %q: %w", config.HealthSchedule, err)
	}
	if config.LockKey == "" {
		return fmt.Errorf("lock key must be set")
	}
	if config.LockTimeout <= 0 {
		return fmt.Errorf("lock timeout must be positive")
	}
	if config.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative")
	}
	if config.BackoffMultiplier < 1 {
		return fmt.Errorf("backoff multiplier must be at least 1")
	}
	if config.StatusFilePath == "" {
		return fmt.Errorf("status file path must be set")
	}
	return nil
}

// Start kicks off table provisioning in the background and starts the scheduler
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("worker is already running")
	}
	select {
	case <-w.ctx.Done():
		return fmt.Errorf("worker context is cancelled, cannot start")
	default:
	}

	if err := w.cron.AddFunc(w.workerConfig.DigestSchedule, w.digestJob); err != nil {
		return fmt.Errorf("failed to add digest job: %w", err)
	}

	if w.provisioner != nil {
		if err := w.cron.AddFunc(w.workerConfig.HealthSchedule, w.healthCheckJob); err != nil {
			return fmt.Errorf("failed to add health check job: %w", err)
		}

		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			if err := w.provisioner.Provision(w.ctx); err != nil && !errors.Is(err, context.Canceled) {
				w.logger.Errorf("Table provisioning failed: %v", err)
			}
		}()
	}

	w.cron.Start()
	w.running = true
	w.logger.Infof("Worker %s started", w.ownerID)
	return nil
}

func (w *Worker) digestJob() {
	ctx, cancel := context.WithTimeout(w.ctx, w.workerConfig.LockTimeout)
	defer cancel()

	if _, err := w.RunDigest(ctx); err != nil {
		if errors.Is(err, ErrLockHeld) {
			w.logger.Info("Expiry digest already running on another instance, skipping")
			return
		}
		w.logger.Errorf("Expiry digest failed: %v", err)
	}
}

// RunDigest runs the expiry digest once while holding the digest lock
func (w *Worker) RunDigest(ctx context.Context) (*models.ExpiryDigest, error) {
	lease, err := w.locker.Obtain(ctx, w.workerConfig.LockKey, w.workerConfig.LockTimeout)
	if err != nil {
		return nil, err
	}
	defer func() {
		// fresh context so an expired ctx still releases the lock
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := lease.Release(releaseCtx); err != nil {
			w.logger.Warnf("Failed to release digest lock: %v", err)
		}
	}()

	return w.digest.Run(ctx)
}

func (w *Worker) healthCheckJob() {
	w.logger.Debug("Performing table health check")

	ctx, cancel := context.WithTimeout(w.ctx, 30*time.Second)
	defer cancel()

	if err := w.provisioner.CheckHealth(ctx); err != nil {
		w.logger.Errorf("Table health check failed: %v", err)
		return
	}
	w.logger.Debug("Table health check passed")
}

// GetStatus returns the last persisted provisioning status
func (w *Worker) GetStatus() (*models.ExecutionResult, error) {
	return w.status.LoadStatus()
}

// IsRunning reports whether the scheduler is running
func (w *Worker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Stop cancels in-flight work and stops the scheduler
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		defer w.mu.Unlock()

		w.cancel()
		if !w.running {
			return
		}

		w.cron.Stop()
		w.wg.Wait()
		w.running = false
		w.logger.Info("Worker stopped")
	})
}
