package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fooddonation-backend/models"
	"os"
	"path/filepath"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned when another worker holds the lock
var ErrLockHeld = errors.New("lock is held by another worker")

// Locker hands out short-lived exclusive leases on a key
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}

// Lease is a held lock
type Lease interface {
	Release(ctx context.Context) error
}

// RedisLocker locks through redis so that only one instance runs a job
type RedisLocker struct {
	client *redislock.Client
	prefix string
}

// NewRedisLocker creates a redis backed locker
func NewRedisLocker(client *redis.Client, prefix string) *RedisLocker {
	return &RedisLocker{client: redislock.New(client), prefix: prefix}
}

func (rl *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	lock, err := rl.client.Obtain(ctx, fmt.Sprintf("%s:lock:%s", rl.prefix, key), ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrLockHeld
	}
	if err != nil {
		return nil, fmt.Errorf("obtain redis lock: %w", err)
	}
	return lock, nil
}

// FileLocker coordinates workers sharing a filesystem
type FileLocker struct {
	dir         string
	owner       string
	environment string
	now         func() time.Time
}

// NewFileLocker creates a new file locker rooted at dir
func NewFileLocker(dir, owner, environment string) *FileLocker {
	return &FileLocker{dir: dir, owner: owner, environment: environment, now: time.Now}
}

type fileLease struct {
	locker *FileLocker
	path   string
	info   *models.LockInfo
}

func (fl *FileLocker) Obtain(_ context.Context, key string, ttl time.Duration) (Lease, error) {
	if err := os.MkdirAll(fl.dir, 0755); err != nil {
		return nil, err
	}
	path := filepath.Join(fl.dir, key+".lock")

	if existing, err := readLockFile(path); err == nil {
		if fl.now().Before(existing.ExpiresAt) && existing.Owner != fl.owner {
			return nil, ErrLockHeld
		}
		// expired or ours
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lock: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	now := fl.now()
	info := &models.LockInfo{
		ID:          fmt.Sprintf("%s-lock-%d", key, now.UnixNano()),
		Owner:       fl.owner,
		AcquiredAt:  now,
		ExpiresAt:   now.Add(ttl),
		Environment: fl.environment,
	}
	if err := createLockFile(path, info); err != nil {
		if os.IsExist(err) {
			return nil, ErrLockHeld
		}
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}
	return &fileLease{locker: fl, path: path, info: info}, nil
}

func readLockFile(path string) (*models.LockInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lockInfo models.LockInfo
	if err := json.Unmarshal(data, &lockInfo); err != nil {
		return nil, fmt.Errorf("failed to parse lock file: %w", err)
	}
	return &lockInfo, nil
}

// createLockFile fails with an IsExist error when another worker got there first
func createLockFile(path string, lockInfo *models.LockInfo) error {
	data, err := json.MarshalIndent(lockInfo, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize lock info: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// Release removes the lock file if it still belongs to this lease
func (l *fileLease) Release(_ context.Context) error {
	current, err := readLockFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read lock file: %w", err)
	}
	if current.ID != l.info.ID {
		return fmt.Errorf("cannot release lock owned by %s", current.Owner)
	}
	return os.Remove(l.path)
}

// CleanupExpiredLocks removes expired lock files left behind by crashed workers
func (fl *FileLocker) CleanupExpiredLocks() error {
	matches, err := filepath.Glob(filepath.Join(fl.dir, "*.lock"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		info, err := readLockFile(path)
		if err != nil {
			continue
		}
		if fl.now().After(info.ExpiresAt) {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return err
			}
		}
	}
	return nil
}
