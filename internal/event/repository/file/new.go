package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"repo-event-relay/internal/event/repository"
	"repo-event-relay/pkg/log"
)

type implRepository struct {
	path        string
	capacity    int
	lockTimeout time.Duration

	mu   sync.Mutex // serializes writers inside this process
	lock *flock.Flock
	l    log.Logger
}

// New creates a file-backed Repository. The parent directory is created if missing.
func New(opt repository.FileOptions, l log.Logger) (repository.Repository, error) {
	if opt.Path == "" {
		return nil, fmt.Errorf("event/repository/file: path is required")
	}
	if opt.Capacity <= 0 {
		opt.Capacity = repository.DefaultCapacity
	}
	if opt.LockTimeout <= 0 {
		opt.LockTimeout = repository.DefaultLockTimeout
	}

	if dir := filepath.Dir(opt.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("event/repository/file: create dir: %w", err)
		}
	}

	return &implRepository{
		path:        opt.Path,
		capacity:    opt.Capacity,
		lockTimeout: opt.LockTimeout,
		lock:        flock.New(opt.Path + ".lock"),
		l:           l,
	}, nil
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("event/repository/file.%s", method)
}
