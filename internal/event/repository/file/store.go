package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/renameio/v2"

	"repo-event-relay/internal/event/repository"
	"repo-event-relay/internal/model"
)

const lockRetryDelay = 25 * time.Millisecond

// Append runs read-all, append, trim, write-all under the in-process mutex and the file lock.
func (r *implRepository) Append(ctx context.Context, event model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lockCtx, cancel := context.WithTimeout(ctx, r.lockTimeout)
	defer cancel()

	locked, err := r.lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil || !locked {
		r.l.Errorf(ctx, "%s: lock %s: %v", r.dsn("Append"), r.lock.Path(), err)
		return repository.ErrLockTimeout
	}
	defer func() {
		if err := r.lock.Unlock(); err != nil {
			r.l.Warnf(ctx, "%s: unlock: %v", r.dsn("Append"), err)
		}
	}()

	events, err := r.readAll()
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("Append"), err)
		return err
	}

	events = append(events, event)
	if len(events) > r.capacity {
		events = events[len(events)-r.capacity:]
	}

	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrFailedToWrite, err)
	}

	// Temp file + rename: readers see either the old or the new array.
	if err := renameio.WriteFile(r.path, data, 0o644); err != nil {
		r.l.Errorf(ctx, "%s: write %s: %v", r.dsn("Append"), r.path, err)
		return fmt.Errorf("%w: %v", repository.ErrFailedToWrite, err)
	}

	return nil
}

// List reads the whole log. Readers skip the file lock since writes replace the file atomically.
func (r *implRepository) List(ctx context.Context) ([]model.Event, error) {
	events, err := r.readAll()
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("List"), err)
		return nil, err
	}
	return events, nil
}

func (r *implRepository) readAll() ([]model.Event, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Event{}, nil
		}
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToRead, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Event{}, nil
	}

	var events []model.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrCorruptStore, err)
	}
	return events, nil
}
