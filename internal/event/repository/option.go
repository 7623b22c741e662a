package repository

import "time"

const (
	DefaultCapacity    = 100
	DefaultLockTimeout = 5 * time.Second
)

// FileOptions configures the JSON file backed store.
type FileOptions struct {
	Path        string        // JSON array file, newest at tail
	Capacity    int           // Max events kept (default 100)
	LockTimeout time.Duration // How long Append waits for the cross-process lock
}
