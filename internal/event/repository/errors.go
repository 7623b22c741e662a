package repository

import "errors"

var (
	ErrLockTimeout   = errors.New("timed out waiting for event store lock")
	ErrCorruptStore  = errors.New("event store file is not a valid JSON array")
	ErrFailedToWrite = errors.New("failed to write event store")
	ErrFailedToRead  = errors.New("failed to read event store")
)
