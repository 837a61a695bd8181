package checkpoint

import "errors"

var (
	// ErrNoCheckpoint is returned by Load when the state file does not exist.
	ErrNoCheckpoint = errors.New("no checkpoint found")

	// ErrCorruptCheckpoint is returned by Load when the state file is not a
	// valid checkpoint document.
	ErrCorruptCheckpoint = errors.New("corrupt checkpoint")

	// ErrLocked is returned when another process holds the state file lock.
	ErrLocked = errors.New("checkpoint is locked by another process")
)
