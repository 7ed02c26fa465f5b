package entity

import "github.com/pkg/errors"

var (
	// ErrConfiguration marks a malformed column descriptor.
	ErrConfiguration = errors.New("column configuration")
	// ErrCorruptState marks persisted layout that had to be repaired.
	ErrCorruptState = errors.New("corrupt persisted layout")
	// ErrInvalidDragTarget marks a drop outside any partition.
	ErrInvalidDragTarget = errors.New("invalid drag target")
	// ErrRejected marks a command that would break a layout invariant.
	ErrRejected = errors.New("command rejected")
	// ErrGestureActive marks a gesture started while another is underway.
	ErrGestureActive = errors.New("gesture active")
)
