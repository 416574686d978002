package parameterrepo

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("parameter not found")
	ErrOverlap  = errors.New("parameter validity overlaps an existing range for the key")
)

type ListParametersRequest struct {
	Key string
	// ValidAt keeps parameters valid at the given time.
	ValidAt *time.Time
	Offset  int
	Limit   int
}
