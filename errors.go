package asyncjob

import (
	"github.com/domonda/go-errs"
)

const (
	// ErrNilPool is returned when a nil pool is passed
	// where a Pool is required.
	ErrNilPool errs.Sentinel = "nil worker pool"

	// ErrNilTask is returned when a nil task is passed
	// where a background task is required.
	ErrNilTask errs.Sentinel = "nil background task"

	// ErrCancelled is reported by a Handle whose execution
	// was cancelled before it started.
	ErrCancelled errs.Sentinel = "execution cancelled before it started"
)
