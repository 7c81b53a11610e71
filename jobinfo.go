package asyncjob

import (
	"fmt"

	"github.com/domonda/go-types/nullable"
	"github.com/domonda/go-types/uu"
)

// JobInfo is a snapshot of the lifecycle state of a Job.
type JobInfo struct {
	ID uu.ID

	// StartedAt is the time the background action began executing,
	// or null when the job has not started.
	StartedAt nullable.Time

	// StoppedAt is the time the background action returned,
	// or null while the job is pending or running.
	StoppedAt nullable.Time

	// CancelRequested reports if Cancel was called for the job.
	// Because cancellation is best-effort this does not imply
	// that the background action was prevented or interrupted.
	CancelRequested bool
}

// IsStarted returns if StartedAt is not null.
// Valid to call on a nil receiver.
func (i *JobInfo) IsStarted() bool {
	if i == nil {
		return false
	}
	return i.StartedAt.IsNotNull()
}

// IsStopped returns if StoppedAt is not null.
// Valid to call on a nil receiver.
func (i *JobInfo) IsStopped() bool {
	if i == nil {
		return false
	}
	return i.StoppedAt.IsNotNull()
}

// String implements the fmt.Stringer interface.
// Valid to call on a nil receiver.
func (i *JobInfo) String() string {
	if i == nil {
		return "nil JobInfo"
	}
	switch {
	case i.IsStopped():
		return fmt.Sprintf("Job %s, stopped at %s", i.ID, i.StoppedAt)
	case i.IsStarted():
		return fmt.Sprintf("Job %s, started at %s", i.ID, i.StartedAt)
	default:
		return fmt.Sprintf("Job %s, not started", i.ID)
	}
}
