package asyncjob

import (
	"context"
)

// Handle is an opaque reference to an in-flight execution.
type Handle interface {
	// Cancel requests cancellation of the execution.
	// Cancellation is best-effort: it signals the unit of work to
	// stop but does not guarantee that the work has not already
	// completed. Cancelling an already completed execution has no
	// effect.
	Cancel()

	// Done returns a channel that is closed when the execution has
	// ended, whether it ran to completion or was cancelled before
	// it started.
	Done() <-chan struct{}

	// Err returns a failure captured by the execution substrate,
	// or nil. It only returns a meaningful value after the Done
	// channel is closed.
	//
	// Dedicated worker goroutines never capture failures: a panic
	// there terminates the process, so Err is always nil.
	// Pool handles report a captured task panic or ErrCancelled.
	Err() error
}

var _ Handle = &workerHandle{}

// workerHandle is the Handle of a dedicated worker goroutine.
// Cancellation is cooperative: it cancels the context passed to the
// background action, which the action may or may not observe.
type workerHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func newWorkerHandle() (*workerHandle, context.Context) {
	ctx, cancel := context.WithCancel(context.Background())
	return &workerHandle{cancel: cancel, done: make(chan struct{})}, ctx
}

func (h *workerHandle) Cancel() {
	h.cancel()
}

func (h *workerHandle) Done() <-chan struct{} {
	return h.done
}

func (h *workerHandle) Err() error {
	return nil
}

func (h *workerHandle) finish() {
	h.cancel() // release the context
	close(h.done)
}

// handleRef wraps a Handle so the current handle of a Job
// can be stored in an atomic.Pointer.
type handleRef struct {
	Handle
}
