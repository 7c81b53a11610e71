package workerpool

import (
	"context"
	"sync/atomic"

	"github.com/domonda/go-asyncjob"
	"github.com/domonda/go-types/uu"
	"github.com/domonda/golog"
)

const (
	statePending int32 = iota
	stateRunning
	stateStopped
	stateCancelled
)

var _ asyncjob.Handle = &TaskHandle{}

// TaskHandle is the handle of a task submitted to a Pool.
// It implements the asyncjob.Handle interface.
type TaskHandle struct {
	id     uu.ID
	task   func(ctx context.Context)
	state  atomic.Int32
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	// err is written before done is closed
	// and must only be read after done is closed
	err error
}

func newTaskHandle(task func(ctx context.Context)) *TaskHandle {
	ctx, cancel := context.WithCancel(context.Background())
	h := &TaskHandle{
		id:     uu.IDv4(),
		task:   task,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	h.ctx = golog.ContextWithAttribs(ctx, golog.NewUUID("taskID", h.id))
	return h
}

// ID returns the unique ID of the task,
// also used as "taskID" logging attribute.
func (h *TaskHandle) ID() uu.ID {
	return h.id
}

// Cancel requests cancellation of the task.
//
// A task that has not started yet will never run and its handle
// completes with ErrCancelled. A running task gets its context
// cancelled, interruption is cooperative. Cancelling an already
// stopped task has no effect.
func (h *TaskHandle) Cancel() {
	if h.cancelPending() {
		return
	}
	h.cancel()
}

// cancelPending completes a task that has not started yet with
// ErrCancelled and reports if it did so.
func (h *TaskHandle) cancelPending() bool {
	if !h.state.CompareAndSwap(statePending, stateCancelled) {
		return false
	}
	h.err = asyncjob.ErrCancelled
	h.cancel()
	close(h.done)
	return true
}

// Done returns a channel that is closed when the task has ended,
// whether it ran to completion or was cancelled before it started.
func (h *TaskHandle) Done() <-chan struct{} {
	return h.done
}

// Err returns the error of a cancelled-before-start task or a
// captured task panic, or nil. Before the Done channel is closed
// Err always returns nil.
func (h *TaskHandle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// IsCancelled returns if the task was cancelled before it started.
func (h *TaskHandle) IsCancelled() bool {
	return h.state.Load() == stateCancelled
}

// Wait blocks until the task has ended or the passed context is
// cancelled, and returns the task error or the context error.
func (h *TaskHandle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
