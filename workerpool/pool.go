package workerpool

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/domonda/go-asyncjob"
	"github.com/domonda/go-errs"
)

// ErrPoolClosed is returned by Submit after Finish or Stop.
const ErrPoolClosed errs.Sentinel = "worker pool is closed"

var _ asyncjob.Pool = &Pool{}

// Pool runs a fixed number of worker goroutines that pull tasks
// from a bounded queue. It implements the asyncjob.Pool interface.
//
// A pool with a single worker serializes tasks.
type Pool struct {
	queue  chan *TaskHandle
	finish chan struct{}
	done   chan struct{}

	// closed is set before finish or done are closed
	closed     atomic.Bool
	finishOnce sync.Once
	stopOnce   sync.Once
	workerWG   sync.WaitGroup

	completedTasks atomic.Int64
	failedTasks    atomic.Int64
	cancelledTasks atomic.Int64
}

// New starts a pool with numWorkers worker goroutines and a task
// queue of queueSize capacity. numWorkers is clamped to at least 1,
// queueSize to at least 0.
func New(numWorkers, queueSize int) *Pool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	p := &Pool{
		queue:  make(chan *TaskHandle, queueSize),
		finish: make(chan struct{}),
		done:   make(chan struct{}),
	}
	p.workerWG.Add(numWorkers)
	for i := range numWorkers {
		go p.worker(i)
	}

	log.Debug("Started worker pool").
		Int("numWorkers", numWorkers).
		Int("queueSize", queueSize).
		Log()

	return p
}

func (p *Pool) worker(workerIndex int) {
	defer p.workerWG.Done()

	ctx := context.Background()

	log, ctx := log.With().
		Int("workerIndex", workerIndex).
		SubLoggerContext(ctx)

	log.Debug("Starting pool worker").Log()

	defer log.Debug("Pool worker ended").Log()

	for {
		select {
		case <-p.done:
			return
		default:
		}

		select {
		case <-p.done:
			return
		case handle := <-p.queue:
			p.runTask(ctx, handle)
		case <-p.finish:
			// Work off the remaining queue, then end
			for {
				select {
				case <-p.done:
					return
				case handle := <-p.queue:
					p.runTask(ctx, handle)
				default:
					return
				}
			}
		}
	}
}

func (p *Pool) runTask(ctx context.Context, handle *TaskHandle) {
	if !handle.state.CompareAndSwap(statePending, stateRunning) {
		// Cancelled before start, handle is already completed
		p.cancelledTasks.Add(1)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			handle.err = errs.Errorf("task panic: %w", errs.AsErrorWithDebugStack(r))
			p.failedTasks.Add(1)
			OnError(handle.err)
			log.ErrorCtx(ctx, "Task panic").
				UUID("taskID", handle.id).
				Err(handle.err).
				Log()
		} else {
			p.completedTasks.Add(1)
		}
		handle.state.Store(stateStopped)
		handle.cancel()
		close(handle.done)
	}()

	handle.task(handle.ctx)
}

// Submit adds task to the queue for execution and returns its handle.
//
// Submit blocks while the queue is full and returns ErrPoolClosed
// after Finish or Stop was called.
func (p *Pool) Submit(task func(ctx context.Context)) (handle asyncjob.Handle, err error) {
	defer errs.WrapWithFuncParams(&err)

	if task == nil {
		return nil, asyncjob.ErrNilTask
	}

	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	h := newTaskHandle(task)
	select {
	case <-p.done:
		return nil, ErrPoolClosed
	case <-p.finish:
		return nil, ErrPoolClosed
	case p.queue <- h:
		if p.closed.Load() {
			// Shutdown raced with the enqueue,
			// no worker might receive the handle anymore
			if h.cancelPending() {
				p.cancelledTasks.Add(1)
			}
			return nil, ErrPoolClosed
		}
		return h, nil
	}
}

// Finish stops accepting new tasks, works off the already queued
// tasks and waits until all workers have ended.
// Handles of tasks that could no longer run are completed with
// asyncjob.ErrCancelled.
func (p *Pool) Finish() {
	log.Debug("Finishing worker pool").Log()

	p.finishOnce.Do(func() {
		p.closed.Store(true)
		close(p.finish)
	})
	p.workerWG.Wait()
	p.cancelQueued()

	log.Debug("Worker pool finished").Log()
}

// Stop stops the workers without waiting for queued or running
// tasks. Queued task handles are completed with
// asyncjob.ErrCancelled; running tasks keep running until they
// return or are cancelled through their own handles.
func (p *Pool) Stop() {
	log.Debug("Stopping worker pool").Log()

	p.stopOnce.Do(func() {
		p.closed.Store(true)
		close(p.done)
	})
	p.cancelQueued()
}

func (p *Pool) cancelQueued() {
	for {
		select {
		case handle := <-p.queue:
			if handle.cancelPending() {
				p.cancelledTasks.Add(1)
			}
		default:
			return
		}
	}
}

// Stats is a snapshot of pool metrics.
type Stats struct {
	Queued    int
	Completed int64
	Failed    int64
	Cancelled int64
}

// Stats returns a snapshot of the pool metrics.
func (p *Pool) Stats() Stats {
	return Stats{
		Queued:    len(p.queue),
		Completed: p.completedTasks.Load(),
		Failed:    p.failedTasks.Load(),
		Cancelled: p.cancelledTasks.Load(),
	}
}
