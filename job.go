package asyncjob

import (
	"context"
	"sync/atomic"

	"github.com/domonda/go-types/nullable"
	"github.com/domonda/go-types/uu"
)

// Action is a background computation producing a single result value.
// Ownership of any captured state transfers to the worker when the
// job is started.
//
// The passed context is cancelled when the job is cancelled.
// Observing it is the action's choice, cancellation is cooperative.
type Action[R any] func(ctx context.Context) R

// ResultFunc consumes the result of a background action.
// It is invoked on the main context.
type ResultFunc[R any] func(result R)

// Job encapsulates a single unit of asynchronous work, its optional
// result callback, and the execution strategy: a dedicated worker
// goroutine, or a shared Pool when one is set.
//
// Configure a Job from a single goroutine before calling Start and do
// not mutate it while running. At most one execution per Job should be
// active at a time: the behavior of concurrent Start and Cancel calls,
// or of restarting a running job, is undefined beyond the guarantee
// that the execution handle is atomically visible and Cancel targets
// the most recently started execution.
type Job[R any] struct {
	id         uu.ID
	action     Action[R]
	resultFunc ResultFunc[R]
	pool       Pool
	dispatcher Dispatcher

	handle atomic.Pointer[handleRef]
	info   atomic.Pointer[JobInfo]

	// result is written exactly once per run by the worker
	// before the delivery callback is created.
	result R

	stoppedFuncs []func()
}

// New returns an unconfigured Job for a result of type R.
func New[R any]() *Job[R] {
	j := &Job[R]{id: uu.IDv4()}
	j.info.Store(&JobInfo{ID: j.id})
	return j
}

// ID returns the unique ID of the job,
// also used as "jobID" logging attribute.
func (j *Job[R]) ID() uu.ID {
	return j.id
}

// SetAction installs the work to run off the main context.
func (j *Job[R]) SetAction(action Action[R]) {
	j.action = action
}

// Action returns the installed background action.
func (j *Job[R]) Action() Action[R] {
	return j.action
}

// SetResultFunc installs the completion handler that is invoked
// with the computed result on the main context.
func (j *Job[R]) SetResultFunc(resultFunc ResultFunc[R]) {
	j.resultFunc = resultFunc
}

// ResultFunc returns the installed completion handler.
func (j *Job[R]) ResultFunc() ResultFunc[R] {
	return j.resultFunc
}

// SetPool installs a shared worker pool. If set, Start submits the
// job to the pool instead of spawning a dedicated worker goroutine.
func (j *Job[R]) SetPool(pool Pool) {
	j.pool = pool
}

// Pool returns the installed worker pool or nil.
func (j *Job[R]) Pool() Pool {
	return j.pool
}

// SetDispatcher installs the Dispatcher that result delivery is
// posted to, replacing the process main dispatcher.
func (j *Job[R]) SetDispatcher(d Dispatcher) {
	j.dispatcher = d
}

// Dispatcher returns the dispatcher of the job:
// the one set via SetDispatcher, or the process main dispatcher.
func (j *Job[R]) Dispatcher() Dispatcher {
	if j.dispatcher != nil {
		return j.dispatcher
	}
	return Main()
}

// Info returns a snapshot of the lifecycle state of the job.
func (j *Job[R]) Info() JobInfo {
	return *j.info.Load()
}

// Handle returns the handle of the most recently started execution,
// or nil when the job was never started.
func (j *Job[R]) Handle() Handle {
	if ref := j.handle.Load(); ref != nil {
		return ref.Handle
	}
	return nil
}

// Start begins the background execution and returns immediately.
//
// If no action is configured, Start does nothing.
// If a pool is configured the job is submitted to it, else a
// dedicated worker goroutine is spawned. Either way the execution
// handle is retained for Cancel, overwriting the handle of any
// earlier execution.
//
// When the action returns, the result is captured and, if a result
// func is configured, a delivery callback is posted to the
// dispatcher of the job.
func (j *Job[R]) Start() {
	if j.action == nil {
		return
	}

	if j.pool != nil {
		handle, err := j.pool.Submit(j.run)
		if err != nil {
			// Drop the handle of any earlier execution so that
			// Cancel after a rejected start does nothing
			j.handle.Store(nil)
			OnError(err)
			log.Error("Submitting job to worker pool failed").
				UUID("jobID", j.id).
				Err(err).
				Log()
			return
		}
		j.handle.Store(&handleRef{handle})
		return
	}

	handle, ctx := newWorkerHandle()
	j.handle.Store(&handleRef{handle})
	go func() {
		defer handle.finish()
		j.run(ctx)
	}()
}

// Cancel requests cancellation of the most recently started
// execution. If no action is configured or the job was never
// started, Cancel does nothing.
//
// For a pool submitted job the pool's cancellation semantics apply,
// which may prevent a not yet started task from running at all.
// For a dedicated worker goroutine the action's context is cancelled,
// interruption is cooperative.
//
// Cancellation is best-effort: a result that was already posted to
// the dispatcher is still delivered, and no rollback of partially
// mutated external state is performed.
func (j *Job[R]) Cancel() {
	if j.action == nil {
		return
	}
	ref := j.handle.Load()
	if ref == nil {
		return
	}
	j.updateInfo(func(info *JobInfo) { info.CancelRequested = true })
	ref.Cancel()
}

// run is the three-step worker body: execute the action,
// store its result, post the delivery to the dispatcher.
func (j *Job[R]) run(ctx context.Context) {
	dispatcher := j.Dispatcher()
	ctx = ContextWithDispatcher(ctx, dispatcher)

	log, ctx := log.With().
		UUID("jobID", j.id).
		SubLoggerContext(ctx)

	j.updateInfo(func(info *JobInfo) { info.StartedAt = nullable.TimeNow() })
	log.Debug("Job started").Log()

	j.result = j.action(ctx)

	j.updateInfo(func(info *JobInfo) { info.StoppedAt = nullable.TimeNow() })
	log.Debug("Job stopped").Log()

	if j.resultFunc != nil {
		resultFunc := j.resultFunc
		result := j.result
		dispatcher.Post(func() { resultFunc(result) })
	}

	for _, f := range j.stoppedFuncs {
		f()
	}
	info := j.Info()
	notifyJobStopped(&info)
}

// addStoppedFunc registers f to be called on the worker after the
// job stopped and its delivery was posted. Must be called before
// Start. Used by Group.
func (j *Job[R]) addStoppedFunc(f func()) {
	j.stoppedFuncs = append(j.stoppedFuncs, f)
}

func (j *Job[R]) updateInfo(mod func(*JobInfo)) {
	for {
		current := j.info.Load()
		updated := *current
		mod(&updated)
		if j.info.CompareAndSwap(current, &updated) {
			return
		}
	}
}
