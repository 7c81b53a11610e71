/*
Package asyncjob runs a unit of work off the main context and delivers
its result back to the main context, without the caller managing
goroutine lifecycles, synchronization, or marshaling back to a single
designated "main" execution context.

# Overview

The central type is the generic Job: it holds a background action, an
optional result callback, and the execution strategy (a dedicated
goroutine or a shared worker pool). Starting a Job hands the action to a
worker; when the action returns, its result is captured and a delivery
callback is posted to the main-context Dispatcher.

The main context is an external collaborator: a single serial callback
queue supplied by the host environment (an event loop, a UI runloop),
represented by the Dispatcher interface. SerialDispatcher is a ready
implementation for hosts that have no loop of their own.

# Basic Usage

	import "github.com/domonda/go-asyncjob"

	job := asyncjob.NewJobBuilder[int]().
		DoInBackground(func(ctx context.Context) int {
			return computeSomething(ctx)
		}).
		WhenFinished(func(result int) {
			// Runs on the main context
			display(result)
		}).
		Create()

	job.Start()

Or configure a Job directly with setters:

	job := asyncjob.New[string]()
	job.SetAction(loadGreeting)
	job.SetResultFunc(showGreeting)
	job.Start()

# Execution Strategies

Without a pool, Start spawns one dedicated goroutine per job. With a
pool set via SetPool (or WithPool on the builder), Start submits the
job to the pool instead and the pool's concurrency policy applies.
The workerpool subpackage provides a bounded pool implementation;
a pool with a single worker serializes jobs.

# One-Shot Dispatch

Three stateless entry points cover dispatch without a Job instance:

	asyncjob.RunOnMain(func() { ... })          // post to the main context
	asyncjob.RunInBackground(func(ctx) { ... }) // fire and forget goroutine
	asyncjob.RunInBackgroundOnPool(task, pool)  // caller keeps the handle

RunInBackgroundOnPool does not deliver anything to the main context by
itself; the task posts back explicitly if it needs to report a result.

# Cancellation

Cancel requests cancellation of the most recently started execution.
For a dedicated worker this is cooperative: the action's context is
cancelled and the action decides whether to observe it. For a pool task
cancellation additionally prevents execution entirely when the task has
not started yet. Cancellation is best-effort: a result that was already
posted to the dispatcher is still delivered.

# Error Handling

The background action's own failures are not caught or transformed by
this package. A panic in a dedicated worker goroutine terminates the
process like any unhandled goroutine panic, while the workerpool
captures a task panic into the task handle's error. There are no
retries and no error translation. Package-level errors are wrapped
using github.com/domonda/go-errs.

# Testing

Inject a SyncDispatcher or a recording Dispatcher instead of the
process main dispatcher via SetMain or per job via SetDispatcher.
SerialDispatcher.Drain blocks until all posted callbacks have run.
*/
package asyncjob
