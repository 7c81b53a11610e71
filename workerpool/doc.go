/*
Package workerpool provides a bounded worker pool usable as the shared
execution strategy of asyncjob jobs.

# Overview

A Pool runs a fixed number of worker goroutines that pull tasks from a
bounded queue. Submit returns a handle per task that supports
cancellation before start (the task never runs) and cooperative
interruption while running (the task's context is cancelled).

	pool := workerpool.New(4, 64)
	defer pool.Finish()

	handle, err := pool.Submit(func(ctx context.Context) {
		// work
	})

A pool with a single worker serializes tasks: task k+1 does not begin
before task k returned.

# Use with asyncjob

Pool implements the asyncjob.Pool interface:

	job := asyncjob.NewJobBuilder[int]().
		DoInBackground(compute).
		WhenFinished(show).
		WithPool(pool).
		Create()
	job.Start()

# Failure Capture

A panicking task does not crash the process: the panic is captured
into the task handle's error with a debug stack, logged, and reported
to the OnError hook. This is the pool-level deferred failure capture
counterpart to the process-terminating panic of a dedicated goroutine.

# Shutdown

Finish stops accepting new tasks, works off the queued ones and waits
for the workers to end; handles of tasks that could no longer run are
completed with a cancellation error. Stop abandons the queue without
waiting for running tasks.
*/
package workerpool
