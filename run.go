package asyncjob

import (
	"context"

	"github.com/domonda/go-errs"
)

// RunOnMain posts callback to the process main dispatcher and returns
// immediately. Ordering relative to other posts follows the FIFO
// guarantee of the dispatcher.
func RunOnMain(callback func()) {
	if callback == nil {
		return
	}
	Main().Post(callback)
}

// RunInBackground spawns a dedicated worker goroutine that invokes
// task and returns no value. Fire and forget: no handle is retained
// and there is no cancellation support.
//
// The context passed to the task carries the process main dispatcher,
// so the task can report back explicitly via PostFromContext or
// RunOnMain if it needs to.
func RunInBackground(task func(ctx context.Context)) {
	if task == nil {
		return
	}
	ctx := ContextWithDispatcher(context.Background(), Main())
	go task(ctx)
}

// RunInBackgroundOnPool submits task to the passed pool and returns
// the pool's task handle so the caller can cancel or await it.
//
// Unlike Job, this does not deliver any result to the main context.
// The task is expected to post a callback itself if it needs to
// report back.
func RunInBackgroundOnPool(task func(ctx context.Context), pool Pool) (handle Handle, err error) {
	defer errs.WrapWithFuncParams(&err, pool)

	if task == nil {
		return nil, ErrNilTask
	}
	if pool == nil {
		return nil, ErrNilPool
	}
	return pool.Submit(func(ctx context.Context) {
		task(ContextWithDispatcher(ctx, Main()))
	})
}
