package asyncjob

import (
	"context"
)

// Pool is the consumed interface of a shared worker pool:
// a caller-supplied, reusable concurrent task executor with its own
// concurrency and queueing policy.
//
// Submit hands a task to the pool and returns a cancellable Handle.
// Rejection behavior (error vs. blocking submission) is entirely the
// pool's own; this package imposes no policy on pool sizing or
// queueing. The workerpool subpackage provides an implementation.
type Pool interface {
	Submit(task func(ctx context.Context)) (Handle, error)
}
