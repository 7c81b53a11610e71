package asyncjob

import (
	"context"
)

var _ Dispatcher = NopDispatcher{}

// NopDispatcher is a Dispatcher implementation
// that discards all posted callbacks.
type NopDispatcher struct{}

func (NopDispatcher) Post(callback func()) {}

var _ Pool = NopPool{}

// NopPool is a Pool implementation that discards all submitted tasks
// and returns handles that are already done.
type NopPool struct{}

func (NopPool) Submit(task func(ctx context.Context)) (Handle, error) {
	return nopHandle{}, nil
}

var closedDone = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

type nopHandle struct{}

func (nopHandle) Cancel()               {}
func (nopHandle) Done() <-chan struct{} { return closedDone }
func (nopHandle) Err() error            { return nil }
