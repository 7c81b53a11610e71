package asyncjob

import (
	"context"
)

var dispatcherKey int

// ContextWithDispatcher returns a context carrying the passed
// Dispatcher. The context passed to every background action already
// carries the dispatcher of its job, so long running actions can post
// intermediate callbacks to the main context without global state.
func ContextWithDispatcher(ctx context.Context, d Dispatcher) context.Context {
	return context.WithValue(ctx, &dispatcherKey, d)
}

// DispatcherFromContext returns the Dispatcher carried by the context,
// or nil when the context carries none.
func DispatcherFromContext(ctx context.Context) Dispatcher {
	d, _ := ctx.Value(&dispatcherKey).(Dispatcher)
	return d
}

// PostFromContext posts callback to the Dispatcher carried by the
// context, falling back to the process main dispatcher.
func PostFromContext(ctx context.Context, callback func()) {
	if d := DispatcherFromContext(ctx); d != nil {
		d.Post(callback)
		return
	}
	Main().Post(callback)
}
