package asyncjob

import (
	"sync"
)

// Dispatcher is the consumed interface of the main execution context:
// a single serial callback queue, typically an event loop or UI thread
// runloop supplied by the host environment.
//
// Post enqueues a callback for execution on the dispatcher's context.
// Callbacks run one after another in posting order (FIFO) and Post
// never blocks the poster.
type Dispatcher interface {
	Post(callback func())
}

// DispatcherFunc implements the Dispatcher interface for a function.
type DispatcherFunc func(callback func())

func (f DispatcherFunc) Post(callback func()) {
	f(callback)
}

// SyncDispatcher is a Dispatcher that executes every posted callback
// immediately on the posting goroutine.
// Useful in tests where asynchronous delivery is unwanted.
type SyncDispatcher struct{}

func (SyncDispatcher) Post(callback func()) {
	if callback == nil {
		return
	}
	callback()
}

var (
	mainDispatcher    Dispatcher
	mainDispatcherMtx sync.RWMutex
)

// Main returns the process-wide main dispatcher.
//
// If no dispatcher was bound via SetMain, a SerialDispatcher owned by
// this package is created on first use and its pump goroutine becomes
// the designated main context for the rest of the process lifetime.
func Main() Dispatcher {
	mainDispatcherMtx.RLock()
	d := mainDispatcher
	mainDispatcherMtx.RUnlock()
	if d != nil {
		return d
	}

	mainDispatcherMtx.Lock()
	defer mainDispatcherMtx.Unlock()

	if mainDispatcher == nil {
		mainDispatcher = NewSerialDispatcher()
		log.Debug("Created default main dispatcher").Log()
	}
	return mainDispatcher
}

// SetMain binds the process-wide main dispatcher to the serial
// execution queue of the host environment.
//
// Call once at process start, before any job is started.
// Passing nil resets to the lazily created default.
func SetMain(d Dispatcher) {
	mainDispatcherMtx.Lock()
	mainDispatcher = d
	mainDispatcherMtx.Unlock()
}
