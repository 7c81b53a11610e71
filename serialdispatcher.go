package asyncjob

import (
	"sync"
)

var _ Dispatcher = &SerialDispatcher{}

// SerialDispatcher is a Dispatcher implementation with its own pump
// goroutine that executes posted callbacks one after another in
// posting order.
//
// The queue is unbounded so Post never blocks the poster.
// Use it as the designated main context when the host environment
// has no event loop of its own.
type SerialDispatcher struct {
	mtx       sync.Mutex
	cond      *sync.Cond
	queue     []func()
	executing bool
	closed    bool
}

// NewSerialDispatcher starts a new SerialDispatcher.
// The returned dispatcher owns one goroutine
// that runs until Close is called.
func NewSerialDispatcher() *SerialDispatcher {
	d := &SerialDispatcher{}
	d.cond = sync.NewCond(&d.mtx)
	go d.pump()
	return d
}

func (d *SerialDispatcher) pump() {
	for {
		d.mtx.Lock()
		for len(d.queue) == 0 && !d.closed {
			d.cond.Wait()
		}
		if len(d.queue) == 0 && d.closed {
			d.mtx.Unlock()
			return
		}
		callback := d.queue[0]
		d.queue = d.queue[1:]
		d.executing = true
		d.mtx.Unlock()

		callback()

		d.mtx.Lock()
		d.executing = false
		d.cond.Broadcast()
		d.mtx.Unlock()
	}
}

// Post enqueues callback at the queue tail and returns immediately.
// Posting nil or posting after Close does nothing.
func (d *SerialDispatcher) Post(callback func()) {
	if callback == nil {
		return
	}
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.closed {
		log.Debug("Post to closed SerialDispatcher ignored").Log()
		return
	}
	d.queue = append(d.queue, callback)
	d.cond.Broadcast()
}

// Len returns the number of callbacks waiting in the queue.
func (d *SerialDispatcher) Len() int {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	return len(d.queue)
}

// Drain blocks until every callback posted before the call has been
// executed and the queue is empty.
// Callbacks posted while draining are waited for as well.
func (d *SerialDispatcher) Drain() {
	d.mtx.Lock()
	for len(d.queue) > 0 || d.executing {
		d.cond.Wait()
	}
	d.mtx.Unlock()
}

// Close stops the pump goroutine after the already queued callbacks
// have been executed. Further posts are ignored.
func (d *SerialDispatcher) Close() {
	d.mtx.Lock()
	d.closed = true
	d.cond.Broadcast()
	d.mtx.Unlock()
}
