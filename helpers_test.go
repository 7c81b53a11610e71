package asyncjob_test

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/domonda/go-asyncjob"
)

type Waiter struct {
	Check         func() bool
	Timeout       time.Duration
	PollFrequency time.Duration
}

func NewWaiter(check func() bool) *Waiter {
	return &Waiter{
		Check:         check,
		Timeout:       time.Second,
		PollFrequency: 10 * time.Millisecond,
	}
}

func (w *Waiter) Wait() error {
	start := time.Now()
	for {
		if time.Since(start) > w.Timeout {
			return errors.New("TIMEOUT")
		}

		if w.Check() {
			return nil
		}
		time.Sleep(w.PollFrequency)
	}
}

// recordingDispatcher counts posted and executed callbacks while
// delegating the serial FIFO execution to a SerialDispatcher.
type recordingDispatcher struct {
	serial   *asyncjob.SerialDispatcher
	posted   atomic.Int64
	executed atomic.Int64
}

func newRecordingDispatcher() *recordingDispatcher {
	return &recordingDispatcher{serial: asyncjob.NewSerialDispatcher()}
}

func (d *recordingDispatcher) Post(callback func()) {
	d.posted.Add(1)
	d.serial.Post(func() {
		callback()
		d.executed.Add(1)
	})
}

func (d *recordingDispatcher) Drain() {
	d.serial.Drain()
}

func (d *recordingDispatcher) Close() {
	d.serial.Close()
}
