package asyncjob

import (
	"sync"
)

// JobStoppedListener is notified on the worker after a job's
// background action returned and its result delivery was posted.
type JobStoppedListener interface {
	OnJobStopped(info *JobInfo)
}

// JobStoppedListenerFunc implements the JobStoppedListener
// interface for a function.
type JobStoppedListenerFunc func(info *JobInfo)

func (f JobStoppedListenerFunc) OnJobStopped(info *JobInfo) {
	f(info)
}

var (
	jobStoppedListeners    []JobStoppedListener
	jobStoppedListenersMtx sync.RWMutex
)

func AddJobStoppedListener(listener JobStoppedListener) {
	jobStoppedListenersMtx.Lock()
	defer jobStoppedListenersMtx.Unlock()

	jobStoppedListeners = append(jobStoppedListeners, listener)
}

func RemoveJobStoppedListener(listener JobStoppedListener) {
	jobStoppedListenersMtx.Lock()
	defer jobStoppedListenersMtx.Unlock()

	for i := range jobStoppedListeners {
		if jobStoppedListeners[i] == listener {
			jobStoppedListeners = append(jobStoppedListeners[:i], jobStoppedListeners[i+1:]...)
			return
		}
	}
}

func notifyJobStopped(info *JobInfo) {
	jobStoppedListenersMtx.RLock()
	listeners := jobStoppedListeners
	jobStoppedListenersMtx.RUnlock()

	for _, listener := range listeners {
		listener.OnJobStopped(info)
	}
}
