package asyncjob

import (
	"sync/atomic"

	"github.com/domonda/go-types/uu"
)

// Group starts multiple jobs together and posts a single callback to
// the main context once every startable job in the group has stopped.
//
// Jobs are added with AddJob before Start. Jobs without an action are
// counted as already stopped because starting them is a no-op.
// A Group is not reused after Start.
type Group struct {
	id          uu.ID
	dispatcher  Dispatcher
	allStopped  func()
	jobs        []groupJob
	pendingJobs atomic.Int64
	started     atomic.Bool
}

type groupJob struct {
	start     func()
	cancel    func()
	hasAction func() bool
}

// NewGroup returns a Group that posts allStopped to the main context
// once all jobs added to it have stopped.
func NewGroup(allStopped func()) *Group {
	return &Group{id: uu.IDv4(), allStopped: allStopped}
}

// ID returns the unique ID of the group.
func (g *Group) ID() uu.ID {
	return g.id
}

// SetDispatcher installs the Dispatcher that the allStopped callback
// is posted to, replacing the process main dispatcher.
func (g *Group) SetDispatcher(d Dispatcher) {
	g.dispatcher = d
}

// NumJobs returns the number of jobs added to the group.
func (g *Group) NumJobs() int {
	return len(g.jobs)
}

// AddJob adds job to the group. Must be called before Group.Start.
//
// An added job must only be started through Group.Start, a direct
// job.Start would complete before the group's pending counter is
// initialized and the allStopped callback could never fire.
func AddJob[R any](g *Group, job *Job[R]) {
	job.addStoppedFunc(g.jobStopped)
	g.jobs = append(g.jobs, groupJob{
		start:     job.Start,
		cancel:    job.Cancel,
		hasAction: func() bool { return job.Action() != nil },
	})
}

// Start starts all jobs of the group and returns immediately.
//
// If the group contains no startable job the allStopped callback is
// posted right away.
func (g *Group) Start() {
	if !g.started.CompareAndSwap(false, true) {
		return
	}

	numStartable := int64(0)
	for _, job := range g.jobs {
		if job.hasAction() {
			numStartable++
		}
	}
	log.Debug("Starting job group").
		UUID("groupID", g.id).
		Int("numJobs", int(numStartable)).
		Log()

	if numStartable == 0 {
		g.postAllStopped()
		return
	}

	g.pendingJobs.Store(numStartable)
	for _, job := range g.jobs {
		if job.hasAction() {
			job.start()
		}
	}
}

// Cancel requests cancellation of all jobs of the group.
// Best-effort, see Job.Cancel.
func (g *Group) Cancel() {
	for _, job := range g.jobs {
		job.cancel()
	}
}

func (g *Group) jobStopped() {
	if g.pendingJobs.Add(-1) == 0 {
		log.Debug("Job group finished").
			UUID("groupID", g.id).
			Log()
		g.postAllStopped()
	}
}

func (g *Group) postAllStopped() {
	if g.allStopped == nil {
		return
	}
	dispatcher := g.dispatcher
	if dispatcher == nil {
		dispatcher = Main()
	}
	dispatcher.Post(g.allStopped)
}
