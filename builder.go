package asyncjob

// JobBuilder configures a Job in a chainable way.
// Pure ergonomics over New and the Job setters.
type JobBuilder[R any] struct {
	action     Action[R]
	resultFunc ResultFunc[R]
	pool       Pool
	dispatcher Dispatcher
}

func NewJobBuilder[R any]() *JobBuilder[R] {
	return &JobBuilder[R]{}
}

// DoInBackground sets the action to run off the main context.
func (b *JobBuilder[R]) DoInBackground(action Action[R]) *JobBuilder[R] {
	b.action = action
	return b
}

// WhenFinished sets the handler invoked with the result
// on the main context after the action returned.
func (b *JobBuilder[R]) WhenFinished(resultFunc ResultFunc[R]) *JobBuilder[R] {
	b.resultFunc = resultFunc
	return b
}

// WithPool sets a shared worker pool that the job
// is submitted to instead of a dedicated goroutine.
func (b *JobBuilder[R]) WithPool(pool Pool) *JobBuilder[R] {
	b.pool = pool
	return b
}

// WithDispatcher sets the dispatcher that the result delivery is
// posted to, replacing the process main dispatcher.
func (b *JobBuilder[R]) WithDispatcher(d Dispatcher) *JobBuilder[R] {
	b.dispatcher = d
	return b
}

// Create returns a configured Job instance.
func (b *JobBuilder[R]) Create() *Job[R] {
	job := New[R]()
	job.SetAction(b.action)
	job.SetResultFunc(b.resultFunc)
	job.SetPool(b.pool)
	job.SetDispatcher(b.dispatcher)
	return job
}
