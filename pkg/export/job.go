package export

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Job is the caller-side handle for one export run. The run executes on
// its own goroutine; the handle carries the cancellation flag and a
// bounded progress channel, both safe to use while the run proceeds.
// Multiple jobs are fully independent.
type Job struct {
	id       string
	cancel   atomic.Bool
	progress chan Progress

	done chan struct{}
	once sync.Once
	err  error
}

// NewJob creates a job handle with a fresh ID.
func NewJob() *Job {
	return &Job{
		id:       uuid.NewString(),
		progress: make(chan Progress, 64),
		done:     make(chan struct{}),
	}
}

// ID returns the unique job identifier.
func (j *Job) ID() string {
	return j.id
}

// Cancel requests an abort. The run observes the flag at its next
// suspension point and terminates with ErrCancelled.
func (j *Job) Cancel() {
	j.cancel.Store(true)
}

// Cancelled reports whether an abort has been requested.
func (j *Job) Cancelled() bool {
	return j.cancel.Load()
}

// Progress returns the channel progress reports are delivered on. The
// channel is closed when the run finishes.
func (j *Job) Progress() <-chan Progress {
	return j.progress
}

// Publish pushes a progress report without ever blocking the export
// loop: when the subscriber lags, the oldest report is dropped.
func (j *Job) Publish(p Progress) {
	select {
	case j.progress <- p:
	default:
		select {
		case <-j.progress:
		default:
		}
		select {
		case j.progress <- p:
		default:
		}
	}
}

// Finish records the terminal result and closes the progress channel.
// Subsequent calls are no-ops.
func (j *Job) Finish(err error) {
	j.once.Do(func() {
		j.err = err
		close(j.progress)
		close(j.done)
	})
}

// Wait blocks until the run finishes and returns its terminal error.
func (j *Job) Wait() error {
	<-j.done
	return j.err
}

// Done returns a channel closed when the run finishes.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Err returns the terminal error once the run has finished.
func (j *Job) Err() error {
	select {
	case <-j.done:
		return j.err
	default:
		return nil
	}
}
