package export

import (
	"errors"
	"testing"
	"time"
)

func TestJobIDsAreUnique(t *testing.T) {
	a, b := NewJob(), NewJob()
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("ids = %q, %q", a.ID(), b.ID())
	}
}

func TestJobCancelFlag(t *testing.T) {
	j := NewJob()
	if j.Cancelled() {
		t.Error("fresh job reports cancelled")
	}
	j.Cancel()
	if !j.Cancelled() {
		t.Error("cancel flag not set")
	}
}

func TestJobPublishNeverBlocks(t *testing.T) {
	j := NewJob()

	// No subscriber; overflow the buffer well past capacity.
	for i := 0; i < 200; i++ {
		j.Publish(Encoding(uint64(i), 200))
	}

	// The newest report survives the drop-oldest policy.
	j.Finish(nil)
	var last Progress
	for p := range j.Progress() {
		last = p
	}
	if last.CurrentUnit != 199 {
		t.Errorf("last surviving report = %+v, want current 199", last)
	}
}

func TestJobFinishClosesProgress(t *testing.T) {
	j := NewJob()
	j.Publish(Preparing())
	j.Finish(nil)

	count := 0
	for range j.Progress() {
		count++
	}
	if count != 1 {
		t.Errorf("drained %d reports, want 1", count)
	}

	// Second Finish is a no-op, not a double close.
	j.Finish(errors.New("late"))
	if j.Err() != nil {
		t.Errorf("err = %v, want the first Finish result", j.Err())
	}
}

func TestJobWaitReturnsTerminalError(t *testing.T) {
	j := NewJob()
	want := EncodingErrf("encoder died")

	go func() {
		time.Sleep(10 * time.Millisecond)
		j.Finish(want)
	}()

	if err := j.Wait(); !errors.Is(err, ErrEncoding) {
		t.Errorf("Wait() = %v, want ErrEncoding", err)
	}

	select {
	case <-j.Done():
	default:
		t.Error("Done() not closed after Finish")
	}
}

func TestJobErrBeforeFinish(t *testing.T) {
	j := NewJob()
	if j.Err() != nil {
		t.Error("Err() non-nil before finish")
	}
	j.Finish(ErrCancelled)
	if !errors.Is(j.Err(), ErrCancelled) {
		t.Errorf("Err() = %v", j.Err())
	}
}
