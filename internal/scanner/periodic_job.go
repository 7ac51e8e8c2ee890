package scanner

import (
	"context"
	"sync"
	"time"
)

// periodicJob calls a function on a ticker. The driver runs two of these
// during a scan: the checkpoint job and the UI progress reporter. The job
// is idle until Start is called.
type periodicJob struct {
	fn func()

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newPeriodicJob(fn func()) *periodicJob {
	return &periodicJob{fn: fn}
}

// Start stops any previously running job, then launches a background
// goroutine that calls fn every interval. The goroutine exits when ctx is
// cancelled or Stop is called.
func (j *periodicJob) Start(ctx context.Context, interval time.Duration) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.fn()
			}
		}
	}()
}

// Stop cancels the background goroutine and blocks until it has fully
// exited. Safe to call when the job is not running (no-op in that case).
func (j *periodicJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
