package scanner

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodicJob_FiresOnTicker(t *testing.T) {
	var calls atomic.Int64
	job := newPeriodicJob(func() { calls.Add(1) })

	job.Start(context.Background(), 5*time.Millisecond)
	assert.Eventually(t, func() bool { return calls.Load() >= 3 },
		2*time.Second, time.Millisecond)
	job.Stop()

	after := calls.Load()
	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "no calls after Stop returns")
}

func TestPeriodicJob_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int64
	job := newPeriodicJob(func() { calls.Add(1) })
	job.Start(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return calls.Load() >= 1 },
		2*time.Second, time.Millisecond)
	cancel()
	job.Stop()
}

func TestPeriodicJob_StopBeforeStartIsNoop(t *testing.T) {
	job := newPeriodicJob(func() {})
	job.Stop()
	job.Stop()
}

func TestPeriodicJob_RestartReplacesPreviousRun(t *testing.T) {
	var calls atomic.Int64
	job := newPeriodicJob(func() { calls.Add(1) })

	job.Start(context.Background(), time.Hour)
	job.Start(context.Background(), 5*time.Millisecond)

	assert.Eventually(t, func() bool { return calls.Load() >= 1 },
		2*time.Second, time.Millisecond)
	job.Stop()
}
