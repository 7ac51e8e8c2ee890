// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 wangdage1949

// Package scanner drives the recovery scan: it walks the candidate space
// produced by the keyspace enumerator, prunes candidates with the cheap
// structural filter, validates survivors with the WIF checksum decoder,
// and checkpoints progress so an interrupted run resumes without double
// work.
//
// The driver owns all mutable scan state (cursor positions, found list,
// persisted record). Cancellation is cooperative: every worker checks the
// context once per candidate and the driver commits a final checkpoint
// before reporting an interrupted stop.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wangdage1949/WIF500-Lottery/internal/filter"
	"github.com/wangdage1949/WIF500-Lottery/internal/keyspace"
	"github.com/wangdage1949/WIF500-Lottery/internal/logger"
	"github.com/wangdage1949/WIF500-Lottery/internal/store"
	"github.com/wangdage1949/WIF500-Lottery/internal/wif"
	"github.com/wangdage1949/WIF500-Lottery/models"
)

var (
	// ErrTotalMismatch is returned when a persisted record's total
	// candidate count differs from the one recomputed from the template.
	// The template changed between runs; resuming would mix two different
	// enumerations, so the scan refuses to start.
	ErrTotalMismatch = errors.New("persisted total does not match template")

	// ErrCountOutOfRange is returned when a persisted record's tested
	// count falls outside [0, total]. The record is inconsistent with its
	// own total; resuming from it would skip or repeat candidates.
	ErrCountOutOfRange = errors.New("persisted tested count out of range")
)

// Options tunes the scan loop. Zero fields fall back to the built-in
// defaults: one worker, checkpoint every 30s or 10 000 candidates, 500ms
// UI refresh.
type Options struct {
	Workers            int
	CheckpointInterval time.Duration
	CheckpointEvery    int
	RefreshInterval    time.Duration
}

func (o Options) withDefaults() Options {
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.CheckpointInterval <= 0 {
		o.CheckpointInterval = 30 * time.Second
	}
	if o.CheckpointEvery < 1 {
		o.CheckpointEvery = 10000
	}
	if o.RefreshInterval <= 0 {
		o.RefreshInterval = 500 * time.Millisecond
	}
	return o
}

// Report summarizes a finished scan.
type Report struct {
	State    State
	Found    []models.FoundWIF
	Examined *big.Int
	Total    *big.Int
}

// Driver orchestrates the enumerate, filter, validate, persist pipeline.
// Construct with New, subscribe to Events, then call Run once.
type Driver struct {
	template *keyspace.Template
	accept   filter.Filter
	store    store.ProgressStore
	log      *logger.Logger
	opts     Options

	total  *big.Int
	events chan Event

	mu      sync.Mutex
	state   State
	found   []models.FoundWIF
	workers []*scanWorker
	base    *big.Int // examined count carried over from a resumed record

	// saveMu serializes snapshot+Save pairs across the interval job, the
	// workers, and finish, so a snapshot taken before a match can never be
	// written after the match checkpoint.
	saveMu sync.Mutex

	sinceSave atomic.Int64
	started   time.Time
}

// New constructs a Driver. accept may be nil to disable pre-filtering.
func New(t *keyspace.Template, accept filter.Filter, st store.ProgressStore, log *logger.Logger, opts Options) *Driver {
	if accept == nil {
		accept = filter.PassAll
	}
	return &Driver{
		template: t,
		accept:   accept,
		store:    st,
		log:      log,
		opts:     opts.withDefaults(),
		total:    t.Total(),
		events:   make(chan Event, 64),
		state:    StateIdle,
		base:     new(big.Int),
	}
}

// Total returns the size of the candidate space.
func (d *Driver) Total() *big.Int { return new(big.Int).Set(d.total) }

// Events returns the channel the driver publishes progress snapshots,
// matches, and the final DoneEvent on. Closed when Run returns.
func (d *Driver) Events() <-chan Event { return d.events }

// State returns the driver's current lifecycle state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Run executes the scan until the space is exhausted, ctx is cancelled,
// or a fault escapes the loop. prior is the persisted record the operator
// chose to resume from, or nil to start fresh (a declined record is left
// on disk; only completion deletes it).
//
// The returned error is non-nil only for configuration errors and fatal
// faults; completion and interruption both return a Report and nil.
func (d *Driver) Run(ctx context.Context, prior *models.Progress) (Report, error) {
	defer close(d.events)

	ranges, err := d.prepare(prior)
	if err != nil {
		d.setState(StateFatal)
		d.emitDone(err)
		return d.report(), err
	}

	d.mu.Lock()
	d.workers = make([]*scanWorker, 0, len(ranges))
	for i, r := range ranges {
		d.workers = append(d.workers, &scanWorker{id: i, start: r.next, end: r.end})
	}
	d.state = StateScanning
	d.started = time.Now()
	d.mu.Unlock()

	d.log.Info().
		Str("state", StateScanning.String()).
		Str("total", d.total.String()).
		Str("examined", d.base.String()).
		Int("workers", len(ranges)).
		Msg("scan started")

	checkpointJob := newPeriodicJob(func() { d.checkpoint("interval") })
	checkpointJob.Start(ctx, d.opts.CheckpointInterval)
	reporter := newPeriodicJob(d.emitProgress)
	reporter.Start(ctx, d.opts.RefreshInterval)

	var wg sync.WaitGroup
	errs := make(chan error, len(d.workers))
	for _, w := range d.workers {
		wg.Add(1)
		go func(w *scanWorker) {
			defer wg.Done()
			errs <- d.runWorker(ctx, w)
		}(w)
	}
	wg.Wait()
	checkpointJob.Stop()
	reporter.Stop()
	close(errs)

	var workerErr error
	for e := range errs {
		if e != nil && workerErr == nil {
			workerErr = e
		}
	}

	return d.finish(ctx, workerErr)
}

// prepare validates the prior record and derives the worker index ranges.
func (d *Driver) prepare(prior *models.Progress) ([]indexRange, error) {
	if prior == nil {
		d.setState(StateIdle)
		return partition(new(big.Int), d.total, d.opts.Workers), nil
	}

	d.setState(StateResuming)
	if prior.TotalCandidates.Cmp(d.total) != 0 {
		return nil, fmt.Errorf("%w: persisted %s, template %s",
			ErrTotalMismatch, prior.TotalCandidates, d.total)
	}
	if prior.TestedCount.Sign() < 0 || prior.TestedCount.Cmp(d.total) > 0 {
		return nil, fmt.Errorf("%w: tested %s of %s",
			ErrCountOutOfRange, prior.TestedCount, d.total)
	}

	d.mu.Lock()
	d.found = append(d.found, prior.FoundWIFs...)
	d.base.Set(prior.TestedCount)
	d.mu.Unlock()

	if len(prior.Cursors) > 0 {
		ranges := make([]indexRange, 0, len(prior.Cursors))
		for _, c := range prior.Cursors {
			if c.Next.Sign() < 0 || c.Next.Cmp(c.End) > 0 || c.End.Cmp(d.total) > 0 {
				return nil, fmt.Errorf("%w: cursor [%s, %s) outside [0, %s)",
					ErrTotalMismatch, c.Next, c.End, d.total)
			}
			ranges = append(ranges, indexRange{next: new(big.Int).Set(c.Next), end: new(big.Int).Set(c.End)})
		}
		return ranges, nil
	}

	// Legacy single-counter record: tested_count is the contiguous prefix
	// already done, so the remaining range is [tested_count, total).
	return partition(prior.TestedCount, d.total, d.opts.Workers), nil
}

// runWorker walks one index range. Any panic inside the loop is recovered
// into the returned error so the driver can checkpoint before surfacing it.
func (d *Driver) runWorker(ctx context.Context, w *scanWorker) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker %d panic: %v", w.id, r)
		}
	}()

	if w.start.Cmp(w.end) >= 0 {
		return nil
	}

	cur, err := d.template.Cursor(w.start)
	if err != nil {
		return fmt.Errorf("worker %d seek: %w", w.id, err)
	}

	for cur.Valid() && cur.IndexCmp(w.end) < 0 {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if d.accept(cur.Bytes()) {
			candidate := cur.String()
			key, decodeErr := wif.Decode(candidate)
			switch {
			case decodeErr == nil:
				d.onMatch(models.FoundWIF{
					WIF:        candidate,
					PrivateHex: key.PrivateHex(),
					Compressed: key.Compressed,
				})
			case !wif.IsRejection(decodeErr):
				return fmt.Errorf("worker %d decode %q: %w", w.id, candidate, decodeErr)
			}
		}

		w.processed.Add(1)
		d.noteExamined()
		cur.Next()
	}
	return nil
}

// onMatch appends the match and persists immediately: a found key must
// survive any failure that happens later in the scan.
func (d *Driver) onMatch(m models.FoundWIF) {
	d.mu.Lock()
	d.found = append(d.found, m)
	d.mu.Unlock()

	d.log.Info().
		Str("wif", m.WIF).
		Bool("compressed", m.Compressed).
		Msg("valid WIF found")

	d.checkpoint("match")
	d.events <- MatchEvent{Match: m}
}

// noteExamined implements the every-N-candidates save trigger.
func (d *Driver) noteExamined() {
	if d.sinceSave.Add(1) >= int64(d.opts.CheckpointEvery) {
		d.sinceSave.Store(0)
		d.checkpoint("batch")
	}
}

// checkpoint persists the current snapshot. The snapshot and the save are
// one critical section: concurrent checkpoints write in snapshot order, so
// the persisted record keeps its monotonic counter and never loses a match
// a later save already carried. Persistence failures are logged, never
// fatal: a lost checkpoint costs rescanning at most one save interval's
// worth of candidates.
func (d *Driver) checkpoint(reason string) {
	d.saveMu.Lock()
	defer d.saveMu.Unlock()

	snap := d.snapshot()
	if err := d.store.Save(snap); err != nil {
		d.log.Warn().Err(err).Str("reason", reason).Msg("checkpoint save failed")
		return
	}
	d.log.Debug().
		Str("reason", reason).
		Str("examined", snap.TestedCount.String()).
		Msg("checkpoint saved")
}

// snapshot assembles a consistent Progress record from the live counters.
func (d *Driver) snapshot() *models.Progress {
	d.mu.Lock()
	defer d.mu.Unlock()

	examined := new(big.Int).Set(d.base)
	cursors := make([]models.PartitionCursor, 0, len(d.workers))
	for _, w := range d.workers {
		examined.Add(examined, new(big.Int).SetUint64(w.processed.Load()))
		cursors = append(cursors, models.PartitionCursor{Next: w.position(), End: new(big.Int).Set(w.end)})
	}

	p := &models.Progress{
		TestedCount:     examined,
		TotalCandidates: new(big.Int).Set(d.total),
		FoundWIFs:       append([]models.FoundWIF{}, d.found...),
	}
	// Single-worker runs keep the record in its legacy four-field shape;
	// the counter alone is an exact cursor there.
	if len(d.workers) > 1 {
		p.Cursors = cursors
	}
	return p
}

// finish decides the terminal state, writes or deletes the durable record
// accordingly, and emits the DoneEvent.
func (d *Driver) finish(ctx context.Context, workerErr error) (Report, error) {
	examined := d.examined()

	switch {
	case workerErr != nil:
		d.setState(StateFatal)
		d.checkpoint("fatal")
		d.log.Error().Err(workerErr).Msg("scan aborted by fault")
		d.emitDone(workerErr)
		return d.report(), workerErr

	case examined.Cmp(d.total) < 0 && ctx.Err() != nil:
		d.setState(StateInterrupted)
		d.checkpoint("interrupt")
		d.log.Info().Str("examined", examined.String()).Msg("scan interrupted, progress saved")
		d.emitDone(nil)
		return d.report(), nil

	default:
		d.setState(StateCompleted)
		if err := d.store.Delete(); err != nil {
			d.log.Warn().Err(err).Msg("progress file cleanup failed")
		}
		d.log.Info().Int("found", len(d.found)).Msg("scan completed")
		d.emitDone(nil)
		return d.report(), nil
	}
}

func (d *Driver) examined() *big.Int {
	d.mu.Lock()
	defer d.mu.Unlock()
	examined := new(big.Int).Set(d.base)
	for _, w := range d.workers {
		examined.Add(examined, new(big.Int).SetUint64(w.processed.Load()))
	}
	return examined
}

func (d *Driver) report() Report {
	d.mu.Lock()
	defer d.mu.Unlock()

	examined := new(big.Int).Set(d.base)
	for _, w := range d.workers {
		examined.Add(examined, new(big.Int).SetUint64(w.processed.Load()))
	}
	return Report{
		State:    d.state,
		Found:    append([]models.FoundWIF{}, d.found...),
		Examined: examined,
		Total:    new(big.Int).Set(d.total),
	}
}

func (d *Driver) setState(s State) {
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
}

// emitProgress publishes a throttled snapshot. Dropped if the UI is not
// keeping up; progress events are advisory.
func (d *Driver) emitProgress() {
	examined := d.examined()

	var percent float64
	if d.total.Sign() > 0 {
		e, _ := new(big.Float).SetInt(examined).Float64()
		t, _ := new(big.Float).SetInt(d.total).Float64()
		percent = e / t
	}

	d.mu.Lock()
	elapsed := time.Since(d.started)
	var processed uint64
	for _, w := range d.workers {
		processed += w.processed.Load()
	}
	d.mu.Unlock()

	var rate float64
	var eta time.Duration
	if elapsed > 0 && processed > 0 {
		rate = float64(processed) / elapsed.Seconds()
		remaining, _ := new(big.Float).SetInt(new(big.Int).Sub(d.total, examined)).Float64()
		eta = time.Duration(remaining / rate * float64(time.Second))
	}

	ev := ProgressEvent{
		Examined: examined,
		Total:    new(big.Int).Set(d.total),
		Percent:  percent,
		Rate:     rate,
		ETA:      eta,
	}
	select {
	case d.events <- ev:
	default:
	}
}

func (d *Driver) emitDone(err error) {
	r := d.report()
	d.events <- DoneEvent{
		State:    r.State,
		Err:      err,
		Found:    r.Found,
		Examined: r.Examined,
		Total:    r.Total,
	}
}

// scanWorker owns one partition of the index space. processed counts the
// candidates it has fully handled; start+processed is its exact resume
// position.
type scanWorker struct {
	id    int
	start *big.Int
	end   *big.Int

	processed atomic.Uint64
}

func (w *scanWorker) position() *big.Int {
	return new(big.Int).Add(w.start, new(big.Int).SetUint64(w.processed.Load()))
}
