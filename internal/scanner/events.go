package scanner

import (
	"math/big"
	"time"

	"github.com/wangdage1949/WIF500-Lottery/models"
)

// Event is a progress, match, or termination notification emitted by the
// driver on its Events channel while a scan runs.
type Event interface{ isEvent() }

// ProgressEvent is a throttled snapshot of the scan position.
type ProgressEvent struct {
	Examined *big.Int
	Total    *big.Int
	// Percent is Examined/Total in [0, 1].
	Percent float64
	// Rate is candidates per second since the scan (re)started.
	Rate float64
	// ETA estimates the remaining wall-clock time at the current rate.
	// Zero when the rate is still unknown.
	ETA time.Duration
}

// MatchEvent reports one confirmed WIF the moment it is found and
// persisted.
type MatchEvent struct {
	Match models.FoundWIF
}

// DoneEvent is the final event of a scan; the events channel closes right
// after it.
type DoneEvent struct {
	State State
	// Err is the underlying cause when State is StateFatal.
	Err      error
	Found    []models.FoundWIF
	Examined *big.Int
	Total    *big.Int
}

func (ProgressEvent) isEvent() {}
func (MatchEvent) isEvent()    {}
func (DoneEvent) isEvent()     {}
