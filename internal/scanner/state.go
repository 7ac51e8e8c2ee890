package scanner

// State is the driver's position in its lifecycle:
// Idle → Resuming → Scanning → {Completed, Interrupted, Fatal}.
type State int

const (
	// StateIdle is the initial state before Run is called.
	StateIdle State = iota
	// StateResuming means a prior progress record is being validated and
	// converted into worker start positions.
	StateResuming
	// StateScanning means workers are walking the candidate space.
	StateScanning
	// StateCompleted means the enumeration was exhausted; the durable
	// record has been deleted.
	StateCompleted
	// StateInterrupted means cancellation was requested and a final
	// checkpoint was written. A clean stop, not an error.
	StateInterrupted
	// StateFatal means an unexpected fault escaped the scan loop. A
	// best-effort checkpoint was attempted before surfacing the cause.
	StateFatal
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResuming:
		return "resuming"
	case StateScanning:
		return "scanning"
	case StateCompleted:
		return "completed"
	case StateInterrupted:
		return "interrupted"
	case StateFatal:
		return "fatal"
	default:
		return "unknown"
	}
}
