package types

// State represents the coordinator's position in the election state machine.
//
// Normal progression when this candidate wins immediately:
//
//	StateIdle → StateAttempting → StateElected
//
// When another candidate holds leadership:
//
//	StateAttempting → StateObserving → StateWaiting → StateAttempting (retry)
//
// StateElected and StateStopped are terminal; StateStopped is reached from
// StateWaiting when shutdown is requested.
type State int

const (
	// StateIdle is the initial state before any election attempt.
	StateIdle State = iota

	// StateAttempting indicates an atomic registration attempt is in flight.
	StateAttempting

	// StateObserving indicates another registration won and its identity
	// is being read and compared.
	StateObserving

	// StateWaiting indicates the coordinator is blocked until the
	// incumbent leader disappears.
	StateWaiting

	// StateElected indicates this candidate is the active leader.
	StateElected

	// StateStopped indicates the election ended without leadership because
	// shutdown was requested.
	StateStopped
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAttempting:
		return "Attempting"
	case StateObserving:
		return "Observing"
	case StateWaiting:
		return "Waiting"
	case StateElected:
		return "Elected"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}
