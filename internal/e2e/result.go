// Package e2e defines the end-to-end protection contract the binding consumes:
// the state machine state and per-check status reported by a profile checker,
// and the thread-safe cell the latest result is published through.
//
// The binding never computes a CRC or sequence counter itself. Profiles are
// pluggable behind the Checker interface; the binding's job is to hand the
// checker the right byte range and to route the returned result.
package e2e

// State is the E2E state machine state. It summarizes the recent history of
// check outcomes for one event as seen by the application.
type State uint8

const (
	// StateValid: enough correct samples received, communication is usable.
	StateValid State = iota
	// StateNoData: no sample seen since initialization.
	StateNoData
	// StateInit: first samples seen, state machine not yet settled.
	StateInit
	// StateInvalid: too many failed checks, communication not usable.
	StateInvalid
	// StateDisabled: checking is switched off for this event.
	StateDisabled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateValid:
		return "Valid"
	case StateNoData:
		return "NoData"
	case StateInit:
		return "Init"
	case StateInvalid:
		return "Invalid"
	case StateDisabled:
		return "Disabled"
	default:
		return "Unknown"
	}
}

// CheckStatus is the outcome of the most recent single check.
type CheckStatus uint8

const (
	// StatusOk: the sample passed the check.
	StatusOk CheckStatus = iota
	// StatusRepeated: the sample repeats the previous sequence counter.
	StatusRepeated
	// StatusWrongSequence: the counter jumped further than allowed.
	StatusWrongSequence
	// StatusNotAvailable: the event is not E2E protected.
	StatusNotAvailable
	// StatusNoNewData: nothing was received when the check ran.
	StatusNoNewData
	// StatusError: the sample failed the check (CRC or counter mismatch).
	StatusError
	// StatusCheckDisabled: checking was not performed for this sample.
	StatusCheckDisabled
)

// String returns the status name.
func (s CheckStatus) String() string {
	switch s {
	case StatusOk:
		return "Ok"
	case StatusRepeated:
		return "Repeated"
	case StatusWrongSequence:
		return "WrongSequence"
	case StatusNotAvailable:
		return "NotAvailable"
	case StatusNoNewData:
		return "NoNewData"
	case StatusError:
		return "Error"
	case StatusCheckDisabled:
		return "CheckDisabled"
	default:
		return "Unknown"
	}
}

// Result pairs the state machine state with the most recent check status.
// Equality is structural; a Result is created fresh per check.
type Result struct {
	State  State
	Status CheckStatus
}
