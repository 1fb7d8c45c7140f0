package e2e

// Checker is the pluggable E2E profile capability. Implementations must be
// safe to call repeatedly and synchronously from the reader; failure is
// expressed only through the returned Result, never through panics.
type Checker interface {
	// Check runs the profile check over the protected byte range. The first
	// nonCheckedHeaderOffset bytes of the range are protocol header bytes the
	// profile CRC does not cover. An empty range means "no new data": the
	// checker advances its state machine without consuming a sample.
	Check(protected []byte, nonCheckedHeaderOffset int) Result

	// NotifyInvalidSample advances the state machine for a sample that could
	// not even be handed to the profile (malformed or too-short frame).
	NotifyInvalidSample() Result

	// HeaderSize returns the profile's E2E header size in bytes, as laid out
	// on the wire between the protocol header and the payload.
	HeaderSize() int
}

// Disabled is a Checker for events configured without an E2E profile. Every
// operation reports the disabled state so the application still sees a total
// result surface.
type Disabled struct{}

// Check implements Checker.
func (Disabled) Check(_ []byte, _ int) Result {
	return Result{State: StateDisabled, Status: StatusCheckDisabled}
}

// NotifyInvalidSample implements Checker.
func (Disabled) NotifyInvalidSample() Result {
	return Result{State: StateDisabled, Status: StatusCheckDisabled}
}

// HeaderSize implements Checker.
func (Disabled) HeaderSize() int { return 0 }
