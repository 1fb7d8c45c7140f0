// Package interpreter locates the payload and E2E-protected byte ranges
// inside raw event frames.
//
// Every operation is a pure function of the frame and the layout fixed at
// construction: no state, no mutation of the frame. Spans returned are
// sub-slices of the frame and stay valid exactly as long as the frame does.
// A frame too short for the configured offsets yields core.ErrFrameTooShort;
// a present-but-empty payload is a non-nil empty slice, which callers must
// treat as deserializable.
package interpreter

// SampleInterpreter extracts the payload range of a non-E2E-protected event.
type SampleInterpreter interface {
	// PayloadSpan returns the sub-slice of frame holding the serialized
	// sample, or core.ErrFrameTooShort if the frame cannot contain one.
	PayloadSpan(frame []byte) ([]byte, error)
}

// E2eSampleInterpreter extracts the ranges of an E2E-protected event.
type E2eSampleInterpreter interface {
	SampleInterpreter

	// ProtectedSpan returns the sub-slice of frame the E2E checker must run
	// over. It may be a strict subset of the payload or overlap the protocol
	// header, depending on the variant.
	ProtectedSpan(frame []byte) ([]byte, error)

	// CheckEnabled reports whether this frame's update bit requests a check.
	// Variants without an update bit always report true. An update bit offset
	// outside the frame is core.ErrUpdateBitOutOfRange and must be treated as
	// an invalid sample, not as "check disabled".
	CheckEnabled(frame []byte) (bool, error)
}
