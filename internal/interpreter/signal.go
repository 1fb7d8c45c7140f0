package interpreter

import (
	"github.com/adaptivemw/someipbind/internal/core"
	"github.com/adaptivemw/someipbind/internal/someip"
)

// SignalLayout is the deployment-time geometry of a signal-based (PDU) event.
// All offsets are relative to the PDU body, which starts after the fixed PDU
// header and the optional header extension.
type SignalLayout struct {
	// ExtensionSize is the size of the fixed PDU header extension, 0 when the
	// deployment carries none.
	ExtensionSize int

	// PayloadOffset is where the deserializable payload starts inside the
	// body.
	PayloadOffset int

	// ProtectedOffset is where the E2E-protected range starts inside the
	// body. Ignored by the legacy variant.
	ProtectedOffset int

	// ProtectedLengthBits is the protected range length in bits, rounded up
	// to whole bytes per profile. Ignored by the legacy variant.
	ProtectedLengthBits int

	// UpdateBit is the bit position of the E2E update bit inside the body,
	// counted in network bit order (bit 0 is the most significant bit of the
	// first body byte). Nil means the deployment has no update bit and every
	// sample is checked.
	UpdateBit *int
}

// bodyStart returns the frame offset of the PDU body.
func (l SignalLayout) bodyStart() int {
	return someip.PduHeaderSize + l.ExtensionSize
}

// updateBitSet reads the update bit from the frame.
func (l SignalLayout) updateBitSet(frame []byte) (bool, error) {
	if l.UpdateBit == nil {
		return true, nil
	}
	byteIdx := l.bodyStart() + *l.UpdateBit/8
	if byteIdx >= len(frame) {
		return false, core.ErrUpdateBitOutOfRange
	}
	mask := byte(0x80) >> (*l.UpdateBit % 8)
	return frame[byteIdx]&mask != 0, nil
}

// Signal interprets plain signal-based events: the payload is the PDU body.
type Signal struct {
	extensionSize int
}

// NewSignal builds an interpreter for a deployment with the given header
// extension size (0 when absent).
func NewSignal(extensionSize int) Signal {
	return Signal{extensionSize: extensionSize}
}

// PayloadSpan implements SampleInterpreter.
func (s Signal) PayloadSpan(frame []byte) ([]byte, error) {
	offset := someip.PduHeaderSize + s.extensionSize
	if len(frame) < offset {
		return nil, core.ErrFrameTooShort
	}
	return frame[offset:], nil
}

// SignalE2e interprets signal-based E2E-protected events whose protected
// range is a configured sub-range of the PDU body. The sub-range may start
// and end anywhere inside the body; it does not need to line up with the
// payload.
type SignalE2e struct {
	layout SignalLayout
}

// NewSignalE2e builds an interpreter for the given layout.
func NewSignalE2e(layout SignalLayout) SignalE2e {
	return SignalE2e{layout: layout}
}

// PayloadSpan implements SampleInterpreter.
func (s SignalE2e) PayloadSpan(frame []byte) ([]byte, error) {
	offset := s.layout.bodyStart() + s.layout.PayloadOffset
	if len(frame) < offset {
		return nil, core.ErrFrameTooShort
	}
	return frame[offset:], nil
}

// ProtectedSpan implements E2eSampleInterpreter.
func (s SignalE2e) ProtectedSpan(frame []byte) ([]byte, error) {
	start := s.layout.bodyStart() + s.layout.ProtectedOffset
	length := (s.layout.ProtectedLengthBits + 7) / 8
	if len(frame) < start+length {
		return nil, core.ErrFrameTooShort
	}
	return frame[start : start+length], nil
}

// CheckEnabled implements E2eSampleInterpreter.
func (s SignalE2e) CheckEnabled(frame []byte) (bool, error) {
	return s.layout.updateBitSet(frame)
}

// LegacySignalE2e interprets signal-based E2E-protected events deployed
// before sub-range protection existed: the whole payload is protected, like
// a SOME/IP-serialized E2E event, with the update bit still read from the
// PDU body.
type LegacySignalE2e struct {
	layout SignalLayout
}

// NewLegacySignalE2e builds an interpreter for the given layout. Only the
// extension size, payload offset and update bit of the layout are used.
func NewLegacySignalE2e(layout SignalLayout) LegacySignalE2e {
	return LegacySignalE2e{layout: layout}
}

// PayloadSpan implements SampleInterpreter.
func (s LegacySignalE2e) PayloadSpan(frame []byte) ([]byte, error) {
	offset := s.layout.bodyStart() + s.layout.PayloadOffset
	if len(frame) < offset {
		return nil, core.ErrFrameTooShort
	}
	return frame[offset:], nil
}

// ProtectedSpan implements E2eSampleInterpreter. The protected range is the
// payload in its entirety.
func (s LegacySignalE2e) ProtectedSpan(frame []byte) ([]byte, error) {
	return s.PayloadSpan(frame)
}

// CheckEnabled implements E2eSampleInterpreter.
func (s LegacySignalE2e) CheckEnabled(frame []byte) (bool, error) {
	return s.layout.updateBitSet(frame)
}
