package interpreter

import (
	"github.com/adaptivemw/someipbind/internal/core"
	"github.com/adaptivemw/someipbind/internal/someip"
)

// SomeIp interprets plain SOME/IP-serialized events: the payload is
// everything after the fixed 16-byte header.
type SomeIp struct{}

// PayloadSpan implements SampleInterpreter.
func (SomeIp) PayloadSpan(frame []byte) ([]byte, error) {
	if len(frame) < someip.HeaderSize {
		return nil, core.ErrFrameTooShort
	}
	return frame[someip.HeaderSize:], nil
}

// SomeIpE2e interprets SOME/IP-serialized E2E-protected events. The E2E
// header of the configured profile sits between the SOME/IP header and the
// payload; the protected region starts at the request ID field and runs to
// the end of the frame.
type SomeIpE2e struct {
	e2eHeaderSize int
}

// NewSomeIpE2e builds an interpreter for a profile with the given E2E header
// size (Checker.HeaderSize of the deployed profile).
func NewSomeIpE2e(e2eHeaderSize int) SomeIpE2e {
	return SomeIpE2e{e2eHeaderSize: e2eHeaderSize}
}

// PayloadSpan implements SampleInterpreter.
func (s SomeIpE2e) PayloadSpan(frame []byte) ([]byte, error) {
	offset := someip.HeaderSize + s.e2eHeaderSize
	if len(frame) < offset {
		return nil, core.ErrFrameTooShort
	}
	return frame[offset:], nil
}

// ProtectedSpan implements E2eSampleInterpreter.
func (s SomeIpE2e) ProtectedSpan(frame []byte) ([]byte, error) {
	// The frame must at least hold the SOME/IP header and the E2E header for
	// the protected region to be meaningful.
	if len(frame) < someip.HeaderSize+s.e2eHeaderSize {
		return nil, core.ErrFrameTooShort
	}
	return frame[someip.ProtectedBitOffset/8:], nil
}

// CheckEnabled implements E2eSampleInterpreter. SOME/IP-serialized events
// carry no update bit; every received sample is checked.
func (SomeIpE2e) CheckEnabled(_ []byte) (bool, error) {
	return true, nil
}
