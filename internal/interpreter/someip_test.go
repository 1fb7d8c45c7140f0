package interpreter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/adaptivemw/someipbind/internal/core"
)

// someIpFrame builds a minimal frame: 16 zero header bytes plus payload.
func someIpFrame(payload ...byte) []byte {
	frame := make([]byte, 16, 16+len(payload))
	return append(frame, payload...)
}

func TestSomeIpPayloadSpan(t *testing.T) {
	frame := someIpFrame(0xDE, 0xAD, 0xBE, 0xEF)

	payload, err := SomeIp{}.PayloadSpan(frame)
	if err != nil {
		t.Fatalf("PayloadSpan failed: %v", err)
	}
	if !bytes.Equal(payload, []byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Errorf("Expected payload deadbeef, got %x", payload)
	}
}

func TestSomeIpPayloadSpanEmptyPayload(t *testing.T) {
	// A frame of exactly the header size has a present but empty payload:
	// deserialization runs over an empty range.
	frame := someIpFrame()

	payload, err := SomeIp{}.PayloadSpan(frame)
	if err != nil {
		t.Fatalf("PayloadSpan failed: %v", err)
	}
	if payload == nil {
		t.Fatal("Expected present empty payload, got nil")
	}
	if len(payload) != 0 {
		t.Errorf("Expected empty payload, got %d bytes", len(payload))
	}
}

func TestSomeIpPayloadSpanTooShort(t *testing.T) {
	frame := make([]byte, 15)

	_, err := SomeIp{}.PayloadSpan(frame)
	if !errors.Is(err, core.ErrFrameTooShort) {
		t.Errorf("Expected ErrFrameTooShort, got %v", err)
	}
}

func TestSomeIpE2eSpans(t *testing.T) {
	// Profile with a 12-byte E2E header: payload starts at byte 28, the
	// protected range covers everything from byte 8.
	interp := NewSomeIpE2e(12)
	frame := make([]byte, 0, 32)
	for i := 0; i < 32; i++ {
		frame = append(frame, byte(i))
	}

	protected, err := interp.ProtectedSpan(frame)
	if err != nil {
		t.Fatalf("ProtectedSpan failed: %v", err)
	}
	if !bytes.Equal(protected, frame[8:]) {
		t.Errorf("Expected protected range frame[8:], got %x", protected)
	}

	payload, err := interp.PayloadSpan(frame)
	if err != nil {
		t.Fatalf("PayloadSpan failed: %v", err)
	}
	if !bytes.Equal(payload, frame[28:]) {
		t.Errorf("Expected payload frame[28:], got %x", payload)
	}
}

func TestSomeIpE2eTooShort(t *testing.T) {
	interp := NewSomeIpE2e(12)
	frame := make([]byte, 20) // shorter than 16 + 12

	if _, err := interp.ProtectedSpan(frame); !errors.Is(err, core.ErrFrameTooShort) {
		t.Errorf("Expected ErrFrameTooShort from ProtectedSpan, got %v", err)
	}
	if _, err := interp.PayloadSpan(frame); !errors.Is(err, core.ErrFrameTooShort) {
		t.Errorf("Expected ErrFrameTooShort from PayloadSpan, got %v", err)
	}
}

func TestSomeIpE2eCheckAlwaysEnabled(t *testing.T) {
	interp := NewSomeIpE2e(12)

	enabled, err := interp.CheckEnabled(nil)
	if err != nil {
		t.Fatalf("CheckEnabled failed: %v", err)
	}
	if !enabled {
		t.Error("Expected check always enabled for SOME/IP E2E events")
	}
}

func TestSomeIpE2eIdempotent(t *testing.T) {
	// All three operations are pure: repeated calls on the same frame give
	// identical results.
	interp := NewSomeIpE2e(4)
	frame := someIpFrame(0x01, 0x02, 0x03, 0x04, 0x05, 0x06)

	p1, err1 := interp.ProtectedSpan(frame)
	p2, err2 := interp.ProtectedSpan(frame)
	if !bytes.Equal(p1, p2) || err1 != err2 {
		t.Errorf("ProtectedSpan not idempotent: %x/%v vs %x/%v", p1, err1, p2, err2)
	}

	l1, _ := interp.PayloadSpan(frame)
	l2, _ := interp.PayloadSpan(frame)
	if !bytes.Equal(l1, l2) {
		t.Errorf("PayloadSpan not idempotent: %x vs %x", l1, l2)
	}
}
