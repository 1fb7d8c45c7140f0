package someip

import (
	"encoding/binary"

	"github.com/adaptivemw/someipbind/internal/core"
)

// Header is the decoded fixed SOME/IP message header.
type Header struct {
	ServiceID        uint16
	MethodID         uint16
	Length           uint32
	ClientID         uint16
	SessionID        uint16
	ProtocolVersion  uint8
	InterfaceVersion uint8
	MessageType      MessageType
	ReturnCode       ReturnCode
}

// ParseHeader decodes the fixed 16-byte SOME/IP header. The frame is not
// mutated and the returned header does not alias it.
func ParseHeader(frame []byte) (Header, error) {
	if len(frame) < HeaderSize {
		return Header{}, core.ErrFrameTooShort
	}

	return Header{
		ServiceID:        binary.BigEndian.Uint16(frame[0:2]),
		MethodID:         binary.BigEndian.Uint16(frame[2:4]),
		Length:           binary.BigEndian.Uint32(frame[4:8]),
		ClientID:         binary.BigEndian.Uint16(frame[8:10]),
		SessionID:        binary.BigEndian.Uint16(frame[10:12]),
		ProtocolVersion:  frame[12],
		InterfaceVersion: frame[13],
		MessageType:      MessageType(frame[14]),
		ReturnCode:       ReturnCode(frame[15]),
	}, nil
}

// PduHeader is the decoded fixed header of a signal-based network PDU.
type PduHeader struct {
	ID     uint32
	Length uint32
}

// ParsePduHeader decodes the fixed 8-byte PDU header.
func ParsePduHeader(frame []byte) (PduHeader, error) {
	if len(frame) < PduHeaderSize {
		return PduHeader{}, core.ErrFrameTooShort
	}

	return PduHeader{
		ID:     binary.BigEndian.Uint32(frame[0:4]),
		Length: binary.BigEndian.Uint32(frame[4:8]),
	}, nil
}
