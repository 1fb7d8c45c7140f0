// Package someip defines the SOME/IP and signal-based PDU wire geometry the
// binding consumes: header sizes, field offsets, and the message type and
// return code tables from the SOME/IP protocol specification.
package someip

// Header geometry. A SOME/IP message starts with a fixed 16-byte header:
// message ID (4), length (4), request ID (4), protocol version (1),
// interface version (1), message type (1), return code (1).
const (
	HeaderSize = 16

	// ProtectedBitOffset is where the E2E-protected region of a
	// SOME/IP-serialized E2E event starts, in bits from the beginning of the
	// frame. The length field and message ID are excluded; everything from
	// the request ID onwards is covered.
	ProtectedBitOffset = 64

	// ProtectedHeaderBytes is the number of SOME/IP header bytes inside the
	// protected region (request ID through return code). The E2E profile does
	// not compute its CRC over these; they are passed to the checker as a
	// non-checked prefix.
	ProtectedHeaderBytes = HeaderSize - ProtectedBitOffset/8
)

// Signal-based (PDU) geometry. A network PDU starts with a fixed 8-byte
// header: PDU ID (4) and payload length (4). Deployments may insert a fixed
// header extension between the PDU header and the payload region.
const (
	PduHeaderSize = 8
)

// MessageType is the SOME/IP message type field (SIP_RPC_684).
type MessageType uint8

const (
	MessageTypeRequest         MessageType = 0x00
	MessageTypeRequestNoReturn MessageType = 0x01
	MessageTypeNotification    MessageType = 0x02
	MessageTypeResponse        MessageType = 0x80
	MessageTypeError           MessageType = 0x81
	MessageTypeTpRequest       MessageType = 0x20
	MessageTypeTpNotification  MessageType = 0x22
	MessageTypeTpResponse      MessageType = 0x23
	MessageTypeTpError         MessageType = 0x24
)

// String returns the protocol name of the message type.
func (t MessageType) String() string {
	switch t {
	case MessageTypeRequest:
		return "REQUEST"
	case MessageTypeRequestNoReturn:
		return "REQUEST_NO_RETURN"
	case MessageTypeNotification:
		return "NOTIFICATION"
	case MessageTypeResponse:
		return "RESPONSE"
	case MessageTypeError:
		return "ERROR"
	case MessageTypeTpRequest:
		return "TP_REQUEST"
	case MessageTypeTpNotification:
		return "TP_NOTIFICATION"
	case MessageTypeTpResponse:
		return "TP_RESPONSE"
	case MessageTypeTpError:
		return "TP_ERROR"
	default:
		return "UNKNOWN"
	}
}

// ReturnCode is the SOME/IP return code field.
type ReturnCode uint8

const (
	ReturnCodeOK                    ReturnCode = 0x00
	ReturnCodeNotOK                 ReturnCode = 0x01
	ReturnCodeUnknownService        ReturnCode = 0x02
	ReturnCodeUnknownMethod         ReturnCode = 0x03
	ReturnCodeNotReady              ReturnCode = 0x04
	ReturnCodeNotReachable          ReturnCode = 0x05
	ReturnCodeTimeout               ReturnCode = 0x06
	ReturnCodeWrongProtocolVersion  ReturnCode = 0x07
	ReturnCodeWrongInterfaceVersion ReturnCode = 0x08
	ReturnCodeMalformedMessage      ReturnCode = 0x09
	ReturnCodeWrongMessageType      ReturnCode = 0x0A
)

// String returns the protocol name of the return code.
func (c ReturnCode) String() string {
	switch c {
	case ReturnCodeOK:
		return "E_OK"
	case ReturnCodeNotOK:
		return "E_NOT_OK"
	case ReturnCodeUnknownService:
		return "E_UNKNOWN_SERVICE"
	case ReturnCodeUnknownMethod:
		return "E_UNKNOWN_METHOD"
	case ReturnCodeNotReady:
		return "E_NOT_READY"
	case ReturnCodeNotReachable:
		return "E_NOT_REACHABLE"
	case ReturnCodeTimeout:
		return "E_TIMEOUT"
	case ReturnCodeWrongProtocolVersion:
		return "E_WRONG_PROTOCOL_VERSION"
	case ReturnCodeWrongInterfaceVersion:
		return "E_WRONG_INTERFACE_VERSION"
	case ReturnCodeMalformedMessage:
		return "E_MALFORMED_MESSAGE"
	case ReturnCodeWrongMessageType:
		return "E_WRONG_MESSAGE_TYPE"
	default:
		return "E_UNKNOWN"
	}
}
