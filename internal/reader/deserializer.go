package reader

import "github.com/adaptivemw/someipbind/internal/sample"

// RawBytes is a Deserializer that keeps the payload as a byte copy inside the
// slot's scratch buffer. It is the deserializer of record for the replay and
// decode tooling; generated event types bring their own.
type RawBytes struct{}

// Deserialize implements Deserializer. It never fails: an empty payload is a
// valid (empty) sample.
func (RawBytes) Deserialize(payload []byte, into *sample.Slot) bool {
	into.Bytes = append(into.Bytes[:0], payload...)
	into.Value = into.Bytes
	return true
}
