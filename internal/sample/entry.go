// Package sample implements the two caches the readers drain and fill: the
// ingress queue of serialized frames (filled by the transport) and the
// bounded pool of reusable slots deserialized samples land in.
package sample

import "time"

// Entry is one ingress element: an owned copy of a transport-delivered frame
// plus its receive timestamp. The buffer stays valid until the entry is
// popped and dropped.
type Entry struct {
	data []byte
	ts   time.Time
}

// NewEntry copies data into a fresh entry. A zero ts means the transport
// delivered no timestamp.
func NewEntry(data []byte, ts time.Time) *Entry {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Entry{data: buf, ts: ts}
}

// BufferView returns the raw frame bytes. Callers must not mutate them.
func (e *Entry) BufferView() []byte { return e.data }

// Size returns the frame length in bytes.
func (e *Entry) Size() int { return len(e.data) }

// Timestamp returns the receive timestamp; ok is false when the transport
// delivered none.
func (e *Entry) Timestamp() (time.Time, bool) {
	return e.ts, !e.ts.IsZero()
}
