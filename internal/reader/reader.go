// Package reader implements the sample processing loops: drain serialized
// frames from the ingress queue, bind them to free slots, run the configured
// interpreter (and E2E checker), and hand deserialized samples to the
// application callback.
//
// Both readers are synchronous and never block on I/O: they run on the
// calling (polling) thread, process at most max entries front-to-back, and
// stop early when the slot pool is exhausted. Every acquired slot is either
// handed to the callback or released before the iteration ends, and every
// popped entry is consumed exactly once regardless of outcome.
package reader

import (
	"time"

	"github.com/adaptivemw/someipbind/internal/e2e"
	"github.com/adaptivemw/someipbind/internal/interpreter"
	"github.com/adaptivemw/someipbind/internal/log"
	"github.com/adaptivemw/someipbind/internal/metrics"
	"github.com/adaptivemw/someipbind/internal/sample"
)

// SlotPool is the visible-cache surface the readers consume.
type SlotPool interface {
	Acquire() *sample.Slot
	Release(*sample.Slot)
	Free() int
}

// IngressQueue is the invisible-cache surface the readers consume.
type IngressQueue interface {
	Empty() bool
	Len() int
	Front() *sample.Entry
	PopFront()
}

// Deserializer turns a payload byte range into a typed sample inside a slot.
// It reports false when the payload is malformed; the slot is then left in an
// undefined but safe state and goes back to the pool.
type Deserializer interface {
	Deserialize(payload []byte, into *sample.Slot) bool
}

// Callback receives one processed sample. slot is nil exactly when an E2E
// check reported StatusError (the poisoned-sample contract); ts is the zero
// time when the transport delivered no timestamp. Ownership of a non-nil
// slot transfers to the callee, which must eventually release it.
type Callback func(slot *sample.Slot, status e2e.CheckStatus, ts time.Time)

// SampleReader processes events without E2E protection: payload present
// means deliver, anything else is dropped and logged.
type SampleReader struct {
	interp interpreter.SampleInterpreter
	deser  Deserializer
	logger log.Logger
	name   string
}

// NewSampleReader builds a reader for one event. name labels metrics and
// fields labels log lines (the event's identity prefix).
func NewSampleReader(interp interpreter.SampleInterpreter, deser Deserializer, name string, fields map[string]interface{}) *SampleReader {
	return &SampleReader{
		interp: interp,
		deser:  deser,
		logger: log.GetLogger().WithFields(fields),
		name:   name,
	}
}

// Read drains up to max entries and returns the number of callback
// invocations.
func (r *SampleReader) Read(pool SlotPool, queue IngressQueue, max int, cb Callback) int {
	delivered := 0
	n := queue.Len()
	if max < n {
		n = max
	}
	for i := 0; i < n; i++ {
		slot := pool.Acquire()
		if slot == nil {
			// Back-pressure: the application still holds every slot.
			break
		}
		entry := queue.Front()
		queue.PopFront()

		payload, err := r.interp.PayloadSpan(entry.BufferView())
		if err != nil {
			pool.Release(slot)
			metrics.IngressDropsTotal.WithLabelValues(r.name, "malformed").Inc()
			r.logger.WithError(err).Error("dropping sample: no payload in frame")
			continue
		}
		if !r.deser.Deserialize(payload, slot) {
			pool.Release(slot)
			metrics.DeserializeFailuresTotal.WithLabelValues(r.name).Inc()
			r.logger.Error("dropping sample: deserialization failed")
			continue
		}

		ts, _ := entry.Timestamp()
		cb(slot, e2e.StatusNotAvailable, ts)
		delivered++
		metrics.SamplesDeliveredTotal.WithLabelValues(r.name).Inc()
	}
	return delivered
}
