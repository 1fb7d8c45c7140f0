package reader

import (
	"time"

	"github.com/adaptivemw/someipbind/internal/e2e"
	"github.com/adaptivemw/someipbind/internal/interpreter"
	"github.com/adaptivemw/someipbind/internal/log"
	"github.com/adaptivemw/someipbind/internal/metrics"
	"github.com/adaptivemw/someipbind/internal/sample"
)

// E2eSampleReader processes E2E-protected events. Beyond the plain reader it
// runs the protected range of every updated frame through the checker,
// publishes each check result to the shared cell the application polls, and
// notifies the application of failed checks with a nil sample instead of
// silently dropping them.
type E2eSampleReader struct {
	interp  interpreter.E2eSampleInterpreter
	deser   Deserializer
	checker e2e.Checker
	shared  *e2e.SharedResult

	// nonCheckedOffset is the number of protocol header bytes at the start of
	// the protected range the profile CRC does not cover.
	nonCheckedOffset int

	// disabled switches off checking globally for this event (deployment
	// override); update bits are then ignored too.
	disabled bool

	logger log.Logger
	name   string
}

// E2eConfig fixes the checker wiring of an E2eSampleReader at construction.
type E2eConfig struct {
	Checker          e2e.Checker
	Shared           *e2e.SharedResult
	NonCheckedOffset int
	Disabled         bool
}

// NewE2eSampleReader builds a reader for one E2E-protected event.
func NewE2eSampleReader(interp interpreter.E2eSampleInterpreter, deser Deserializer, cfg E2eConfig, name string, fields map[string]interface{}) *E2eSampleReader {
	return &E2eSampleReader{
		interp:           interp,
		deser:            deser,
		checker:          cfg.Checker,
		shared:           cfg.Shared,
		nonCheckedOffset: cfg.NonCheckedOffset,
		disabled:         cfg.Disabled,
		logger:           log.GetLogger().WithFields(fields),
		name:             name,
	}
}

// Read drains up to max entries and returns the number of callback
// invocations.
//
// An empty queue still runs one check over an empty range and publishes the
// outcome: the application must observe an E2E state transition even when
// nothing was received. The empty-queue branch and the batch branch are
// mutually exclusive per call.
func (r *E2eSampleReader) Read(pool SlotPool, queue IngressQueue, max int, cb Callback) int {
	if queue.Empty() {
		res := r.checker.Check(nil, 0)
		r.shared.Set(res)
		metrics.E2eChecksTotal.WithLabelValues(r.name, res.Status.String()).Inc()
		return 0
	}

	delivered := 0
	n := queue.Len()
	if max < n {
		n = max
	}
	for i := 0; i < n; i++ {
		slot := pool.Acquire()
		if slot == nil {
			// Back-pressure: stop the batch, keep remaining entries queued.
			break
		}
		entry := queue.Front()
		queue.PopFront()
		frame := entry.BufferView()

		protected, err := r.interp.ProtectedSpan(frame)
		if err != nil {
			// The frame cannot hold the configured protected range: the
			// checker must see it as an invalid sample so the application
			// visible state reflects the reception.
			res := r.checker.NotifyInvalidSample()
			r.shared.Set(res)
			pool.Release(slot)
			metrics.IngressDropsTotal.WithLabelValues(r.name, "invalid").Inc()
			r.logger.WithError(err).Error("dropping sample: no E2E protected range in frame")
			continue
		}

		enabled, err := r.interp.CheckEnabled(frame)
		if err != nil {
			// Update bit outside the frame: a deserialization error, not a
			// disabled check.
			pool.Release(slot)
			metrics.IngressDropsTotal.WithLabelValues(r.name, "malformed").Inc()
			r.logger.WithError(err).Error("dropping sample: update bit unreadable")
			continue
		}

		ts, _ := entry.Timestamp()

		if enabled && !r.disabled {
			res := r.checker.Check(protected, r.nonCheckedOffset)
			r.shared.Set(res)
			metrics.E2eChecksTotal.WithLabelValues(r.name, res.Status.String()).Inc()

			if res.Status == e2e.StatusError {
				// Poisoned sample: the application is told explicitly so it
				// can treat the signal as invalid.
				pool.Release(slot)
				cb(nil, res.Status, ts)
				delivered++
				continue
			}
			if !r.deliver(pool, slot, frame, res.Status, ts, cb) {
				continue
			}
			delivered++
		} else {
			// Update bit unset or checking disabled: deliver without
			// consulting the checker. The shared result is deliberately left
			// untouched; a skipped check is not a state transition.
			if !r.deliver(pool, slot, frame, e2e.StatusCheckDisabled, ts, cb) {
				continue
			}
			delivered++
		}
	}
	return delivered
}

// deliver deserializes the payload into slot and invokes the callback,
// returning the slot to the pool when the payload is absent or malformed.
func (r *E2eSampleReader) deliver(pool SlotPool, slot *sample.Slot, frame []byte, status e2e.CheckStatus, ts time.Time, cb Callback) bool {
	payload, err := r.interp.PayloadSpan(frame)
	if err != nil {
		pool.Release(slot)
		metrics.IngressDropsTotal.WithLabelValues(r.name, "malformed").Inc()
		r.logger.WithError(err).Error("dropping sample: no payload in frame")
		return false
	}
	if !r.deser.Deserialize(payload, slot) {
		pool.Release(slot)
		metrics.DeserializeFailuresTotal.WithLabelValues(r.name).Inc()
		r.logger.Error("dropping sample: deserialization failed")
		return false
	}
	cb(slot, status, ts)
	metrics.SamplesDeliveredTotal.WithLabelValues(r.name).Inc()
	return true
}
