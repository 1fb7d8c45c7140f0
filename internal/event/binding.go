// Package event implements the per-event binding: the object that owns one
// event's ingress queue, slot pool, interpreter and reader, and exposes the
// surface the application layer polls (GetNewSamples, GetE2EResult).
package event

import (
	"fmt"
	"sync"
	"time"

	"github.com/adaptivemw/someipbind/internal/core"
	"github.com/adaptivemw/someipbind/internal/e2e"
	"github.com/adaptivemw/someipbind/internal/identity"
	"github.com/adaptivemw/someipbind/internal/interpreter"
	"github.com/adaptivemw/someipbind/internal/log"
	"github.com/adaptivemw/someipbind/internal/metrics"
	"github.com/adaptivemw/someipbind/internal/reader"
	"github.com/adaptivemw/someipbind/internal/sample"
	"github.com/adaptivemw/someipbind/internal/someip"
)

// Variant selects the wire layout of an event.
type Variant string

const (
	VariantSomeIp          Variant = "someip"
	VariantSignal          Variant = "signal"
	VariantSomeIpE2e       Variant = "someip-e2e"
	VariantSignalE2e       Variant = "signal-e2e"
	VariantSignalE2eLegacy Variant = "signal-e2e-legacy"
)

// sampleReader is what both reader flavors look like to the binding.
type sampleReader interface {
	Read(pool reader.SlotPool, queue reader.IngressQueue, max int, cb reader.Callback) int
}

// Config fixes one event binding at construction.
type Config struct {
	Identity identity.Entity
	Variant  Variant

	// Layout configures the signal-based variants; ignored for SOME/IP ones.
	Layout interpreter.SignalLayout

	// Checker is the E2E profile for the E2E variants; nil selects the
	// e2e.Disabled profile. Ignored for non-E2E variants.
	Checker e2e.Checker

	// CheckDisabled switches E2E checking off globally for this event.
	CheckDisabled bool

	// Deserializer produces typed samples; nil selects reader.RawBytes.
	Deserializer reader.Deserializer

	// QueueDepth bounds the ingress queue.
	QueueDepth int
}

// Binding is one configured event instance.
type Binding struct {
	ident  identity.Entity
	cfg    Config
	logger log.Logger
	shared *e2e.SharedResult

	mu         sync.Mutex
	subscribed bool
	queue      *sample.Queue
	pool       *sample.Pool
	rd         sampleReader
}

// New validates cfg and builds an unsubscribed binding.
func New(cfg Config) (*Binding, error) {
	switch cfg.Variant {
	case VariantSomeIp, VariantSignal, VariantSomeIpE2e, VariantSignalE2e, VariantSignalE2eLegacy:
	default:
		return nil, fmt.Errorf("%w: unknown variant %q", core.ErrConfigInvalid, cfg.Variant)
	}
	if cfg.QueueDepth <= 0 {
		return nil, fmt.Errorf("%w: queue depth must be positive", core.ErrConfigInvalid)
	}
	if cfg.Variant == VariantSignalE2e && cfg.Layout.ProtectedLengthBits <= 0 {
		return nil, fmt.Errorf("%w: signal-e2e requires a protected length", core.ErrConfigInvalid)
	}
	if cfg.Checker == nil {
		cfg.Checker = e2e.Disabled{}
	}
	if cfg.Deserializer == nil {
		cfg.Deserializer = reader.RawBytes{}
	}
	return &Binding{
		ident:  cfg.Identity,
		cfg:    cfg,
		logger: log.GetLogger().WithFields(cfg.Identity.Fields()),
		shared: e2e.NewSharedResult(),
	}, nil
}

// Identity returns the bound event identity.
func (b *Binding) Identity() identity.Entity { return b.ident }

// Subscribe allocates the caches for up to maxSamples in-flight samples and
// arms the binding. Subscribing twice is a programming defect and aborts.
func (b *Binding) Subscribe(maxSamples int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subscribed {
		b.logger.Fatalf("%v: %s", core.ErrAlreadySubscribed, b.ident)
		return
	}
	b.queue = sample.NewQueue(b.cfg.QueueDepth)
	b.pool = sample.NewPool(maxSamples)
	b.rd = b.buildReader()
	b.subscribed = true
	b.logger.WithField("max_samples", maxSamples).Info("event subscribed")
}

// Unsubscribe disarms the binding and drops the caches. Frames arriving
// afterwards are rejected at HandleFrame.
func (b *Binding) Unsubscribe() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.subscribed {
		b.logger.Fatalf("%v: %s", core.ErrNotSubscribed, b.ident)
		return
	}
	b.subscribed = false
	b.queue = nil
	b.pool = nil
	b.rd = nil
	b.logger.Info("event unsubscribed")
}

// buildReader wires the variant's interpreter into the matching reader.
func (b *Binding) buildReader() sampleReader {
	name := b.ident.String()
	fields := b.ident.Fields()
	switch b.cfg.Variant {
	case VariantSomeIp:
		return reader.NewSampleReader(interpreter.SomeIp{}, b.cfg.Deserializer, name, fields)
	case VariantSignal:
		return reader.NewSampleReader(interpreter.NewSignal(b.cfg.Layout.ExtensionSize), b.cfg.Deserializer, name, fields)
	case VariantSomeIpE2e:
		return reader.NewE2eSampleReader(
			interpreter.NewSomeIpE2e(b.cfg.Checker.HeaderSize()),
			b.cfg.Deserializer,
			reader.E2eConfig{
				Checker: b.cfg.Checker,
				Shared:  b.shared,
				// The request ID through return code bytes sit inside the
				// protected range but outside the profile CRC.
				NonCheckedOffset: someip.ProtectedHeaderBytes,
				Disabled:         b.cfg.CheckDisabled,
			},
			name, fields)
	case VariantSignalE2e:
		return reader.NewE2eSampleReader(
			interpreter.NewSignalE2e(b.cfg.Layout),
			b.cfg.Deserializer,
			reader.E2eConfig{Checker: b.cfg.Checker, Shared: b.shared, Disabled: b.cfg.CheckDisabled},
			name, fields)
	case VariantSignalE2eLegacy:
		return reader.NewE2eSampleReader(
			interpreter.NewLegacySignalE2e(b.cfg.Layout),
			b.cfg.Deserializer,
			reader.E2eConfig{Checker: b.cfg.Checker, Shared: b.shared, Disabled: b.cfg.CheckDisabled},
			name, fields)
	}
	// New rejects unknown variants.
	return nil
}

// HandleFrame is the transport-facing ingress: it copies data into an entry
// and enqueues it. Frames for an unsubscribed binding and frames overflowing
// the queue are dropped and counted.
func (b *Binding) HandleFrame(data []byte, ts time.Time) {
	b.mu.Lock()
	subscribed, queue := b.subscribed, b.queue
	b.mu.Unlock()

	name := b.ident.String()
	if !subscribed {
		metrics.IngressDropsTotal.WithLabelValues(name, "unsubscribed").Inc()
		b.logger.Debug("dropping frame: event not subscribed")
		return
	}
	metrics.IngressFramesTotal.WithLabelValues(name).Inc()
	if !queue.Push(sample.NewEntry(data, ts)) {
		metrics.IngressDropsTotal.WithLabelValues(name, "queue_full").Inc()
		b.logger.Warn("dropping frame: ingress queue full")
	}
}

// GetNewSamples drains up to max pending samples into cb and returns the
// number of callback invocations. Calling it while unsubscribed is a
// programming defect and aborts.
func (b *Binding) GetNewSamples(max int, cb reader.Callback) int {
	b.mu.Lock()
	subscribed, pool, queue, rd := b.subscribed, b.pool, b.queue, b.rd
	b.mu.Unlock()
	if !subscribed {
		b.logger.Fatalf("%v: %s", core.ErrNotSubscribed, b.ident)
		return 0
	}
	return rd.Read(pool, queue, max, cb)
}

// ReleaseSample returns a slot previously handed to a callback back to the
// pool, making it available to the next GetNewSamples batch.
func (b *Binding) ReleaseSample(s *sample.Slot) {
	b.mu.Lock()
	subscribed, pool := b.subscribed, b.pool
	b.mu.Unlock()
	if !subscribed {
		b.logger.Fatalf("%v: %s", core.ErrNotSubscribed, b.ident)
		return
	}
	pool.Release(s)
}

// GetE2EResult returns the latest published E2E result.
func (b *Binding) GetE2EResult() e2e.Result {
	return b.shared.Get()
}

// Pending returns the number of queued frames; 0 when unsubscribed.
func (b *Binding) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.subscribed {
		return 0
	}
	return b.queue.Len()
}
