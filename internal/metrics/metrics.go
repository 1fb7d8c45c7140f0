// Package metrics implements Prometheus instrumentation for the binding.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IngressFramesTotal counts frames handed to a binding by the transport.
	IngressFramesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "someipbind_ingress_frames_total",
			Help: "Total number of raw frames delivered to event bindings",
		},
		[]string{"event"},
	)

	// IngressDropsTotal counts frames dropped before processing.
	IngressDropsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "someipbind_ingress_drops_total",
			Help: "Total number of raw frames dropped before processing",
		},
		[]string{"event", "reason"},
	)

	// SamplesDeliveredTotal counts callback invocations with a valid sample.
	SamplesDeliveredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "someipbind_samples_delivered_total",
			Help: "Total number of deserialized samples handed to the application",
		},
		[]string{"event"},
	)

	// E2eChecksTotal counts E2E check outcomes by status.
	E2eChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "someipbind_e2e_checks_total",
			Help: "Total number of E2E check results by status",
		},
		[]string{"event", "status"},
	)

	// DeserializeFailuresTotal counts payloads the deserializer rejected.
	DeserializeFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "someipbind_deserialize_failures_total",
			Help: "Total number of payloads that failed deserialization",
		},
		[]string{"event"},
	)
)
