// Package identity carries the service/instance/event triple that names one
// deployed SOME/IP event and feeds the log prefixes used across the binding.
package identity

import "fmt"

// Entity identifies one event of one service instance on the wire.
type Entity struct {
	ServiceID  uint16
	InstanceID uint16
	EventID    uint16
}

// String renders the canonical prefix form used in diagnostics.
func (e Entity) String() string {
	return fmt.Sprintf("service 0x%04x, instance 0x%04x, event 0x%04x",
		e.ServiceID, e.InstanceID, e.EventID)
}

// Fields returns the structured-log fields for this entity. Loggers derived
// with these fields carry the event identity on every line.
func (e Entity) Fields() map[string]interface{} {
	return map[string]interface{}{
		"service":  fmt.Sprintf("0x%04x", e.ServiceID),
		"instance": fmt.Sprintf("0x%04x", e.InstanceID),
		"event":    fmt.Sprintf("0x%04x", e.EventID),
	}
}
