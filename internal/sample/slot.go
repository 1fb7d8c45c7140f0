package sample

// Slot is one pre-allocated holder for a deserialized sample. A slot is
// exclusively owned by whoever currently holds the pointer: the pool until
// acquired, the reader during deserialization, the application after the
// callback handed it over, then the pool again after Release.
type Slot struct {
	// Value is the deserialized sample. Its concrete type is whatever the
	// event's Deserializer produces.
	Value interface{}

	// Bytes is reusable scratch for deserializers that keep the sample as
	// raw bytes; it is retained across reuse to avoid per-message allocation.
	Bytes []byte

	id   int
	pool *Pool
}

// Reset clears the sample content but keeps the scratch capacity.
func (s *Slot) Reset() {
	s.Value = nil
	s.Bytes = s.Bytes[:0]
}
