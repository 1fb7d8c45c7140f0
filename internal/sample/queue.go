package sample

import "sync"

// Queue is the bounded FIFO of serialized frames between the transport and
// the reader. The transport's reactor thread pushes; the application thread
// drains via the reader. Both sides are serialized by one mutex.
//
// When the queue is full the incoming frame is rejected (tail drop): the
// consumer is behind and the freshest history it already holds wins.
type Queue struct {
	mu      sync.Mutex
	entries []*Entry
	depth   int
	dropped uint64
}

// NewQueue creates a queue holding at most depth entries.
func NewQueue(depth int) *Queue {
	return &Queue{depth: depth}
}

// Push appends an entry. It reports false when the queue is full; the entry
// is then dropped and counted.
func (q *Queue) Push(e *Entry) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) >= q.depth {
		q.dropped++
		return false
	}
	q.entries = append(q.entries, e)
	return true
}

// Front returns the oldest entry without removing it, or nil when empty.
func (q *Queue) Front() *Entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) == 0 {
		return nil
	}
	return q.entries[0]
}

// PopFront removes the oldest entry.
func (q *Queue) PopFront() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) == 0 {
		return
	}
	q.entries[0] = nil
	q.entries = q.entries[1:]
}

// Len returns the number of queued entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Empty reports whether no entries are queued.
func (q *Queue) Empty() bool { return q.Len() == 0 }

// Dropped returns the number of entries rejected because the queue was full.
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
