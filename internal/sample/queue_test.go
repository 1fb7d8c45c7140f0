package sample

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue(4)

	assert.True(t, q.Empty())
	for i := byte(0); i < 3; i++ {
		assert.True(t, q.Push(NewEntry([]byte{i}, time.Time{})))
	}
	assert.Equal(t, 3, q.Len())

	for i := byte(0); i < 3; i++ {
		e := q.Front()
		assert.Equal(t, []byte{i}, e.BufferView())
		q.PopFront()
	}
	assert.True(t, q.Empty())
	assert.Nil(t, q.Front())
}

func TestQueueTailDrop(t *testing.T) {
	q := NewQueue(2)

	assert.True(t, q.Push(NewEntry([]byte{0}, time.Time{})))
	assert.True(t, q.Push(NewEntry([]byte{1}, time.Time{})))
	assert.False(t, q.Push(NewEntry([]byte{2}, time.Time{})))

	assert.Equal(t, 2, q.Len())
	assert.Equal(t, uint64(1), q.Dropped())
	// The oldest entries win; the overflowing one is gone.
	assert.Equal(t, []byte{0}, q.Front().BufferView())
}

func TestEntryOwnsItsBytes(t *testing.T) {
	data := []byte{0xAA, 0xBB}
	e := NewEntry(data, time.Time{})
	data[0] = 0x00

	assert.Equal(t, []byte{0xAA, 0xBB}, e.BufferView())
	assert.Equal(t, 2, e.Size())
}

func TestEntryTimestamp(t *testing.T) {
	now := time.Now()

	e := NewEntry(nil, now)
	ts, ok := e.Timestamp()
	assert.True(t, ok)
	assert.Equal(t, now, ts)

	e = NewEntry(nil, time.Time{})
	_, ok = e.Timestamp()
	assert.False(t, ok)
}
