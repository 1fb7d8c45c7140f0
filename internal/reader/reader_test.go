package reader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaptivemw/someipbind/internal/e2e"
	"github.com/adaptivemw/someipbind/internal/interpreter"
	"github.com/adaptivemw/someipbind/internal/sample"
)

// someipFrame builds a 16-byte zero header plus payload.
func someipFrame(payload ...byte) []byte {
	frame := make([]byte, 16, 16+len(payload))
	return append(frame, payload...)
}

func TestSampleReaderDeliversPayloads(t *testing.T) {
	r := NewSampleReader(interpreter.SomeIp{}, RawBytes{}, "test-event", nil)
	pool := &countingPool{Pool: sample.NewPool(4)}
	queue := sample.NewQueue(8)
	ts := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	queue.Push(sample.NewEntry(someipFrame(0xAA, 0xBB), ts))
	queue.Push(sample.NewEntry(someipFrame(0xCC), time.Time{}))

	var got []delivery
	n := r.Read(pool, queue, 10, collect(&got))

	assert.Equal(t, 2, n)
	require.Len(t, got, 2)
	assert.Equal(t, []byte{0xAA, 0xBB}, got[0].slot.Bytes)
	assert.Equal(t, ts, got[0].ts)
	assert.Equal(t, e2e.StatusNotAvailable, got[0].status)
	assert.Equal(t, []byte{0xCC}, got[1].slot.Bytes)
	assert.True(t, got[1].ts.IsZero())
}

func TestSampleReaderEmptyQueueReturnsZero(t *testing.T) {
	r := NewSampleReader(interpreter.SomeIp{}, RawBytes{}, "test-event", nil)
	pool := &countingPool{Pool: sample.NewPool(2)}

	var got []delivery
	n := r.Read(pool, sample.NewQueue(4), 10, collect(&got))

	assert.Equal(t, 0, n)
	assert.Equal(t, 0, pool.acquired)
}

func TestSampleReaderBoundedBatch(t *testing.T) {
	r := NewSampleReader(interpreter.SomeIp{}, RawBytes{}, "test-event", nil)
	pool := &countingPool{Pool: sample.NewPool(8)}
	queue := sample.NewQueue(8)
	for i := 0; i < 5; i++ {
		queue.Push(sample.NewEntry(someipFrame(byte(i)), time.Time{}))
	}

	var got []delivery
	n := r.Read(pool, queue, 2, collect(&got))

	assert.Equal(t, 2, n)
	assert.Equal(t, 3, queue.Len())
	// FIFO: the first two frames came out first.
	assert.Equal(t, []byte{0}, got[0].slot.Bytes)
	assert.Equal(t, []byte{1}, got[1].slot.Bytes)
}

func TestSampleReaderDropsShortFrames(t *testing.T) {
	r := NewSampleReader(interpreter.SomeIp{}, RawBytes{}, "test-event", nil)
	pool := &countingPool{Pool: sample.NewPool(2)}
	queue := sample.NewQueue(4)
	queue.Push(sample.NewEntry([]byte{0x01, 0x02, 0x03}, time.Time{}))
	queue.Push(sample.NewEntry(someipFrame(0xEE), time.Time{}))

	var got []delivery
	n := r.Read(pool, queue, 10, collect(&got))

	// The short frame is consumed and dropped; the valid one still arrives.
	assert.Equal(t, 1, n)
	require.Len(t, got, 1)
	assert.Equal(t, []byte{0xEE}, got[0].slot.Bytes)
	assert.Equal(t, 2, pool.acquired)
	assert.Equal(t, 1, pool.released)
	assert.True(t, queue.Empty())
}

func TestSampleReaderDropsOnDeserializeFailure(t *testing.T) {
	r := NewSampleReader(interpreter.SomeIp{}, failingDeserializer{}, "test-event", nil)
	pool := &countingPool{Pool: sample.NewPool(2)}
	queue := sample.NewQueue(4)
	queue.Push(sample.NewEntry(someipFrame(0x01), time.Time{}))

	var got []delivery
	n := r.Read(pool, queue, 10, collect(&got))

	assert.Equal(t, 0, n)
	assert.Empty(t, got)
	assert.Equal(t, pool.acquired, pool.released)
}

func TestSampleReaderStopsOnSlotExhaustion(t *testing.T) {
	r := NewSampleReader(interpreter.SomeIp{}, RawBytes{}, "test-event", nil)
	realPool := sample.NewPool(1)
	pool := &countingPool{Pool: realPool}
	queue := sample.NewQueue(4)
	queue.Push(sample.NewEntry(someipFrame(1), time.Time{}))
	queue.Push(sample.NewEntry(someipFrame(2), time.Time{}))

	var got []delivery
	n := r.Read(pool, queue, 10, collect(&got))

	assert.Equal(t, 1, n)
	assert.Equal(t, 1, queue.Len())

	realPool.Release(got[0].slot)
	got = nil
	n = r.Read(pool, queue, 10, collect(&got))
	assert.Equal(t, 1, n)
	assert.Equal(t, []byte{2}, got[0].slot.Bytes)
}
