package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolAcquireRelease(t *testing.T) {
	p := NewPool(2)

	assert.Equal(t, 2, p.Free())
	assert.Equal(t, 2, p.Size())

	s1 := p.Acquire()
	require.NotNil(t, s1)
	s2 := p.Acquire()
	require.NotNil(t, s2)
	assert.Equal(t, 0, p.Free())

	// Exhausted pool signals back-pressure with nil, not an error.
	assert.Nil(t, p.Acquire())

	p.Release(s1)
	assert.Equal(t, 1, p.Free())
	p.Release(s2)
	assert.Equal(t, 2, p.Free())
}

func TestPoolSlotResetOnRelease(t *testing.T) {
	p := NewPool(1)

	s := p.Acquire()
	require.NotNil(t, s)
	s.Value = "sample"
	s.Bytes = append(s.Bytes, 0x01, 0x02)
	p.Release(s)

	s = p.Acquire()
	require.NotNil(t, s)
	assert.Nil(t, s.Value)
	assert.Len(t, s.Bytes, 0)
}

func TestPoolSlotIdentityStable(t *testing.T) {
	p := NewPool(1)

	s1 := p.Acquire()
	p.Release(s1)
	s2 := p.Acquire()

	// One slot pool: the same pre-allocated slot comes back.
	assert.Same(t, s1, s2)
}
