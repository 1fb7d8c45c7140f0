package sample

import (
	"sync"

	"github.com/adaptivemw/someipbind/internal/log"
)

// Pool is the bounded set of sample slots for one subscribed event. Acquire
// and Release are internally synchronized; the reader's obligation is strict
// balance, so releasing a slot twice or releasing a slot of another pool is
// a programming defect and aborts the process.
type Pool struct {
	mu    sync.Mutex
	slots []*Slot
	free  []*Slot
	out   []bool
}

// NewPool creates a pool of n slots.
func NewPool(n int) *Pool {
	p := &Pool{
		slots: make([]*Slot, n),
		free:  make([]*Slot, 0, n),
		out:   make([]bool, n),
	}
	for i := 0; i < n; i++ {
		s := &Slot{id: i, pool: p}
		p.slots[i] = s
		p.free = append(p.free, s)
	}
	return p
}

// Acquire hands out a free slot, or nil when the pool is exhausted. A nil
// return is the back-pressure signal, not an error.
func (p *Pool) Acquire() *Slot {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) == 0 {
		return nil
	}
	s := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.out[s.id] = true
	return s
}

// Release returns a slot to the pool.
func (p *Pool) Release(s *Slot) {
	if s == nil || s.pool != p {
		log.GetLogger().Fatal("sample pool: released slot does not belong to this pool")
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.out[s.id] {
		log.GetLogger().Fatalf("sample pool: slot %d released twice", s.id)
		return
	}
	s.Reset()
	p.out[s.id] = false
	p.free = append(p.free, s)
}

// Free returns the number of slots currently available.
func (p *Pool) Free() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Size returns the total slot count.
func (p *Pool) Size() int { return len(p.slots) }
