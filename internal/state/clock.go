package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Clock is a Lamport clock tagged with a random site id. Shared pattern
// updates carry its sequence numbers so followers can drop stale ones.
type Clock struct {
	site    string
	lamport atomic.Uint64
}

func NewClock() *Clock {
	return &Clock{site: uuid.NewString()}
}

func (c *Clock) Site() string { return c.site }

// Tick advances the clock and returns the new value.
func (c *Clock) Tick() uint64 {
	return c.lamport.Add(1)
}

// Observe moves the clock forward to seq if seq is ahead.
func (c *Clock) Observe(seq uint64) {
	for {
		cur := c.lamport.Load()
		if seq <= cur || c.lamport.CompareAndSwap(cur, seq) {
			return
		}
	}
}

func (c *Clock) Now() uint64 { return c.lamport.Load() }
