package decision

import (
	"sync"

	"guardian/internal/event"
)

// Conversations tracks prompts still awaiting a manual response, keyed by
// their correlation context. It exists so a stale or mismatched response is a
// detectable condition rather than a silent drop: Resolve reports whether a
// matching prompt was pending, and consumes it so each prompt is answered at
// most once.
//
// State is in-memory only. No persisted ticket abstraction is kept; matching
// is structural equality on the context value the client echoes back.
type Conversations struct {
	mu      sync.Mutex
	pending map[event.Correlation]int
}

func NewConversations() *Conversations {
	return &Conversations{pending: make(map[event.Correlation]int)}
}

// Open registers an outstanding prompt. Identical contexts may be open more
// than once; each response consumes one.
func (c *Conversations) Open(corr event.Correlation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[corr]++
}

// Resolve consumes a pending prompt matching the context exactly. It returns
// false when nothing matches, which callers should surface rather than drop.
func (c *Conversations) Resolve(corr event.Correlation) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.pending[corr]
	if !ok {
		return false
	}
	if n <= 1 {
		delete(c.pending, corr)
	} else {
		c.pending[corr] = n - 1
	}
	return true
}

// Pending reports the number of open prompts across all contexts.
func (c *Conversations) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, n := range c.pending {
		total += n
	}
	return total
}
