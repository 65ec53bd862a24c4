package event

import (
	"context"
	"sync"
)

// Handler receives every emitted event. Handlers run synchronously on the
// emitter's goroutine; a panic propagates to the emitter (no isolation).
type Handler func(ctx context.Context, evt Event)

// Bus is the in-process publish/dispatch mechanism. Emit invokes every
// registered handler in registration order, passing the same event value to
// all. No backpressure, no persistence, no replay.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

func (b *Bus) Emit(ctx context.Context, evt Event) {
	b.mu.RLock()
	handlers := b.handlers
	b.mu.RUnlock()
	for _, h := range handlers {
		h(ctx, evt)
	}
}
