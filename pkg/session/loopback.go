package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Loopback is an in-process channel endpoint. Emitting on one endpoint
// delivers synchronously to its peer's handlers, which makes delivery order
// deterministic for tests and examples.
type Loopback struct {
	mu       sync.Mutex
	handlers map[string][]Handler
	peer     *Loopback
}

// NewLoopbackPair creates two connected endpoints: what one emits, the
// other receives.
func NewLoopbackPair() (*Loopback, *Loopback) {
	a := &Loopback{handlers: make(map[string][]Handler)}
	b := &Loopback{handlers: make(map[string][]Handler)}
	a.peer = b
	b.peer = a
	return a, b
}

// On registers a handler for an event name.
func (l *Loopback) On(event string, handler Handler) {
	if handler == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers[event] = append(l.handlers[event], handler)
}

// Emit marshals the payload and delivers it to the peer's handlers in
// registration order before returning.
func (l *Loopback) Emit(ctx context.Context, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("session: marshal %s payload: %w", event, err)
	}

	l.peer.mu.Lock()
	handlers := append([]Handler(nil), l.peer.handlers[event]...)
	l.peer.mu.Unlock()

	for _, handler := range handlers {
		handler(ctx, data)
	}
	return nil
}
