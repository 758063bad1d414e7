package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	backend "github.com/redis/go-redis/v9"

	"github.com/glenrsmithjr/teach/internal/logging"
)

// envelope is the wire frame published on the pub/sub channel.
type envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// RedisChannel is a Channel transport over Redis pub/sub, for running the
// builder and the agent as separate processes. Each endpoint publishes on
// one channel and subscribes on the other; inbound messages are dispatched
// serially, preserving per-event order.
type RedisChannel struct {
	client    *backend.Client
	publish   string
	subscribe string
	logger    *slog.Logger

	mu       sync.Mutex
	handlers map[string][]Handler

	sub    *backend.PubSub
	cancel context.CancelFunc
	done   chan struct{}
}

// RedisOption configures the transport.
type RedisOption func(*RedisChannel)

// WithLogger attaches a logger for delivery diagnostics.
func WithLogger(logger *slog.Logger) RedisOption {
	return func(c *RedisChannel) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewRedisChannel creates a transport publishing on one channel name and
// subscribing on another.
func NewRedisChannel(client *backend.Client, publish, subscribe string, opts ...RedisOption) *RedisChannel {
	c := &RedisChannel{
		client:    client,
		publish:   publish,
		subscribe: subscribe,
		logger:    logging.NewNop(),
		handlers:  make(map[string][]Handler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// On registers a handler for an event name. Registration after Start is
// safe; handlers see only messages delivered after they were added.
func (c *RedisChannel) On(event string, handler Handler) {
	if handler == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = append(c.handlers[event], handler)
}

// Emit publishes an event envelope.
func (c *RedisChannel) Emit(ctx context.Context, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("session: marshal %s payload: %w", event, err)
	}
	frame, err := json.Marshal(envelope{Event: event, Payload: data})
	if err != nil {
		return fmt.Errorf("session: marshal envelope: %w", err)
	}
	if err := c.client.Publish(ctx, c.publish, frame).Err(); err != nil {
		return fmt.Errorf("session: publish %s: %w", event, err)
	}
	return nil
}

// Start subscribes and begins dispatching inbound messages. It returns once
// the subscription is confirmed; dispatch continues in the background until
// Close or context cancellation.
func (c *RedisChannel) Start(ctx context.Context) error {
	if c.sub != nil {
		return fmt.Errorf("session: redis channel already started")
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	sub := c.client.Subscribe(runCtx, c.subscribe)
	if _, err := sub.Receive(ctx); err != nil {
		cancel()
		_ = sub.Close()
		return fmt.Errorf("session: subscribe %s: %w", c.subscribe, err)
	}

	c.sub = sub
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.dispatch(runCtx)
	return nil
}

func (c *RedisChannel) dispatch(ctx context.Context) {
	defer close(c.done)
	for msg := range c.sub.Channel() {
		var frame envelope
		if err := json.Unmarshal([]byte(msg.Payload), &frame); err != nil {
			c.logger.Warn("dropping malformed frame", "channel", c.subscribe, "err", err)
			continue
		}

		c.mu.Lock()
		handlers := append([]Handler(nil), c.handlers[frame.Event]...)
		c.mu.Unlock()

		for _, handler := range handlers {
			handler(ctx, frame.Payload)
		}
	}
}

// Close tears down the subscription and waits for dispatch to drain.
func (c *RedisChannel) Close() error {
	if c.sub == nil {
		return nil
	}
	err := c.sub.Close()
	c.cancel()
	<-c.done
	c.sub = nil
	return err
}
