// Package inmem provides a process-local event channel: emitted events loop
// straight back to the local subscriber. Used for single-process deployments
// (dashboard and stations in one binary) and as the transport in tests.
package inmem

import (
	"context"
	"encoding/json"
	"sync"

	"orderboard/internal/core/ports"
)

// EventChannel implements ports.EventChannel with synchronous local delivery.
// It mirrors the transport contract: at most one handler per topic, Subscribe
// replaces, payloads cross as JSON so handlers see exactly what a remote
// transport would hand them.
type EventChannel struct {
	mu       sync.RWMutex
	handlers map[string]ports.EventHandler
}

// NewEventChannel creates an empty channel.
func NewEventChannel() *EventChannel {
	return &EventChannel{
		handlers: make(map[string]ports.EventHandler),
	}
}

// Subscribe registers handler for topic, replacing any existing handler.
func (c *EventChannel) Subscribe(topic string, handler ports.EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[topic] = handler
}

// Unsubscribe removes the topic's handler.
func (c *EventChannel) Unsubscribe(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handlers, topic)
}

// Emit marshals the payload and delivers it synchronously to the topic's
// handler, if any. A topic without a subscriber drops the event, matching
// at-most-once delivery.
func (c *EventChannel) Emit(ctx context.Context, topic string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	c.mu.RLock()
	handler := c.handlers[topic]
	c.mu.RUnlock()

	if handler != nil {
		handler(ctx, raw)
	}
	return nil
}

// Close drops every subscription.
func (c *EventChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = make(map[string]ports.EventHandler)
	return nil
}
