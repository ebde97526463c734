// Package redis implements the event channel over Redis pub/sub. Redis
// delivery is at-most-once and fire-and-forget, which matches the channel
// contract exactly: subscribers that miss an event converge via re-fetch.
package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/go-redis/redis/v8"

	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"
)

// EventChannel implements ports.EventChannel over Redis pub/sub channels.
// Each topic maps to one Redis channel, optionally namespaced by a prefix so
// several environments can share a Redis instance.
type EventChannel struct {
	client *redis.Client
	prefix string
	logger *slog.Logger

	mu   sync.Mutex
	subs map[string]*subscription
}

type subscription struct {
	pubsub *redis.PubSub

	mu      sync.RWMutex
	handler ports.EventHandler
}

func (s *subscription) replace(handler ports.EventHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = handler
}

func (s *subscription) current() ports.EventHandler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handler
}

// NewEventChannel creates a channel on the given client. The channel takes
// ownership of the client; Close closes it.
func NewEventChannel(client *redis.Client, prefix string, logger *slog.Logger) (*EventChannel, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}

	return &EventChannel{
		client: client,
		prefix: prefix,
		logger: logger.With("component", "redis_event_channel"),
		subs:   make(map[string]*subscription),
	}, nil
}

// Subscribe registers handler for topic. A topic already subscribed keeps its
// Redis subscription and only swaps the handler, so replacement never drops
// in-flight messages.
func (c *EventChannel) Subscribe(topic string, handler ports.EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sub, ok := c.subs[topic]; ok {
		sub.replace(handler)
		return
	}

	pubsub := c.client.Subscribe(context.Background(), c.channelName(topic))
	sub := &subscription{pubsub: pubsub, handler: handler}
	c.subs[topic] = sub

	go c.consume(topic, sub)
}

func (c *EventChannel) consume(topic string, sub *subscription) {
	for msg := range sub.pubsub.Channel() {
		handler := sub.current()
		if handler == nil {
			continue
		}
		handler(context.Background(), []byte(msg.Payload))
	}
	c.logger.Debug("Subscription reader stopped", "topic", topic)
}

// Unsubscribe tears down the topic's Redis subscription.
func (c *EventChannel) Unsubscribe(topic string) {
	c.mu.Lock()
	sub, ok := c.subs[topic]
	delete(c.subs, topic)
	c.mu.Unlock()

	if !ok {
		return
	}
	if err := sub.pubsub.Close(); err != nil {
		c.logger.Warn("Failed to close subscription", "topic", topic, "error", err)
	}
}

// Emit publishes the JSON-marshaled payload on the topic's Redis channel.
func (c *EventChannel) Emit(ctx context.Context, topic string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, c.channelName(topic), raw).Err()
}

// Close tears down every subscription and the client connection.
func (c *EventChannel) Close() error {
	c.mu.Lock()
	subs := c.subs
	c.subs = make(map[string]*subscription)
	c.mu.Unlock()

	for topic, sub := range subs {
		if err := sub.pubsub.Close(); err != nil {
			c.logger.Warn("Failed to close subscription", "topic", topic, "error", err)
		}
	}
	return c.client.Close()
}

func (c *EventChannel) channelName(topic string) string {
	if c.prefix == "" {
		return topic
	}
	return c.prefix + ":" + topic
}
