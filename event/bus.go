// Package event is an in-process publish/subscribe bus.
//
// Delivery is synchronous: Publish runs every handler subscribed to the topic,
// in subscription order, on the caller's goroutine, and returns once all of them
// are done. Payloads are not buffered; a publish with no subscribers is dropped.
package event

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/anikatalog/anikatalog/log"
)

// Handler consumes a published payload. A returned error is logged and
// otherwise ignored.
type Handler func(payload any) error

// Bus routes payloads from publishers to subscribers.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Topic][]*Subscription
	closed bool
}

// Subscription is a handler registered on a topic.
type Subscription struct {
	id      uint64
	topic   Topic
	handler Handler
	bus     *Bus
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]*Subscription)}
}

// Subscribe registers handler for topic.
// Subscribing to a closed bus returns a subscription that is never called.
func (b *Bus) Subscribe(topic Topic, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		id:      b.nextID,
		topic:   topic,
		handler: handler,
		bus:     b,
	}

	if !b.closed {
		b.subs[topic] = append(b.subs[topic], sub)
	}

	return sub
}

// On subscribes a handler that only accepts payloads of type T.
// Payloads of any other type are reported as handler errors.
func On[T any](b *Bus, topic Topic, handler func(T) error) *Subscription {
	return b.Subscribe(topic, func(payload any) error {
		typed, ok := payload.(T)
		if !ok {
			var zero T
			return fmt.Errorf("unexpected payload %T on %s, want %T", payload, topic, zero)
		}
		return handler(typed)
	})
}

// Publish delivers payload to every current subscriber of topic.
// Handlers cannot fail the publisher: errors and panics are logged and the
// remaining handlers still run.
func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.Lock()
	subs := make([]*Subscription, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.mu.Unlock()

	for _, sub := range subs {
		sub.deliver(payload)
	}
}

// Subscribers returns the number of handlers currently subscribed to topic.
func (b *Bus) Subscribers(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.subs[topic])
}

// Close removes every subscription. Later publishes are dropped.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.subs = make(map[Topic][]*Subscription)
}

// Unsubscribe removes the subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[s.topic]
	for i, sub := range subs {
		if sub.id == s.id {
			b.subs[s.topic] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}

	if len(b.subs[s.topic]) == 0 {
		delete(b.subs, s.topic)
	}
}

// Topic returns the topic the subscription listens on.
func (s *Subscription) Topic() Topic {
	return s.topic
}

func (s *Subscription) deliver(payload any) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"topic": s.topic,
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("event handler panicked")
		}
	}()

	if err := s.handler(payload); err != nil {
		log.WithFields(log.Fields{
			"topic": s.topic,
		}).WithError(err).Warn("event handler failed")
	}
}
