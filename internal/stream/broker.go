// Package stream provides the live-update broker that replaces the
// onSnapshot-style subscriptions of the original backend. A subscriber
// registers interest in a topic and receives an explicit cancel handle;
// cancelling unregisters exactly once and closes the channel.
package stream

import (
	"fmt"
	"sync"
	"time"
)

// Event kinds pushed to subscribers.
const (
	EventUserUpdated    = "user.updated"
	EventVoucherCreated = "voucher.created"
	EventVoucherDeleted = "voucher.deleted"
	EventTransaction    = "transaction.created"
)

// Event is a single live update.
type Event struct {
	Kind      string      `json:"kind"`
	Topic     string      `json:"topic"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Topic helpers. Feeds are scoped per account so a screen never acts on a
// foreign user's data.
func UserTopic(userID uint) string { return fmt.Sprintf("user:%d", userID) }

func SellerTopic(sellerID uint) string { return fmt.Sprintf("seller:%d", sellerID) }

type subscriber struct {
	ch     chan Event
	closed bool
}

// Broker fans events out to topic subscribers. Publishing never blocks:
// a subscriber that cannot keep up has the event dropped rather than
// stalling the write path.
type Broker struct {
	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[*subscriber]struct{}),
	}
}

// Subscribe registers a listener on a topic. The returned cancel func is
// idempotent; after it runs the channel is closed and no further events
// are delivered.
func (b *Broker) Subscribe(topic string) (<-chan Event, func()) {
	sub := &subscriber{ch: make(chan Event, 16)}

	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[*subscriber]struct{})
	}
	b.subs[topic][sub] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[topic], sub)
			if len(b.subs[topic]) == 0 {
				delete(b.subs, topic)
			}
			sub.closed = true
			close(sub.ch)
			b.mu.Unlock()
		})
	}

	return sub.ch, cancel
}

// Publish delivers an event to every subscriber of the topic.
func (b *Broker) Publish(topic, kind string, payload interface{}) {
	evt := Event{
		Kind:      kind,
		Topic:     topic,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs[topic] {
		if sub.closed {
			continue
		}
		select {
		case sub.ch <- evt:
		default:
			// Slow consumer; drop instead of blocking the writer.
		}
	}
}
