package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_PublishSubscribe(t *testing.T) {
	b := NewBroker()

	ch, cancel := b.Subscribe(UserTopic(1))
	defer cancel()

	b.Publish(UserTopic(1), EventUserUpdated, map[string]int{"current_point": 42})

	select {
	case evt := <-ch:
		assert.Equal(t, EventUserUpdated, evt.Kind)
		assert.Equal(t, "user:1", evt.Topic)
	case <-time.After(time.Second):
		t.Fatal("expected event was not delivered")
	}
}

func TestBroker_TopicIsolation(t *testing.T) {
	b := NewBroker()

	ch, cancel := b.Subscribe(UserTopic(1))
	defer cancel()

	b.Publish(UserTopic(2), EventUserUpdated, nil)

	select {
	case evt := <-ch:
		t.Fatalf("received event for a foreign topic: %+v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroker_CancelStopsDelivery(t *testing.T) {
	b := NewBroker()

	ch, cancel := b.Subscribe(SellerTopic(7))
	cancel()

	b.Publish(SellerTopic(7), EventTransaction, nil)

	_, open := <-ch
	assert.False(t, open, "channel should be closed after cancel")
}

func TestBroker_CancelIsIdempotent(t *testing.T) {
	b := NewBroker()

	_, cancel := b.Subscribe(UserTopic(3))
	require.NotPanics(t, func() {
		cancel()
		cancel()
	})
}

func TestBroker_SlowConsumerDoesNotBlock(t *testing.T) {
	b := NewBroker()

	_, cancel := b.Subscribe(UserTopic(9))
	defer cancel()

	done := make(chan struct{})
	go func() {
		// Overflow the subscriber buffer; Publish must never stall.
		for i := 0; i < 100; i++ {
			b.Publish(UserTopic(9), EventUserUpdated, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow consumer")
	}
}
