package realtime

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvTimeout(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev := <-sub.C():
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestPublishReachesSubscriber(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	topic := ChatTopic(uuid.New())
	sub := hub.Subscribe(topic)

	hub.Publish(topic, "new_message", map[string]string{"content": "hello"})

	ev := recvTimeout(t, sub)
	assert.Equal(t, topic, ev.Topic)
	assert.Equal(t, "new_message", ev.Event)
}

func TestPublishToEmptyTopicDoesNotBlock(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	done := make(chan struct{})
	go func() {
		hub.Publish("chat:nobody", "new_message", nil)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked with no subscribers")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	topic := UserTopic(uuid.New())
	sub := hub.Subscribe(topic)
	hub.Unsubscribe(sub)

	// Channel is closed; publish must not panic.
	hub.Publish(topic, "new_notification", nil)

	_, open := <-sub.C()
	assert.False(t, open, "channel should be closed after unsubscribe")
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	topic := ChatTopic(uuid.New())
	sub := hub.Subscribe(topic)

	// Overfill the buffer; extra events are dropped, not delivered late.
	for i := 0; i < subscriberBuffer+10; i++ {
		hub.Publish(topic, "new_message", i)
	}

	received := 0
	for {
		select {
		case <-sub.C():
			received++
		default:
			require.Equal(t, subscriberBuffer, received)
			return
		}
	}
}

func TestSubscribeMultipleTopics(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	a, b := ChatTopic(uuid.New()), UserTopic(uuid.New())
	sub := hub.Subscribe(a, b)

	hub.Publish(a, "new_message", nil)
	hub.Publish(b, "new_notification", nil)

	first := recvTimeout(t, sub)
	second := recvTimeout(t, sub)
	assert.ElementsMatch(t, []string{a, b}, []string{first.Topic, second.Topic})
}

func TestCloseClosesSubscribers(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("chat:x")
	hub.Close()

	_, open := <-sub.C()
	assert.False(t, open)

	// Idempotent and safe after shutdown.
	hub.Close()
	hub.Publish("chat:x", "new_message", nil)
}
