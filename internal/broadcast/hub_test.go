package broadcast

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radyab-gps/tracking-service/internal/domain"
)

func makeEvent(deviceID string, id int64) domain.StreamEvent {
	return domain.StreamEvent{
		DeviceID:  deviceID,
		DevName:   "truck-12",
		Status:    "active",
		Connected: true,
		GpsRecord: domain.StreamRecord{ID: id, DeviceID: deviceID},
	}
}

func TestPublishDeliversInOrder(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe("dev-1")

	for i := int64(1); i <= 3; i++ {
		delivered, dropped := hub.Publish("dev-1", makeEvent("dev-1", i))
		assert.Equal(t, 1, delivered)
		assert.Equal(t, 0, dropped)
	}

	for i := int64(1); i <= 3; i++ {
		event := <-sub.Events()
		assert.Equal(t, i, event.GpsRecord.ID)
	}
}

func TestPublishToUnwatchedDeviceIsNoop(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	delivered, dropped := hub.Publish("dev-unknown", makeEvent("dev-unknown", 1))
	assert.Equal(t, 0, delivered)
	assert.Equal(t, 0, dropped)
}

func TestPublishReachesOnlyTheDevice(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	watching := hub.Subscribe("dev-1")
	other := hub.Subscribe("dev-2")

	delivered, _ := hub.Publish("dev-1", makeEvent("dev-1", 1))
	assert.Equal(t, 1, delivered)

	event := <-watching.Events()
	assert.Equal(t, "dev-1", event.DeviceID)
	assert.Empty(t, other.Events())
}

func TestSlowSubscriberDoesNotBlockOthers(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	slow := hub.Subscribe("dev-1")
	fast := hub.Subscribe("dev-1")

	// Fill the slow subscriber's buffer, draining the fast one as we go.
	for i := 0; i < subscriberBuffer; i++ {
		delivered, dropped := hub.Publish("dev-1", makeEvent("dev-1", int64(i)))
		assert.Equal(t, 2, delivered)
		assert.Equal(t, 0, dropped)
		<-fast.Events()
	}

	// The next publish drops for the slow subscriber but still reaches the
	// fast one.
	delivered, dropped := hub.Publish("dev-1", makeEvent("dev-1", 99))
	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, dropped)

	event := <-fast.Events()
	assert.Equal(t, int64(99), event.GpsRecord.ID)
	assert.Len(t, slow.Events(), subscriberBuffer)
}

func TestUnsubscribePrunesEmptyEntries(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	first := hub.Subscribe("dev-1")
	second := hub.Subscribe("dev-1")
	require.Equal(t, 2, hub.SubscriberCount("dev-1"))

	hub.Unsubscribe(first)
	assert.Equal(t, 1, hub.SubscriberCount("dev-1"))

	hub.Unsubscribe(second)
	assert.Equal(t, 0, hub.SubscriberCount("dev-1"))

	hub.mu.RLock()
	_, exists := hub.subscribers["dev-1"]
	hub.mu.RUnlock()
	assert.False(t, exists)

	// Channel is closed so a ranging reader terminates.
	_, open := <-second.Events()
	assert.False(t, open)
}

func TestUnsubscribeTwiceIsSafe(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe("dev-1")
	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub)

	assert.Equal(t, 0, hub.SubscriberCount("dev-1"))
}

func TestCloseReleasesAllSubscribers(t *testing.T) {
	hub := NewHub()

	subs := make([]*Subscriber, 0, 4)
	for i := 0; i < 4; i++ {
		subs = append(subs, hub.Subscribe(fmt.Sprintf("dev-%d", i%2)))
	}

	hub.Close()

	for _, sub := range subs {
		_, open := <-sub.Events()
		assert.False(t, open)
	}

	// Subscribing after close hands back an already-closed channel.
	late := hub.Subscribe("dev-1")
	_, open := <-late.Events()
	assert.False(t, open)
	assert.Equal(t, 0, hub.SubscriberCount("dev-1"))
}
