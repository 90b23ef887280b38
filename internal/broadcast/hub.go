// Package broadcast implements the in-process fan-out of live telemetry to
// stream subscribers. The registry is process-local and rebuilt empty on
// restart; durable history lives in the GPS record log.
package broadcast

import (
	"sync"

	"github.com/radyab-gps/tracking-service/internal/domain"
)

// subscriberBuffer bounds how many undelivered events a slow subscriber may
// hold before publishes to it are dropped.
const subscriberBuffer = 16

type Subscriber struct {
	deviceID string
	events   chan domain.StreamEvent
}

// Events is the subscriber's receive channel. It is closed on Unsubscribe
// and on hub shutdown.
func (s *Subscriber) Events() <-chan domain.StreamEvent {
	return s.events
}

func (s *Subscriber) DeviceID() string {
	return s.deviceID
}

// Hub is the lifecycle-scoped subscriber registry: one per process, created
// at startup and closed at shutdown.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Subscriber]struct{}
	closed      bool
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[*Subscriber]struct{}),
	}
}

// Subscribe registers a new handle for the device. Authorization is the
// caller's responsibility and is checked once, at subscribe time.
func (h *Hub) Subscribe(deviceID string) *Subscriber {
	sub := &Subscriber{
		deviceID: deviceID,
		events:   make(chan domain.StreamEvent, subscriberBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.events)
		return sub
	}
	set, ok := h.subscribers[deviceID]
	if !ok {
		set = make(map[*Subscriber]struct{})
		h.subscribers[deviceID] = set
	}
	set[sub] = struct{}{}
	return sub
}

// Unsubscribe removes the handle and drops the device's registry entry when
// its subscriber set becomes empty, so entries never linger for unwatched
// devices.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subscribers[sub.deviceID]
	if !ok {
		return
	}
	if _, registered := set[sub]; !registered {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subscribers, sub.deviceID)
	}
	close(sub.events)
}

// Publish delivers the event to every registered handle for the device.
// Sends are non-blocking: a subscriber whose buffer is full misses the event
// instead of stalling delivery to the others. Returns delivered and dropped
// counts.
func (h *Hub) Publish(deviceID string, event domain.StreamEvent) (delivered, dropped int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers[deviceID] {
		select {
		case sub.events <- event:
			delivered++
		default:
			dropped++
		}
	}
	return delivered, dropped
}

// SubscriberCount reports how many handles are registered for the device.
func (h *Hub) SubscriberCount(deviceID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[deviceID])
}

// Close tears the registry down and closes every subscriber channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for deviceID, set := range h.subscribers {
		for sub := range set {
			close(sub.events)
		}
		delete(h.subscribers, deviceID)
	}
}
