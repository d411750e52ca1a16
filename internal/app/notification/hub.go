// Package notification fans sequencer events out to subscribers.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/showreel/internal/app/sequencer"
)

// DefaultSendTimeout bounds a single subscriber send during Broadcast.
const DefaultSendTimeout = 500 * time.Millisecond

// Notification is an event stamped with its broadcast order.
type Notification struct {
	SequenceNo uint64
	At         time.Time
	Event      sequencer.Event
}

// Subscriber receives notifications.
type Subscriber interface {
	Send(n Notification) error
}

// SubscriberFunc adapts a function to a Subscriber.
type SubscriberFunc func(n Notification) error

// Send calls f(n).
func (f SubscriberFunc) Send(n Notification) error {
	return f(n)
}

// subscription represents a subscriber's subscription.
type subscription struct {
	id         string
	subscriber Subscriber
}

// Hub manages subscriptions and broadcasting.
type Hub struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription
	sequenceNo    uint64
	sequenceNoMu  sync.Mutex
	sendTimeout   time.Duration
	now           func() time.Time
}

// NewHub creates a new hub.
func NewHub() *Hub {
	return &Hub{
		subscriptions: make(map[string]*subscription),
		sendTimeout:   DefaultSendTimeout,
		now:           time.Now,
	}
}

// Subscribe adds a new subscription and returns the subscription ID.
func (h *Hub) Subscribe(s Subscriber) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New().String()
	h.subscriptions[id] = &subscription{
		id:         id,
		subscriber: s,
	}
	return id
}

// Unsubscribe removes a subscription.
func (h *Hub) Unsubscribe(subscriptionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscriptions, subscriptionID)
}

// Broadcast sends an event to all subscribers and returns the sequence number it
// was stamped with. Each send runs in its own goroutine with a timeout so a slow
// subscriber cannot hold up the others.
func (h *Hub) Broadcast(ev sequencer.Event) uint64 {
	h.sequenceNoMu.Lock()
	h.sequenceNo++
	n := Notification{SequenceNo: h.sequenceNo, At: h.now(), Event: ev}
	h.sequenceNoMu.Unlock()

	h.mu.RLock()
	subs := make([]*subscription, 0, len(h.subscriptions))
	for _, sub := range h.subscriptions {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	var wg sync.WaitGroup
	for _, sub := range subs {
		wg.Add(1)
		go func(s *subscription) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), h.sendTimeout)
			defer cancel()

			done := make(chan error, 1)
			go func() {
				done <- s.subscriber.Send(n)
			}()

			select {
			case err := <-done:
				if err != nil {
					zlog.Debug().Msgf("notification: send failed: subscription=%s error=%v", s.id, err)
				}
			case <-ctx.Done():
				zlog.Debug().Msgf("notification: send timed out: subscription=%s seq=%d", s.id, n.SequenceNo)
			}
		}(sub)
	}

	wg.Wait()
	return n.SequenceNo
}

// Pump broadcasts every event from events until the channel closes or ctx is done.
func (h *Hub) Pump(ctx context.Context, events <-chan sequencer.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			h.Broadcast(ev)
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscriptions)
}

// Close removes all subscriptions.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscriptions = make(map[string]*subscription)
}
