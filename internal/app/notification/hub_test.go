package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/showreel/internal/app/sequencer"
)

type recorder struct {
	mu  sync.Mutex
	got []Notification
}

func (r *recorder) Send(n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
	return nil
}

func (r *recorder) received() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.got))
	copy(out, r.got)
	return out
}

func TestHub_BroadcastStampsSequence(t *testing.T) {
	h := NewHub()
	a, b := &recorder{}, &recorder{}
	idA := h.Subscribe(a)
	h.Subscribe(b)
	assert.Equal(t, 2, h.SubscriberCount())

	seq := h.Broadcast(sequencer.Event{Type: sequencer.EventStateChanged, State: sequencer.StateIntro})
	assert.Equal(t, uint64(1), seq)
	seq = h.Broadcast(sequencer.Event{Type: sequencer.EventStateChanged, State: sequencer.StatePhotoSlideshow})
	assert.Equal(t, uint64(2), seq)

	gotA := a.received()
	require.Len(t, gotA, 2)
	assert.Equal(t, uint64(1), gotA[0].SequenceNo)
	assert.Equal(t, sequencer.StatePhotoSlideshow, gotA[1].Event.State)
	assert.Len(t, b.received(), 2)

	h.Unsubscribe(idA)
	h.Broadcast(sequencer.Event{Type: sequencer.EventReset})
	assert.Len(t, a.received(), 2)
	assert.Len(t, b.received(), 3)
}

func TestHub_SlowAndFailingSubscribers(t *testing.T) {
	h := NewHub()
	h.sendTimeout = 20 * time.Millisecond

	block := make(chan struct{})
	defer close(block)
	h.Subscribe(SubscriberFunc(func(Notification) error {
		<-block
		return nil
	}))
	h.Subscribe(SubscriberFunc(func(Notification) error {
		return errors.New("gone")
	}))
	ok := &recorder{}
	h.Subscribe(ok)

	start := time.Now()
	h.Broadcast(sequencer.Event{Type: sequencer.EventPhotoShown})
	assert.Less(t, time.Since(start), time.Second)
	assert.Len(t, ok.received(), 1)
}

func TestHub_Pump(t *testing.T) {
	h := NewHub()
	r := &recorder{}
	h.Subscribe(r)

	events := make(chan sequencer.Event, 3)
	events <- sequencer.Event{Type: sequencer.EventStateChanged}
	events <- sequencer.Event{Type: sequencer.EventIntensityChanged, Intensity: 3}
	close(events)

	h.Pump(context.Background(), events)
	got := r.received()
	require.Len(t, got, 2)
	assert.Equal(t, 3.0, got[1].Event.Intensity)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h.Pump(ctx, make(chan sequencer.Event))
}

func TestHub_Close(t *testing.T) {
	h := NewHub()
	h.Subscribe(&recorder{})
	h.Close()
	assert.Equal(t, 0, h.SubscriberCount())
}
