// filepath: internal/audio/events.go
package audio

import (
	"sync"
	"time"
)

// EventKind names a lifecycle event.
type EventKind string

const (
	EventRecordingStarted EventKind = "recording.started"
	EventRecordingStopped EventKind = "recording.stopped"
	EventRecordingFailed  EventKind = "recording.failed"
	EventPlaybackStarted  EventKind = "playback.started"
	EventPlaybackPaused   EventKind = "playback.paused"
	EventPlaybackResumed  EventKind = "playback.resumed"
	EventPlaybackStopped  EventKind = "playback.stopped"
	EventPlaybackFinished EventKind = "playback.finished"
	EventPlaybackFailed   EventKind = "playback.failed"
)

// Event is delivered to subscribers.
type Event struct {
	Kind        EventKind
	Path        string
	DurationSec float64
	Err         error
	At          time.Time
}

const subscriptionBuffer = 16

// Subscription receives controller events until Close is called.
// Events are dropped for a subscriber whose buffer is full.
type Subscription struct {
	ch     chan Event
	once   sync.Once
	cancel func()
}

// Events returns the receive side. It is closed after Close.
func (s *Subscription) Events() <-chan Event { return s.ch }

// Close unregisters the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(s.cancel)
}

type broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*Subscription
}

func (b *broker) subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]*Subscription)
	}
	id := b.nextID
	b.nextID++

	sub := &Subscription{ch: make(chan Event, subscriptionBuffer)}
	sub.cancel = func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
		close(sub.ch)
	}
	b.subs[id] = sub
	return sub
}

func (b *broker) publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		select {
		case sub.ch <- e:
		default:
		}
	}
}

func (b *broker) closeAll() {
	b.mu.Lock()
	subs := make([]*Subscription, 0, len(b.subs))
	for _, s := range b.subs {
		subs = append(subs, s)
	}
	b.mu.Unlock()
	for _, s := range subs {
		s.Close()
	}
}
