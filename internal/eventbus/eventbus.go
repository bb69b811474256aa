// Package eventbus fans roster events out to in-process subscribers.
package eventbus

import (
	"sync"
	"sync/atomic"
)

// Event represents an arbitrary event passed on the bus.
type Event interface{}

// DefaultBuffer is the per-subscriber channel depth when none is given.
const DefaultBuffer = 8

// EventBus implements a simple publish/subscribe event bus.
type EventBus interface {
	Publish(Event)
	Subscribe() <-chan Event
	Unsubscribe(<-chan Event)
	Dropped() uint64
	Close()
}

// Bus is the default EventBus implementation using fan-out channels.
// Delivery is best-effort: a subscriber that falls behind loses events
// instead of stalling a roster mutation.
type Bus struct {
	mu      sync.RWMutex
	subs    []chan Event
	buffer  int
	dropped atomic.Uint64
	closed  bool
}

// New creates a Bus with the default subscriber buffer.
func New() *Bus { return NewBuffered(DefaultBuffer) }

// NewBuffered creates a Bus whose subscriber channels hold up to n
// undelivered events.
func NewBuffered(n int) *Bus {
	if n < 1 {
		n = 1
	}
	return &Bus{buffer: n}
}

// Publish sends the event to all subscribers, counting any drops.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
			b.dropped.Add(1)
		}
	}
}

// Subscribe registers a new subscriber and returns its channel.
func (b *Bus) Subscribe() <-chan Event {
	ch := make(chan Event, b.buffer)
	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subs = append(b.subs, ch)
	}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus) Unsubscribe(sub <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			if !b.closed {
				close(ch)
			}
			return
		}
	}
}

// Dropped reports how many events were lost to slow subscribers since
// the bus was created.
func (b *Bus) Dropped() uint64 { return b.dropped.Load() }

// Close closes all subscriber channels and clears the list.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
	b.mu.Unlock()
}
