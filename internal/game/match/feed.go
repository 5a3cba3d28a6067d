package match

import (
	"fmt"
	"sync"
)

// EventKind classifies a battle-log entry.
type EventKind string

const (
	EventRound   EventKind = "round"
	EventSpawn   EventKind = "spawn"
	EventDefeat  EventKind = "defeat"
	EventUpgrade EventKind = "upgrade"
	EventEnd     EventKind = "end"
)

// Event is one battle-log entry.
type Event struct {
	Kind EventKind
	Text string
}

// Feed routes battle-log entries from a Match to a reader over a buffered channel.
type Feed struct {
	id     string
	events chan Event
	mu     sync.Mutex
	closed bool
}

// NewFeed creates a Feed for the match with the given id.
//
// Postcondition: Returns a Feed with an open channel; bufferSize <= 0 selects 64.
func NewFeed(id string, bufferSize int) *Feed {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Feed{id: id, events: make(chan Event, bufferSize)}
}

// Push enqueues ev without blocking.
//
// Postcondition: Returns an error if the feed is closed or its buffer is full.
func (f *Feed) Push(ev Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return fmt.Errorf("feed %s is closed", f.id)
	}
	select {
	case f.events <- ev:
		return nil
	default:
		return fmt.Errorf("feed %s event buffer full", f.id)
	}
}

// Events returns the read-only event channel.
func (f *Feed) Events() <-chan Event {
	return f.events
}

// Drain returns every event currently buffered without blocking.
func (f *Feed) Drain() []Event {
	var out []Event
	for {
		select {
		case ev, ok := <-f.events:
			if !ok {
				return out
			}
			out = append(out, ev)
		default:
			return out
		}
	}
}

// Close closes the event channel. It is safe to call more than once.
func (f *Feed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.closed {
		f.closed = true
		close(f.events)
	}
	return nil
}

// IsClosed reports whether the feed has been closed.
func (f *Feed) IsClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
