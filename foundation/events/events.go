// Package events allows for the registering and receiving of ledger events.
package events

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// messageBuffer is how many events a subscriber can fall behind before
// events are dropped for it. A websocket write can take a while.
const messageBuffer = 100

// Events maintains a mapping of subscriber ids and channels so goroutines
// can register and receive events.
type Events struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]chan string
}

// New constructs an events value for registering and receiving events.
func New() *Events {
	return &Events{
		subs: make(map[uuid.UUID]chan string),
	}
}

// Acquire registers a new subscriber and returns its id with the channel
// the events will be delivered on.
func (evt *Events) Acquire() (uuid.UUID, <-chan string) {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	id := uuid.New()
	ch := make(chan string, messageBuffer)
	evt.subs[id] = ch

	return id, ch
}

// Release closes and removes the channel for the specified subscriber.
func (evt *Events) Release(id uuid.UUID) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.subs[id]
	if !exists {
		return fmt.Errorf("subscriber %q does not exist", id)
	}

	delete(evt.subs, id)
	close(ch)

	return nil
}

// Count returns the number of active subscribers.
func (evt *Events) Count() int {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	return len(evt.subs)
}

// Send signals a message to every subscriber. Send will not block waiting
// for a receiver on any given channel.
func (evt *Events) Send(s string) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.subs {
		select {
		case ch <- s:
		default:
		}
	}
}

// Shutdown closes and removes every subscriber channel.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.subs {
		delete(evt.subs, id)
		close(ch)
	}
}
