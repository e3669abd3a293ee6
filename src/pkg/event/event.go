// Package event handles triggering of operations without direct dependency
package event

import (
	"context"
	"sync"

	"treescape/local-app/src/pkg/log"
)

// EventType represents the type of event
type EventType int

const (
	NodeAdded EventType = iota
	NodeDeleted
	NodeChanged
	ActiveChanged
	TreeReset
	TreeLoaded
)

// Event represents an event with its type and associated data
type Event struct {
	Type EventType
	Data interface{}
}

// EventHandler is a function type for event handlers
type EventHandler func(Event)

// subscription pairs a handler with the token returned by Subscribe
type subscription struct {
	id      int
	handler EventHandler
}

// EventManager manages event subscriptions and publications. Handlers run
// synchronously in subscription order, after the publishing mutation has
// fully completed its own state update.
type EventManager struct {
	subscribers map[EventType][]subscription
	nextID      int
	mu          sync.RWMutex
	logger      *log.Logger
}

// NewEventManager creates a new EventManager instance
func NewEventManager(logger *log.Logger) *EventManager {
	return &EventManager{
		subscribers: make(map[EventType][]subscription),
		nextID:      1,
		logger:      logger,
	}
}

// Subscribe adds a new event handler for a specific event type and returns a
// token that can be passed to Unsubscribe
func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) int {
	em.mu.Lock()
	defer em.mu.Unlock()
	id := em.nextID
	em.nextID++
	em.subscribers[eventType] = append(em.subscribers[eventType], subscription{id: id, handler: handler})
	return id
}

// Unsubscribe removes a previously registered handler. Unknown tokens are
// ignored.
func (em *EventManager) Unsubscribe(eventType EventType, id int) {
	em.mu.Lock()
	defer em.mu.Unlock()
	subs := em.subscribers[eventType]
	for i, sub := range subs {
		if sub.id == id {
			em.subscribers[eventType] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (em *EventManager) Publish(event Event) {
	em.mu.RLock()
	subs := make([]subscription, len(em.subscribers[event.Type]))
	copy(subs, em.subscribers[event.Type])
	em.mu.RUnlock()

	for _, sub := range subs {
		em.deliver(sub, event)
	}
}

// deliver invokes a single handler, recovering from panics so one broken
// observer cannot take the publisher down
func (em *EventManager) deliver(sub subscription, event Event) {
	defer func() {
		if r := recover(); r != nil && em.logger != nil {
			em.logger.Error(context.Background(), "Panic in event handler", log.Fields{
				"event": event,
				"panic": r,
			})
		}
	}()
	sub.handler(event)
}
