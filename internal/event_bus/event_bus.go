package event_bus

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type EventType string

// Event carries the publisher's context so subscribers see the same user and deadline.
type Event struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      any
}

func NewEvent(ctx context.Context, eventType EventType, data any) Event {
	return Event{
		ctx:       ctx,
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func (e Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// EventT is the typed view of an Event handed to handlers registered with SubscribeTyped.
type EventT[T any] struct {
	Event
	Data T
}

type subscription struct {
	id uint64
	fn func(Event) error
}

// EventBus dispatches events synchronously, in subscription order, on the publisher's goroutine.
type EventBus struct {
	mu     sync.RWMutex
	subs   map[EventType]map[uint64]func(Event) error
	nextID uint64
}

func NewEventBus() *EventBus {
	return &EventBus{
		subs: make(map[EventType]map[uint64]func(Event) error),
	}
}

// Subscribe registers fn for eventType and returns a function removing it again.
func (eb *EventBus) Subscribe(eventType EventType, fn func(Event) error) (unsubscribe func()) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	id := eb.nextID
	if eb.subs[eventType] == nil {
		eb.subs[eventType] = make(map[uint64]func(Event) error)
	}
	eb.subs[eventType][id] = fn

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()
		delete(eb.subs[eventType], id)
		if len(eb.subs[eventType]) == 0 {
			delete(eb.subs, eventType)
		}
	}
}

// SubscribeTyped registers a handler for payloads of type T. Events of the same type carrying
// a different payload are skipped.
func SubscribeTyped[T any](eb *EventBus, eventType EventType, fn func(EventT[T]) error) (unsubscribe func()) {
	return eb.Subscribe(eventType, func(e Event) error {
		payload, ok := e.Data.(T)
		if !ok {
			log.Debugf("event bus: skipping %s, expected %T payload, got %T", eventType, *new(T), e.Data)
			return nil
		}
		return fn(EventT[T]{Event: e, Data: payload})
	})
}

// Publish runs every handler subscribed to e.Type. A failing or panicking handler does not stop
// the others; all failures are joined into the returned error. A cancelled context stops dispatch.
func (eb *EventBus) Publish(e Event) error {
	if err := e.Context().Err(); err != nil {
		return fmt.Errorf("event %s: context cancelled before publish: %w", e.Type, err)
	}

	eb.mu.RLock()
	subs := make([]subscription, 0, len(eb.subs[e.Type]))
	for id, fn := range eb.subs[e.Type] {
		subs = append(subs, subscription{id: id, fn: fn})
	}
	eb.mu.RUnlock()
	sort.Slice(subs, func(i, j int) bool { return subs[i].id < subs[j].id })

	var errs []error
	for _, sub := range subs {
		if err := e.Context().Err(); err != nil {
			errs = append(errs, fmt.Errorf("context cancelled during dispatch: %w", err))
			break
		}
		if err := dispatch(sub, e); err != nil {
			log.Errorf("event bus: handler %d failed for %s: %v", sub.id, e.Type, err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("event %s: %d handler(s) failed: %w", e.Type, len(errs), errors.Join(errs...))
	}
	return nil
}

func dispatch(sub subscription, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler %d panicked on %s: %v", sub.id, e.Type, r)
		}
	}()
	return sub.fn(e)
}
