// pkg/event/event.go
package event

import (
	"sync"

	"github.com/JTStephens18/galaxyGPU/pkg/physics"
)

// Type represents the type of event
type Type string

// Common event types
const (
	SceneStarted    Type = "scene_started"
	SceneEnded      Type = "scene_ended"
	CombatHit       Type = "combat_hit"
	TargetDestroyed Type = "target_destroyed"
	DispatchDropped Type = "dispatch_dropped"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler so it can be removed later.
type Subscription uint64

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type]map[Subscription]Handler
	nextID   Subscription
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type]map[Subscription]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[Subscription]Handler)
	}
	b.handlers[eventType][id] = handler
	return id
}

// Unsubscribe removes a previously registered handler
func (b *Bus) Unsubscribe(eventType Type, id Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if handlers, ok := b.handlers[eventType]; ok {
		delete(handlers, id)
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[event.GetType()]))
	for _, h := range b.handlers[event.GetType()] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// HitEvent reports the anchor striking a target.
type HitEvent struct {
	BaseEvent
	TargetID uint64
	Position physics.Vector3
	Speed    float64
}

// NewHitEvent creates a combat-hit event
func NewHitEvent(source interface{}, targetID uint64, position physics.Vector3, speed float64) *HitEvent {
	return &HitEvent{
		BaseEvent: BaseEvent{
			EventType: CombatHit,
			Source:    source,
		},
		TargetID: targetID,
		Position: position,
		Speed:    speed,
	}
}

// DestroyedEvent reports a target leaving the scene.
type DestroyedEvent struct {
	BaseEvent
	TargetID uint64
	Position physics.Vector3
}

// NewDestroyedEvent creates a target-destroyed event
func NewDestroyedEvent(source interface{}, targetID uint64, position physics.Vector3) *DestroyedEvent {
	return &DestroyedEvent{
		BaseEvent: BaseEvent{
			EventType: TargetDestroyed,
			Source:    source,
		},
		TargetID: targetID,
		Position: position,
	}
}
