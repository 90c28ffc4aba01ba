// Package events implements single-pass dispatch of turn events to
// subscribers. Handlers observe; they cannot change the game.
package events

import (
	"sync"

	"github.com/nathoo/manorhunt/types"
)

// Event types emitted by the engine.
const (
	PlayerAdded   = "player_added"
	PlayerMoved   = "player_moved"
	PetMoved      = "pet_moved"
	LookedAround  = "looked_around"
	ItemPicked    = "item_picked"
	AttackFailed  = "attack_failed"
	TargetHit     = "target_hit"
	TargetKilled  = "target_killed"
	TargetMoved   = "target_moved"
	TargetEscaped = "target_escaped"
)

// New builds an event from alternating key/value pairs.
func New(eventType string, kv ...any) types.Event {
	data := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			data[k] = kv[i+1]
		}
	}
	return types.Event{Type: eventType, Data: data}
}

// Handler receives one event.
type Handler func(types.Event)

// Bus fans events out to subscribers in subscription order. It is safe for
// concurrent use; handlers run without the bus lock held, so a handler may
// subscribe further handlers, which see only later dispatches.
type Bus struct {
	mu     sync.RWMutex
	byType map[string][]Handler
	all    []Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{byType: map[string][]Handler{}}
}

// On subscribes to one event type.
func (b *Bus) On(eventType string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.byType[eventType] = append(b.byType[eventType], h)
}

// OnAny subscribes to every event.
func (b *Bus) OnAny(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
}

// Dispatch delivers events in order. Single pass: handlers cannot emit.
func (b *Bus) Dispatch(evts []types.Event) {
	for _, e := range evts {
		typed, all := b.handlers(e.Type)
		for _, h := range typed {
			h(e)
		}
		for _, h := range all {
			h(e)
		}
	}
}

// handlers returns the current subscribers for eventType. The slices are
// capped so a concurrent append never writes into what the caller reads.
func (b *Bus) handlers(eventType string) (typed, all []Handler) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	t := b.byType[eventType]
	return t[:len(t):len(t)], b.all[:len(b.all):len(b.all)]
}
