package dashboard

import (
	"sync"

	"meetbook/utils"

	"go.uber.org/zap"
)

// ScopeGlobal is the admin-wide channel; every other scope is a host id.
const ScopeGlobal = "global"

// Event is one fan-out notification. Payload is already shaped for the
// client; the bus never inspects it.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const subscriberBuffer = 16

// EventBus fans events out to currently-subscribed dashboard sessions.
// There is no persistence or replay: a session not connected at publish time
// misses the event, and dashboards re-fetch full state on (re)connect. A
// slow subscriber drops events rather than blocking publishers.
type EventBus struct {
	mu   sync.RWMutex
	subs map[string]map[string]chan Event // scope -> sessionID -> outbound
}

func NewEventBus() *EventBus {
	return &EventBus{
		subs: make(map[string]map[string]chan Event),
	}
}

// Subscribe registers a session under a scope and returns its event channel.
// The channel is closed by Unsubscribe.
func (b *EventBus) Subscribe(scope, sessionID string) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[scope] == nil {
		b.subs[scope] = make(map[string]chan Event)
	}
	ch := make(chan Event, subscriberBuffer)
	b.subs[scope][sessionID] = ch
	return ch
}

// Unsubscribe removes a session from a scope and closes its channel.
// Safe to call for sessions that were never subscribed.
func (b *EventBus) Unsubscribe(scope, sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	scoped, ok := b.subs[scope]
	if !ok {
		return
	}
	ch, ok := scoped[sessionID]
	if !ok {
		return
	}
	delete(scoped, sessionID)
	if len(scoped) == 0 {
		delete(b.subs, scope)
	}
	close(ch)
}

// Publish delivers the event to every session subscribed under the scope.
// Delivery is best-effort: a full subscriber buffer drops the event for that
// subscriber only.
func (b *EventBus) Publish(scope string, ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sessionID, ch := range b.subs[scope] {
		select {
		case ch <- ev:
		default:
			utils.GetLogger().Warn("dashboard event dropped for slow subscriber",
				zap.String("scope", scope), zap.String("sessionID", sessionID))
		}
	}
}

// SubscriberCount reports how many sessions are subscribed under a scope.
func (b *EventBus) SubscriberCount(scope string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[scope])
}
