package metrics

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
)

// Remote sync status label values
const (
	SyncStatusSynced   = "synced"
	SyncStatusDeferred = "deferred"
)

// EventMetricsCollector subscribes to profile events and records metrics
type EventMetricsCollector struct {
	subscriptions []string
}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every profile event type
func (e *EventMetricsCollector) Register(bus events.EventBus) {
	for _, eventType := range hero.ProfileEventTypes() {
		e.subscriptions = append(e.subscriptions, bus.SubscribeFunc(eventType, 0, e.HandleEvent))
	}
}

// Unregister removes the subscriptions made by Register
func (e *EventMetricsCollector) Unregister(bus events.EventBus) {
	for _, id := range e.subscriptions {
		_ = bus.Unsubscribe(id)
	}
	e.subscriptions = nil
}

// HandleEvent records one profile event
func (e *EventMetricsCollector) HandleEvent(_ context.Context, evt events.Event) error {
	EventsPublished.WithLabelValues(evt.Type()).Inc()

	switch evt.Type() {
	case hero.EventProfileSynced:
		RemoteSyncTotal.WithLabelValues(SyncStatusSynced).Inc()
	case hero.EventProfileSyncDeferred:
		RemoteSyncTotal.WithLabelValues(SyncStatusDeferred).Inc()
	}
	return nil
}
