package auth

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/enterprise-access/internal/core/events"
)

// EventHandler writes the audit trail for authentication lifecycle events.
type EventHandler struct {
	logger *slog.Logger
}

func NewEventHandler(logger *slog.Logger) *EventHandler {
	return &EventHandler{logger: logger}
}

func (h *EventHandler) HandleAuthEvent(ctx context.Context, event events.Event) error {
	h.logger.InfoContext(ctx, "audit",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"occurred_at", event.OccurredAt(),
		"payload", event.Payload())
	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	types := []string{
		events.EventTypeUserLoggedIn,
		events.EventTypeSessionRefreshed,
		events.EventTypeUserLoggedOut,
		events.EventTypeUserBlocked,
	}
	for _, t := range types {
		eventBus.Subscribe(t, h.HandleAuthEvent)
	}

	h.logger.Info("auth event handlers registered", "handlers", types)
}
