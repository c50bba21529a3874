package services

import (
	"context"
	"log/slog"
	"time"

	"societyhub-be/events"
)

// publishTimeout bounds how long a request waits on the event publisher.
const publishTimeout = 2 * time.Second

// publish emits evt and only logs a failure; events never fail a request.
// The write has already been committed, so the publish outlives a cancelled
// request but never holds the response longer than publishTimeout.
func publish(ctx context.Context, pub EventPublisher, evt events.Event) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	evt.OccurredAt = time.Now().UTC()
	if err := pub.Publish(ctx, evt); err != nil {
		slog.Warn("Failed to publish event", "type", evt.Type, "subject", evt.Subject, "error", err)
	}
}
