package ports

import (
	"context"

	"livetrack/internal/core/domain/model/kernel"
)

// Notification is a user-facing push message.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// PushDispatcher hands notifications to the delivery channel (message broker
// behind an external push service). Send failures are best-effort for
// callers: logged, never propagated to the triggering operation.
type PushDispatcher interface {
	Send(ctx context.Context, userID kernel.UUID, notification Notification) error
}
