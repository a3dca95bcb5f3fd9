package asset

import (
	"context"

	"github.com/google/uuid"
)

// EventEmitter records promotion events for delivery to external
// consumers. Implementations enqueue within the caller's unit of work so
// a failed save discards the events with it.
type EventEmitter interface {
	EmitPromoted(ctx context.Context, tenantID uuid.UUID, event *PromotedEvent) error
}
