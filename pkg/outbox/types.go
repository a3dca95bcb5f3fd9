package outbox

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Message is the unit stored in an outbox table. PartitionKey is carried
// to the transport so per-entity ordering survives redelivery.
type Message struct {
	TenantID     uuid.UUID
	Topic        string
	EventID      uuid.UUID
	PartitionKey string
	Payload      json.RawMessage
}

// Meta is the stable dispatch metadata (idempotency + ops).
type Meta struct {
	Table        pgx.Identifier
	TenantID     uuid.UUID
	Topic        string
	EventID      uuid.UUID
	PartitionKey string
	Sequence     int64
	Attempts     int
}

// DispatchedMessage is the unit delivered by Relay to a Dispatcher.
type DispatchedMessage struct {
	Meta    Meta
	Payload json.RawMessage
}
