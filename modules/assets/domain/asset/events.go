package asset

import (
	"time"

	"github.com/google/uuid"
)

const (
	// TopicAssetPromoted is the outbox topic promotion events are
	// relayed on. Consumers partition by the promoted asset's id.
	TopicAssetPromoted = "asset.events.asset-promoted"

	// EventNameAssetPromoted is the wire-level event name carried in
	// message headers.
	EventNameAssetPromoted = "asset-promoted"
)

// PromotedEvent is raised once for every asset that transitions from
// unpromoted to promoted. Assets that were already promoted when a
// promotion wave passed through them do not raise it again.
type PromotedEvent struct {
	EventID   uuid.UUID
	TenantID  uuid.UUID
	AssetID   uuid.UUID
	ParentID  uuid.UUID
	CreatedAt time.Time
}

func NewPromotedEvent(a Asset) *PromotedEvent {
	return &PromotedEvent{
		EventID:   uuid.New(),
		TenantID:  a.TenantID(),
		AssetID:   a.ID(),
		ParentID:  a.ParentID(),
		CreatedAt: time.Now(),
	}
}

// CreatedEvent is published on the in-process bus after an asset is
// persisted for the first time.
type CreatedEvent struct {
	Result Asset
}

// UpdatedEvent is published on the in-process bus after an asset's
// fields are changed.
type UpdatedEvent struct {
	Result Asset
}

// DeletedEvent is published on the in-process bus after an asset is
// removed and its children spliced to the grandparent.
type DeletedEvent struct {
	Result Asset
}
