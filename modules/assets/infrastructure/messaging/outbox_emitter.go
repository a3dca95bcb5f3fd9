package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/exec-platform/asset-management/modules/assets/domain/asset"
	"github.com/exec-platform/asset-management/pkg/composables"
	"github.com/exec-platform/asset-management/pkg/outbox"
)

// OutboxTable is the outbox table asset events are enqueued into.
var OutboxTable = pgx.Identifier{"asset_outbox"}

// MessageHeaders is the envelope metadata external consumers route on.
type MessageHeaders struct {
	EventName             string    `json:"eventName"`
	EventID               string    `json:"eventId"`
	ApplicationInstanceID string    `json:"applicationInstanceId"`
	TenantID              string    `json:"tenantId"`
	AssetID               string    `json:"assetId"`
	ParentAssetID         string    `json:"parentAssetId,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
	SubjectID             string    `json:"subjectId"`
}

// MessagePayload is the promotion event body.
type MessagePayload struct {
	AssetID  string `json:"assetId"`
	ParentID string `json:"parentId,omitempty"`
	Promoted bool   `json:"promoted"`
}

// Message is the wire shape written to the outbox payload column.
type Message struct {
	Headers MessageHeaders `json:"headers"`
	Payload MessagePayload `json:"payload"`
}

// OutboxEventEmitter persists promotion events into the transactional
// outbox. Messages are partitioned by the promoted asset's id so
// per-asset ordering survives relay and broker delivery.
type OutboxEventEmitter struct {
	publisher             outbox.Publisher
	applicationInstanceID string
	subjectID             string
}

func NewOutboxEventEmitter(publisher outbox.Publisher, applicationInstanceID, subjectID string) *OutboxEventEmitter {
	return &OutboxEventEmitter{
		publisher:             publisher,
		applicationInstanceID: applicationInstanceID,
		subjectID:             subjectID,
	}
}

func (e *OutboxEventEmitter) EmitPromoted(ctx context.Context, tenantID uuid.UUID, event *asset.PromotedEvent) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}

	payload, err := json.Marshal(NewMessage(e.applicationInstanceID, e.subjectID, event))
	if err != nil {
		return errors.Wrap(err, "failed to marshal promotion event")
	}

	_, err = e.publisher.Enqueue(ctx, tx, OutboxTable, outbox.Message{
		TenantID:     tenantID,
		Topic:        asset.TopicAssetPromoted,
		EventID:      event.EventID,
		PartitionKey: event.AssetID.String(),
		Payload:      payload,
	})
	if err != nil {
		return errors.Wrap(err, "failed to enqueue promotion event")
	}
	return nil
}

// NewMessage builds the wire message for a promotion event.
func NewMessage(applicationInstanceID, subjectID string, event *asset.PromotedEvent) Message {
	parentID := ""
	if event.ParentID != uuid.Nil {
		parentID = event.ParentID.String()
	}
	return Message{
		Headers: MessageHeaders{
			EventName:             asset.EventNameAssetPromoted,
			EventID:               event.EventID.String(),
			ApplicationInstanceID: applicationInstanceID,
			TenantID:              event.TenantID.String(),
			AssetID:               event.AssetID.String(),
			ParentAssetID:         parentID,
			CreatedAt:             event.CreatedAt,
			SubjectID:             subjectID,
		},
		Payload: MessagePayload{
			AssetID:  event.AssetID.String(),
			ParentID: parentID,
			Promoted: true,
		},
	}
}
