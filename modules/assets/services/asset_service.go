package services

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/exec-platform/asset-management/modules/assets/domain/asset"
	"github.com/exec-platform/asset-management/pkg/composables"
	"github.com/exec-platform/asset-management/pkg/eventbus"
)

type CreateAssetInput struct {
	ParentID uuid.UUID
	Promoted bool
}

// UpdateAssetInput carries the mutable fields of an asset. BodyID is
// uuid.Nil when the request body omitted the id.
type UpdateAssetInput struct {
	BodyID   uuid.UUID
	ParentID uuid.UUID
	Promoted bool
}

type AssetService struct {
	repo       asset.Repository
	propagator *PromotionPropagator
	emitter    asset.EventEmitter
	publisher  eventbus.EventBus
}

func NewAssetService(
	repo asset.Repository,
	propagator *PromotionPropagator,
	emitter asset.EventEmitter,
	publisher eventbus.EventBus,
) *AssetService {
	return &AssetService{
		repo:       repo,
		propagator: propagator,
		emitter:    emitter,
		publisher:  publisher,
	}
}

func (s *AssetService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *AssetService) GetByID(ctx context.Context, id uuid.UUID) (asset.Asset, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AssetService) GetPaginated(ctx context.Context, params *asset.FindParams) ([]asset.Asset, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *AssetService) GetPaginatedWithTotal(ctx context.Context, params *asset.FindParams) ([]asset.Asset, int64, error) {
	assets, err := s.repo.GetPaginated(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}

// Create persists a new asset after validating its parent. Creation
// never cascades promotion: a node created with promoted=true raises no
// events and does not touch other nodes.
func (s *AssetService) Create(ctx context.Context, input CreateAssetInput) (asset.Asset, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	var created asset.Asset
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.validateParent(txCtx, input.ParentID); err != nil {
			return err
		}
		entity := asset.New(
			asset.WithTenantID(tenantID),
			asset.WithParentID(input.ParentID),
			asset.WithPromoted(input.Promoted),
		)
		saved, err := s.repo.Save(txCtx, entity)
		if err != nil {
			return err
		}
		created = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(&asset.CreatedEvent{Result: created})
	return created, nil
}

// Update applies new parent and promoted values to an existing asset.
// A request without a parent id keeps the stored parent; there is no
// clear-parent path. When the stored asset is unpromoted and the request
// promotes it, the promotion wave runs over the stored subtree before
// the field changes are applied, emitting one event per node that
// transitions.
func (s *AssetService) Update(ctx context.Context, id uuid.UUID, input UpdateAssetInput) (asset.Asset, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	if input.BodyID != uuid.Nil && input.BodyID != id {
		return nil, fmt.Errorf("body id: %s, path id: %s: %w", input.BodyID, id, ErrMismatchedIDs)
	}

	var (
		updated asset.Asset
		events  []*asset.PromotedEvent
	)
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		stored, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.validateParent(txCtx, input.ParentID); err != nil {
			return err
		}

		if !stored.Promoted() && input.Promoted {
			promoted, promotedEvents, err := s.propagator.PromoteSubtree(txCtx, stored)
			if err != nil {
				return err
			}
			if _, err := s.repo.SaveAll(txCtx, promoted); err != nil {
				return errors.Wrap(err, "failed to save promoted subtree")
			}
			for _, e := range promotedEvents {
				if err := s.emitter.EmitPromoted(txCtx, tenantID, e); err != nil {
					return err
				}
			}
			events = promotedEvents
		}

		next := stored.WithPromoted(input.Promoted)
		if input.ParentID != uuid.Nil {
			next = next.WithParent(input.ParentID)
		}
		saved, err := s.repo.Save(txCtx, next)
		if err != nil {
			return err
		}
		updated = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, e := range events {
		s.publisher.Publish(e)
	}
	s.publisher.Publish(&asset.UpdatedEvent{Result: updated})
	return updated, nil
}

// Delete removes an asset and splices its children onto the deleted
// node's own parent, so grandchildren become children of the
// grandparent. Deleting a root leaves its children as new roots.
func (s *AssetService) Delete(ctx context.Context, id uuid.UUID) (asset.Asset, error) {
	var deleted asset.Asset
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		stored, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.repo.ReassignParent(txCtx, id, stored.ParentID()); err != nil {
			return err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return err
		}
		deleted = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(&asset.DeletedEvent{Result: deleted})
	return deleted, nil
}

func (s *AssetService) validateParent(ctx context.Context, parentID uuid.UUID) error {
	if parentID == uuid.Nil {
		return nil
	}
	exists, err := s.repo.Exists(ctx, parentID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("parent id: %s: %w", parentID, asset.ErrParentNotFound)
	}
	return nil
}
