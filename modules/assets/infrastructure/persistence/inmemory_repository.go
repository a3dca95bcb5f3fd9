package persistence

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/exec-platform/asset-management/modules/assets/domain/asset"
	"github.com/exec-platform/asset-management/pkg/composables"
)

// InMemoryAssetRepository is a tenant-scoped map-backed implementation of
// asset.Repository, used in tests and local development. It honors the
// same context contract as the Postgres repository: a tenant id must be
// present in the context.
type InMemoryAssetRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]asset.Asset
	insSeq map[uuid.UUID]int
	seq    int
}

func NewInMemoryAssetRepository() *InMemoryAssetRepository {
	return &InMemoryAssetRepository{
		byID:   make(map[uuid.UUID]asset.Asset),
		insSeq: make(map[uuid.UUID]int),
	}
}

func (r *InMemoryAssetRepository) Count(ctx context.Context) (int64, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get tenant from context")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, a := range r.byID {
		if a.TenantID() == tenantID {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryAssetRepository) GetPaginated(ctx context.Context, params *asset.FindParams) ([]asset.Asset, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.tenantAssets(tenantID)
	if params.ParentID != uuid.Nil {
		filtered := matched[:0]
		for _, a := range matched {
			if a.ParentID() == params.ParentID {
				filtered = append(filtered, a)
			}
		}
		matched = filtered
	}

	if params.Offset >= len(matched) {
		return []asset.Asset{}, nil
	}
	matched = matched[params.Offset:]
	if params.Limit > 0 && params.Limit < len(matched) {
		matched = matched[:params.Limit]
	}
	return matched, nil
}

func (r *InMemoryAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (asset.Asset, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok || a.TenantID() != tenantID {
		return nil, fmt.Errorf("id: %s: %w", id, asset.ErrNotFound)
	}
	return a, nil
}

func (r *InMemoryAssetRepository) GetByParentID(ctx context.Context, parentID uuid.UUID) ([]asset.Asset, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	children := make([]asset.Asset, 0)
	for _, a := range r.tenantAssets(tenantID) {
		if a.ParentID() == parentID {
			children = append(children, a)
		}
	}
	return children, nil
}

func (r *InMemoryAssetRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := r.GetByID(ctx, id)
	if errors.Is(err, asset.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *InMemoryAssetRepository) Save(ctx context.Context, a asset.Asset) (asset.Asset, error) {
	if _, err := composables.UseTenantID(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store(a)
	return a, nil
}

func (r *InMemoryAssetRepository) SaveAll(ctx context.Context, assets []asset.Asset) ([]asset.Asset, error) {
	if _, err := composables.UseTenantID(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range assets {
		r.store(a)
	}
	return assets, nil
}

func (r *InMemoryAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get tenant from context")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok || a.TenantID() != tenantID {
		return fmt.Errorf("id: %s: %w", id, asset.ErrNotFound)
	}
	delete(r.byID, id)
	delete(r.insSeq, id)
	return nil
}

func (r *InMemoryAssetRepository) ReassignParent(ctx context.Context, fromParentID, toParentID uuid.UUID) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get tenant from context")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, a := range r.byID {
		if a.TenantID() == tenantID && a.ParentID() == fromParentID {
			r.byID[id] = a.WithParent(toParentID)
		}
	}
	return nil
}

func (r *InMemoryAssetRepository) store(a asset.Asset) {
	if _, ok := r.byID[a.ID()]; !ok {
		r.seq++
		r.insSeq[a.ID()] = r.seq
	}
	r.byID[a.ID()] = a
}

func (r *InMemoryAssetRepository) tenantAssets(tenantID uuid.UUID) []asset.Asset {
	matched := make([]asset.Asset, 0, len(r.byID))
	for _, a := range r.byID {
		if a.TenantID() == tenantID {
			matched = append(matched, a)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return r.insSeq[matched[i].ID()] < r.insSeq[matched[j].ID()]
	})
	return matched
}
