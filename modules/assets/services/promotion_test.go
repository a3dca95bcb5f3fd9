package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exec-platform/asset-management/modules/assets/domain/asset"
	"github.com/exec-platform/asset-management/modules/assets/infrastructure/persistence"
	"github.com/exec-platform/asset-management/modules/assets/services"
)

func TestPromotionPropagator_PromotesWholeSubtree(t *testing.T) {
	tenantID := uuid.New()
	ctx := testContext(tenantID)
	repo := persistence.NewInMemoryAssetRepository()
	propagator := services.NewPromotionPropagator(repo)

	root := asset.New(asset.WithTenantID(tenantID))
	child := asset.New(asset.WithTenantID(tenantID), asset.WithParentID(root.ID()))
	grandchild := asset.New(asset.WithTenantID(tenantID), asset.WithParentID(child.ID()))
	_, err := repo.SaveAll(ctx, []asset.Asset{root, child, grandchild})
	require.NoError(t, err)

	promoted, events, err := propagator.PromoteSubtree(ctx, root)
	require.NoError(t, err)

	require.Len(t, promoted, 3)
	require.Len(t, events, 3)
	for _, p := range promoted {
		assert.True(t, p.Promoted())
	}

	promotedIDs := make(map[uuid.UUID]bool)
	for _, e := range events {
		assert.Equal(t, tenantID, e.TenantID)
		assert.NotEqual(t, uuid.Nil, e.EventID)
		promotedIDs[e.AssetID] = true
	}
	assert.True(t, promotedIDs[root.ID()])
	assert.True(t, promotedIDs[child.ID()])
	assert.True(t, promotedIDs[grandchild.ID()])
}

func TestPromotionPropagator_SkipsAlreadyPromotedButDescends(t *testing.T) {
	tenantID := uuid.New()
	ctx := testContext(tenantID)
	repo := persistence.NewInMemoryAssetRepository()
	propagator := services.NewPromotionPropagator(repo)

	// The middle node was promoted earlier; a child attached afterwards
	// must still be reached through it.
	root := asset.New(asset.WithTenantID(tenantID))
	promotedChild := asset.New(asset.WithTenantID(tenantID), asset.WithParentID(root.ID()), asset.WithPromoted(true))
	lateGrandchild := asset.New(asset.WithTenantID(tenantID), asset.WithParentID(promotedChild.ID()))
	_, err := repo.SaveAll(ctx, []asset.Asset{root, promotedChild, lateGrandchild})
	require.NoError(t, err)

	promoted, events, err := propagator.PromoteSubtree(ctx, root)
	require.NoError(t, err)

	require.Len(t, promoted, 2)
	require.Len(t, events, 2)
	ids := []uuid.UUID{events[0].AssetID, events[1].AssetID}
	assert.Contains(t, ids, root.ID())
	assert.Contains(t, ids, lateGrandchild.ID())
	assert.NotContains(t, ids, promotedChild.ID())
}

func TestPromotionPropagator_CycleTerminates(t *testing.T) {
	tenantID := uuid.New()
	ctx := testContext(tenantID)
	repo := persistence.NewInMemoryAssetRepository()
	propagator := services.NewPromotionPropagator(repo)

	// a -> b -> c -> a
	aID, bID, cID := uuid.New(), uuid.New(), uuid.New()
	a := asset.New(asset.WithID(aID), asset.WithTenantID(tenantID), asset.WithParentID(cID))
	b := asset.New(asset.WithID(bID), asset.WithTenantID(tenantID), asset.WithParentID(aID))
	c := asset.New(asset.WithID(cID), asset.WithTenantID(tenantID), asset.WithParentID(bID))
	_, err := repo.SaveAll(ctx, []asset.Asset{a, b, c})
	require.NoError(t, err)

	promoted, events, err := propagator.PromoteSubtree(ctx, a)
	require.NoError(t, err)

	require.Len(t, promoted, 3)
	require.Len(t, events, 3)
	seen := make(map[uuid.UUID]int)
	for _, e := range events {
		seen[e.AssetID]++
	}
	assert.Equal(t, 1, seen[aID])
	assert.Equal(t, 1, seen[bID])
	assert.Equal(t, 1, seen[cID])
}

func TestPromotionPropagator_IdempotentOnPromotedSubtree(t *testing.T) {
	tenantID := uuid.New()
	ctx := testContext(tenantID)
	repo := persistence.NewInMemoryAssetRepository()
	propagator := services.NewPromotionPropagator(repo)

	root := asset.New(asset.WithTenantID(tenantID), asset.WithPromoted(true))
	child := asset.New(asset.WithTenantID(tenantID), asset.WithParentID(root.ID()), asset.WithPromoted(true))
	_, err := repo.SaveAll(ctx, []asset.Asset{root, child})
	require.NoError(t, err)

	promoted, events, err := propagator.PromoteSubtree(ctx, root)
	require.NoError(t, err)

	assert.Empty(t, promoted)
	assert.Empty(t, events)
}
