package persistence_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exec-platform/asset-management/modules/assets/domain/asset"
	"github.com/exec-platform/asset-management/modules/assets/infrastructure/persistence"
	"github.com/exec-platform/asset-management/pkg/composables"
)

func tenantContext(tenantID uuid.UUID) context.Context {
	return composables.WithTenantID(context.Background(), tenantID)
}

func TestInMemoryAssetRepository_Delete(t *testing.T) {
	tenantID := uuid.New()
	ctx := tenantContext(tenantID)

	t.Run("removes a stored asset", func(t *testing.T) {
		repo := persistence.NewInMemoryAssetRepository()
		stored, err := repo.Save(ctx, asset.New(asset.WithTenantID(tenantID)))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, stored.ID()))

		_, err = repo.GetByID(ctx, stored.ID())
		require.ErrorIs(t, err, asset.ErrNotFound)
	})

	t.Run("absent id fails with not found", func(t *testing.T) {
		repo := persistence.NewInMemoryAssetRepository()
		err := repo.Delete(ctx, uuid.New())
		require.ErrorIs(t, err, asset.ErrNotFound)
	})

	t.Run("other tenant's asset is not deletable", func(t *testing.T) {
		repo := persistence.NewInMemoryAssetRepository()
		stored, err := repo.Save(ctx, asset.New(asset.WithTenantID(tenantID)))
		require.NoError(t, err)

		err = repo.Delete(tenantContext(uuid.New()), stored.ID())
		require.ErrorIs(t, err, asset.ErrNotFound)

		kept, err := repo.GetByID(ctx, stored.ID())
		require.NoError(t, err)
		assert.Equal(t, stored.ID(), kept.ID())
	})
}
