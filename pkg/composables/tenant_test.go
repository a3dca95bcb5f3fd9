package composables_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exec-platform/asset-management/pkg/composables"
)

func TestUseTenantID(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		tenantID := uuid.New()
		ctx := composables.WithTenantID(context.Background(), tenantID)

		got, err := composables.UseTenantID(ctx)
		require.NoError(t, err)
		assert.Equal(t, tenantID, got)
	})

	t.Run("missing tenant", func(t *testing.T) {
		_, err := composables.UseTenantID(context.Background())
		require.ErrorIs(t, err, composables.ErrNoTenantID)
	})

	t.Run("nil tenant rejected", func(t *testing.T) {
		ctx := composables.WithTenantID(context.Background(), uuid.Nil)
		_, err := composables.UseTenantID(ctx)
		require.ErrorIs(t, err, composables.ErrNoTenantID)
	})
}
