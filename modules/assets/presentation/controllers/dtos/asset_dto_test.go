package dtos_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exec-platform/asset-management/modules/assets/presentation/controllers/dtos"
)

func TestCreateAssetDTO_Ok(t *testing.T) {
	t.Run("empty body is valid", func(t *testing.T) {
		dto := dtos.CreateAssetDTO{}
		errs, ok := dto.Ok()
		assert.True(t, ok)
		assert.Empty(t, errs)
	})

	t.Run("valid parent uuid", func(t *testing.T) {
		dto := dtos.CreateAssetDTO{ParentID: uuid.New().String(), Promoted: true}
		_, ok := dto.Ok()
		assert.True(t, ok)
	})

	t.Run("malformed parent uuid", func(t *testing.T) {
		dto := dtos.CreateAssetDTO{ParentID: "nope"}
		errs, ok := dto.Ok()
		assert.False(t, ok)
		assert.Contains(t, errs, "ParentID")
	})
}

func TestUpdateAssetDTO_ToInput(t *testing.T) {
	id := uuid.New()
	parentID := uuid.New()

	dto := dtos.UpdateAssetDTO{ID: id.String(), ParentID: parentID.String(), Promoted: true}
	_, ok := dto.Ok()
	require.True(t, ok)

	input := dto.ToInput()
	assert.Equal(t, id, input.BodyID)
	assert.Equal(t, parentID, input.ParentID)
	assert.True(t, input.Promoted)

	empty := dtos.UpdateAssetDTO{}
	input = empty.ToInput()
	assert.Equal(t, uuid.Nil, input.BodyID)
	assert.Equal(t, uuid.Nil, input.ParentID)
	assert.False(t, input.Promoted)
}
