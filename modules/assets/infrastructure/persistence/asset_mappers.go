package persistence

import (
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/exec-platform/asset-management/modules/assets/domain/asset"
	"github.com/exec-platform/asset-management/modules/assets/infrastructure/persistence/models"
)

func ToDBAsset(entity asset.Asset) *models.Asset {
	parentID := sql.NullString{}
	if entity.ParentID() != uuid.Nil {
		parentID = sql.NullString{String: entity.ParentID().String(), Valid: true}
	}
	return &models.Asset{
		ID:        entity.ID().String(),
		TenantID:  entity.TenantID().String(),
		ParentID:  parentID,
		Promoted:  entity.Promoted(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}

func ToDomainAsset(dbRow *models.Asset) (asset.Asset, error) {
	id, err := uuid.Parse(dbRow.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse asset id")
	}
	tenantID, err := uuid.Parse(dbRow.TenantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse tenant id")
	}
	parentID := uuid.Nil
	if dbRow.ParentID.Valid {
		parentID, err = uuid.Parse(dbRow.ParentID.String)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse parent id")
		}
	}
	return asset.New(
		asset.WithID(id),
		asset.WithTenantID(tenantID),
		asset.WithParentID(parentID),
		asset.WithPromoted(dbRow.Promoted),
		asset.WithCreatedAt(dbRow.CreatedAt),
		asset.WithUpdatedAt(dbRow.UpdatedAt),
	), nil
}
