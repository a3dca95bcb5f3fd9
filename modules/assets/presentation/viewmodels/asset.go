package viewmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/exec-platform/asset-management/modules/assets/domain/asset"
)

type Asset struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parentId,omitempty"`
	Promoted  bool      `json:"promoted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewAsset(entity asset.Asset) Asset {
	parentID := ""
	if entity.ParentID() != uuid.Nil {
		parentID = entity.ParentID().String()
	}
	return Asset{
		ID:        entity.ID().String(),
		ParentID:  parentID,
		Promoted:  entity.Promoted(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}

func NewAssets(entities []asset.Asset) []Asset {
	out := make([]Asset, 0, len(entities))
	for _, e := range entities {
		out = append(out, NewAsset(e))
	}
	return out
}

type PageMeta struct {
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
}

type ListMeta struct {
	Page PageMeta `json:"page"`
}

type PagedAssets struct {
	Meta     ListMeta `json:"meta"`
	Count    int      `json:"count"`
	Entities []Asset  `json:"entities"`
}
