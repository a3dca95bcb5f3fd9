package asset

import (
	"context"

	"github.com/google/uuid"

	"github.com/exec-platform/asset-management/pkg/serrors"
)

var (
	ErrNotFound       = serrors.NewError("ASSET_NOT_FOUND", "asset not found", "")
	ErrParentNotFound = serrors.NewError("PARENT_ASSET_NOT_FOUND", "parent asset not found", "")
)

type Field int

const (
	FieldCreatedAt Field = iota
	FieldUpdatedAt
)

type SortBy struct {
	Fields    []Field
	Ascending bool
}

type FindParams struct {
	Limit    int
	Offset   int
	ParentID uuid.UUID
	SortBy   SortBy
}

type Repository interface {
	Count(ctx context.Context) (int64, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]Asset, error)
	GetByID(ctx context.Context, id uuid.UUID) (Asset, error)
	GetByParentID(ctx context.Context, parentID uuid.UUID) ([]Asset, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, a Asset) (Asset, error)
	SaveAll(ctx context.Context, assets []Asset) ([]Asset, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ReassignParent(ctx context.Context, fromParentID, toParentID uuid.UUID) error
}
