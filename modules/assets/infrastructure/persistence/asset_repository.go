package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/exec-platform/asset-management/modules/assets/domain/asset"
	"github.com/exec-platform/asset-management/modules/assets/infrastructure/persistence/models"
	"github.com/exec-platform/asset-management/pkg/composables"
	"github.com/exec-platform/asset-management/pkg/repo"
)

const (
	assetFindQuery = `
        SELECT
            a.id,
            a.tenant_id,
            a.parent_id,
            a.promoted,
            a.created_at,
            a.updated_at
        FROM assets a`

	assetCountQuery = `SELECT COUNT(a.id) FROM assets a`

	assetExistsQuery = `SELECT 1 FROM assets a`

	assetUpsertQuery = `
        INSERT INTO assets (id, tenant_id, parent_id, promoted, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (id) DO UPDATE SET
            parent_id = EXCLUDED.parent_id,
            promoted = EXCLUDED.promoted,
            updated_at = EXCLUDED.updated_at
        WHERE assets.tenant_id = EXCLUDED.tenant_id`

	assetDeleteQuery = `DELETE FROM assets WHERE id = $1 AND tenant_id = $2`

	assetReassignParentQuery = `
        UPDATE assets SET parent_id = $3, updated_at = NOW()
        WHERE parent_id = $1 AND tenant_id = $2`
)

type PgAssetRepository struct {
	fieldMap map[asset.Field]string
}

func NewAssetRepository() asset.Repository {
	return &PgAssetRepository{
		fieldMap: map[asset.Field]string{
			asset.FieldCreatedAt: "a.created_at",
			asset.FieldUpdatedAt: "a.updated_at",
		},
	}
}

func (g *PgAssetRepository) Count(ctx context.Context) (int64, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get tenant from context")
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get transaction")
	}

	var count int64
	query := repo.Join(assetCountQuery, "WHERE a.tenant_id = $1")
	if err := tx.QueryRow(ctx, query, tenantID).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count assets")
	}
	return count, nil
}

func (g *PgAssetRepository) GetPaginated(ctx context.Context, params *asset.FindParams) ([]asset.Asset, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	where := []string{"a.tenant_id = $1"}
	args := []interface{}{tenantID}

	if params.ParentID != uuid.Nil {
		where = append(where, fmt.Sprintf("a.parent_id = $%d", len(args)+1))
		args = append(args, params.ParentID)
	}

	query := repo.Join(
		assetFindQuery,
		repo.JoinWhere(where...),
		g.orderBy(params.SortBy),
		repo.FormatLimitOffset(params.Limit, params.Offset),
	)

	assets, err := g.queryAssets(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get paginated assets")
	}
	return assets, nil
}

func (g *PgAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (asset.Asset, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	assets, err := g.queryAssets(ctx, assetFindQuery+" WHERE a.id = $1 AND a.tenant_id = $2", id, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query asset with id: %s", id))
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("id: %s: %w", id, asset.ErrNotFound)
	}
	return assets[0], nil
}

func (g *PgAssetRepository) GetByParentID(ctx context.Context, parentID uuid.UUID) ([]asset.Asset, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	assets, err := g.queryAssets(
		ctx,
		assetFindQuery+" WHERE a.parent_id = $1 AND a.tenant_id = $2 ORDER BY a.created_at",
		parentID,
		tenantID,
	)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query assets with parent id: %s", parentID))
	}
	return assets, nil
}

func (g *PgAssetRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to get tenant from context")
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to get transaction")
	}

	base := repo.Join(assetExistsQuery, "WHERE a.id = $1 AND a.tenant_id = $2")
	query := repo.Exists(base)

	exists := false
	if err := tx.QueryRow(ctx, query, id, tenantID).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "checking asset existence failed")
	}
	return exists, nil
}

func (g *PgAssetRepository) Save(ctx context.Context, data asset.Asset) (asset.Asset, error) {
	if err := g.upsert(ctx, data); err != nil {
		return nil, err
	}
	return g.GetByID(ctx, data.ID())
}

func (g *PgAssetRepository) SaveAll(ctx context.Context, assets []asset.Asset) ([]asset.Asset, error) {
	saved := make([]asset.Asset, 0, len(assets))
	for _, a := range assets {
		if err := g.upsert(ctx, a); err != nil {
			return nil, err
		}
		saved = append(saved, a)
	}
	return saved, nil
}

func (g *PgAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get tenant from context")
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}

	tag, err := tx.Exec(ctx, assetDeleteQuery, id, tenantID)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to delete asset with id: %s", id))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("id: %s: %w", id, asset.ErrNotFound)
	}
	return nil
}

func (g *PgAssetRepository) ReassignParent(ctx context.Context, fromParentID, toParentID uuid.UUID) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get tenant from context")
	}

	var to interface{}
	if toParentID != uuid.Nil {
		to = toParentID
	}
	if err := g.execQuery(ctx, assetReassignParentQuery, fromParentID, tenantID, to); err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to reassign children of: %s", fromParentID))
	}
	return nil
}

func (g *PgAssetRepository) upsert(ctx context.Context, data asset.Asset) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}

	dbAsset := ToDBAsset(data)
	_, err = tx.Exec(
		ctx,
		assetUpsertQuery,
		dbAsset.ID,
		dbAsset.TenantID,
		dbAsset.ParentID,
		dbAsset.Promoted,
		dbAsset.CreatedAt,
		dbAsset.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to save asset with id: %s", dbAsset.ID))
	}
	return nil
}

func (g *PgAssetRepository) orderBy(sortBy asset.SortBy) string {
	if len(sortBy.Fields) == 0 {
		return "ORDER BY a.created_at"
	}
	columns := make([]string, 0, len(sortBy.Fields))
	for _, f := range sortBy.Fields {
		column, ok := g.fieldMap[f]
		if !ok {
			continue
		}
		columns = append(columns, column)
	}
	if len(columns) == 0 {
		return "ORDER BY a.created_at"
	}
	direction := "DESC"
	if sortBy.Ascending {
		direction = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s", strings.Join(columns, ", "), direction)
}

func (g *PgAssetRepository) queryAssets(ctx context.Context, query string, args ...interface{}) ([]asset.Asset, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var dbRows []*models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(
			&a.ID,
			&a.TenantID,
			&a.ParentID,
			&a.Promoted,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan asset row")
		}
		dbRows = append(dbRows, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	entities := make([]asset.Asset, 0, len(dbRows))
	for _, dbRow := range dbRows {
		entity, err := ToDomainAsset(dbRow)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("failed to convert asset id: %s to domain entity", dbRow.ID))
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (g *PgAssetRepository) execQuery(ctx context.Context, query string, args ...interface{}) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "failed to execute query")
	}
	return nil
}
