package application

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// MigrationManager collects the schema filesystems registered by modules
// and applies them with goose.
type MigrationManager interface {
	RegisterSchema(fsys fs.FS, dir string)
	Run(ctx context.Context) error
}

type schemaSource struct {
	fsys fs.FS
	dir  string
}

type migrationManager struct {
	pool    *pgxpool.Pool
	schemas []schemaSource
}

func NewMigrationManager(pool *pgxpool.Pool) MigrationManager {
	return &migrationManager{pool: pool}
}

func (m *migrationManager) RegisterSchema(fsys fs.FS, dir string) {
	m.schemas = append(m.schemas, schemaSource{fsys: fsys, dir: dir})
}

func (m *migrationManager) Run(ctx context.Context) error {
	if m.pool == nil {
		return fmt.Errorf("migrations: no database pool")
	}
	db := stdlib.OpenDBFromPool(m.pool)
	defer func() { _ = db.Close() }()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrations: set dialect: %w", err)
	}
	for _, schema := range m.schemas {
		goose.SetBaseFS(schema.fsys)
		if err := goose.UpContext(ctx, db, schema.dir); err != nil {
			return fmt.Errorf("migrations: up %s: %w", schema.dir, err)
		}
	}
	goose.SetBaseFS(nil)
	return nil
}
