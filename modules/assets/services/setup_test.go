package services_test

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/exec-platform/asset-management/modules/assets/domain/asset"
	"github.com/exec-platform/asset-management/pkg/composables"
)

// nopTx satisfies the transaction contract for tests running against the
// in-memory repository, which never touches the database handle.
type nopTx struct{}

func (nopTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (nopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (nopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func testContext(tenantID uuid.UUID) context.Context {
	ctx := composables.WithTenantID(context.Background(), tenantID)
	return composables.WithTx(ctx, nopTx{})
}

// recordingEmitter captures emitted promotion events.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*asset.PromotedEvent
}

func (e *recordingEmitter) EmitPromoted(ctx context.Context, tenantID uuid.UUID, event *asset.PromotedEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return nil
}

func (e *recordingEmitter) Events() []*asset.PromotedEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*asset.PromotedEvent(nil), e.events...)
}
