package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exec-platform/asset-management/modules/assets/domain/asset"
	"github.com/exec-platform/asset-management/modules/assets/infrastructure/persistence"
	"github.com/exec-platform/asset-management/modules/assets/presentation/controllers"
	"github.com/exec-platform/asset-management/modules/assets/services"
	"github.com/exec-platform/asset-management/pkg/application"
	"github.com/exec-platform/asset-management/pkg/composables"
	"github.com/exec-platform/asset-management/pkg/eventbus"
)

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

type nopEmitter struct {
	mu     sync.Mutex
	events []*asset.PromotedEvent
}

func (e *nopEmitter) EmitPromoted(ctx context.Context, tenantID uuid.UUID, event *asset.PromotedEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return nil
}

type testEnv struct {
	router   *mux.Router
	repo     *persistence.InMemoryAssetRepository
	tenantID uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	repo := persistence.NewInMemoryAssetRepository()
	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	app.RegisterServices(services.NewAssetService(
		repo,
		services.NewPromotionPropagator(repo),
		&nopEmitter{},
		app.EventPublisher(),
	))

	router := mux.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(composables.WithTx(r.Context(), nopTx{})))
		})
	})
	controllers.NewAssetsController(app).Register(router)

	return &testEnv{
		router:   router,
		repo:     repo,
		tenantID: uuid.New(),
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("X-Tenant-Id", e.tenantID.String())
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

type assetResponse struct {
	ID       string `json:"id"`
	ParentID string `json:"parentId"`
	Promoted bool   `json:"promoted"`
}

type pagedResponse struct {
	Meta struct {
		Page struct {
			PageNumber int   `json:"pageNumber"`
			PageSize   int   `json:"pageSize"`
			TotalCount int64 `json:"totalCount"`
		} `json:"page"`
	} `json:"meta"`
	Count    int             `json:"count"`
	Entities []assetResponse `json:"entities"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func TestAssetsController_Create(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/assets", map[string]any{"promoted": false})
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[assetResponse](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Promoted)

	t.Run("unresolved parent returns 404", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/assets", map[string]any{
			"parentId": uuid.New().String(),
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "PARENT_ASSET_NOT_FOUND", decode[errorResponse](t, rec).Code)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/assets", bytes.NewBufferString("{"))
		req.Header.Set("X-Tenant-Id", env.tenantID.String())
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid parent uuid returns 400", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/assets", map[string]any{"parentId": "not-a-uuid"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decode[errorResponse](t, rec).Code)
	})

	t.Run("missing tenant header returns 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/assets", bytes.NewBufferString("{}"))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "TENANT_REQUIRED", decode[errorResponse](t, rec).Code)
	})
}

func TestAssetsController_GetByID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/assets", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[assetResponse](t, rec)

	rec = env.do(t, http.MethodGet, "/v1/assets/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, decode[assetResponse](t, rec).ID)

	t.Run("unknown id returns 404", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/assets/"+uuid.New().String(), nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-uuid id returns 400", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/assets/abc", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAssetsController_Update(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/assets", map[string]any{})
	created := decode[assetResponse](t, rec)

	t.Run("promotes via update", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/v1/assets/"+created.ID, map[string]any{
			"id":       created.ID,
			"promoted": true,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decode[assetResponse](t, rec).Promoted)
	})

	t.Run("mismatched ids returns 400", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/v1/assets/"+created.ID, map[string]any{
			"id":       uuid.New().String(),
			"promoted": true,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "MISMATCHED_IDS", decode[errorResponse](t, rec).Code)
	})

	t.Run("unknown asset returns 404", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/v1/assets/"+uuid.New().String(), map[string]any{
			"promoted": true,
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAssetsController_Delete(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/assets", map[string]any{})
	created := decode[assetResponse](t, rec)

	rec = env.do(t, http.MethodDelete, "/v1/assets/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/assets/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	t.Run("unknown asset returns 404", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/v1/assets/"+uuid.New().String(), nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAssetsController_List(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 5; i++ {
		rec := env.do(t, http.MethodPost, "/v1/assets", map[string]any{})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	t.Run("defaults", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/assets", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		page := decode[pagedResponse](t, rec)
		assert.Equal(t, 0, page.Meta.Page.PageNumber)
		assert.Equal(t, 50, page.Meta.Page.PageSize)
		assert.Equal(t, int64(5), page.Meta.Page.TotalCount)
		assert.Equal(t, 5, page.Count)
	})

	t.Run("explicit paging", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, fmt.Sprintf("/v1/assets?pageNumber=%d&pageSize=%d", 1, 2), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		page := decode[pagedResponse](t, rec)
		assert.Equal(t, 1, page.Meta.Page.PageNumber)
		assert.Equal(t, 2, page.Meta.Page.PageSize)
		assert.Equal(t, 2, page.Count)
		assert.Len(t, page.Entities, 2)
	})

	t.Run("invalid paging returns 400", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/assets?pageSize=zero", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
