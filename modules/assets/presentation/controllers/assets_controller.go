package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/exec-platform/asset-management/modules/assets/domain/asset"
	"github.com/exec-platform/asset-management/modules/assets/presentation/controllers/dtos"
	"github.com/exec-platform/asset-management/modules/assets/presentation/viewmodels"
	"github.com/exec-platform/asset-management/modules/assets/services"
	"github.com/exec-platform/asset-management/pkg/application"
	"github.com/exec-platform/asset-management/pkg/composables"
	"github.com/exec-platform/asset-management/pkg/configuration"
	"github.com/exec-platform/asset-management/pkg/httpapi"
	"github.com/exec-platform/asset-management/pkg/middleware"
)

type AssetsController struct {
	app          application.Application
	assetService *services.AssetService
	basePath     string
	pageSize     int
}

func NewAssetsController(app application.Application) application.Controller {
	conf := configuration.Use()
	return &AssetsController{
		app:          app,
		assetService: app.Service(services.AssetService{}).(*services.AssetService),
		basePath:     "/v1/assets",
		pageSize:     conf.PageSize,
	}
}

func (c *AssetsController) Key() string {
	return c.basePath
}

func (c *AssetsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireTenantFromHeader())
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *AssetsController) List(w http.ResponseWriter, r *http.Request) {
	pageNumber, pageSize, ok := c.pagination(w, r)
	if !ok {
		return
	}

	params := &asset.FindParams{
		Limit:  pageSize,
		Offset: pageNumber * pageSize,
	}
	assets, total, err := c.assetService.GetPaginatedWithTotal(r.Context(), params)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	entities := viewmodels.NewAssets(assets)
	_ = httpapi.WriteJSON(w, http.StatusOK, &viewmodels.PagedAssets{
		Meta: viewmodels.ListMeta{
			Page: viewmodels.PageMeta{
				PageNumber: pageNumber,
				PageSize:   pageSize,
				TotalCount: total,
			},
		},
		Count:    len(entities),
		Entities: entities,
	})
}

func (c *AssetsController) Create(w http.ResponseWriter, r *http.Request) {
	dto, ok := decodeBody[dtos.CreateAssetDTO](w, r)
	if !ok {
		return
	}
	if errorMessages, ok := dto.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", errorMessages)
		return
	}

	created, err := c.assetService.Create(r.Context(), dto.ToInput())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewAsset(created))
}

func (c *AssetsController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}

	entity, err := c.assetService.GetByID(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewAsset(entity))
}

func (c *AssetsController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}
	dto, ok := decodeBody[dtos.UpdateAssetDTO](w, r)
	if !ok {
		return
	}
	if errorMessages, ok := dto.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", errorMessages)
		return
	}

	updated, err := c.assetService.Update(r.Context(), id, dto.ToInput())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewAsset(updated))
}

func (c *AssetsController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}

	if _, err := c.assetService.Delete(r.Context(), id); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *AssetsController) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a uuid", map[string]string{"id": raw})
		return uuid.Nil, false
	}
	return id, true
}

func (c *AssetsController) pagination(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	pageNumber := 0
	pageSize := c.pageSize

	q := r.URL.Query()
	if raw := q.Get("pageNumber"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_PAGE", "pageNumber must be a non-negative integer", nil)
			return 0, 0, false
		}
		pageNumber = n
	}
	if raw := q.Get("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_PAGE", "pageSize must be a positive integer", nil)
			return 0, 0, false
		}
		pageSize = n
	}
	return pageNumber, pageSize, true
}

func (c *AssetsController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := composables.UseLogger(r.Context())

	switch {
	case errors.Is(err, asset.ErrNotFound):
		_ = httpapi.WriteError(w, http.StatusNotFound, "ASSET_NOT_FOUND", "asset not found", nil)
	case errors.Is(err, asset.ErrParentNotFound):
		_ = httpapi.WriteError(w, http.StatusNotFound, "PARENT_ASSET_NOT_FOUND", "parent asset not found", nil)
	case errors.Is(err, services.ErrMismatchedIDs):
		_ = httpapi.WriteError(w, http.StatusBadRequest, "MISMATCHED_IDS", "path id does not match body id", nil)
	default:
		logger.WithError(err).Error("assets controller: unhandled service error")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", nil)
	}
}

func decodeBody[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var dto T
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON", nil)
		return nil, false
	}
	return &dto, true
}
