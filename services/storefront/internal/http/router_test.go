package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-order-system/services/storefront/internal/http/handlers"
	"storefront-order-system/services/storefront/internal/repo"
	"storefront-order-system/shared/pkg/models"
)

type recordingTracker struct {
	views []models.PageViewedPayload
}

func (r *recordingTracker) PageViewed(_ context.Context, _ string, view models.PageViewedPayload) {
	r.views = append(r.views, view)
}

type brokenCatalog struct{}

func (brokenCatalog) List(context.Context) ([]models.Product, error) {
	return nil, errors.New("db down")
}

func (brokenCatalog) Get(context.Context, int64) (models.Product, error) {
	return models.Product{}, errors.New("db down")
}

func newTestRouter(catalog repo.Catalog, tracker handlers.PageTracker) http.Handler {
	log := zerolog.New(io.Discard)
	products := &handlers.ProductsHandler{Catalog: catalog, Tracker: tracker, Log: log}
	pages := &handlers.PagesHandler{Tracker: tracker, Log: log}

	return NewRouter(&Handlers{
		Health:       handlers.Health,
		ListProducts: products.List,
		GetProduct:   products.Get,
		HealthInfo:   pages.HealthInfo,
		Admin:        pages.Admin,
	}, Options{Log: log, AllowedOrigins: []string{"*"}})
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouter_ListProducts(t *testing.T) {
	tracker := &recordingTracker{}
	rec := get(t, newTestRouter(repo.NewStaticCatalog(), tracker), "/api/v1/products")

	require.Equal(t, http.StatusOK, rec.Code)
	var products []models.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&products))
	assert.Len(t, products, len(repo.SeedProducts()))

	require.Len(t, tracker.views, 1)
	assert.Equal(t, "catalog", tracker.views[0].Page)
}

func TestRouter_GetProduct(t *testing.T) {
	tracker := &recordingTracker{}
	h := newTestRouter(repo.NewStaticCatalog(), tracker)

	rec := get(t, h, "/api/v1/products/3")
	require.Equal(t, http.StatusOK, rec.Code)
	var p models.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	assert.Equal(t, int64(3), p.ID)
	require.Len(t, tracker.views, 1)
	assert.Equal(t, int64(3), tracker.views[0].ProductID)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/v1/products/abc").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/v1/products/999").Code)
	assert.Len(t, tracker.views, 1)
}

func TestRouter_CatalogFailure(t *testing.T) {
	h := newTestRouter(brokenCatalog{}, nil)

	rec := get(t, h, "/api/v1/products")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")

	assert.Equal(t, http.StatusInternalServerError, get(t, h, "/api/v1/products/1").Code)
}

func TestRouter_HealthInfo(t *testing.T) {
	tracker := &recordingTracker{}
	rec := get(t, newTestRouter(repo.NewStaticCatalog(), tracker), "/api/v1/health-info")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Sections []map[string]any `json:"sections"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.NotEmpty(t, body.Sections)
	require.Len(t, tracker.views, 1)
	assert.Equal(t, "health-info", tracker.views[0].Page)
}

func TestRouter_AdminPlaceholder(t *testing.T) {
	rec := get(t, newTestRouter(repo.NewStaticCatalog(), nil), "/api/v1/admin")

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.JSONEq(t, `{"status":"admin panel coming soon"}`, rec.Body.String())
}

func TestRouter_Health(t *testing.T) {
	rec := get(t, newTestRouter(repo.NewStaticCatalog(), nil), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
