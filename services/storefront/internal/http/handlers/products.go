package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"storefront-order-system/services/storefront/internal/repo"
	"storefront-order-system/shared/pkg/models"
	"storefront-order-system/shared/pkg/web"
)

// PageTracker records page views for analytics. It must not block or fail a request.
type PageTracker interface {
	PageViewed(ctx context.Context, traceID string, view models.PageViewedPayload)
}

type ProductsHandler struct {
	Catalog repo.Catalog
	Tracker PageTracker
	Log     zerolog.Logger
}

func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.List(r.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("list products failed")
		web.WriteError(w, http.StatusInternalServerError, "internal server error", h.Log)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	h.track(r, models.PageViewedPayload{Page: "catalog"})
	web.WriteJSON(w, http.StatusOK, products, h.Log)
}

func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid product id", h.Log)
		return
	}

	p, err := h.Catalog.Get(r.Context(), id)
	if errors.Is(err, repo.ErrProductNotFound) {
		web.WriteError(w, http.StatusNotFound, "product not found", h.Log)
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Int64("product_id", id).Msg("get product failed")
		web.WriteError(w, http.StatusInternalServerError, "internal server error", h.Log)
		return
	}

	h.track(r, models.PageViewedPayload{Page: "product", ProductID: id})
	web.WriteJSON(w, http.StatusOK, p, h.Log)
}

func (h *ProductsHandler) track(r *http.Request, view models.PageViewedPayload) {
	if h.Tracker == nil {
		return
	}
	view.UserAgent = r.UserAgent()
	h.Tracker.PageViewed(r.Context(), web.GetCorrelationID(r.Context()), view)
}
