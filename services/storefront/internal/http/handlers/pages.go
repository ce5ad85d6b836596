package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"storefront-order-system/services/storefront/internal/content"
	"storefront-order-system/shared/pkg/models"
	"storefront-order-system/shared/pkg/web"
)

type PagesHandler struct {
	Tracker PageTracker
	Log     zerolog.Logger
}

func (h *PagesHandler) HealthInfo(w http.ResponseWriter, r *http.Request) {
	if h.Tracker != nil {
		h.Tracker.PageViewed(r.Context(), web.GetCorrelationID(r.Context()), models.PageViewedPayload{
			Page:      "health-info",
			UserAgent: r.UserAgent(),
		})
	}
	web.WriteJSON(w, http.StatusOK, map[string]any{"sections": content.HealthInfo()}, h.Log)
}

// Admin is a placeholder until the admin panel exists.
func (h *PagesHandler) Admin(w http.ResponseWriter, r *http.Request) {
	web.WriteJSON(w, http.StatusNotImplemented, map[string]string{"status": "admin panel coming soon"}, h.Log)
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
