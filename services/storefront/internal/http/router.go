package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"storefront-order-system/shared/pkg/metrics"
	"storefront-order-system/shared/pkg/web"
)

type Handlers struct {
	Health       http.HandlerFunc
	ListProducts http.HandlerFunc
	GetProduct   http.HandlerFunc
	HealthInfo   http.HandlerFunc
	Admin        http.HandlerFunc
}

type Options struct {
	Log            zerolog.Logger
	AllowedOrigins []string
}

func NewRouter(h *Handlers, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(web.CorrelationID)
	r.Use(web.AccessLog(opts.Log))
	r.Use(metrics.Middleware("storefront"))
	r.Use(web.CORS(opts.AllowedOrigins))
	r.Use(web.Recover(opts.Log))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", h.Health)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)
		r.Get("/health-info", h.HealthInfo)
		r.Get("/admin", h.Admin)
	})
	return r
}
