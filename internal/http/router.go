package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/loja-api/internal/docs"
	"github.com/rogerio-castellano/loja-api/internal/http/ban"
	"github.com/rogerio-castellano/loja-api/internal/http/handlers"
	mw "github.com/rogerio-castellano/loja-api/internal/http/middleware"
	rl "github.com/rogerio-castellano/loja-api/internal/http/rate_limiter"
)

type RouterConfig struct {
	Logger         zerolog.Logger
	AllowedOrigins []string

	// TrustProxyHeaders replaces RemoteAddr with X-Forwarded-For / X-Real-IP. Rate limiting
	// keys on RemoteAddr, so leave it off unless a trusted proxy sets those headers.
	TrustProxyHeaders bool

	// AuthSecret enables bearer token checks on mutating routes when non-empty.
	AuthSecret []byte

	// Limiter and Guard enable per-client rate limiting on the API when both are set.
	Limiter *rl.Limiter
	Guard   *ban.Guard
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	if cfg.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(mw.RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", handlers.HealthzHandler)
	r.Get("/readyz", handlers.ReadyzHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/produtos", func(r chi.Router) {
		if cfg.Limiter != nil && cfg.Guard != nil {
			r.Use(mw.RateLimit(cfg.Limiter, cfg.Guard))
		}

		r.Get("/", handlers.GetProductsHandler)
		r.Get("/{id}", handlers.GetProductByIDHandler)

		r.Group(func(r chi.Router) {
			if len(cfg.AuthSecret) > 0 {
				r.Use(mw.RequireToken(cfg.AuthSecret))
			}
			r.Post("/", handlers.CreateProductHandler)
			r.Put("/{id}", handlers.UpdateProductHandler)
			r.Patch("/{id}", handlers.PatchProductHandler)
			r.Delete("/{id}", handlers.DeleteProductHandler)
		})
	})

	return r
}
