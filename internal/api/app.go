package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"FurniStore/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	LoginPerMin    int
	RegisterPerMin int

	// TrustForwardedFor keys rate limits on X-Forwarded-For. Set it only
	// behind a proxy that overwrites the header.
	TrustForwardedFor bool
}

const (
	defaultLoginPerMin    = 5
	defaultRegisterPerMin = 3
	readyTimeout          = 1 * time.Second
)

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if s.Log == nil {
		s.Log = deps.Log
	}

	r := chi.NewRouter()

	metricsOn := deps.MetricsEnabled && deps.Registry != nil
	if deps.MetricsEnabled && deps.Registry == nil {
		deps.Log.Warn("metrics enabled but Registry is nil")
	}

	setupMiddleware(r, deps)
	setupRoutes(r, s, deps, metricsOn)

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))

	if deps.Registry != nil {
		metrics := kit.NewMetrics(deps.Registry)
		r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))
	}
}

func setupRoutes(r *chi.Mux, s *Server, deps HTTPDeps, metricsOn bool) {
	loginLimiter := kit.NewIPRateLimiter(orDefault(deps.LoginPerMin, defaultLoginPerMin))
	registerLimiter := kit.NewIPRateLimiter(orDefault(deps.RegisterPerMin, defaultRegisterPerMin))
	loginLimiter.TrustForwardedFor = deps.TrustForwardedFor
	registerLimiter.TrustForwardedFor = deps.TrustForwardedFor

	r.Get("/healthz", healthz)
	r.Get("/readyz", s.handleReady)

	if metricsOn {
		r.With(kit.MetricsAuth(deps.MetricsToken)).Handle(
			"/metrics",
			promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}),
		)
	}

	r.Route("/auth", func(rr chi.Router) {
		rr.With(registerLimiter.Middleware).Post("/register", s.handleRegister)
		rr.With(loginLimiter.Middleware).Post("/login", s.handleLogin)

		rr.Group(func(pr chi.Router) {
			pr.Use(s.RequireSession)
			pr.Post("/logout", s.handleLogout)
			pr.Get("/whoami", s.handleWhoAmI)
		})
	})

	r.Get("/products", s.handleListProducts)
	r.Get("/products/types", s.handleListProductTypes)
	r.Get("/products/{id}", s.handleGetProduct)
	r.Get("/categories", s.handleListCategories)

	r.Route("/cart", func(rr chi.Router) {
		rr.Get("/", s.handleGetCart)
		rr.Post("/items", s.handleAddToCart)
		rr.Put("/items/{id}", s.handleUpdateCartItem)
		rr.Delete("/items/{id}", s.handleRemoveCartItem)
	})

	r.Route("/favorites", func(rr chi.Router) {
		rr.Get("/", s.handleListFavorites)
		rr.Post("/", s.handleAddFavorite)
		rr.Delete("/{id}", s.handleRemoveFavorite)
	})

	r.Route("/orders", func(rr chi.Router) {
		rr.Use(s.RequireSession)
		rr.Post("/", s.handlePlaceOrder)
		rr.Get("/", s.handleListOrders)
		rr.Patch("/{id}", s.handleUpdateOrderStatus)
	})

	r.Route("/admin", func(rr chi.Router) {
		rr.Use(s.RequireSession, s.RequireAdmin)
		rr.Get("/orders", s.handleAllOrders)
		rr.Post("/products", s.handleAddProduct)
		rr.Delete("/products/{id}", s.handleDeleteProduct)
	})
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.Log.Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
