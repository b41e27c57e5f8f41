package api

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reclaimhq/reclaim/internal/auth"
	"github.com/reclaimhq/reclaim/internal/build"
	"github.com/reclaimhq/reclaim/internal/items"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	SessionManager *scs.SessionManager
	AuthHandlers   *auth.Handlers
	AuthMiddleware *auth.Middleware
	ItemService    *items.Service
	CORSOrigins    []string
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	// Browser frontend lives on another origin and sends the session cookie
	// cross-site, so credentials must be allowed.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Use(deps.SessionManager.LoadAndSave)
	r.Use(deps.AuthMiddleware.WithIdentity)

	r.Get("/", home)
	r.Get("/healthz", home)
	r.Handle("/metrics", promhttp.Handler())

	// Auth routes (no auth required)
	r.Get("/login", deps.AuthHandlers.Login)
	r.Get("/login/callback", deps.AuthHandlers.Callback)
	r.Get("/logout", deps.AuthHandlers.Logout)
	r.Get("/me", deps.AuthHandlers.Me)

	// Item routes; per-operation authorization happens in the service.
	registerItemRoutes(r, deps.ItemService)

	return r
}

func home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Reclaim-Version", build.Version)
	_, _ = w.Write([]byte("Backend is running"))
}
