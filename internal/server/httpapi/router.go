package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ummataliyev/estatehub/internal/logging"
)

// Deps bundles everything the router needs. Ping reports database health for
// /healthz; nil means "always healthy".
type Deps struct {
	Logger      logging.Logger
	Metrics     *Metrics
	RateLimiter *RateLimiter
	Ping        func(ctx context.Context) error

	Auth      AuthService
	Users     UserService
	Complexes ComplexService
	Buildings BuildingService
	Media     MediaService
}

// NewRouter builds the full route tree.
//
// Middleware order: request id first so every later log line carries it, then
// metrics (labelled with the chi route pattern), logging and recovery. Rate
// limiting applies to /api only; /healthz and /metrics stay unthrottled so
// probes and scrapes never compete with clients.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	r.Use(RequestLogger(deps.Logger))
	r.Use(Recovery(deps.Logger))

	r.Get("/healthz", healthHandler(deps.Ping))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	authHandler := NewAuthHandler(deps.Auth)
	userHandler := NewUserHandler(deps.Users)
	complexHandler := NewComplexHandler(deps.Complexes)
	buildingHandler := NewBuildingHandler(deps.Buildings)
	mediaHandler := NewMediaHandler(deps.Media)

	r.Route("/api", func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware)
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Get("/me", authHandler.Me)
		})

		// everything below requires a valid access token
		r.Group(func(r chi.Router) {
			r.Use(Authenticate(deps.Auth))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.Post("/", userHandler.Create)
				r.Post("/batch-delete", userHandler.DeleteMany)
				r.Post("/batch-restore", userHandler.RestoreMany)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", userHandler.Get)
					r.Patch("/", userHandler.Update)
					r.Delete("/", userHandler.Delete)
					r.Post("/restore", userHandler.Restore)
				})
			})

			r.Route("/complexes", func(r chi.Router) {
				r.Get("/", complexHandler.List)
				r.Post("/", complexHandler.Create)
				r.Post("/import", complexHandler.Import)
				r.Post("/batch-delete", complexHandler.DeleteMany)
				r.Post("/batch-restore", complexHandler.RestoreMany)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", complexHandler.Get)
					r.Patch("/", complexHandler.Update)
					r.Delete("/", complexHandler.Delete)
					r.Post("/restore", complexHandler.Restore)
					r.Get("/buildings", buildingHandler.ListByComplex)
				})
			})

			r.Route("/buildings", func(r chi.Router) {
				r.Post("/", buildingHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", buildingHandler.Get)
					r.Patch("/", buildingHandler.Update)
					r.Delete("/", buildingHandler.Delete)
					r.Post("/restore", buildingHandler.Restore)
				})
			})

			r.Route("/photos", func(r chi.Router) {
				r.Post("/upload-url", mediaHandler.UploadURL)
				r.Get("/download-url", mediaHandler.DownloadURL)
			})
		})
	})

	return r
}

func healthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
