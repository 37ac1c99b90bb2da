package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/askboard-dev/askboard/internal/middleware/metrics"
	"github.com/askboard-dev/askboard/internal/setup"
)

// New wires all routes. Mutating routes sit behind the auth middleware; the
// per-action authority checks live in the services.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chi_middleware.Recoverer)
	r.Use(chi_middleware.Compress(5))
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)

		r.Get("/assets/{key}", h.GetAsset)

		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())

			r.Get("/topics", h.GetTopics)
			r.Post("/topics", h.CreateTopic)
			r.Get("/topics/{topic}", h.GetTopic)
			r.Delete("/topics/{topic}", h.DeleteTopic)

			r.Post("/topics/{topic}/messages", h.CreateMessage)
			r.Get("/messages/{message}", h.GetMessage)
			r.Delete("/messages/{message}", h.DeleteMessage)

			r.Get("/users/{user}", h.GetUser)
			r.Delete("/users/{user}", h.DeleteUser)
			r.Put("/users/{user}/moderator", h.SetModerator)
			r.Put("/users/{user}/profile", h.UpdateProfile)
			r.Put("/users/{user}/profile_image", h.SetProfileImage)
			r.Put("/users/{user}/location", h.UpdateLocation)
		})
	})

	return r
}
