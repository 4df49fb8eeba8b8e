package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/bboom-app/bboom-api/docs"
	"github.com/bboom-app/bboom-api/internal/api/auth"
	"github.com/bboom-app/bboom-api/internal/api/post"
	"github.com/bboom-app/bboom-api/internal/api/user"
	"github.com/bboom-app/bboom-api/internal/ui"
)

// Config contains dependencies needed for the router setup.
type Config struct {
	AuthHandler            auth.Handler
	UserHandler            user.Handler
	PostHandler            post.Handler
	UIHandler              *ui.HandlerImpl
	AuthenticateMiddleware func(http.Handler) http.Handler
}

// SetupRouter wires the JSON API and the HTML surface. Server-wide middleware
// (request ID, logger, recoverer) are applied before mounting this router in
// main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	// The documented endpoint paths carry trailing slashes
	r.Use(middleware.StripSlashes)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			// Public identity routes
			r.Post("/reg", cfg.AuthHandler.Register)
			r.Post("/auth", cfg.AuthHandler.Login)
			r.Post("/refresh", cfg.AuthHandler.Refresh)

			// Authenticated listing
			r.Group(func(r chi.Router) {
				r.Use(cfg.AuthenticateMiddleware)
				r.Get("/list", cfg.UserHandler.ListUsers)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)
			r.Post("/create", cfg.PostHandler.CreatePost)
			r.Get("/list", cfg.PostHandler.ListPosts)
			r.Delete("/{id}", cfg.PostHandler.DeletePost)
		})

		r.Get("/docs/*", httpSwagger.Handler(
			httpSwagger.URL("/api/docs/doc.json"),
		))
	})

	if cfg.UIHandler != nil {
		cfg.UIHandler.RegisterRoutes(r)
	}

	return r
}
