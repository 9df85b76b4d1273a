package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/interview-vault-be/internal/api/handlers"
	"github.com/isdelr/interview-vault-be/internal/auth"
	"github.com/isdelr/interview-vault-be/internal/models"
	"github.com/isdelr/interview-vault-be/internal/services"
)

// Options carries the HTTP-level settings of the router.
type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	SecureCookies  bool
}

// Services bundles everything the handlers depend on.
type Services struct {
	Auth       services.AuthServiceProvider
	Questions  services.QuestionServiceProvider
	Categories services.CategoryServiceProvider
	Store      handlers.Pinger
}

// NewRouter creates and configures a new Chi router.
func NewRouter(opts Options, jwt *auth.JWTManager, svc Services) *chi.Mux {
	r := chi.NewRouter()
	metrics := NewMetrics()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(svc.Auth, jwt.TTL(), opts.SecureCookies)
	questionHandler := handlers.NewQuestionHandler(svc.Questions)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories)
	healthHandler := handlers.NewHealthHandler(svc.Store)

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Check)

		// Public auth routes
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(jwt.Middleware())

			r.Get("/auth/me", authHandler.Me)
			r.Get("/categories", categoryHandler.GetAll)

			r.Route("/questions", func(r chi.Router) {
				r.Get("/", questionHandler.GetAll)
				r.Post("/", questionHandler.Create)
				r.Get("/search", questionHandler.Search)
				r.Get("/count", questionHandler.Count)
				r.Get("/category/{category}", questionHandler.GetByCategory)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", questionHandler.Get)
					r.Put("/", questionHandler.Update)
					r.Delete("/", questionHandler.Delete)
				})
			})

			// Unscoped catalog for administrators
			r.Route("/admin/questions", func(r chi.Router) {
				r.Use(auth.RequireRole(models.RoleAdmin))
				r.Use(handlers.AdminView)
				r.Get("/", questionHandler.GetAll)
				r.Get("/search", questionHandler.Search)
				r.Get("/count", questionHandler.Count)
				r.Get("/{id}", questionHandler.Get)
			})
		})
	})

	return r
}
