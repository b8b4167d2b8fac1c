package rest

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/model"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/pkg/auth"
)

// NewRouter assembles the full HTTP surface: public endpoints, the
// token-protected customer surface, and the admin surface.
func NewRouter(
	jwtService *auth.JWTService,
	authHandler *AuthHandler,
	loanHandler *LoanHandler,
	adminHandler *AdminHandler,
	healthHandler *HealthHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	healthHandler.RegisterRoutes(r)

	r.Route("/api", func(r chi.Router) {
		authHandler.RegisterPublicRoutes(r)
		loanHandler.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticator(jwtService))
			authHandler.RegisterProtectedRoutes(r)
			loanHandler.RegisterProtectedRoutes(r)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.Authenticator(jwtService))
			r.Use(auth.RequireRole(model.RoleAdmin))
			adminHandler.RegisterRoutes(r)
		})
	})

	return r
}
