package server

import (
	"net/http"
	"time"

	"esep-backend/internal/config"
	"esep-backend/internal/domain"
	"esep-backend/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log/slog"
)

// NewRouter wires HTTP routes and middleware. The public group is the
// portal's registration flow; the authenticated groups mirror the admin
// panel's sections, gated by the role capability table.
func NewRouter(cfg config.Config,
	logger *slog.Logger,
	health handler.HealthHandler,
	auth handler.AuthHandler,
	categories handler.CategoryHandler,
	panchayaths handler.PanchayathHandler,
	registrations handler.RegistrationHandler,
	adminUsers handler.AdminUserHandler,
	dashboard handler.DashboardHandler,
	eventStream handler.EventsHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	// The SSE stream outlives the request timeout on purpose: clients
	// reconnect when the connection closes.
	eventStream.RegisterRoutes(r)

	r.Group(func(pub chi.Router) {
		pub.Use(middleware.Timeout(60 * time.Second))

		health.RegisterRoutes(pub)
		auth.RegisterRoutes(pub)
		categories.RegisterPublicRoutes(pub)
		panchayaths.RegisterPublicRoutes(pub)
		registrations.RegisterPublicRoutes(pub)
		pub.Method("GET", "/metrics", promhttp.Handler())

		pub.Group(func(pr chi.Router) {
			pr.Use(AuthMiddleware(cfg.JWTSecret))
			auth.RegisterProtectedRoutes(pr)

			// visible to every admin role
			pr.Group(func(ar chi.Router) {
				dashboard.RegisterRoutes(ar)
				registrations.RegisterReadRoutes(ar)
			})
			// registration mutations (Super Admin / Local Admin)
			pr.Group(func(mr chi.Router) {
				mr.Use(RequireMutator())
				registrations.RegisterMutateRoutes(mr)
			})
			// data-management sections (hidden from User Admin)
			pr.Group(func(sr chi.Router) {
				sr.Use(RequireSection(domain.SectionPanchayath))
				panchayaths.RegisterAdminRoutes(sr)
			})
			pr.Group(func(cr chi.Router) {
				cr.Use(RequireSection(domain.SectionCategories))
				categories.RegisterAdminRoutes(cr)
			})
			// role management (Super Admin only)
			pr.Group(func(ur chi.Router) {
				ur.Use(RequireSection(domain.SectionAdmins))
				adminUsers.RegisterRoutes(ur)
			})
		})
	})

	return r
}
