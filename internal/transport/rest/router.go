package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/permit-management/internal/employee"
	"github.com/frahmantamala/permit-management/internal/permit"
	"github.com/frahmantamala/permit-management/internal/transport/middleware"
	"github.com/frahmantamala/permit-management/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, permitHandler *permit.Handler, employeeHandler *employee.Handler, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Directory lookup used by the submission form
		if employeeHandler != nil {
			r.Get("/employee-lookup", employeeHandler.Lookup)

			r.Route("/employees", func(er chi.Router) {
				er.Get("/", employeeHandler.ListEmployees)
				er.Post("/", employeeHandler.CreateEmployee)
				er.Get("/{id}", employeeHandler.GetEmployee)
				er.Patch("/{id}", employeeHandler.UpdateEmployee)
				er.Delete("/{id}", employeeHandler.DeleteEmployee)
			})
		}

		// Permit lifecycle routes
		if permitHandler != nil {
			r.Route("/permits", func(pr chi.Router) {
				pr.Post("/", permitHandler.SubmitPermit)        // POST /permits
				pr.Get("/", permitHandler.ListPermits)          // GET /permits
				pr.Get("/export", permitHandler.ExportPermits)  // GET /permits/export
				pr.Get("/{id}", permitHandler.GetPermit)        // GET /permits/:id
				pr.Put("/{id}/decision", permitHandler.DecidePermit) // PUT /permits/:id/decision
			})
		}
	})
}
