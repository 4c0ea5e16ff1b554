package rest

import (
	"database/sql"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/frahmantamala/attendance-tracker/internal/attendance"
	"github.com/frahmantamala/attendance-tracker/internal/auth"
	"github.com/frahmantamala/attendance-tracker/internal/employee"
	"github.com/frahmantamala/attendance-tracker/internal/report"
	"github.com/frahmantamala/attendance-tracker/internal/schedule"
	"github.com/frahmantamala/attendance-tracker/internal/transport/middleware"
	"github.com/frahmantamala/attendance-tracker/internal/transport/swagger"
	"github.com/go-chi/chi"
)

type Handlers struct {
	Auth       *auth.Handler
	Employee   *employee.Handler
	Schedule   *schedule.Handler
	Attendance *attendance.Handler
	Report     *report.Handler
}

// RegisterAllRoutes wires the HTTP surface. The scan endpoint stays public so
// kiosks can post without a session; everything administrative sits behind the
// auth middleware.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, handlers Handlers, qrDir, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// QR badge images, served under the web path stored on each employee.
	qrPrefix := "/" + filepath.Base(qrDir) + "/"
	router.Get(qrPrefix+"*", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, qrPrefix)
		http.ServeFile(w, r, filepath.Join(qrDir, filepath.Clean("/"+name)))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", handlers.Auth.Login)
			sr.Post("/refresh", handlers.Auth.Refresh)
			sr.Post("/logout", handlers.Auth.Logout)
		})

		// Kiosk endpoint, no session required.
		r.Post("/attendance/scan", handlers.Attendance.Scan)

		r.Group(func(pr chi.Router) {
			pr.Use(handlers.Auth.Middleware)

			pr.Get("/attendance/today", handlers.Attendance.TodayEvents)
			pr.Patch("/attendance/{id}/time", handlers.Attendance.CorrectTime)

			pr.Route("/employees", func(er chi.Router) {
				er.Post("/", handlers.Employee.Create)
				er.Get("/", handlers.Employee.List)
				er.Post("/qr/regenerate", handlers.Employee.RegenerateQRCodes)
				er.Get("/{employee_id}", handlers.Employee.Get)
				er.Put("/{employee_id}", handlers.Employee.Update)
				er.Delete("/{employee_id}", handlers.Employee.Deactivate)

				er.Route("/{employee_id}/schedules", func(sr chi.Router) {
					sr.Get("/", handlers.Schedule.List)
					sr.Put("/", handlers.Schedule.Set)
					sr.Delete("/{day}", handlers.Schedule.DeactivateDay)
				})
			})

			pr.Route("/reports", func(rr chi.Router) {
				rr.Get("/", handlers.Report.GetReport)
				rr.Get("/summary", handlers.Report.GetSummary)
				rr.Get("/export", handlers.Report.ExportExcel)
			})

			pr.Get("/dashboard", handlers.Report.GetDashboard)
		})
	})
}
