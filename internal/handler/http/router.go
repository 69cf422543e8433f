package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/timekeep/attendance-backend-go/internal/config"
	"github.com/timekeep/attendance-backend-go/internal/handler/http/middleware"
	"github.com/timekeep/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	reportHandler ReportHandler,
	employeeHandler EmployeeHandler,
	masterHandler MasterHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Post("/change-password", authHandler.ChangePassword)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock", attendanceHandler.Clock)
				r.Get("/me", reportHandler.MyHistory)

				// Admin, HR and managers
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAttendanceManager)
					r.Get("/monitor", attendanceHandler.Recent)
					r.Post("/", attendanceHandler.CreateManual)
					r.Put("/{id}", attendanceHandler.Edit)
					r.Delete("/{id}", attendanceHandler.Delete)
					r.Get("/{id}/change-log", attendanceHandler.ChangeLog)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireAttendanceManager)
				r.Get("/employees/{id}", reportHandler.EmployeeHistory)
				r.Get("/monthly", reportHandler.MonthlyTable)
				r.Get("/monthly/export", reportHandler.ExportMonthlyCSV)
				r.Get("/dashboard", reportHandler.Dashboard)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/profile", employeeHandler.GetProfile)
				r.Put("/profile", employeeHandler.UpdateProfile)

				// Admin and HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployeeAdmin)
					r.Get("/", employeeHandler.List)
					r.Post("/", employeeHandler.Create)
					r.Get("/{id}", employeeHandler.Get)
					r.Put("/{id}", employeeHandler.Update)
					r.Post("/{id}/toggle-active", employeeHandler.ToggleActive)
					r.Post("/{id}/face", employeeHandler.EnrollFace)
					r.Post("/{id}/reset-password", employeeHandler.ResetPassword)
				})
			})

			r.Route("/master", func(r chi.Router) {
				r.Use(middleware.RequireEmployeeAdmin)

				r.Route("/locations", func(r chi.Router) {
					r.Get("/", masterHandler.ListLocations)
					r.Post("/", masterHandler.CreateLocation)
					r.Get("/{id}", masterHandler.GetLocation)
					r.Put("/{id}", masterHandler.UpdateLocation)
					r.Delete("/{id}", masterHandler.DeleteLocation)
				})

				r.Route("/shifts", func(r chi.Router) {
					r.Get("/", masterHandler.ListShifts)
					r.Post("/", masterHandler.CreateShift)
					r.Get("/{id}", masterHandler.GetShift)
					r.Put("/{id}", masterHandler.UpdateShift)
					r.Delete("/{id}", masterHandler.DeleteShift)
				})
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
