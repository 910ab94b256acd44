package http

import (
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/securefront/workforce-backend-go/internal/config"
	"github.com/securefront/workforce-backend-go/internal/handler/http/middleware"
	"github.com/securefront/workforce-backend-go/internal/pkg/jwt"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Attendance AttendanceHandler
	Shift      ShiftHandler
	Site       SiteHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
}

func NewRouter(app config.AppConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
		Level:       logLevel(app.LogLevel),
	})).With(
		slog.String("app", app.Name),
		slog.String("version", app.Version),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/absentees", h.Attendance.MarkAbsentees)
				r.Get("/my", h.Attendance.GetMyAttendance)
				r.Get("/summary", h.Report.AttendanceSummary)
				r.Get("/site-summary", h.Report.SiteSummary)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Attendance.Get)
					r.Post("/breaks/start", h.Attendance.StartBreak)
					r.Post("/breaks/end", h.Attendance.EndBreak)
					r.Post("/clock-out", h.Attendance.ClockOut)
				})
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Get("/", h.Report.Timesheet)
				r.Get("/export", h.Report.ExportTimesheet)
			})

			r.Get("/dashboard/metrics", h.Dashboard.Metrics)

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", h.Shift.Calendar)
				r.Post("/", h.Shift.Create)
				r.Get("/open", h.Shift.ListOpen)
				r.Get("/assigned", h.Shift.ListAssigned)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Shift.Get)
					r.Put("/", h.Shift.Update)
					r.Delete("/", h.Shift.Delete)
					r.Post("/apply", h.Shift.Apply)
					r.Patch("/status", h.Shift.UpdateStatus)
				})
			})

			r.Route("/sites", func(r chi.Router) {
				r.Get("/", h.Site.List)
				r.Post("/", h.Site.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Site.Get)
					r.Put("/boundary", h.Site.UpdateBoundary)
					r.Post("/geofence/verify", h.Site.VerifyLocation)
				})
			})

			r.Route("/hourly-reports", func(r chi.Router) {
				r.Get("/", h.Report.ListHourlyReports)
				r.Post("/", h.Report.SubmitHourlyReport)
			})
		})
	})
	return r
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
