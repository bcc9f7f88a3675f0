package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/leave-calendar/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/session"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterConfig struct {
	AppName        string
	Version        string
	Env            string
	AllowedOrigins []string
	LogLevel       slog.Level
}

type Handlers struct {
	Calendar CalendarHandler
	Leave    LeaveHandler
	Holiday  HolidayHandler
	Event    EventHandler
	Session  SessionHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, sessions *session.Store, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-Id"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires a session
		r.Group(func(r chi.Router) {
			r.Use(JWTService.Verifier())
			r.Use(middleware.SessionRequired(sessions, JWTService.JWTAuth()))

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/month", h.Calendar.Month)
				r.Get("/day", h.Calendar.Day)
				r.Get("/export", h.Calendar.Export)
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Get("/", h.Leave.ListRequests)
				r.Post("/", h.Leave.CreateRequest)
				r.Get("/me", h.Leave.GetMyRequests)
				r.Get("/search", h.Leave.SearchRequests)
				r.Get("/duration", h.Leave.Duration)
				r.Get("/monthly-statistics/{year}", h.Leave.MonthlyStatistics)
				r.Put("/{id}", h.Leave.UpdateRequestStatus)
			})

			r.Get("/leave-balances/me", h.Leave.GetMyBalances)
			r.Get("/departments", h.Leave.ListDepartments)

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)
				r.Post("/", h.Holiday.Create)
				r.Delete("/{id}", h.Holiday.Delete)
			})

			r.Get("/events", h.Event.Stream)

			r.Route("/session", func(r chi.Router) {
				r.Get("/", h.Session.Me)
				r.Post("/logout", h.Session.Logout)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"NOT_FOUND","message":"Route not found"}}`))
	})
	return r
}
