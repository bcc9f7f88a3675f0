package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/config"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/holiday"
	appHTTP "github.com/cmlabs-hris/leave-calendar/internal/handler/http"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/backend"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/cache"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/cron"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/database"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/session"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/sse"
	"github.com/cmlabs-hris/leave-calendar/internal/repository/postgresql"
	calendarService "github.com/cmlabs-hris/leave-calendar/internal/service/calendar"
	holidayService "github.com/cmlabs-hris/leave-calendar/internal/service/holiday"
	leaveService "github.com/cmlabs-hris/leave-calendar/internal/service/leave"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("app", cfg.App.Name)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var holidayRepo holiday.HolidayRepository
	if cfg.HasDatabase() {
		db, err := database.NewPostgreSQLDB(ctx, database.PoolConfig{
			DSN:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return err
		}
		defer db.Close()

		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			return err
		}
		holidayRepo = postgresql.NewHolidayRepository(db)
		slog.Info("Holiday store connected")
	} else {
		slog.Warn("DATABASE_URL not set, serving built-in holidays read-only")
	}

	gateways := backend.Factory(backend.Config{
		BaseURL:  cfg.Backend.BaseURL,
		Timeout:  cfg.Backend.Timeout,
		MaxPages: cfg.Backend.MaxPages,
	})
	requestCache := cache.New(cfg.Cache.TTL)
	hub := sse.NewHub()
	sessions := session.NewStore(cfg.Session.IdleTimeout)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	if !JWTService.Enabled() {
		slog.Warn("JWT_SECRET_KEY not set, bearer tokens are forwarded without verification")
	}

	holidaySvc := holidayService.NewHolidayService(holidayRepo, cfg.Holiday.Country)
	leaveSvc := leaveService.NewLeaveService(gateways, requestCache, hub)
	calendarSvc := calendarService.NewCalendarService(gateways, requestCache, holidaySvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        cfg.App.Name,
			Version:        cfg.App.Version,
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.App.AllowedOrigins,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		sessions,
		appHTTP.Handlers{
			Calendar: appHTTP.NewCalendarHandler(calendarSvc),
			Leave:    appHTTP.NewLeaveHandler(leaveSvc),
			Holiday:  appHTTP.NewHolidayHandler(holidaySvc),
			Event:    appHTTP.NewEventHandler(hub),
			Session:  appHTTP.NewSessionHandler(leaveSvc),
		},
	)

	scheduler := cron.NewScheduler()
	cron.NewCacheJobs(requestCache, cfg.Jobs.CacheSweepInterval).RegisterJobs(scheduler)
	cron.NewSessionJobs(sessions, cfg.Jobs.SessionSweepInterval).RegisterJobs(scheduler)
	if holidayRepo != nil {
		cron.NewHolidayJobs(holidaySvc, cfg.Jobs.HolidaySeedInterval).RegisterJobs(scheduler)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// No WriteTimeout: /events streams stay open. BaseContext ends them on shutdown.
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       90 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "backend", cfg.Backend.BaseURL)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
