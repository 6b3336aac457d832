// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/aura-studio/class-booking/internal/calendar"
	"github.com/aura-studio/class-booking/internal/config"
	"github.com/aura-studio/class-booking/internal/database"
	"github.com/aura-studio/class-booking/internal/handler"
	"github.com/aura-studio/class-booking/internal/logging"
	"github.com/aura-studio/class-booking/internal/ratelimit"
	"github.com/aura-studio/class-booking/internal/repository"
	"github.com/aura-studio/class-booking/internal/service"
)

func main() {
	ctx := context.Background()
	logger := logging.New("class-booking")

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Error("config", "error", err)
		os.Exit(1)
	}

	// ── 1. Connect to PostgreSQL and run migrations ──────────────────────
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		logger.Error("migrate", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to postgres", "host", cfg.Database.Host, "db", cfg.Database.Name)

	// ── 2. Wire up layers ────────────────────────────────────────────────
	instructorRepo := repository.NewInstructorRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	instructorSvc := service.NewInstructorService(instructorRepo)
	eventSvc := service.NewEventService(eventRepo, instructorRepo)
	bookingSvc := service.NewBookingService(bookingRepo, eventRepo)

	cal := calendar.New(cfg.Studio.Location, cfg.Studio.WhatsApp)

	instructorHandler := handler.NewInstructorHandler(instructorSvc)
	eventHandler := handler.NewEventHandler(eventSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc, cal)

	limiter := newLimiter(cfg)

	// ── 3. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer)          // recover from panics, return 500
	r.Use(chimiddleware.RequestID)          // attach request IDs
	r.Use(chimiddleware.RealIP)             // trust X-Forwarded-For
	r.Use(handler.Logger(logger))           // structured access log
	r.Use(handler.CORS(cfg.AllowedOrigins)) // CORS for the browser frontend

	// Health
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/instructors", func(r chi.Router) {
			r.Post("/", instructorHandler.Create)
			r.Get("/", instructorHandler.List)
			r.Get("/{id}", instructorHandler.Get)
			r.Delete("/{id}", instructorHandler.Delete)
		})

		r.Route("/events", func(r chi.Router) {
			r.Post("/", eventHandler.Create)
			r.Get("/", eventHandler.List)
			r.Get("/{id}", eventHandler.Get)
			r.Put("/{id}", eventHandler.Update)
			r.Delete("/{id}", eventHandler.Delete)
			r.Get("/{id}/bookings", bookingHandler.ListForEvent)
		})

		r.Get("/availability", eventHandler.Availability)

		r.Route("/bookings", func(r chi.Router) {
			r.With(handler.RateLimit(limiter, logger)).Post("/", bookingHandler.Create)
			r.Get("/", bookingHandler.List)
			r.Delete("/{id}", bookingHandler.Delete)
			r.Get("/{id}/calendar", bookingHandler.Calendar)
			r.Get("/{id}/calendar.ics", bookingHandler.CalendarICS)
		})
	})

	// Static HTML – serve the web/ directory at the root.
	webFS := http.Dir("./web")
	r.Handle("/*", http.FileServer(webFS))

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// newLimiter picks the Redis limiter when an address is configured, the
// in-memory one otherwise.
func newLimiter(cfg config.Config) ratelimit.Limiter {
	window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		return ratelimit.NewRedisLimiter(rdb, cfg.RateLimit.Limit, window, "booking")
	}
	return ratelimit.NewMemoryLimiter(cfg.RateLimit.Limit, window)
}
