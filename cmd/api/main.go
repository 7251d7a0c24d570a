package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecovolt/portal/internal/http/handlers"
	httpmw "github.com/ecovolt/portal/internal/http/middleware"
	"github.com/ecovolt/portal/internal/platform/session"
	repo "github.com/ecovolt/portal/internal/repo/mongo"
	"github.com/ecovolt/portal/internal/service"
	"github.com/ecovolt/portal/pkg/config"
	"github.com/ecovolt/portal/pkg/events"
	"github.com/ecovolt/portal/pkg/logger"
	mw "github.com/ecovolt/portal/pkg/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Connect to the document store; this is the only dependency
	// whose absence aborts startup.
	ctx := context.Background()
	db, err := repo.Connect(ctx, cfg.Mongo)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Client().Disconnect(context.Background())

	// Event bus is best-effort: without NATS the API still serves,
	// notifications just stop flowing.
	var eventBus events.Publisher
	if bus, err := events.NewNATSEventBus(cfg.NATS.URL); err != nil {
		logger.Warn("Event bus unavailable, continuing without it", "error", err)
		eventBus = events.NoopEventBus{}
	} else {
		eventBus = bus
		defer bus.Close()
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repo.NewUserRepository(db)
	bookingRepo := repo.NewBookingRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, eventBus)
	bookingService := service.NewBookingService(bookingRepo, userRepo, eventBus)

	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.CookieName, cfg.IsProduction())

	h := handlers.New(authService, bookingService, sessions)
	rateLimiter := httpmw.NewRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)

	// Setup router
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Mount("/", h.Routes(rateLimiter.Middleware))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down portal API...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Portal API shutdown error", "error", err)
		}
	}()

	logger.Info("Starting portal API", "port", cfg.Server.Port, "env", cfg.Env)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Portal API error", "error", err)
		os.Exit(1)
	}
}
