package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/unifylabs/unify-backend/internal/config"
	"github.com/unifylabs/unify-backend/internal/database"
	"github.com/unifylabs/unify-backend/internal/handler"
	"github.com/unifylabs/unify-backend/internal/logger"
	"github.com/unifylabs/unify-backend/internal/repository"
	"github.com/unifylabs/unify-backend/internal/router"
	"github.com/unifylabs/unify-backend/internal/service"
	"github.com/unifylabs/unify-backend/internal/validator"
	"github.com/unifylabs/unify-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Unify Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	notificationService := service.NewNotificationService(notificationRepo, rdb, log)
	catalogService := service.NewCatalogService(courseRepo, rdb, cfg.CatalogCacheTTL, log)
	optimizationService := service.NewOptimizationService(slotRepo, cfg.OptimizeBudget)
	registrationService := service.NewRegistrationService(courseRepo, slotRepo, enrollmentRepo, notificationService, log)
	transcriptService := service.NewTranscriptService(enrollmentRepo)
	taskService := service.NewTaskService(taskRepo)
	messageService := service.NewMessageService(messageRepo, userRepo, notificationService, log)
	courseService := service.NewCourseService(courseRepo, slotRepo, catalogService, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService, userRepo, studentRepo),
		Catalog:      handler.NewCatalogHandler(catalogService),
		Registration: handler.NewRegistrationHandler(optimizationService, registrationService),
		Transcript:   handler.NewTranscriptHandler(transcriptService),
		Task:         handler.NewTaskHandler(taskService),
		Message:      handler.NewMessageHandler(messageService, userRepo),
		Notification: handler.NewNotificationHandler(notificationService),
		Course:       handler.NewCourseHandler(courseService),
		WS:           handler.NewWSHandler(rdb, notificationService, log, cfg.AllowedOrigins),
		System:       handler.NewSystemHandler(rdb, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	notificationWorker := worker.NewNotificationWorker(notificationRepo, rdb, log)
	deadlineWorker := worker.NewDeadlineWorker(taskRepo, rdb, log)

	go notificationWorker.Start(workerCtx)
	go deadlineWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
