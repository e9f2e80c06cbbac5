package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/controller"
	"learnhub_backend/internal/event"
	"learnhub_backend/internal/listener"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"
	"learnhub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Run wires the whole application and blocks until shutdown. Wiring order
// matters only for the bus: every listener subscribes before the first
// request can publish.
func Run(cfg *config.Config) error {
	logger.InitLogger(cfg.Server.Mode)
	defer logger.Log.Sync()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return err
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis only backs the event dedup fast path and is optional in
		// development.
		logger.Log.Warn("redis unavailable, continuing without event dedup", zap.Error(err))
		rdb = nil
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("learnhub-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(ctx)
		}()
	}

	monitoring.Init()

	bus := event.NewBus(
		cfg.Events.HandlerRetries,
		time.Duration(cfg.Events.RetryBackoffMS)*time.Millisecond,
		time.Duration(cfg.Events.HandlerTimeoutS)*time.Second,
	)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	salaryRepo := repository.NewSalaryRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg)
	courseService := service.NewCourseService(courseRepo, bus)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo, bus)
	orderService := service.NewOrderService(orderRepo, bus)
	reviewService := service.NewReviewService(reviewRepo, enrollmentRepo, bus)

	renderer, err := service.NewImageCertificateRenderer()
	if err != nil {
		return err
	}
	storage := service.NewStorageService(cfg)
	certificateService := service.NewCertificateService(enrollmentRepo, userRepo, courseRepo, renderer, storage)

	// Listeners
	listener.NewEnrollmentListener(enrollmentService, rdb).Register(bus)
	listener.NewCertificateListener(certificateService, reviewRepo).Register(bus)
	listener.NewSalaryListener(salaryRepo).Register(bus)

	router := NewRouter(cfg, routerDeps{
		DB:          db,
		Redis:       rdb,
		Auth:        controller.NewAuthController(authService),
		Courses:     controller.NewCourseController(courseService),
		Enrollments: controller.NewEnrollmentController(enrollmentService),
		Orders:      controller.NewOrderController(orderService),
		Reviews:     controller.NewReviewController(reviewService),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("forced shutdown", zap.Error(err))
	}

	// Let in-flight event deliveries (certificate generation in particular)
	// run to completion before the process exits.
	bus.Wait()

	logger.Log.Info("server stopped")
	return nil
}
