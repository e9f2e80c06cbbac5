package app

import (
	"time"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/controller"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/monitoring"
	"learnhub_backend/pkg/security"
	"learnhub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type routerDeps struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Auth        *controller.AuthController
	Courses     *controller.CourseController
	Enrollments *controller.EnrollmentController
	Orders      *controller.OrderController
	Reviews     *controller.ReviewController
}

func NewRouter(cfg *config.Config, deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(security.CORS(cfg.CORS.AllowedOrigins))
	r.Use(security.Secure())
	r.Use(monitoring.MetricsMiddleware())
	if cfg.Tracing.Enabled {
		r.Use(tracing.GinMiddleware())
	}
	if cfg.RateLimit.MaxRequests > 0 {
		r.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))
	}

	health := controller.NewHealthController(deps.DB, deps.Redis)
	r.GET("/health", health.Health)
	r.GET("/metrics", monitoring.PrometheusHandler())

	api := r.Group("/api/v1")

	api.POST("/auth/register", deps.Auth.Register)
	api.POST("/auth/login", deps.Auth.Login)

	api.GET("/courses/:id", deps.Courses.Get)
	api.GET("/courses/:id/reviews", deps.Reviews.ListByCourse)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))

	teacher := authed.Group("")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	teacher.POST("/courses/:id/publish", deps.Courses.Publish)

	student := authed.Group("")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.POST("/orders", deps.Orders.Create)
		student.GET("/orders", deps.Orders.List)
		student.POST("/orders/:id/pay", deps.Orders.Pay)

		student.GET("/enrollments", deps.Enrollments.List)
		student.GET("/enrollments/:id/progress", deps.Enrollments.GetProgress)
		student.POST("/enrollments/:id/lessons/complete", deps.Enrollments.CompleteLesson)
		student.POST("/enrollments/:id/lessons/uncomplete", deps.Enrollments.UncompleteLesson)
		student.POST("/enrollments/:id/quizzes", deps.Enrollments.SubmitQuiz)
		student.PUT("/enrollments/:id/quizzes", deps.Enrollments.ResubmitQuiz)
		student.DELETE("/enrollments/:id/quizzes/:quizId", deps.Enrollments.DeleteQuizSubmission)

		student.POST("/courses/:id/reviews", deps.Reviews.Create)
	}

	return r
}
