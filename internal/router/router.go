package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/unifylabs/unify-backend/internal/config"
	"github.com/unifylabs/unify-backend/internal/handler"
	"github.com/unifylabs/unify-backend/internal/middleware"
	"github.com/unifylabs/unify-backend/internal/response"
	"github.com/unifylabs/unify-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Catalog      *handler.CatalogHandler
	Registration *handler.RegistrationHandler
	Transcript   *handler.TranscriptHandler
	Task         *handler.TaskHandler
	Message      *handler.MessageHandler
	Notification *handler.NotificationHandler
	Course       *handler.CourseHandler
	WS           *handler.WSHandler
	System       *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth and optimizer routes. Login is brute-forceable
	// and the optimizer burns CPU, so both get a per-IP budget.
	authLimiter := middleware.NewRateLimiter(30, time.Minute)
	optimizeLimiter := middleware.NewRateLimiter(20, time.Minute)

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.Me)
		auth.POST("/logout", middleware.RequireJWT(authService), handlers.Auth.Logout)
	}

	// ─── 2. Student Group (JWT + Active Session) ───────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireJWT(authService),
		middleware.CheckActiveSession(authService),
		middleware.RequireStudent(),
	)
	{
		studentAPI.GET("/catalog", middleware.CacheControl(60), handlers.Catalog.List)

		studentAPI.POST("/schedule/optimize", optimizeLimiter.Middleware(), handlers.Registration.Optimize)

		studentAPI.POST("/enrollments", handlers.Registration.Enroll)
		studentAPI.GET("/enrollments", handlers.Registration.ListEnrollments)
		studentAPI.DELETE("/enrollments/:id", handlers.Registration.DropEnrollment)

		studentAPI.GET("/transcript", handlers.Transcript.Get)

		studentAPI.GET("/tasks", handlers.Task.List)
		studentAPI.POST("/tasks", handlers.Task.Create)
		studentAPI.PATCH("/tasks/:id", handlers.Task.UpdateStatus)
		studentAPI.DELETE("/tasks/:id", handlers.Task.Delete)
	}

	// ─── 3. Shared Group (any authenticated user) ──────────────────────
	userAPI := router.Group("/api/v1")
	userAPI.Use(
		middleware.RequireJWT(authService),
		middleware.CheckActiveSession(authService),
	)
	{
		userAPI.POST("/messages", handlers.Message.Send)
		userAPI.GET("/messages", handlers.Message.Conversations)
		userAPI.GET("/messages/:user_id", handlers.Message.Thread)

		userAPI.GET("/notifications", handlers.Notification.List)
		userAPI.POST("/notifications/:id/read", handlers.Notification.MarkRead)
		userAPI.POST("/notifications/read-all", handlers.Notification.MarkAllRead)
	}

	// ─── 4. WebSocket Group ────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(
		middleware.RequireWSAuth(authService),
		middleware.CheckActiveSession(authService),
	)
	{
		ws.GET("/notifications/stream", handlers.WS.NotificationStream)
	}

	// ─── 5. Staff Group (JWT + role) ───────────────────────────────────
	staffAPI := router.Group("/api/v1/staff")
	staffAPI.Use(
		middleware.RequireJWT(authService),
		middleware.CheckActiveSession(authService),
		middleware.RequireStaff(),
	)
	{
		staffAPI.GET("/courses", handlers.Course.List)
		staffAPI.POST("/courses", handlers.Course.Create)
		staffAPI.PUT("/courses/:id", handlers.Course.Update)
		staffAPI.DELETE("/courses/:id", handlers.Course.Delete)

		staffAPI.GET("/timetable/:code", handlers.Course.Slots)
		staffAPI.PUT("/timetable/:code", handlers.Course.ReplaceSlots)

		staffAPI.GET("/system/metrics", handlers.System.SystemMetricsSSE)
	}

	return router
}
