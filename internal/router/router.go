package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quizlab/quizlab-backend/internal/config"
	"github.com/quizlab/quizlab-backend/internal/handler"
	"github.com/quizlab/quizlab-backend/internal/middleware"
	"github.com/quizlab/quizlab-backend/internal/response"
	"github.com/quizlab/quizlab-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Import   *handler.ImportHandler
	Question *handler.QuestionHandler
	Quiz     *handler.QuizHandler
	System   *handler.SystemHandler
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

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	authLimiter := middleware.NewRateLimiter(30, time.Minute)
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/token", handlers.Auth.Token)
	}

	// ─── 2. Quiz Sessions (Public) ─────────────────────────────────────
	sessions := router.Group("/api/v1/sessions")
	{
		sessions.POST("", handlers.Quiz.CreateSession)
		sessions.GET("/:id/question", handlers.Quiz.CurrentQuestion)
		sessions.POST("/:id/answers", handlers.Quiz.Answer)
		sessions.GET("/:id/results", handlers.Quiz.Results)
		sessions.POST("/:id/retry", handlers.Quiz.Retry)
	}

	// ─── 3. Admin Group (JWT) ──────────────────────────────────────────
	importLimiter := middleware.NewRateLimiter(10, time.Minute)
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.RequireAdminJWT(authService))
	{
		admin.POST("/questions/import", importLimiter.Middleware(), handlers.Import.Import)
		admin.GET("/questions", handlers.Question.ListQuestions)
		admin.GET("/stats", handlers.System.Stats)
	}

	return router
}
