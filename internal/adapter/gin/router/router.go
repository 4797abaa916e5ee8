package router

import (
	"net/http"

	"user-directory/internal/adapter/gin/handler"
	"user-directory/internal/adapter/gin/middleware"
	"user-directory/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter configures a Gin router with all routes and middleware.
func SetupRouter(
	userHandler *handler.UserHandler,
	rateLimiter *middleware.RateLimiter,
	corsCfg config.CORSConfig,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS(corsCfg))
	if rateLimiter != nil {
		router.Use(rateLimiter.Handler())
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "user-directory",
		})
	})

	router.GET("/", userHandler.Home)
	router.GET("/users", userHandler.ListUsers)
	router.GET("/users/:id", userHandler.GetUser)
	router.POST("/users", userHandler.CreateUser)
	router.GET("/search", userHandler.SearchUsers)

	return router
}
