package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/petokpredict/server/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(calculator *handlers.CalculatorHandler, settings *handlers.SettingsHandler, history *handlers.HistoryHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/price", calculator.GetPrice)
		api.POST("/price/override", calculator.OverridePrice)
		api.POST("/compute", calculator.Compute)
		api.POST("/scenarios", calculator.Scenarios)

		api.GET("/settings/advanced", settings.Get)
		api.PATCH("/settings/advanced", settings.Patch)
		api.POST("/settings/advanced/toggle", settings.Toggle)
		api.POST("/settings/advanced/advice", settings.RequestAdvice)

		api.POST("/calculations", history.Save)
		api.GET("/calculations", history.List)
		api.DELETE("/calculations/:id", history.Delete)
		api.POST("/calculations/:id/favorite", history.Favorite)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
