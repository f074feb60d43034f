package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pipedrive-webhook/pkg/middleware"
)

// NewRouter wires the handlers and middleware onto a gin engine
func NewRouter(handlers *Handlers, webhookPath string, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(logger),
		middleware.CORS(),
	)

	router.POST(webhookPath, handlers.HandleSubmission)
	router.GET(webhookPath, handlers.WebhookStatus)
	router.OPTIONS(webhookPath, handlers.Preflight)
	router.NoMethod(handlers.MethodNotAllowed)

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
	})

	return router
}
