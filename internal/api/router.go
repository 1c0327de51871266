package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/stockfix/maintapi/internal/api/handlers"
	"github.com/stockfix/maintapi/internal/api/middleware"
	"github.com/stockfix/maintapi/internal/config"
	"github.com/stockfix/maintapi/internal/repository"
	"github.com/stockfix/maintapi/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, svc *service.MaintenanceService, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Liveness probe: plain text, never cached
	router.GET("/healthz", func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.String(http.StatusOK, "ok")
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Shopify webhook ingestion: verify, persist PENDING, acknowledge
	router.POST("/webhooks/shopify", handlers.HandleShopifyWebhook(cfg, repos, logger))

	// Admin operations (require operator key)
	v1 := router.Group("/v1")
	{
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminAuthMiddleware(cfg.AdminAPIKeyHash, logger))
		{
			adminRoutes.POST("/operations/zero-inventory", handlers.HandleZeroInventory(svc, logger))
			adminRoutes.POST("/operations/deny-policy", handlers.HandleDenyPolicySweep(svc, logger))
			adminRoutes.POST("/operations/archive-vendor", handlers.HandleArchiveVendor(svc, cfg.Maintenance.ArchiveVendor, logger))
			adminRoutes.GET("/operations/policy-scan", handlers.HandlePolicyScan(svc, logger))
			adminRoutes.GET("/events", handlers.HandleListEvents(repos, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
