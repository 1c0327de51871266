package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stockfix/maintapi/internal/repository"
	"github.com/stockfix/maintapi/internal/service"
	apperrors "github.com/stockfix/maintapi/pkg/errors"
)

// HandleZeroInventory handles POST /v1/admin/operations/zero-inventory.
func HandleZeroInventory(svc *service.MaintenanceService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.ZeroInventory(c.Request.Context())
		if err != nil {
			logger.Error("Zero inventory run failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// HandleDenyPolicySweep handles POST /v1/admin/operations/deny-policy.
func HandleDenyPolicySweep(svc *service.MaintenanceService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.DenyPolicySweep(c.Request.Context())
		if err != nil {
			logger.Error("Deny policy sweep failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// HandleArchiveVendor handles POST /v1/admin/operations/archive-vendor.
// The vendor comes from the request body, falling back to the configured
// default.
func HandleArchiveVendor(svc *service.MaintenanceService, defaultVendor string, logger *zap.Logger) gin.HandlerFunc {
	type request struct {
		Vendor string `json:"vendor"`
	}
	return func(c *gin.Context) {
		var req request
		// Body is optional; ignore binding errors and use the default
		_ = c.ShouldBindJSON(&req)
		vendor := req.Vendor
		if vendor == "" {
			vendor = defaultVendor
		}

		result, err := svc.ArchiveVendorProducts(c.Request.Context(), vendor)
		if err != nil {
			if _, ok := err.(*apperrors.ErrValidation); ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Vendor archive failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// HandlePolicyScan handles GET /v1/admin/operations/policy-scan.
func HandlePolicyScan(svc *service.MaintenanceService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.ScanInventoryPolicy(c.Request.Context())
		if err != nil {
			logger.Error("Policy scan failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// HandleListEvents handles GET /v1/admin/events?shop=&topic=&limit= for
// audit/debugging of ingested deliveries.
func HandleListEvents(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := c.Query("shop")
		topic := c.Query("topic")
		if shop == "" || topic == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "shop and topic query parameters are required"})
			return
		}

		limit := 50
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
				limit = n
			}
		}

		events, err := repos.WebhookEvent.ListByShopAndTopic(c.Request.Context(), shop, topic, limit)
		if err != nil {
			logger.Error("Failed to list webhook events", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
	}
}
