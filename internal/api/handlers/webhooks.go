package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stockfix/maintapi/internal/config"
	"github.com/stockfix/maintapi/internal/domain"
	"github.com/stockfix/maintapi/internal/metrics"
	"github.com/stockfix/maintapi/internal/repository"
	"github.com/stockfix/maintapi/internal/webhooks"
)

// HandleShopifyWebhook handles POST /webhooks/shopify.
// Flow: verify signature over the raw body, parse the payload, persist a
// PENDING event, acknowledge. Processing the event's business effect is
// deliberately deferred to an out-of-band consumer so the response stays
// inside Shopify's delivery deadline; nothing is persisted on any failure.
func HandleShopifyWebhook(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Shopify HMAC is computed over raw bytes, so buffer before parsing
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			metrics.WebhooksReceivedTotal.WithLabelValues("read_error").Inc()
			c.String(http.StatusBadRequest, "failed to read body")
			return
		}

		verification, verifyErr := webhooks.Verify(cfg.ShopifyWebhookSecret, body, c.Request.Header)
		if verifyErr != nil {
			if verifyErr.Status == http.StatusInternalServerError {
				logger.Error("Webhook rejected: secret not configured")
			} else {
				logger.Warn("Webhook rejected",
					zap.Int("status", verifyErr.Status),
					zap.String("reason", verifyErr.Message),
				)
			}
			metrics.WebhooksReceivedTotal.WithLabelValues("rejected").Inc()
			c.String(verifyErr.Status, verifyErr.Message)
			return
		}

		// Empty body is a valid delivery with an empty payload
		payload := map[string]interface{}{}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				logger.Warn("Webhook rejected: malformed payload",
					zap.String("topic", verification.Topic),
					zap.String("shop", verification.Shop),
					zap.Error(err),
				)
				metrics.WebhooksReceivedTotal.WithLabelValues("malformed").Inc()
				c.String(http.StatusBadRequest, "invalid JSON payload")
				return
			}
		}

		event := &domain.NewWebhookEvent{
			Topic:      verification.Topic,
			Shop:       verification.Shop,
			WebhookID:  optional(verification.WebhookID),
			APIVersion: optional(verification.APIVersion),
			Payload:    payload,
		}

		id, err := repos.WebhookEvent.Create(c.Request.Context(), event)
		if err != nil {
			metrics.WebhooksReceivedTotal.WithLabelValues("store_error").Inc()
			c.String(http.StatusInternalServerError, "failed to persist event")
			return
		}

		logger.Info("Webhook event persisted",
			zap.String("id", id.String()),
			zap.String("topic", verification.Topic),
			zap.String("shop", verification.Shop),
		)
		metrics.WebhooksReceivedTotal.WithLabelValues("accepted").Inc()
		metrics.WebhookEventsPersistedTotal.Inc()

		c.String(http.StatusOK, "OK")
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
