package domain

import (
	"time"

	"github.com/google/uuid"
)

// WebhookEvent is a persisted inbound Shopify webhook delivery.
// The ingestion path only ever inserts rows in status PENDING; status,
// attempts and last_error are owned by the downstream consumer.
type WebhookEvent struct {
	ID          uuid.UUID
	Topic       string
	Shop        string
	WebhookID   *string
	APIVersion  *string
	Payload     map[string]interface{} // JSONB
	Status      EventStatus
	Attempts    int
	LastError   *string
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// NewWebhookEvent is the insert shape for a verified delivery.
type NewWebhookEvent struct {
	Topic      string
	Shop       string
	WebhookID  *string
	APIVersion *string
	Payload    map[string]interface{}
}

// InventoryChange is one location-scoped quantity adjustment. Delta is the
// negation of the observed available quantity, so applying it drives the
// level to exactly zero. Zero deltas are never emitted.
type InventoryChange struct {
	InventoryItemID string
	LocationID      string
	Delta           int
}

// PolicyViolation is one variant whose inventory policy is not DENY.
type PolicyViolation struct {
	ProductID    string
	ProductTitle string
	VariantID    string
	SKU          string
	Policy       string
}
