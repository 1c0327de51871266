package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockfix/maintapi/internal/domain"
)

// WebhookEventRepository defines webhook event data access methods.
// The ingestion path only uses Create; the read methods back the audit
// surface and the oldest-pending index a consumer claims work from.
type WebhookEventRepository interface {
	Create(ctx context.Context, event *domain.NewWebhookEvent) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookEvent, error)
	ListByShopAndTopic(ctx context.Context, shop, topic string, limit int) ([]*domain.WebhookEvent, error)
	ListOldestPending(ctx context.Context, limit int) ([]*domain.WebhookEvent, error)
}

// Repositories holds all repository implementations
type Repositories struct {
	WebhookEvent WebhookEventRepository
}
