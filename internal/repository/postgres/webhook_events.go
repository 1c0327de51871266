package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockfix/maintapi/internal/domain"
)

type webhookEventRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWebhookEventRepository creates a new webhook event repository
func NewWebhookEventRepository(db *sql.DB, logger *zap.Logger) *webhookEventRepository {
	return &webhookEventRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new event in status PENDING with zero attempts. This is
// the only write the ingestion path performs; it must commit before the
// webhook endpoint acknowledges the delivery.
func (r *webhookEventRepository) Create(ctx context.Context, event *domain.NewWebhookEvent) (uuid.UUID, error) {
	query := `
		INSERT INTO webhook_events (id, topic, shop, webhook_id, api_version, payload, status, attempts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	id := uuid.New()
	now := time.Now()

	payloadJSON, err := json.Marshal(event.Payload)
	if err != nil {
		return uuid.Nil, err
	}

	_, err = r.db.ExecContext(ctx, query,
		id,
		event.Topic,
		event.Shop,
		event.WebhookID,
		event.APIVersion,
		payloadJSON,
		domain.EventStatusPending,
		0,
		now,
	)

	if err != nil {
		r.logger.Error("Failed to create webhook event",
			zap.String("topic", event.Topic),
			zap.String("shop", event.Shop),
			zap.Error(err),
		)
		return uuid.Nil, err
	}

	return id, nil
}

func (r *webhookEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookEvent, error) {
	query := selectColumns + ` WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// ListByShopAndTopic returns events for one shop and topic, oldest first.
// Backed by the (shop, topic, created_at) index; used for audit/debug.
func (r *webhookEventRepository) ListByShopAndTopic(ctx context.Context, shop, topic string, limit int) ([]*domain.WebhookEvent, error) {
	query := selectColumns + `
		WHERE shop = $1 AND topic = $2
		ORDER BY created_at ASC
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, shop, topic, limit)
	if err != nil {
		r.logger.Error("Failed to list webhook events by shop and topic", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListOldestPending returns PENDING events oldest first. Backed by the
// (status, created_at) index; a consumer claims work from the head.
func (r *webhookEventRepository) ListOldestPending(ctx context.Context, limit int) ([]*domain.WebhookEvent, error) {
	query := selectColumns + `
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, domain.EventStatusPending, limit)
	if err != nil {
		r.logger.Error("Failed to list pending webhook events", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

const selectColumns = `
	SELECT id, topic, shop, webhook_id, api_version, payload, status, attempts, last_error, created_at, processed_at
	FROM webhook_events`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *webhookEventRepository) scanOne(row rowScanner) (*domain.WebhookEvent, error) {
	var event domain.WebhookEvent
	var payloadJSON []byte

	err := row.Scan(
		&event.ID,
		&event.Topic,
		&event.Shop,
		&event.WebhookID,
		&event.APIVersion,
		&payloadJSON,
		&event.Status,
		&event.Attempts,
		&event.LastError,
		&event.CreatedAt,
		&event.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(payloadJSON) > 0 {
		if err := json.Unmarshal(payloadJSON, &event.Payload); err != nil {
			return nil, err
		}
	}

	return &event, nil
}

func (r *webhookEventRepository) scanAll(rows *sql.Rows) ([]*domain.WebhookEvent, error) {
	var events []*domain.WebhookEvent
	for rows.Next() {
		event, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
