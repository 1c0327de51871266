package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stockfix/maintapi/internal/config"
	"github.com/stockfix/maintapi/internal/domain"
	"github.com/stockfix/maintapi/internal/metrics"
	"github.com/stockfix/maintapi/internal/shopify"
)

// MaintenanceService runs the bulk maintenance operations against the Admin
// API. All remote work within one run is strictly sequential: at most one
// in-flight call exists per run, which keeps rate limits and failure
// attribution simple.
type MaintenanceService struct {
	executor Executor
	cfg      config.MaintenanceConfig
	logger   *zap.Logger
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(executor Executor, cfg config.MaintenanceConfig, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{
		executor: executor,
		cfg:      cfg,
		logger:   logger,
	}
}

type inventoryVariantNode struct {
	ID            string `json:"id"`
	SKU           string `json:"sku"`
	InventoryItem struct {
		ID              string `json:"id"`
		InventoryLevels struct {
			Edges []struct {
				Node struct {
					Location struct {
						ID string `json:"id"`
					} `json:"location"`
					Quantities []struct {
						Name     string `json:"name"`
						Quantity int    `json:"quantity"`
					} `json:"quantities"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"inventoryLevels"`
	} `json:"inventoryItem"`
}

// ZeroInventory walks every variant in the store and drives its available
// quantity to zero at each allowed location. An empty allowed-location list
// means every location. Changes are applied in batches of 250 via
// inventoryAdjustQuantities, with the reason fallback probing the shop's
// accepted reason values.
func (s *MaintenanceService) ZeroInventory(ctx context.Context) (*OperationResult, error) {
	start := time.Now()
	defer func() {
		metrics.BulkOperationDuration.WithLabelValues("zero_inventory").Observe(time.Since(start).Seconds())
	}()

	variants, err := s.fetchInventoryVariants(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch variant inventory: %w", err)
	}

	allowed := make(map[string]bool, len(s.cfg.AllowedLocationIDs))
	for _, id := range s.cfg.AllowedLocationIDs {
		allowed[id] = true
	}

	result := NewOperationResult()
	result.Scanned = len(variants)

	var changes []domain.InventoryChange
	for _, variant := range variants {
		for _, edge := range variant.InventoryItem.InventoryLevels.Edges {
			locationID := edge.Node.Location.ID
			if len(allowed) > 0 && !allowed[locationID] {
				continue
			}
			available := 0
			for _, q := range edge.Node.Quantities {
				if q.Name == "available" {
					available = q.Quantity
				}
			}
			if available == 0 {
				continue
			}
			changes = append(changes, domain.InventoryChange{
				InventoryItemID: variant.InventoryItem.ID,
				LocationID:      locationID,
				Delta:           -available,
			})
		}
	}

	s.logger.Info("Zero inventory: scan complete",
		zap.Int("variants", len(variants)),
		zap.Int("changes", len(changes)),
	)

	err = dispatchChunks(ctx, "inventoryAdjustQuantities", changes, 250, result,
		func(ctx context.Context, chunk []domain.InventoryChange) ([]shopify.UserError, error) {
			return mutateWithReasonFallback(ctx, func(ctx context.Context, reason string) ([]shopify.UserError, error) {
				return s.adjustQuantities(ctx, reason, chunk)
			})
		})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *MaintenanceService) fetchInventoryVariants(ctx context.Context) ([]inventoryVariantNode, error) {
	return shopify.FetchAllPages(ctx, func(ctx context.Context, after *string) (shopify.PageResult[inventoryVariantNode], error) {
		var page shopify.PageResult[inventoryVariantNode]

		variables := map[string]interface{}{
			"first": shopify.DefaultPageSize,
			"after": after,
		}
		resp, err := s.executor.Execute(ctx, shopify.VariantInventoryQuery, variables)
		if err != nil {
			return page, err
		}

		var result struct {
			ProductVariants struct {
				PageInfo shopify.PageInfo `json:"pageInfo"`
				Edges    []struct {
					Node inventoryVariantNode `json:"node"`
				} `json:"edges"`
			} `json:"productVariants"`
		}
		if err := json.Unmarshal(resp.Data, &result); err != nil {
			return page, fmt.Errorf("parse variant inventory response: %w", err)
		}

		page.HasNextPage = result.ProductVariants.PageInfo.HasNextPage
		page.EndCursor = result.ProductVariants.PageInfo.EndCursor
		for _, edge := range result.ProductVariants.Edges {
			page.Nodes = append(page.Nodes, edge.Node)
		}
		return page, nil
	})
}

func (s *MaintenanceService) adjustQuantities(ctx context.Context, reason string, changes []domain.InventoryChange) ([]shopify.UserError, error) {
	input := shopify.InventoryAdjustQuantitiesInput{
		Reason: reason,
		Name:   "available",
	}
	for _, change := range changes {
		input.Changes = append(input.Changes, shopify.InventoryChangeInput{
			InventoryItemID: change.InventoryItemID,
			LocationID:      change.LocationID,
			Delta:           change.Delta,
		})
	}

	variables := map[string]interface{}{
		"input": input,
	}

	metrics.GraphQLCallsTotal.WithLabelValues("inventoryAdjustQuantities").Inc()
	resp, err := s.executor.Execute(ctx, shopify.InventoryAdjustQuantitiesMutation, variables)
	if err != nil {
		return nil, err
	}

	var result struct {
		InventoryAdjustQuantities struct {
			UserErrors []shopify.UserError `json:"userErrors"`
		} `json:"inventoryAdjustQuantities"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse inventoryAdjustQuantities response: %w", err)
	}

	return result.InventoryAdjustQuantities.UserErrors, nil
}
