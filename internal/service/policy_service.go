package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stockfix/maintapi/internal/domain"
	"github.com/stockfix/maintapi/internal/metrics"
	"github.com/stockfix/maintapi/internal/shopify"
)

const policyDeny = "DENY"

type policyVariantNode struct {
	ID              string `json:"id"`
	SKU             string `json:"sku"`
	InventoryPolicy string `json:"inventoryPolicy"`
	Product         struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"product"`
}

// DenyPolicySweep forces inventoryPolicy DENY on every variant that sells
// when out of stock. Variants are grouped by parent product in encounter
// order and updated per product via productVariantsBulkUpdate; a store
// already at DENY everywhere results in zero mutation calls.
func (s *MaintenanceService) DenyPolicySweep(ctx context.Context) (*OperationResult, error) {
	start := time.Now()
	defer func() {
		metrics.BulkOperationDuration.WithLabelValues("deny_policy_sweep").Observe(time.Since(start).Seconds())
	}()

	variants, err := s.fetchPolicyVariants(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch variants: %w", err)
	}

	result := NewOperationResult()
	result.Scanned = len(variants)

	// Group offending variants by parent product, preserving encounter
	// order within each group and across products.
	byProduct := make(map[string][]policyVariantNode)
	var productOrder []string
	for _, variant := range variants {
		if variant.InventoryPolicy == policyDeny {
			continue
		}
		productID := variant.Product.ID
		if _, seen := byProduct[productID]; !seen {
			productOrder = append(productOrder, productID)
		}
		byProduct[productID] = append(byProduct[productID], variant)
	}

	s.logger.Info("Deny policy sweep: scan complete",
		zap.Int("variants", len(variants)),
		zap.Int("products_to_fix", len(productOrder)),
	)

	for _, productID := range productOrder {
		scope := fmt.Sprintf("productVariantsBulkUpdate(%s)", productID)
		err := dispatchChunks(ctx, scope, byProduct[productID], 250, result,
			func(ctx context.Context, chunk []policyVariantNode) ([]shopify.UserError, error) {
				return s.bulkUpdatePolicy(ctx, productID, chunk)
			})
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// PolicyScanResult is the read-only violation report.
type PolicyScanResult struct {
	OK         bool                     `json:"ok"`
	Scanned    int                      `json:"scanned"`
	Violations int                      `json:"violations"`
	Samples    []domain.PolicyViolation `json:"samples"`
}

// ScanInventoryPolicy reports every variant whose policy is not DENY
// without mutating anything. Samples are capped like bulk error samples.
func (s *MaintenanceService) ScanInventoryPolicy(ctx context.Context) (*PolicyScanResult, error) {
	start := time.Now()
	defer func() {
		metrics.BulkOperationDuration.WithLabelValues("policy_scan").Observe(time.Since(start).Seconds())
	}()

	variants, err := s.fetchPolicyVariants(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch variants: %w", err)
	}

	result := &PolicyScanResult{
		OK:      true,
		Scanned: len(variants),
		Samples: []domain.PolicyViolation{},
	}
	for _, variant := range variants {
		if variant.InventoryPolicy == policyDeny {
			continue
		}
		result.Violations++
		if len(result.Samples) < maxSampleErrors {
			result.Samples = append(result.Samples, domain.PolicyViolation{
				ProductID:    variant.Product.ID,
				ProductTitle: variant.Product.Title,
				VariantID:    variant.ID,
				SKU:          variant.SKU,
				Policy:       variant.InventoryPolicy,
			})
		}
	}

	return result, nil
}

func (s *MaintenanceService) fetchPolicyVariants(ctx context.Context) ([]policyVariantNode, error) {
	return shopify.FetchAllPages(ctx, func(ctx context.Context, after *string) (shopify.PageResult[policyVariantNode], error) {
		var page shopify.PageResult[policyVariantNode]

		variables := map[string]interface{}{
			"first": shopify.DefaultPageSize,
			"after": after,
		}
		resp, err := s.executor.Execute(ctx, shopify.VariantsWithPolicyQuery, variables)
		if err != nil {
			return page, err
		}

		var result struct {
			ProductVariants struct {
				PageInfo shopify.PageInfo `json:"pageInfo"`
				Edges    []struct {
					Node policyVariantNode `json:"node"`
				} `json:"edges"`
			} `json:"productVariants"`
		}
		if err := json.Unmarshal(resp.Data, &result); err != nil {
			return page, fmt.Errorf("parse variants response: %w", err)
		}

		page.HasNextPage = result.ProductVariants.PageInfo.HasNextPage
		page.EndCursor = result.ProductVariants.PageInfo.EndCursor
		for _, edge := range result.ProductVariants.Edges {
			page.Nodes = append(page.Nodes, edge.Node)
		}
		return page, nil
	})
}

func (s *MaintenanceService) bulkUpdatePolicy(ctx context.Context, productID string, variants []policyVariantNode) ([]shopify.UserError, error) {
	inputs := make([]shopify.ProductVariantsBulkInput, len(variants))
	for i, variant := range variants {
		inputs[i] = shopify.ProductVariantsBulkInput{
			ID:              variant.ID,
			InventoryPolicy: policyDeny,
		}
	}

	variables := map[string]interface{}{
		"productId": productID,
		"variants":  inputs,
	}

	metrics.GraphQLCallsTotal.WithLabelValues("productVariantsBulkUpdate").Inc()
	resp, err := s.executor.Execute(ctx, shopify.ProductVariantsBulkUpdateMutation, variables)
	if err != nil {
		return nil, err
	}

	var result struct {
		ProductVariantsBulkUpdate struct {
			UserErrors []shopify.UserError `json:"userErrors"`
		} `json:"productVariantsBulkUpdate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse productVariantsBulkUpdate response: %w", err)
	}

	return result.ProductVariantsBulkUpdate.UserErrors, nil
}
