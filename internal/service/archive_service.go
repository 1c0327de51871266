package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/stockfix/maintapi/internal/metrics"
	"github.com/stockfix/maintapi/internal/shopify"
	apperrors "github.com/stockfix/maintapi/pkg/errors"
)

const productStatusArchived = "ARCHIVED"

type vendorProductNode struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Vendor string `json:"vendor"`
	Status string `json:"status"`
}

// ArchiveVendorProducts archives every non-archived product of one vendor.
// Products are walked in chunks of 50, one productUpdate per product inside
// each chunk; failed products are sampled and the pass continues.
func (s *MaintenanceService) ArchiveVendorProducts(ctx context.Context, vendor string) (*OperationResult, error) {
	vendor = strings.TrimSpace(vendor)
	if vendor == "" {
		return nil, &apperrors.ErrValidation{Message: "vendor is required"}
	}

	start := time.Now()
	defer func() {
		metrics.BulkOperationDuration.WithLabelValues("archive_vendor").Observe(time.Since(start).Seconds())
	}()

	products, err := s.fetchVendorProducts(ctx, vendor)
	if err != nil {
		return nil, fmt.Errorf("fetch products for vendor %q: %w", vendor, err)
	}

	result := NewOperationResult()
	result.Scanned = len(products)

	// The vendor search is a substring match upstream; keep only exact
	// matches and skip products already archived.
	var targets []vendorProductNode
	for _, product := range products {
		if product.Vendor == vendor && product.Status != productStatusArchived {
			targets = append(targets, product)
		}
	}

	s.logger.Info("Vendor archive: scan complete",
		zap.String("vendor", vendor),
		zap.Int("products", len(products)),
		zap.Int("to_archive", len(targets)),
	)

	err = dispatchChunks(ctx, "productUpdate", targets, 50, result,
		func(ctx context.Context, chunk []vendorProductNode) ([]shopify.UserError, error) {
			var userErrors []shopify.UserError
			for _, product := range chunk {
				errs, err := s.archiveProduct(ctx, product.ID)
				if err != nil {
					return nil, err
				}
				userErrors = append(userErrors, errs...)
			}
			return userErrors, nil
		})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *MaintenanceService) fetchVendorProducts(ctx context.Context, vendor string) ([]vendorProductNode, error) {
	// The query filter must be a string literal, so the template is
	// formatted here; quotes in the vendor name are stripped to keep the
	// document well-formed.
	search := "vendor:" + strings.ReplaceAll(vendor, `"`, "")
	query := fmt.Sprintf(shopify.ProductsByVendorQueryTemplate, search)

	return shopify.FetchAllPages(ctx, func(ctx context.Context, after *string) (shopify.PageResult[vendorProductNode], error) {
		var page shopify.PageResult[vendorProductNode]

		variables := map[string]interface{}{
			"first": shopify.DefaultPageSize,
			"after": after,
		}
		resp, err := s.executor.Execute(ctx, query, variables)
		if err != nil {
			return page, err
		}

		var result struct {
			Products struct {
				PageInfo shopify.PageInfo `json:"pageInfo"`
				Edges    []struct {
					Node vendorProductNode `json:"node"`
				} `json:"edges"`
			} `json:"products"`
		}
		if err := json.Unmarshal(resp.Data, &result); err != nil {
			return page, fmt.Errorf("parse products response: %w", err)
		}

		page.HasNextPage = result.Products.PageInfo.HasNextPage
		page.EndCursor = result.Products.PageInfo.EndCursor
		for _, edge := range result.Products.Edges {
			page.Nodes = append(page.Nodes, edge.Node)
		}
		return page, nil
	})
}

func (s *MaintenanceService) archiveProduct(ctx context.Context, productID string) ([]shopify.UserError, error) {
	variables := map[string]interface{}{
		"input": shopify.ProductInput{
			ID:     productID,
			Status: productStatusArchived,
		},
	}

	metrics.GraphQLCallsTotal.WithLabelValues("productUpdate").Inc()
	resp, err := s.executor.Execute(ctx, shopify.ProductUpdateMutation, variables)
	if err != nil {
		return nil, err
	}

	var result struct {
		ProductUpdate struct {
			UserErrors []shopify.UserError `json:"userErrors"`
		} `json:"productUpdate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse productUpdate response: %w", err)
	}

	return result.ProductUpdate.UserErrors, nil
}
