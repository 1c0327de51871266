package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockfix/maintapi/internal/config"
	"github.com/stockfix/maintapi/internal/shopify"
	apperrors "github.com/stockfix/maintapi/pkg/errors"
)

func productsPage(t *testing.T, nodes []map[string]interface{}, hasNext bool, endCursor *string) *shopify.GraphQLResponse {
	t.Helper()
	edges := make([]map[string]interface{}, len(nodes))
	for i, node := range nodes {
		edges[i] = map[string]interface{}{"node": node}
	}
	return dataResponse(t, map[string]interface{}{
		"products": map[string]interface{}{
			"pageInfo": map[string]interface{}{
				"hasNextPage": hasNext,
				"endCursor":   endCursor,
			},
			"edges": edges,
		},
	})
}

func vendorProduct(id, vendor, status string) map[string]interface{} {
	return map[string]interface{}{
		"id":     "gid://shopify/Product/" + id,
		"title":  "Product " + id,
		"vendor": vendor,
		"status": status,
	}
}

func TestArchiveVendorProducts(t *testing.T) {
	var archived []string

	exec := &fakeExecutor{t: t}
	exec.handle = func(query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error) {
		if strings.Contains(query, "getProductsByVendor") {
			assert.Contains(t, query, `query: "vendor:Acme"`)
			return productsPage(t, []map[string]interface{}{
				vendorProduct("1", "Acme", "ACTIVE"),
				vendorProduct("2", "Acme", "ARCHIVED"),
				vendorProduct("3", "Acme Supply", "ACTIVE"),
				vendorProduct("4", "Acme", "DRAFT"),
			}, false, nil), nil
		}
		require.Equal(t, shopify.ProductUpdateMutation, query)
		input := variables["input"].(shopify.ProductInput)
		assert.Equal(t, "ARCHIVED", input.Status)
		archived = append(archived, input.ID)
		return dataResponse(t, map[string]interface{}{
			"productUpdate": map[string]interface{}{
				"userErrors": []interface{}{},
			},
		}), nil
	}

	svc := NewMaintenanceService(exec, config.MaintenanceConfig{}, zap.NewNop())

	result, err := svc.ArchiveVendorProducts(context.Background(), "Acme")
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.Equal(t, 4, result.Scanned)
	assert.Equal(t, 2, result.Succeeded)
	// Already-archived and near-miss vendor names are skipped.
	assert.Equal(t, []string{"gid://shopify/Product/1", "gid://shopify/Product/4"}, archived)
}

func TestArchiveVendorRequiresVendor(t *testing.T) {
	exec := &fakeExecutor{t: t}
	svc := NewMaintenanceService(exec, config.MaintenanceConfig{}, zap.NewNop())

	_, err := svc.ArchiveVendorProducts(context.Background(), "  ")
	require.Error(t, err)
	var validationErr *apperrors.ErrValidation
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, exec.calls)
}

func TestArchiveVendorRecordsFailuresAndContinues(t *testing.T) {
	var archived []string

	exec := &fakeExecutor{t: t}
	exec.handle = func(query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error) {
		if strings.Contains(query, "getProductsByVendor") {
			return productsPage(t, []map[string]interface{}{
				vendorProduct("1", "Acme", "ACTIVE"),
				vendorProduct("2", "Acme", "ACTIVE"),
			}, false, nil), nil
		}
		input := variables["input"].(shopify.ProductInput)
		archived = append(archived, input.ID)
		if input.ID == "gid://shopify/Product/1" {
			return dataResponse(t, map[string]interface{}{
				"productUpdate": map[string]interface{}{
					"userErrors": []map[string]interface{}{
						{"message": "cannot archive"},
					},
				},
			}), nil
		}
		return dataResponse(t, map[string]interface{}{
			"productUpdate": map[string]interface{}{
				"userErrors": []interface{}{},
			},
		}), nil
	}

	svc := NewMaintenanceService(exec, config.MaintenanceConfig{}, zap.NewNop())

	result, err := svc.ArchiveVendorProducts(context.Background(), "Acme")
	require.NoError(t, err)

	assert.False(t, result.OK)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Succeeded)
	assert.Len(t, archived, 2)
	require.Len(t, result.SampleErrors, 1)
	assert.Equal(t, "productUpdate", result.SampleErrors[0].Scope)
}
