package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockfix/maintapi/internal/config"
	"github.com/stockfix/maintapi/internal/shopify"
)

func inventoryVariant(itemID string, levels ...map[string]interface{}) map[string]interface{} {
	edges := make([]map[string]interface{}, len(levels))
	for i, level := range levels {
		edges[i] = map[string]interface{}{"node": level}
	}
	return map[string]interface{}{
		"id":  "gid://shopify/ProductVariant/" + itemID,
		"sku": "SKU-" + itemID,
		"inventoryItem": map[string]interface{}{
			"id": "gid://shopify/InventoryItem/" + itemID,
			"inventoryLevels": map[string]interface{}{
				"edges": edges,
			},
		},
	}
}

func level(locationID string, available int) map[string]interface{} {
	return map[string]interface{}{
		"location": map[string]interface{}{"id": locationID},
		"quantities": []map[string]interface{}{
			{"name": "available", "quantity": available},
		},
	}
}

func TestZeroInventoryEmitsNegatedDeltas(t *testing.T) {
	var adjustInputs []map[string]interface{}

	exec := &fakeExecutor{t: t}
	exec.handle = func(query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error) {
		switch query {
		case shopify.VariantInventoryQuery:
			return variantPage(t, []map[string]interface{}{
				inventoryVariant("1", level("gid://shopify/Location/10", 7)),
				inventoryVariant("2", level("gid://shopify/Location/10", 0)),
				inventoryVariant("3", level("gid://shopify/Location/99", 12)),
			}, false, nil), nil
		case shopify.InventoryAdjustQuantitiesMutation:
			adjustInputs = append(adjustInputs, variables)
			return dataResponse(t, map[string]interface{}{
				"inventoryAdjustQuantities": map[string]interface{}{
					"userErrors": []interface{}{},
				},
			}), nil
		default:
			t.Fatalf("unexpected query: %s", query)
			return nil, nil
		}
	}

	svc := NewMaintenanceService(exec, config.MaintenanceConfig{
		AllowedLocationIDs: []string{"gid://shopify/Location/10"},
	}, zap.NewNop())

	result, err := svc.ZeroInventory(context.Background())
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.Equal(t, 3, result.Scanned)
	assert.Equal(t, 1, result.Succeeded)

	// One mutation call: only the 7-unit level at the allowed location.
	// Zero quantities and disallowed locations emit nothing.
	require.Len(t, adjustInputs, 1)
	input := adjustInputs[0]["input"].(shopify.InventoryAdjustQuantitiesInput)
	assert.Equal(t, "available", input.Name)
	assert.Equal(t, "correction", input.Reason)
	require.Len(t, input.Changes, 1)
	assert.Equal(t, "gid://shopify/InventoryItem/1", input.Changes[0].InventoryItemID)
	assert.Equal(t, "gid://shopify/Location/10", input.Changes[0].LocationID)
	assert.Equal(t, -7, input.Changes[0].Delta)
}

func TestZeroInventoryNothingToAdjust(t *testing.T) {
	exec := &fakeExecutor{t: t}
	exec.handle = func(query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error) {
		require.Equal(t, shopify.VariantInventoryQuery, query)
		return variantPage(t, []map[string]interface{}{
			inventoryVariant("1", level("gid://shopify/Location/10", 0)),
		}, false, nil), nil
	}

	svc := NewMaintenanceService(exec, config.MaintenanceConfig{}, zap.NewNop())

	result, err := svc.ZeroInventory(context.Background())
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, 1, exec.calls) // pagination only, no mutation
}

func TestZeroInventoryReasonFallback(t *testing.T) {
	var reasons []string

	exec := &fakeExecutor{t: t}
	exec.handle = func(query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error) {
		switch query {
		case shopify.VariantInventoryQuery:
			return variantPage(t, []map[string]interface{}{
				inventoryVariant("1", level("gid://shopify/Location/10", 3)),
			}, false, nil), nil
		case shopify.InventoryAdjustQuantitiesMutation:
			input := variables["input"].(shopify.InventoryAdjustQuantitiesInput)
			reasons = append(reasons, input.Reason)
			if len(reasons) < 3 {
				return dataResponse(t, map[string]interface{}{
					"inventoryAdjustQuantities": map[string]interface{}{
						"userErrors": []map[string]interface{}{
							{"message": "Invalid reason", "code": CodeInvalidReason},
						},
					},
				}), nil
			}
			return dataResponse(t, map[string]interface{}{
				"inventoryAdjustQuantities": map[string]interface{}{
					"userErrors": []interface{}{},
				},
			}), nil
		default:
			t.Fatalf("unexpected query: %s", query)
			return nil, nil
		}
	}

	svc := NewMaintenanceService(exec, config.MaintenanceConfig{}, zap.NewNop())

	result, err := svc.ZeroInventory(context.Background())
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, []string{"correction", "cycle_count", "other"}, reasons)
}

func TestZeroInventoryBenignNotStocked(t *testing.T) {
	exec := &fakeExecutor{t: t}
	exec.handle = func(query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error) {
		switch query {
		case shopify.VariantInventoryQuery:
			return variantPage(t, []map[string]interface{}{
				inventoryVariant("1", level("gid://shopify/Location/10", 3)),
				inventoryVariant("2", level("gid://shopify/Location/10", 5)),
			}, false, nil), nil
		case shopify.InventoryAdjustQuantitiesMutation:
			return dataResponse(t, map[string]interface{}{
				"inventoryAdjustQuantities": map[string]interface{}{
					"userErrors": []map[string]interface{}{
						{"message": "not stocked here", "code": CodeItemNotStocked},
					},
				},
			}), nil
		default:
			t.Fatalf("unexpected query: %s", query)
			return nil, nil
		}
	}

	svc := NewMaintenanceService(exec, config.MaintenanceConfig{}, zap.NewNop())

	result, err := svc.ZeroInventory(context.Background())
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, 1, result.NotStocked)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.SampleErrors)
}
