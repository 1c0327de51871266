package shopify

// InventoryAdjustQuantitiesMutation adjusts available quantities for a batch
// of (inventory item, location) pairs. At most 250 changes per call.
const InventoryAdjustQuantitiesMutation = `
mutation inventoryAdjustQuantities($input: InventoryAdjustQuantitiesInput!) {
  inventoryAdjustQuantities(input: $input) {
    inventoryAdjustmentGroup {
      createdAt
    }
    userErrors {
      field
      message
      code
    }
  }
}
`

// ProductVariantsBulkUpdateMutation updates a batch of variants belonging to
// one product. At most 250 variants per call.
const ProductVariantsBulkUpdateMutation = `
mutation productVariantsBulkUpdate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkUpdate(productId: $productId, variants: $variants) {
    product {
      id
    }
    userErrors {
      field
      message
      code
    }
  }
}
`

// ProductUpdateMutation updates a single product (used to set status ARCHIVED)
const ProductUpdateMutation = `
mutation productUpdate($input: ProductInput!) {
  productUpdate(input: $input) {
    product {
      id
      status
    }
    userErrors {
      field
      message
    }
  }
}
`

// UserError is the structured per-entity error Shopify mutations return.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
}

// InventoryAdjustQuantitiesInput is the input for inventoryAdjustQuantities.
// Reason must be a value the shop's configuration accepts.
type InventoryAdjustQuantitiesInput struct {
	Reason  string                 `json:"reason"`
	Name    string                 `json:"name"`
	Changes []InventoryChangeInput `json:"changes"`
}

// InventoryChangeInput is one quantity delta within an adjustment.
type InventoryChangeInput struct {
	InventoryItemID string `json:"inventoryItemId"`
	LocationID      string `json:"locationId"`
	Delta           int    `json:"delta"`
}

// ProductVariantsBulkInput updates one variant within productVariantsBulkUpdate.
type ProductVariantsBulkInput struct {
	ID              string `json:"id"`
	InventoryPolicy string `json:"inventoryPolicy,omitempty"`
}

// ProductInput is the input for productUpdate.
type ProductInput struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}
