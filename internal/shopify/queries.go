package shopify

// VariantsWithPolicyQuery fetches variants with their inventory policy and
// parent product, one page per call
const VariantsWithPolicyQuery = `
query getVariantsWithPolicy($first: Int!, $after: String) {
  productVariants(first: $first, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        sku
        inventoryPolicy
        product {
          id
          title
        }
      }
    }
  }
}
`

// VariantInventoryQuery fetches variants with their inventory item and
// per-location available quantities
const VariantInventoryQuery = `
query getVariantInventory($first: Int!, $after: String) {
  productVariants(first: $first, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        sku
        inventoryItem {
          id
          inventoryLevels(first: 50) {
            edges {
              node {
                location {
                  id
                }
                quantities(names: ["available"]) {
                  name
                  quantity
                }
              }
            }
          }
        }
      }
    }
  }
}
`

// ProductsByVendorQueryTemplate fetches products filtered by vendor
// (query string is e.g. "vendor:Acme"). The vendor filter must be a string
// literal in the query parameter, so callers build it with fmt.Sprintf.
const ProductsByVendorQueryTemplate = `
query getProductsByVendor($first: Int!, $after: String) {
  products(first: $first, after: $after, query: "%s") {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        title
        vendor
        status
      }
    }
  }
}
`
