package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stockfix/maintapi/internal/shopify"
)

// fakeExecutor scripts Admin API responses per query document.
type fakeExecutor struct {
	t      *testing.T
	calls  int
	handle func(query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error)
}

func (f *fakeExecutor) Execute(ctx context.Context, query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error) {
	f.calls++
	return f.handle(query, variables)
}

func dataResponse(t *testing.T, data interface{}) *shopify.GraphQLResponse {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return &shopify.GraphQLResponse{Data: json.RawMessage(raw)}
}

// variantPage builds a single-page productVariants connection payload.
func variantPage(t *testing.T, nodes []map[string]interface{}, hasNext bool, endCursor *string) *shopify.GraphQLResponse {
	t.Helper()
	edges := make([]map[string]interface{}, len(nodes))
	for i, node := range nodes {
		edges[i] = map[string]interface{}{"node": node}
	}
	return dataResponse(t, map[string]interface{}{
		"productVariants": map[string]interface{}{
			"pageInfo": map[string]interface{}{
				"hasNextPage": hasNext,
				"endCursor":   endCursor,
			},
			"edges": edges,
		},
	})
}
