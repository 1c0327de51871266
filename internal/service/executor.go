package service

import (
	"context"

	"github.com/stockfix/maintapi/internal/shopify"
)

// Executor is the one Admin API capability the orchestrators depend on.
// *shopify.Client satisfies it; tests substitute a scripted double.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error)
}
