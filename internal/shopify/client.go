package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/stockfix/maintapi/internal/config"
	apperrors "github.com/stockfix/maintapi/pkg/errors"
)

type Client struct {
	shopDomain  string
	accessToken string
	apiVersion  string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a new Shopify GraphQL client
func NewClient(cfg config.ShopifyConfig, logger *zap.Logger) *Client {
	// Normalize shop domain - remove https://, http://, and trailing slashes
	shopDomain := cfg.ShopDomain
	shopDomain = strings.TrimPrefix(shopDomain, "https://")
	shopDomain = strings.TrimPrefix(shopDomain, "http://")
	shopDomain = strings.TrimSuffix(shopDomain, "/")

	return &Client{
		shopDomain:  shopDomain,
		accessToken: cfg.AccessToken,
		apiVersion:  cfg.APIVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// Execute executes a GraphQL query/mutation. A response whose top-level
// data field is absent fails with ErrRemoteProtocol carrying the raw error
// payload; transport and GraphQL-level failures are not distinguished here,
// and no retry happens at this layer.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}) (*GraphQLResponse, error) {
	url := fmt.Sprintf("https://%s/admin/api/%s/graphql.json", c.shopDomain, c.apiVersion)

	reqBody := GraphQLRequest{
		Query:     query,
		Variables: variables,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &apperrors.ErrRemoteProtocol{
			Operation: operationName(query),
			RawErrors: fmt.Sprintf("status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var graphQLResp GraphQLResponse
	if err := json.Unmarshal(body, &graphQLResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}

	if len(graphQLResp.Data) == 0 || string(graphQLResp.Data) == "null" {
		raw := ""
		if len(graphQLResp.Errors) > 0 {
			messages := make([]string, len(graphQLResp.Errors))
			for i, gqlErr := range graphQLResp.Errors {
				messages[i] = gqlErr.Message
			}
			raw = strings.Join(messages, "; ")
		}
		c.logger.Error("Shopify response has no data",
			zap.String("operation", operationName(query)),
			zap.String("errors", raw),
		)
		return nil, &apperrors.ErrRemoteProtocol{
			Operation: operationName(query),
			RawErrors: raw,
		}
	}

	return &graphQLResp, nil
}

// operationName extracts the operation name from a query document for
// logging and error context (e.g. "query getVariants(...)" -> "getVariants").
func operationName(query string) string {
	fields := strings.Fields(query)
	if len(fields) < 2 {
		return "unknown"
	}
	name := fields[1]
	if idx := strings.IndexAny(name, "({"); idx > 0 {
		name = name[:idx]
	}
	return name
}
