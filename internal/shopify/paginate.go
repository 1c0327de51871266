package shopify

import "context"

// DefaultPageSize is the connection page size used at every call site.
const DefaultPageSize = 250

// PageInfo mirrors the pageInfo selection of a GraphQL connection.
type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

// PageResult is one page of a connection traversal.
type PageResult[T any] struct {
	Nodes       []T
	HasNextPage bool
	EndCursor   *string
}

// PageFetcher fetches one page starting after the given cursor
// (nil on the first call).
type PageFetcher[T any] func(ctx context.Context, after *string) (PageResult[T], error)

// FetchAllPages walks a connection to exhaustion, collecting every page's
// nodes in order. The cursor advances to endCursor while hasNextPage holds;
// no iteration cap is enforced, the upstream is trusted to terminate. Any
// page failure aborts the whole traversal.
func FetchAllPages[T any](ctx context.Context, fetch PageFetcher[T]) ([]T, error) {
	var all []T
	var after *string

	for {
		page, err := fetch(ctx, after)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Nodes...)
		if !page.HasNextPage {
			return all, nil
		}
		after = page.EndCursor
	}
}
