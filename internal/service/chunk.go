package service

import (
	"context"

	"github.com/stockfix/maintapi/internal/shopify"
)

// chunkSlice partitions items into contiguous chunks of at most size
// elements; the last chunk may be smaller. A non-positive size yields a
// single chunk holding everything.
func chunkSlice[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 {
		return [][]T{items}
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// chunkMutator issues one mutation for a chunk and returns its user-errors.
// A transport or protocol error is systemic and aborts the dispatch.
type chunkMutator[T any] func(ctx context.Context, chunk []T) ([]shopify.UserError, error)

// dispatchChunks partitions items and invokes mutate once per chunk, in
// sequence. Each chunk's user-errors are folded into result under the given
// scope; items not named in an error count as succeeded. The run continues
// past per-entity failures and stops only on a systemic error.
func dispatchChunks[T any](ctx context.Context, scope string, items []T, chunkSize int, result *OperationResult, mutate chunkMutator[T]) error {
	for _, chunk := range chunkSlice(items, chunkSize) {
		userErrors, err := mutate(ctx, chunk)
		if err != nil {
			return err
		}
		result.RecordUserErrors(scope, userErrors)
		if succeeded := len(chunk) - len(userErrors); succeeded > 0 {
			result.Succeeded += succeeded
		}
	}
	return nil
}
