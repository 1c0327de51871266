package shopify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAllPagesWalksToExhaustion(t *testing.T) {
	cursor1 := "c1"
	cursor2 := "c2"
	pages := []PageResult[string]{
		{Nodes: []string{"A", "B"}, HasNextPage: true, EndCursor: &cursor1},
		{Nodes: []string{"C"}, HasNextPage: true, EndCursor: &cursor2},
		{Nodes: nil, HasNextPage: false},
	}

	calls := 0
	var cursors []*string
	all, err := FetchAllPages(context.Background(), func(ctx context.Context, after *string) (PageResult[string], error) {
		cursors = append(cursors, after)
		page := pages[calls]
		calls++
		return page, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, all)
	assert.Equal(t, 3, calls)

	// First call has no cursor, then each endCursor is carried forward.
	require.Len(t, cursors, 3)
	assert.Nil(t, cursors[0])
	assert.Equal(t, "c1", *cursors[1])
	assert.Equal(t, "c2", *cursors[2])
}

func TestFetchAllPagesSinglePage(t *testing.T) {
	all, err := FetchAllPages(context.Background(), func(ctx context.Context, after *string) (PageResult[int], error) {
		return PageResult[int]{Nodes: []int{1, 2, 3}, HasNextPage: false}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, all)
}

func TestFetchAllPagesAbortsOnError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	cursor := "c1"
	all, err := FetchAllPages(context.Background(), func(ctx context.Context, after *string) (PageResult[string], error) {
		calls++
		if calls == 2 {
			return PageResult[string]{}, boom
		}
		return PageResult[string]{Nodes: []string{"A"}, HasNextPage: true, EndCursor: &cursor}, nil
	})

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, all)
	assert.Equal(t, 2, calls)
}
