package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptPages turns a list of canned pages into a fetchPageFunc that also
// records the cursor each call arrived with.
func scriptPages(t *testing.T, pages []connPage[string], cursors *[]string) fetchPageFunc[string] {
	t.Helper()
	call := 0
	return func(_ context.Context, after *githubv4.String) (connPage[string], error) {
		if after == nil {
			*cursors = append(*cursors, "<nil>")
		} else {
			*cursors = append(*cursors, string(*after))
		}
		require.Less(t, call, len(pages), "fetched past the scripted pages")
		pg := pages[call]
		call++
		return pg, nil
	}
}

func TestDrainConnection_AccumulatesAllPages(t *testing.T) {
	pages := []connPage[string]{
		{nodes: []string{"a1", "a2"}, totalCount: 6, endCursor: "c1", hasNextPage: true},
		{nodes: []string{"b1", "b2", "b3"}, totalCount: 6, endCursor: "c2", hasNextPage: true},
		{nodes: []string{"c1"}, totalCount: 6, hasNextPage: false},
	}
	var cursors []string

	nodes, total, err := drainConnection(context.Background(), ConnectionIssues, maxPages, scriptPages(t, pages, &cursors))

	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2", "b1", "b2", "b3", "c1"}, nodes, "nodes must keep page-internal and inter-page order")
	assert.Equal(t, 6, total)
	assert.Equal(t, []string{"<nil>", "c1", "c2"}, cursors, "first page has no cursor, then each endCursor is fed back")
}

func TestDrainConnection_SinglePage(t *testing.T) {
	pages := []connPage[string]{
		{nodes: []string{"only"}, totalCount: 1, hasNextPage: false},
	}
	var cursors []string

	nodes, total, err := drainConnection(context.Background(), ConnectionPullRequests, maxPages, scriptPages(t, pages, &cursors))

	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, nodes)
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"<nil>"}, cursors)
}

func TestDrainConnection_EmptyConnection(t *testing.T) {
	pages := []connPage[string]{
		{hasNextPage: false},
	}
	var cursors []string

	nodes, total, err := drainConnection(context.Background(), ConnectionPullRequestReviews, maxPages, scriptPages(t, pages, &cursors))

	require.NoError(t, err)
	assert.Empty(t, nodes)
	assert.Zero(t, total)
	assert.Len(t, cursors, 1)
}

func TestDrainConnection_TotalCountComesFromFirstPage(t *testing.T) {
	// Later pages can report a drifted total when items change mid-drain;
	// only the first page's figure is kept.
	pages := []connPage[string]{
		{nodes: []string{"a"}, totalCount: 2, endCursor: "c1", hasNextPage: true},
		{nodes: []string{"b"}, totalCount: 99, hasNextPage: false},
	}
	var cursors []string

	nodes, total, err := drainConnection(context.Background(), ConnectionIssues, maxPages, scriptPages(t, pages, &cursors))

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, nodes)
	assert.Equal(t, 2, total)
}

func TestDrainConnection_PageLimit(t *testing.T) {
	const limit = 5
	calls := 0
	endless := func(_ context.Context, _ *githubv4.String) (connPage[string], error) {
		calls++
		return connPage[string]{nodes: []string{"x"}, totalCount: 1, endCursor: "more", hasNextPage: true}, nil
	}

	nodes, total, err := drainConnection(context.Background(), ConnectionIssues, limit, endless)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPageLimit)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, ConnectionIssues, fetchErr.Connection)
	assert.Equal(t, limit, calls, "the loop must stop at the cap, not spin forever")
	assert.Nil(t, nodes)
	assert.Zero(t, total)
}

func TestDrainConnection_FailureDiscardsPartialPages(t *testing.T) {
	cause := errors.New("boom on page two")
	call := 0
	fetch := func(_ context.Context, _ *githubv4.String) (connPage[string], error) {
		call++
		if call == 1 {
			return connPage[string]{nodes: []string{"a1", "a2"}, totalCount: 3, endCursor: "c1", hasNextPage: true}, nil
		}
		return connPage[string]{}, cause
	}

	nodes, total, err := drainConnection(context.Background(), ConnectionPullRequests, maxPages, fetch)

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, ConnectionPullRequests, fetchErr.Connection)
	assert.Nil(t, nodes, "a failed drain must not hand back the pages it already had")
	assert.Zero(t, total)
}
