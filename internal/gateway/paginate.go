package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/shurcooL/githubv4"
)

// Connection names one slice of a user's activity. It tags fetch errors so
// callers can tell which part of the run failed.
type Connection string

const (
	ConnectionOverview           Connection = "overview"
	ConnectionIssues             Connection = "issues"
	ConnectionPullRequests       Connection = "pull_requests"
	ConnectionPullRequestReviews Connection = "pull_request_reviews"
)

// ErrPageLimit marks a connection that kept reporting another page past the
// defensive cap. That signals protocol misbehavior, not legitimate volume.
var ErrPageLimit = errors.New("pagination page limit exceeded")

// FetchError wraps any failure while fetching one connection, including
// GraphQL-level errors and the page cap. A failed connection aborts the whole
// run; pages accumulated before the failure are discarded.
type FetchError struct {
	Connection Connection
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Connection, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// connPage is one server page of a paginated connection.
type connPage[T any] struct {
	nodes       []T
	totalCount  int
	endCursor   githubv4.String
	hasNextPage bool
}

// fetchPageFunc loads the page following the given cursor; a nil cursor
// means the first page.
type fetchPageFunc[T any] func(ctx context.Context, after *githubv4.String) (connPage[T], error)

// drainConnection walks one connection forward until the server reports no
// next page, accumulating nodes in delivery order. Pages of one connection
// are inherently sequential: each request needs the previous page's cursor.
//
// It returns the accumulated nodes and the totalCount from the first page.
// The accumulated sequence is authoritative if the two disagree; the count is
// informational only. Termination normally depends on the server eventually
// answering hasNextPage=false, so pageLimit converts a server that never does
// into an ErrPageLimit failure instead of an infinite loop.
func drainConnection[T any](ctx context.Context, conn Connection, pageLimit int, fetch fetchPageFunc[T]) ([]T, int, error) {
	var (
		nodes  []T
		total  int
		cursor *githubv4.String
	)
	for page := 0; ; page++ {
		if page >= pageLimit {
			return nil, 0, &FetchError{Connection: conn, Err: fmt.Errorf("%w (%d pages)", ErrPageLimit, pageLimit)}
		}
		pg, err := fetch(ctx, cursor)
		if err != nil {
			return nil, 0, &FetchError{Connection: conn, Err: err}
		}
		if page == 0 {
			total = pg.totalCount
		}
		nodes = append(nodes, pg.nodes...)
		if !pg.hasNextPage {
			return nodes, total, nil
		}
		cursor = githubv4.NewString(pg.endCursor)
	}
}
