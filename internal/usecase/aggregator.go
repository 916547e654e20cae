// Package usecase contains the business logic of the application.
package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/gateway"
)

// DefaultPageSize balances request count against payload size for the
// paginated connections.
const DefaultPageSize = 25

// PageSizes sets the per-connection page size used while draining the
// three paginated connections.
type PageSizes struct {
	Issues       int
	PullRequests int
	Reviews      int
}

// DefaultPageSizes applies DefaultPageSize to every connection.
func DefaultPageSizes() PageSizes {
	return PageSizes{
		Issues:       DefaultPageSize,
		PullRequests: DefaultPageSize,
		Reviews:      DefaultPageSize,
	}
}

// Aggregator is the use case for building a consolidated activity report.
// It orchestrates the overview fetch and the three paginated fetches.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  zerolog.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Aggregate performs one full fetch cycle: the overview query first, then
// the issue, pull request and review connections concurrently. Each branch
// owns its accumulator and they share only read-only inputs, so the join
// needs no locks. A partial report would misrepresent the user's activity,
// so any branch error aborts the whole cycle and no report is returned.
func (a *Aggregator) Aggregate(ctx context.Context, username string, window domain.DateWindow, sizes PageSizes) (*domain.ActivityReport, error) {
	a.logger.Debug().
		Str("user", username).
		Time("from", window.From).
		Time("to", window.To).
		Msg("starting aggregation")

	overview, err := a.fetcher.FetchOverview(ctx, username, window)
	if err != nil {
		return nil, err
	}

	var (
		issues  []domain.IssueItem
		prs     []domain.PullRequestItem
		reviews []domain.PullRequestReviewItem
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		items, total, err := a.fetcher.FetchIssues(egCtx, username, window, sizes.Issues)
		if err != nil {
			return err
		}
		a.logDrained(gateway.ConnectionIssues, len(items), total)
		issues = items
		return nil
	})
	eg.Go(func() error {
		items, total, err := a.fetcher.FetchPullRequests(egCtx, username, window, sizes.PullRequests)
		if err != nil {
			return err
		}
		a.logDrained(gateway.ConnectionPullRequests, len(items), total)
		prs = items
		return nil
	})
	eg.Go(func() error {
		items, total, err := a.fetcher.FetchReviews(egCtx, username, window, sizes.Reviews)
		if err != nil {
			return err
		}
		a.logDrained(gateway.ConnectionPullRequestReviews, len(items), total)
		reviews = items
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	a.logger.Debug().
		Int("issues", len(issues)).
		Int("pull_requests", len(prs)).
		Int("reviews", len(reviews)).
		Msg("aggregation complete")

	return &domain.ActivityReport{
		Username:            username,
		Window:              window,
		Summary:             overview.Summary,
		CommitsByRepository: overview.CommitsByRepository,
		Issues:              issues,
		PullRequests:        prs,
		Reviews:             reviews,
	}, nil
}

// logDrained notes a drained connection. The server-reported total can
// disagree with the accumulated length when items change mid-drain; the
// accumulated list wins, the disagreement is only logged.
func (a *Aggregator) logDrained(conn gateway.Connection, got, reported int) {
	evt := a.logger.Debug().
		Str("connection", string(conn)).
		Int("items", got)
	if reported != got {
		evt = evt.Int("server_total", reported)
	}
	evt.Msg("connection drained")
}
