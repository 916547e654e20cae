// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying GraphQL and REST clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/rs/zerolog"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// maxPages bounds how many pages one connection may deliver before the fetch
// is aborted with ErrPageLimit.
const maxPages = 200

// Fetcher defines the behavior of a gateway for fetching a user's activity
// from GitHub. The paginated fetches drain their connection completely and
// also return the server-reported totalCount from the first page.
type Fetcher interface {
	FetchOverview(ctx context.Context, username string, window domain.DateWindow) (*domain.Overview, error)
	FetchIssues(ctx context.Context, username string, window domain.DateWindow, pageSize int) ([]domain.IssueItem, int, error)
	FetchPullRequests(ctx context.Context, username string, window domain.DateWindow, pageSize int) ([]domain.PullRequestItem, int, error)
	FetchReviews(ctx context.Context, username string, window domain.DateWindow, pageSize int) ([]domain.PullRequestReviewItem, int, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        zerolog.Logger
	pageLimit     int
}

// NewGitHubGateway builds a gateway whose HTTP client injects the token and
// sleeps through GitHub's secondary rate limits. GITHUB_GRAPHQL_URL overrides
// the GraphQL endpoint (GitHub Enterprise, or a test server).
func NewGitHubGateway(token string, logger zerolog.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	graphqlClient := githubv4.NewClient(httpClient)
	if u := os.Getenv("GITHUB_GRAPHQL_URL"); u != "" {
		graphqlClient = githubv4.NewEnterpriseClient(u, httpClient)
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: graphqlClient,
		logger:        logger,
		pageLimit:     maxPages,
	}, nil
}

// pageInfo mirrors the GraphQL PageInfo fields driving forward pagination.
type pageInfo struct {
	EndCursor   githubv4.String
	HasNextPage bool
}

// repositoryRef mirrors the repository fields attached to item nodes and
// commit buckets.
type repositoryRef struct {
	NameWithOwner string
	UpdatedAt     githubv4.DateTime
}

func (r repositoryRef) toDomain() domain.RepositoryRef {
	return domain.RepositoryRef{NameWithOwner: r.NameWithOwner, UpdatedAt: r.UpdatedAt.Time}
}

// overviewQuery is the base operation: aggregate counters, the contribution
// calendar and per-repository commit totals. None of it is paginated here;
// the repository list is whatever the server returns by default.
type overviewQuery struct {
	User struct {
		ContributionsCollection struct {
			TotalCommitContributions            int
			TotalIssueContributions             int
			TotalPullRequestContributions       int
			TotalPullRequestReviewContributions int
			ContributionCalendar                struct {
				TotalContributions int
				Weeks              []struct {
					ContributionDays []struct {
						Date              string
						ContributionCount int
						Weekday           int
					}
				}
			}
			CommitContributionsByRepository []struct {
				Repository    repositoryRef
				Contributions struct {
					TotalCount int
				}
			}
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $username)"`
}

type issueNode struct {
	Issue struct {
		Number     int
		Title      string
		URL        string `graphql:"url"`
		CreatedAt  githubv4.DateTime
		State      string
		ClosedAt   *githubv4.DateTime
		Repository repositoryRef
	}
}

func (n issueNode) toDomain() domain.IssueItem {
	return domain.IssueItem{
		Number:     n.Issue.Number,
		Title:      n.Issue.Title,
		URL:        n.Issue.URL,
		CreatedAt:  n.Issue.CreatedAt.Time,
		State:      n.Issue.State,
		ClosedAt:   optionalTime(n.Issue.ClosedAt),
		Repository: n.Issue.Repository.toDomain(),
	}
}

type issuesQuery struct {
	User struct {
		ContributionsCollection struct {
			IssueContributions struct {
				TotalCount int
				PageInfo   pageInfo
				Nodes      []issueNode
			} `graphql:"issueContributions(first: $first, after: $after)"`
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $username)"`
}

type pullRequestNode struct {
	PullRequest struct {
		Number     int
		Title      string
		URL        string `graphql:"url"`
		CreatedAt  githubv4.DateTime
		State      string
		Merged     bool
		MergedAt   *githubv4.DateTime
		ClosedAt   *githubv4.DateTime
		Repository repositoryRef
	}
}

func (n pullRequestNode) toDomain() domain.PullRequestItem {
	return domain.PullRequestItem{
		Number:     n.PullRequest.Number,
		Title:      n.PullRequest.Title,
		URL:        n.PullRequest.URL,
		CreatedAt:  n.PullRequest.CreatedAt.Time,
		State:      n.PullRequest.State,
		Merged:     n.PullRequest.Merged,
		MergedAt:   optionalTime(n.PullRequest.MergedAt),
		ClosedAt:   optionalTime(n.PullRequest.ClosedAt),
		Repository: n.PullRequest.Repository.toDomain(),
	}
}

type pullRequestsQuery struct {
	User struct {
		ContributionsCollection struct {
			PullRequestContributions struct {
				TotalCount int
				PageInfo   pageInfo
				Nodes      []pullRequestNode
			} `graphql:"pullRequestContributions(first: $first, after: $after)"`
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $username)"`
}

// reviewNode carries no repository reference; the wire contract embeds only
// a slim pull request summary inside review contributions.
type reviewNode struct {
	OccurredAt        githubv4.DateTime
	PullRequestReview struct {
		PullRequest struct {
			Number int
			Title  string
			URL    string `graphql:"url"`
		}
	}
}

func (n reviewNode) toDomain() domain.PullRequestReviewItem {
	return domain.PullRequestReviewItem{
		PullRequest: domain.PullRequestSummary{
			Number: n.PullRequestReview.PullRequest.Number,
			Title:  n.PullRequestReview.PullRequest.Title,
			URL:    n.PullRequestReview.PullRequest.URL,
		},
		OccurredAt: n.OccurredAt.Time,
	}
}

type reviewsQuery struct {
	User struct {
		ContributionsCollection struct {
			PullRequestReviewContributions struct {
				TotalCount int
				PageInfo   pageInfo
				Nodes      []reviewNode
			} `graphql:"pullRequestReviewContributions(first: $first, after: $after)"`
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $username)"`
}

func baseVariables(username string, window domain.DateWindow) map[string]interface{} {
	return map[string]interface{}{
		"username": githubv4.String(username),
		"from":     githubv4.DateTime{Time: window.From},
		"to":       githubv4.DateTime{Time: window.To},
	}
}

func optionalTime(t *githubv4.DateTime) *time.Time {
	if t == nil {
		return nil
	}
	tt := t.Time
	return &tt
}

// FetchOverview runs the base query once and maps its result into the domain
// overview.
func (g *GitHubGateway) FetchOverview(ctx context.Context, username string, window domain.DateWindow) (*domain.Overview, error) {
	g.logger.Debug().Str("user", username).Time("from", window.From).Time("to", window.To).Msg("fetching contribution overview")
	var q overviewQuery
	if err := g.graphqlClient.Query(ctx, &q, baseVariables(username, window)); err != nil {
		return nil, &FetchError{Connection: ConnectionOverview, Err: err}
	}
	cc := q.User.ContributionsCollection

	calendar := domain.ContributionCalendar{
		TotalContributions: cc.ContributionCalendar.TotalContributions,
		Weeks:              make([]domain.ContributionWeek, 0, len(cc.ContributionCalendar.Weeks)),
	}
	for _, w := range cc.ContributionCalendar.Weeks {
		week := domain.ContributionWeek{Days: make([]domain.ContributionDay, 0, len(w.ContributionDays))}
		for _, d := range w.ContributionDays {
			week.Days = append(week.Days, domain.ContributionDay{Date: d.Date, Count: d.ContributionCount, Weekday: d.Weekday})
		}
		calendar.Weeks = append(calendar.Weeks, week)
	}

	buckets := make([]domain.CommitBucket, 0, len(cc.CommitContributionsByRepository))
	for _, rc := range cc.CommitContributionsByRepository {
		buckets = append(buckets, domain.CommitBucket{
			Repository: rc.Repository.toDomain(),
			Count:      rc.Contributions.TotalCount,
		})
	}

	return &domain.Overview{
		Summary: domain.ContributionSummary{
			TotalCommits:            cc.TotalCommitContributions,
			TotalIssues:             cc.TotalIssueContributions,
			TotalPullRequests:       cc.TotalPullRequestContributions,
			TotalPullRequestReviews: cc.TotalPullRequestReviewContributions,
			Calendar:                calendar,
		},
		CommitsByRepository: buckets,
	}, nil
}

// FetchIssues drains the issue contribution connection.
func (g *GitHubGateway) FetchIssues(ctx context.Context, username string, window domain.DateWindow, pageSize int) ([]domain.IssueItem, int, error) {
	nodes, total, err := drainConnection(ctx, ConnectionIssues, g.pageLimit, func(ctx context.Context, after *githubv4.String) (connPage[issueNode], error) {
		var q issuesQuery
		variables := baseVariables(username, window)
		variables["first"] = githubv4.Int(pageSize)
		variables["after"] = after
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return connPage[issueNode]{}, err
		}
		conn := q.User.ContributionsCollection.IssueContributions
		g.logger.Debug().Int("nodes", len(conn.Nodes)).Bool("more", conn.PageInfo.HasNextPage).Msg("fetched issue page")
		return connPage[issueNode]{
			nodes:       conn.Nodes,
			totalCount:  conn.TotalCount,
			endCursor:   conn.PageInfo.EndCursor,
			hasNextPage: conn.PageInfo.HasNextPage,
		}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	items := make([]domain.IssueItem, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, n.toDomain())
	}
	return items, total, nil
}

// FetchPullRequests drains the pull request contribution connection.
func (g *GitHubGateway) FetchPullRequests(ctx context.Context, username string, window domain.DateWindow, pageSize int) ([]domain.PullRequestItem, int, error) {
	nodes, total, err := drainConnection(ctx, ConnectionPullRequests, g.pageLimit, func(ctx context.Context, after *githubv4.String) (connPage[pullRequestNode], error) {
		var q pullRequestsQuery
		variables := baseVariables(username, window)
		variables["first"] = githubv4.Int(pageSize)
		variables["after"] = after
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return connPage[pullRequestNode]{}, err
		}
		conn := q.User.ContributionsCollection.PullRequestContributions
		g.logger.Debug().Int("nodes", len(conn.Nodes)).Bool("more", conn.PageInfo.HasNextPage).Msg("fetched pull request page")
		return connPage[pullRequestNode]{
			nodes:       conn.Nodes,
			totalCount:  conn.TotalCount,
			endCursor:   conn.PageInfo.EndCursor,
			hasNextPage: conn.PageInfo.HasNextPage,
		}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	items := make([]domain.PullRequestItem, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, n.toDomain())
	}
	return items, total, nil
}

// FetchReviews drains the pull request review contribution connection.
func (g *GitHubGateway) FetchReviews(ctx context.Context, username string, window domain.DateWindow, pageSize int) ([]domain.PullRequestReviewItem, int, error) {
	nodes, total, err := drainConnection(ctx, ConnectionPullRequestReviews, g.pageLimit, func(ctx context.Context, after *githubv4.String) (connPage[reviewNode], error) {
		var q reviewsQuery
		variables := baseVariables(username, window)
		variables["first"] = githubv4.Int(pageSize)
		variables["after"] = after
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return connPage[reviewNode]{}, err
		}
		conn := q.User.ContributionsCollection.PullRequestReviewContributions
		g.logger.Debug().Int("nodes", len(conn.Nodes)).Bool("more", conn.PageInfo.HasNextPage).Msg("fetched review page")
		return connPage[reviewNode]{
			nodes:       conn.Nodes,
			totalCount:  conn.TotalCount,
			endCursor:   conn.PageInfo.EndCursor,
			hasNextPage: conn.PageInfo.HasNextPage,
		}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	items := make([]domain.PullRequestReviewItem, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, n.toDomain())
	}
	return items, total, nil
}

// LogRateLimit reports the remaining GraphQL quota at debug level. It is a
// diagnostic preflight only; failures never affect the run.
func (g *GitHubGateway) LogRateLimit(ctx context.Context) {
	limits, _, err := g.restClient.RateLimit.Get(ctx)
	if err != nil {
		g.logger.Debug().Err(err).Msg("rate limit preflight failed")
		return
	}
	if gql := limits.GetGraphQL(); gql != nil {
		g.logger.Debug().
			Int("remaining", gql.Remaining).
			Int("limit", gql.Limit).
			Time("resets", gql.Reset.Time).
			Msg("graphql rate limit")
	}
}
