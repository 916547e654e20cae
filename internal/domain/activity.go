// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// RepositoryRef identifies a repository in owner/name form. Two refs denote
// the same repository iff NameWithOwner matches exactly (case-sensitive).
type RepositoryRef struct {
	NameWithOwner string    `json:"nameWithOwner"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CommitBucket is the commit total for one repository within the window.
// Buckets keep the server's delivery order, which is not guaranteed sorted.
type CommitBucket struct {
	Repository RepositoryRef `json:"repository"`
	Count      int           `json:"count"`
}

// ContributionDay is a single calendar cell. Date carries the server's
// YYYY-MM-DD form; Weekday is 0 (Sunday) through 6.
type ContributionDay struct {
	Date    string `json:"date"`
	Count   int    `json:"contributionCount"`
	Weekday int    `json:"weekday"`
}

// ContributionWeek is one column of the contribution calendar.
type ContributionWeek struct {
	Days []ContributionDay `json:"contributionDays"`
}

// ContributionCalendar is the per-day activity grid for the whole window.
type ContributionCalendar struct {
	TotalContributions int                `json:"totalContributions"`
	Weeks              []ContributionWeek `json:"weeks"`
}

// ContributionSummary holds the aggregate counters reported by the base
// query. The totals describe the full window and are never recomputed from
// the item lists, so they survive filtering unchanged.
type ContributionSummary struct {
	TotalCommits            int                  `json:"totalCommitContributions"`
	TotalIssues             int                  `json:"totalIssueContributions"`
	TotalPullRequests       int                  `json:"totalPullRequestContributions"`
	TotalPullRequestReviews int                  `json:"totalPullRequestReviewContributions"`
	Calendar                ContributionCalendar `json:"contributionCalendar"`
}

// Overview is everything the base query yields in one round trip: the
// summary counters plus per-repository commit totals. The repository list is
// subject to server-side truncation; that limit is accepted, not paginated.
type Overview struct {
	Summary             ContributionSummary
	CommitsByRepository []CommitBucket
}

// IssueItem is one issue contribution. ClosedAt is nil unless the issue is
// closed.
type IssueItem struct {
	Number     int           `json:"number"`
	Title      string        `json:"title"`
	URL        string        `json:"url"`
	CreatedAt  time.Time     `json:"createdAt"`
	State      string        `json:"state"`
	ClosedAt   *time.Time    `json:"closedAt,omitempty"`
	Repository RepositoryRef `json:"repository"`
}

// PullRequestItem is one pull request contribution. Merged implies MergedAt
// is set.
type PullRequestItem struct {
	Number     int           `json:"number"`
	Title      string        `json:"title"`
	URL        string        `json:"url"`
	CreatedAt  time.Time     `json:"createdAt"`
	State      string        `json:"state"`
	Merged     bool          `json:"merged"`
	MergedAt   *time.Time    `json:"mergedAt,omitempty"`
	ClosedAt   *time.Time    `json:"closedAt,omitempty"`
	Repository RepositoryRef `json:"repository"`
}

// PullRequestSummary is the slim pull request embedded in a review
// contribution. The wire contract carries no repository here, which is why
// reviews cannot participate in repo/org filtering.
type PullRequestSummary struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}

// PullRequestReviewItem is one review contribution.
type PullRequestReviewItem struct {
	PullRequest PullRequestSummary `json:"pullRequest"`
	OccurredAt  time.Time          `json:"occurredAt"`
}

// ActivityReport is the consolidated result of one fetch cycle. It is built
// once by the aggregator and treated as read-only afterwards; filtering
// produces a fresh report rather than mutating this one.
type ActivityReport struct {
	Username            string                  `json:"username"`
	Window              DateWindow              `json:"window"`
	Summary             ContributionSummary     `json:"summary"`
	CommitsByRepository []CommitBucket          `json:"commitContributionsByRepository"`
	Issues              []IssueItem             `json:"issues"`
	PullRequests        []PullRequestItem       `json:"pullRequests"`
	Reviews             []PullRequestReviewItem `json:"reviews"`
}
