package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// reportForFiltering builds a report spanning two organizations, plus an
// owner whose name shares a prefix with one of them to pin down the exact
// org-matching rule.
func reportForFiltering() *domain.ActivityReport {
	ref := func(nameWithOwner string) domain.RepositoryRef {
		return domain.RepositoryRef{
			NameWithOwner: nameWithOwner,
			UpdatedAt:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		}
	}
	return &domain.ActivityReport{
		Username: "dummy",
		Window: domain.DateWindow{
			From: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		},
		Summary: domain.ContributionSummary{
			TotalCommits:            18,
			TotalIssues:             3,
			TotalPullRequests:       3,
			TotalPullRequestReviews: 1,
			Calendar: domain.ContributionCalendar{
				TotalContributions: 25,
				Weeks: []domain.ContributionWeek{
					{Days: []domain.ContributionDay{{Date: "2025-03-10", Count: 25, Weekday: 1}}},
				},
			},
		},
		CommitsByRepository: []domain.CommitBucket{
			{Repository: ref("acme/api"), Count: 7},
			{Repository: ref("acme/web"), Count: 3},
			{Repository: ref("other/tool"), Count: 6},
			{Repository: ref("acmeco/tool"), Count: 2},
		},
		Issues: []domain.IssueItem{
			{Number: 1, Title: "API issue", Repository: ref("acme/api")},
			{Number: 2, Title: "Web issue", Repository: ref("acme/web")},
			{Number: 3, Title: "Tool issue", Repository: ref("other/tool")},
		},
		PullRequests: []domain.PullRequestItem{
			{Number: 101, Title: "API PR", Repository: ref("acme/api")},
			{Number: 102, Title: "Web PR", Repository: ref("acme/web")},
			{Number: 103, Title: "Tool PR", Repository: ref("other/tool")},
		},
		Reviews: []domain.PullRequestReviewItem{
			{PullRequest: domain.PullRequestSummary{Number: 200, Title: "Reviewed PR"}, OccurredAt: time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)},
		},
	}
}

func bucketNames(buckets []domain.CommitBucket) []string {
	names := make([]string, 0, len(buckets))
	for _, b := range buckets {
		names = append(names, b.Repository.NameWithOwner)
	}
	return names
}

func TestFilters_Apply(t *testing.T) {
	testCases := []struct {
		name            string
		filters         Filters
		expectedBuckets []string
		expectedIssues  []int
		expectedPRs     []int
	}{
		{
			name:            "no filters is the identity",
			filters:         Filters{},
			expectedBuckets: []string{"acme/api", "acme/web", "other/tool", "acmeco/tool"},
			expectedIssues:  []int{1, 2, 3},
			expectedPRs:     []int{101, 102, 103},
		},
		{
			name:            "repo filter keeps the exact repository only",
			filters:         Filters{Repo: "acme/web"},
			expectedBuckets: []string{"acme/web"},
			expectedIssues:  []int{2},
			expectedPRs:     []int{102},
		},
		{
			name:            "repo filter is case-sensitive",
			filters:         Filters{Repo: "Acme/web"},
			expectedBuckets: []string{},
			expectedIssues:  []int{},
			expectedPRs:     []int{},
		},
		{
			name:            "org filter keeps every repository of the owner",
			filters:         Filters{Org: "acme"},
			expectedBuckets: []string{"acme/api", "acme/web"},
			expectedIssues:  []int{1, 2},
			expectedPRs:     []int{101, 102},
		},
		{
			name:            "org filter matches the owner segment, not a prefix of it",
			filters:         Filters{Org: "acm"},
			expectedBuckets: []string{},
			expectedIssues:  []int{},
			expectedPRs:     []int{},
		},
		{
			name:            "repo and org filters combine with AND",
			filters:         Filters{Repo: "acme/web", Org: "acme"},
			expectedBuckets: []string{"acme/web"},
			expectedIssues:  []int{2},
			expectedPRs:     []int{102},
		},
		{
			name:            "conflicting repo and org filters pass nothing",
			filters:         Filters{Repo: "other/tool", Org: "acme"},
			expectedBuckets: []string{},
			expectedIssues:  []int{},
			expectedPRs:     []int{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := reportForFiltering()
			out := tc.filters.Apply(input)

			require.NotNil(t, out)
			assert.Equal(t, tc.expectedBuckets, bucketNames(out.CommitsByRepository))

			issueNumbers := make([]int, 0, len(out.Issues))
			for _, issue := range out.Issues {
				issueNumbers = append(issueNumbers, issue.Number)
			}
			assert.Equal(t, tc.expectedIssues, issueNumbers)

			prNumbers := make([]int, 0, len(out.PullRequests))
			for _, pr := range out.PullRequests {
				prNumbers = append(prNumbers, pr.Number)
			}
			assert.Equal(t, tc.expectedPRs, prNumbers)

			// Reviews carry no repository on the wire, so every filter
			// leaves them alone.
			assert.Equal(t, input.Reviews, out.Reviews)

			// Summary and calendar describe the whole window and are never
			// recomputed from the filtered lists.
			assert.Equal(t, reportForFiltering().Summary, out.Summary)
		})
	}
}

func TestFilters_Apply_NoFiltersReturnsEqualReport(t *testing.T) {
	input := reportForFiltering()
	out := Filters{}.Apply(input)

	assert.Equal(t, input, out)
}

func TestFilters_Apply_DoesNotMutateInput(t *testing.T) {
	input := reportForFiltering()
	pristine := reportForFiltering()

	_ = Filters{Repo: "acme/web", Org: "acme"}.Apply(input)

	assert.Equal(t, pristine, input, "filtering must build a new report, not narrow the old one")
}

func TestFilters_Empty(t *testing.T) {
	assert.True(t, Filters{}.Empty())
	assert.False(t, Filters{Repo: "acme/web"}.Empty())
	assert.False(t, Filters{Org: "acme"}.Empty())
	assert.False(t, Filters{Repo: "acme/web", Org: "acme"}.Empty())
}
