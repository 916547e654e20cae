package usecase

import (
	"strings"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// Filters narrows an ActivityReport to contributions touching a single
// repository and/or a single organization. The zero value passes everything.
type Filters struct {
	// Repo matches the exact "owner/name" form.
	Repo string
	// Org matches the owner segment of "owner/name".
	Org string
}

// Empty reports whether no filter is set.
func (f Filters) Empty() bool {
	return f.Repo == "" && f.Org == ""
}

// matches applies every filter that is set; an item passes only when it
// satisfies all of them.
func (f Filters) matches(repo domain.RepositoryRef) bool {
	if f.Repo != "" && repo.NameWithOwner != f.Repo {
		return false
	}
	if f.Org != "" && !strings.HasPrefix(repo.NameWithOwner, f.Org+"/") {
		return false
	}
	return true
}

// Apply returns a report narrowed to the filters. Commit buckets, issues
// and pull requests are filtered by their repository. Review contributions
// carry no repository reference on the wire, so they pass through, as do
// the summary totals and the calendar, which describe the whole window.
// The input report is never mutated.
func (f Filters) Apply(report *domain.ActivityReport) *domain.ActivityReport {
	if f.Empty() {
		return report
	}
	out := *report
	out.CommitsByRepository = filterSlice(report.CommitsByRepository, func(b domain.CommitBucket) bool {
		return f.matches(b.Repository)
	})
	out.Issues = filterSlice(report.Issues, func(i domain.IssueItem) bool {
		return f.matches(i.Repository)
	})
	out.PullRequests = filterSlice(report.PullRequests, func(p domain.PullRequestItem) bool {
		return f.matches(p.Repository)
	})
	return &out
}

func filterSlice[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
