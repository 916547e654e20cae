package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// MarkdownRenderer writes the report as a Markdown document with one table
// per contribution kind.
type MarkdownRenderer struct{}

// Render implements Renderer.
func (r *MarkdownRenderer) Render(report *domain.ActivityReport) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# GitHub Activity Report for %s\n\n", report.Username)
	fmt.Fprintf(&b, "**Time Period:** %s to %s\n\n",
		report.Window.From.Format(time.RFC3339),
		report.Window.To.Format(time.RFC3339))

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Total Commit Contributions:** %d\n", report.Summary.TotalCommits)
	fmt.Fprintf(&b, "- **Total Issue Contributions:** %d\n", report.Summary.TotalIssues)
	fmt.Fprintf(&b, "- **Total Pull Request Contributions:** %d\n", report.Summary.TotalPullRequests)
	fmt.Fprintf(&b, "- **Total Pull Request Review Contributions:** %d\n\n", report.Summary.TotalPullRequestReviews)

	if in, ok := calendarInsights(report.Summary.Calendar); ok {
		b.WriteString("## Activity Statistics\n\n")
		fmt.Fprintf(&b, "- **Active Days:** %d of %d\n", in.ActiveDays, in.TotalDays)
		fmt.Fprintf(&b, "- **Mean Daily Contributions:** %.2f\n", in.DailyMean)
		fmt.Fprintf(&b, "- **Median Daily Contributions:** %.2f\n", in.DailyMedian)
		fmt.Fprintf(&b, "- **Busiest Day:** %s (%d contributions)\n\n", in.BusiestDate, in.BusiestCount)
	}

	b.WriteString("## Contribution Calendar\n\n")
	fmt.Fprintf(&b, "**Total Contributions:** %d\n\n", report.Summary.Calendar.TotalContributions)
	for _, week := range report.Summary.Calendar.Weeks {
		for _, day := range week.Days {
			fmt.Fprintf(&b, "* %s: %d contributions (weekday %d)\n", day.Date, day.Count, day.Weekday)
		}
	}
	b.WriteByte('\n')

	b.WriteString("## Repository Contributions\n\n")
	b.WriteString("| Repository             | Commits |\n")
	b.WriteString("|------------------------|---------|\n")
	for _, bucket := range report.CommitsByRepository {
		fmt.Fprintf(&b, "| %-22s | %7d |\n", bucket.Repository.NameWithOwner, bucket.Count)
	}
	b.WriteByte('\n')

	b.WriteString("## Issue Contributions\n\n")
	b.WriteString("| Issue # | Title | URL | Created At | State | Closed At |\n")
	b.WriteString("|---------|-------|-----|------------|-------|-----------|\n")
	for _, issue := range report.Issues {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			issue.Number,
			issue.Title,
			issue.URL,
			issue.CreatedAt.Format(time.RFC3339),
			issue.State,
			formatOptional(issue.ClosedAt))
	}
	b.WriteByte('\n')

	b.WriteString("## Pull Request Contributions\n\n")
	b.WriteString("| PR # | Title | URL | Created At | State | Merged | Merged At | Closed At |\n")
	b.WriteString("|------|-------|-----|------------|-------|--------|-----------|-----------|\n")
	for _, pr := range report.PullRequests {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %t | %s | %s |\n",
			pr.Number,
			pr.Title,
			pr.URL,
			pr.CreatedAt.Format(time.RFC3339),
			pr.State,
			pr.Merged,
			formatOptional(pr.MergedAt),
			formatOptional(pr.ClosedAt))
	}
	b.WriteByte('\n')

	b.WriteString("## Pull Request Review Contributions\n\n")
	b.WriteString("| PR # | Title | URL | Occurred At |\n")
	b.WriteString("|------|-------|-----|-------------|\n")
	for _, review := range report.Reviews {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n",
			review.PullRequest.Number,
			review.PullRequest.Title,
			review.PullRequest.URL,
			review.OccurredAt.Format(time.RFC3339))
	}

	return b.String(), nil
}
