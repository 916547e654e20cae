package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// PlainRenderer writes the report as indented plain text.
type PlainRenderer struct{}

// Render implements Renderer.
func (r *PlainRenderer) Render(report *domain.ActivityReport) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "User: %s\n", report.Username)
	fmt.Fprintf(&b, "Time Period: %s to %s\n",
		report.Window.From.Format(time.RFC3339),
		report.Window.To.Format(time.RFC3339))
	fmt.Fprintf(&b, "Total Commit Contributions: %d\n", report.Summary.TotalCommits)
	fmt.Fprintf(&b, "Total Issue Contributions: %d\n", report.Summary.TotalIssues)
	fmt.Fprintf(&b, "Total Pull Request Contributions: %d\n", report.Summary.TotalPullRequests)
	fmt.Fprintf(&b, "Total Pull Request Review Contributions: %d\n\n", report.Summary.TotalPullRequestReviews)

	if in, ok := calendarInsights(report.Summary.Calendar); ok {
		b.WriteString("Activity Statistics:\n")
		fmt.Fprintf(&b, "  Active Days: %d of %d\n", in.ActiveDays, in.TotalDays)
		fmt.Fprintf(&b, "  Mean Daily Contributions: %.2f\n", in.DailyMean)
		fmt.Fprintf(&b, "  Median Daily Contributions: %.2f\n", in.DailyMedian)
		fmt.Fprintf(&b, "  Busiest Day: %s (%d contributions)\n", in.BusiestDate, in.BusiestCount)
		b.WriteByte('\n')
	}

	b.WriteString("Contribution Calendar:\n")
	fmt.Fprintf(&b, "  Total Contributions: %d\n", report.Summary.Calendar.TotalContributions)
	for _, week := range report.Summary.Calendar.Weeks {
		for _, day := range week.Days {
			fmt.Fprintf(&b, "    %s: %d contributions (weekday %d)\n", day.Date, day.Count, day.Weekday)
		}
	}
	b.WriteByte('\n')

	b.WriteString("Repository Contributions:\n")
	for _, bucket := range report.CommitsByRepository {
		fmt.Fprintf(&b, "- %s: %d commits\n", bucket.Repository.NameWithOwner, bucket.Count)
	}
	b.WriteByte('\n')

	b.WriteString("Issue Contributions:\n")
	for _, issue := range report.Issues {
		fmt.Fprintf(&b, "- Issue #%d: %s\n", issue.Number, issue.Title)
		fmt.Fprintf(&b, "  URL: %s\n", issue.URL)
		fmt.Fprintf(&b, "  Created: %s\n", issue.CreatedAt.Format(time.RFC3339))
		fmt.Fprintf(&b, "  State: %s\n", issue.State)
		fmt.Fprintf(&b, "  Closed: %s\n", formatOptional(issue.ClosedAt))
	}
	b.WriteByte('\n')

	b.WriteString("Pull Request Contributions:\n")
	for _, pr := range report.PullRequests {
		fmt.Fprintf(&b, "- PR #%d: %s\n", pr.Number, pr.Title)
		fmt.Fprintf(&b, "  URL: %s\n", pr.URL)
		fmt.Fprintf(&b, "  Created: %s\n", pr.CreatedAt.Format(time.RFC3339))
		fmt.Fprintf(&b, "  State: %s\n", pr.State)
		fmt.Fprintf(&b, "  Merged: %t\n", pr.Merged)
		fmt.Fprintf(&b, "  Merged At: %s\n", formatOptional(pr.MergedAt))
		fmt.Fprintf(&b, "  Closed: %s\n", formatOptional(pr.ClosedAt))
	}
	b.WriteByte('\n')

	b.WriteString("Pull Request Review Contributions:\n")
	for _, review := range report.Reviews {
		fmt.Fprintf(&b, "- PR Review for PR #%d: %s\n", review.PullRequest.Number, review.PullRequest.Title)
		fmt.Fprintf(&b, "  URL: %s\n", review.PullRequest.URL)
		fmt.Fprintf(&b, "  Occurred At: %s\n", review.OccurredAt.Format(time.RFC3339))
	}

	return b.String(), nil
}

// formatOptional renders a nullable timestamp, using "N/A" for absent values.
func formatOptional(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format(time.RFC3339)
}
