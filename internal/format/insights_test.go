package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-activity/internal/domain"
)

func TestCalendarInsights(t *testing.T) {
	cal := domain.ContributionCalendar{
		TotalContributions: 8,
		Weeks: []domain.ContributionWeek{
			{Days: []domain.ContributionDay{
				{Date: "2025-03-09", Count: 0, Weekday: 0},
				{Date: "2025-03-10", Count: 2, Weekday: 1},
			}},
			{Days: []domain.ContributionDay{
				{Date: "2025-03-16", Count: 5, Weekday: 0},
				{Date: "2025-03-17", Count: 1, Weekday: 1},
			}},
		},
	}

	in, ok := calendarInsights(cal)
	require.True(t, ok)

	assert.Equal(t, 4, in.TotalDays)
	assert.Equal(t, 3, in.ActiveDays)
	assert.InDelta(t, 2.0, in.DailyMean, 1e-9)
	assert.InDelta(t, 1.5, in.DailyMedian, 1e-9)
	assert.Equal(t, "2025-03-16", in.BusiestDate)
	assert.Equal(t, 5, in.BusiestCount)
}

func TestCalendarInsights_TieKeepsFirstBusiestDay(t *testing.T) {
	cal := domain.ContributionCalendar{
		Weeks: []domain.ContributionWeek{
			{Days: []domain.ContributionDay{
				{Date: "2025-03-10", Count: 4, Weekday: 1},
				{Date: "2025-03-11", Count: 4, Weekday: 2},
			}},
		},
	}

	in, ok := calendarInsights(cal)
	require.True(t, ok)
	assert.Equal(t, "2025-03-10", in.BusiestDate)
}

func TestCalendarInsights_EmptyCalendar(t *testing.T) {
	_, ok := calendarInsights(domain.ContributionCalendar{})
	assert.False(t, ok)
}
