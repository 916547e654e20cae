package format

import (
	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// CalendarInsights summarizes the contribution calendar: how many days saw
// activity and how the daily counts distribute across the window.
type CalendarInsights struct {
	TotalDays    int
	ActiveDays   int
	DailyMean    float64
	DailyMedian  float64
	BusiestDate  string
	BusiestCount int
}

// calendarInsights derives summary statistics from the calendar. ok is
// false when the calendar carries no days at all, in which case the
// renderers skip the statistics section entirely.
func calendarInsights(cal domain.ContributionCalendar) (CalendarInsights, bool) {
	var in CalendarInsights
	var counts []float64
	for _, week := range cal.Weeks {
		for _, day := range week.Days {
			counts = append(counts, float64(day.Count))
			in.TotalDays++
			if day.Count > 0 {
				in.ActiveDays++
			}
			if in.BusiestDate == "" || day.Count > in.BusiestCount {
				in.BusiestDate = day.Date
				in.BusiestCount = day.Count
			}
		}
	}
	if len(counts) == 0 {
		return CalendarInsights{}, false
	}

	mean, err := stats.Mean(counts)
	if err != nil {
		return CalendarInsights{}, false
	}
	median, err := stats.Median(counts)
	if err != nil {
		return CalendarInsights{}, false
	}
	in.DailyMean = mean
	in.DailyMedian = median
	return in, true
}
