package format

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// HTMLRenderer emits a self-contained HTML page with two charts: daily
// contributions across the window and commit counts per repository.
type HTMLRenderer struct{}

// Render implements Renderer.
func (r *HTMLRenderer) Render(report *domain.ActivityReport) (string, error) {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("GitHub Activity Report for %s", report.Username)
	page.AddCharts(dailyContributionsChart(report), commitsByRepositoryChart(report))

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func dailyContributionsChart(report *domain.ActivityReport) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Daily contributions for %s", report.Username),
			Subtitle: fmt.Sprintf("%s to %s",
				report.Window.From.Format("2006-01-02"),
				report.Window.To.Format("2006-01-02")),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1200px",
			Height: "400px",
		}),
	)

	var dates []string
	data := make([]opts.LineData, 0)
	for _, week := range report.Summary.Calendar.Weeks {
		for _, day := range week.Days {
			dates = append(dates, day.Date)
			data = append(data, opts.LineData{
				Name:   day.Date,
				Value:  day.Count,
				Symbol: "none",
			})
		}
	}
	line.SetXAxis(dates).
		AddSeries("contributions", data).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{Smooth: true}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.2}),
		)
	return line
}

func commitsByRepositoryChart(report *domain.ActivityReport) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Commits by repository"}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1200px",
			Height: "400px",
		}),
	)

	var repos []string
	data := make([]opts.BarData, 0)
	for _, bucket := range report.CommitsByRepository {
		repos = append(repos, bucket.Repository.NameWithOwner)
		data = append(data, opts.BarData{Value: bucket.Count})
	}
	bar.SetXAxis(repos).AddSeries("commits", data)
	return bar
}
