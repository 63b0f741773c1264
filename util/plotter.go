package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"checkin-server/models"
)

// PlotPopularCategories renders the popular-categories ranking for one
// hour as an HTML bar chart.
func PlotPopularCategories(w io.Writer, hour int, categories []models.PopularCategory) error {
	labels := make([]string, 0, len(categories))
	values := make([]opts.BarData, 0, len(categories))
	for _, c := range categories {
		labels = append(labels, c.VenueCategory)
		values = append(values, opts.BarData{Value: c.CheckinCount})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Popular Categories",
			Width:     "800px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Popular categories at %02d:00", hour),
			Subtitle: "Check-ins inside the metro bounding box",
		}),
	)

	bar.SetXAxis(labels)
	bar.AddSeries("Check-ins", values,
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Position: "top",
		}),
	)

	return bar.Render(w)
}
