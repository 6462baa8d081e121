// Package report writes an interactive HTML companion to the static map:
// an ECharts scatter of the waypoints grouped by transect, useful for
// hovering individual plots when reviewing a survey.
package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/itoshima-fieldlab/surveymap/internal/geo"
	"github.com/itoshima-fieldlab/surveymap/internal/render"
	"github.com/itoshima-fieldlab/surveymap/internal/survey"
)

// Write renders the waypoint scatter to an HTML file at path. bounds sets
// the axis ranges, which should already include the display margin.
func Write(wps []survey.Waypoint, bounds geo.Bounds, title, path string) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%d waypoints", len(wps))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Min: bounds.MinLon, Max: bounds.MaxLon,
			Name: "Longitude (°E)", NameLocation: "middle", NameGap: 25,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Min: bounds.MinLat, Max: bounds.MaxLat,
			Name: "Latitude (°N)", NameLocation: "middle", NameGap: 45,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)

	grouped := survey.ByGroup(wps)
	for _, g := range survey.Groups {
		members := grouped[g]
		if len(members) == 0 {
			continue
		}

		data := make([]opts.ScatterData, 0, len(members))
		for _, wp := range members {
			data = append(data, opts.ScatterData{
				Name:  wp.Name,
				Value: []interface{}{wp.Point.Lon, wp.Point.Lat},
			})
		}

		c := render.Palette[g]
		scatter.AddSeries(string(g), data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)}),
		)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := scatter.Render(f); err != nil {
		return fmt.Errorf("render report %s: %w", path, err)
	}
	return nil
}
