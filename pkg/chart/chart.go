package chart

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samber/lo"

	"github.com/birkenlabs/birkentempprofiler/pkg/model"
)

// Render writes a self-contained interactive chart for the profile.
// Temperature low/high are plotted against distance on the primary
// axis, elevation on the secondary axis.
func Render(p *model.Profile, w io.Writer) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Elevation Profile"}),
		charts.WithTitleOpts(opts.Title{Title: "Elevation Profile"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Distance (km)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Temperature (°C)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	line.ExtendYAxis(opts.YAxis{Name: "Elevation (m)", Type: "value"})

	toLineData := func(values []float64) []opts.LineData {
		return lo.Map(values, func(v float64, _ int) opts.LineData {
			return opts.LineData{Value: v}
		})
	}
	xAxis := lo.Map(p.Distance, func(d float64, _ int) string {
		return fmt.Sprintf("%.1f", d)
	})

	line.SetXAxis(xAxis).
		AddSeries("Temperature Low", toLineData(p.TempLow)).
		AddSeries("Temperature High", toLineData(p.TempHigh)).
		AddSeries("Elevation", toLineData(p.Elevation),
			charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}))

	return line.Render(w)
}

// RenderFile renders the chart into a file at the given path.
func RenderFile(p *model.Profile, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Render(p, f)
}
