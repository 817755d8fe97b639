package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/zalepa/plantio/plantio"
)

var landUseCategories = []struct {
	name  string
	value func(plantio.DivisionTotals) float64
}{
	{plantio.ColRoadHa, func(g plantio.DivisionTotals) float64 { return g.RoadAreaHa }},
	{plantio.ColNativeVegHa, func(g plantio.DivisionTotals) float64 { return g.NativeVegetationHa }},
	{plantio.ColPlantedHa, func(g plantio.DivisionTotals) float64 { return g.PlantedAreaHa }},
	{plantio.ColTotalHa, func(g plantio.DivisionTotals) float64 { return g.TotalAreaHa }},
}

// LandUseOptions configures LandUse.
type LandUseOptions struct {
	Title string
	Size  Size
}

// LandUse draws, for each land use category, one horizontal bar per division.
func LandUse(groups []plantio.DivisionTotals, opts LandUseOptions) (*Figure, error) {
	if len(groups) == 0 {
		return nil, ErrNoData
	}
	if opts.Size == (Size{}) {
		opts.Size = Landscape
	}

	p := newPlot("")
	p.X.Label.Text = "Área (ha)"
	p.X.Min = 0
	p.X.Tick.Label.Color = titleColor
	p.Y.Tick.Label.Color = titleColor
	p.X.LineStyle.Color = tickColor
	p.X.LineStyle.Width = vg.Points(1.5)

	k := len(groups)
	slot := (opts.Size.H - 2*margin - headerSpace - vg.Inch) / vg.Length(len(landUseCategories))
	thick := slot * 0.7 / vg.Length(k)

	for j, g := range groups {
		vals := make(plotter.Values, len(landUseCategories))
		for i, cat := range landUseCategories {
			vals[i] = cat.value(g)
		}
		bars, err := plotter.NewBarChart(vals, thick)
		if err != nil {
			return nil, fmt.Errorf("%s bars: %w", g.Division, err)
		}
		bars.Horizontal = true
		bars.Offset = (vg.Length(j) - vg.Length(k-1)/2) * thick
		bars.Color = divisionColor(g.Division, j)
		bars.LineStyle.Width = 0
		p.Add(bars)
		p.Legend.Add(g.Division, bars)

		xys := make(plotter.XYs, len(vals))
		labels := make([]string, len(vals))
		for i, v := range vals {
			xys[i] = plotter.XY{X: v, Y: float64(i)}
			labels[i] = fmt.Sprintf("%.2f", v)
		}
		captions, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
		if err != nil {
			return nil, fmt.Errorf("%s labels: %w", g.Division, err)
		}
		for i := range captions.TextStyle {
			captions.TextStyle[i].Color = titleColor
			captions.TextStyle[i].Font.Size = vg.Points(9)
			captions.TextStyle[i].XAlign = draw.XLeft
			captions.TextStyle[i].YAlign = draw.YCenter
		}
		captions.Offset = vg.Point{X: vg.Points(3), Y: bars.Offset}
		p.Add(captions)
	}

	names := make([]string, len(landUseCategories))
	for i, cat := range landUseCategories {
		names[i] = cat.name
	}
	p.NominalY(names...)
	// Room for the captions right of the longest bar.
	p.X.Max *= 1.12
	p.Legend.Top = true

	return &Figure{Title: opts.Title, Size: opts.Size, Plots: []*plot.Plot{p}}, nil
}

func divisionColor(division string, i int) color.Color {
	if c, ok := landUseByDivision[division]; ok {
		return c
	}
	return pick(landUseColors, i)
}
