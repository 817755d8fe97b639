package chart

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/zalepa/plantio/plantio"
)

// SummaryOptions configures Summary.
type SummaryOptions struct {
	Title  string
	Labels plantio.LabelStyle
	// Raw plots the values themselves instead of min-max normalized heights.
	Raw  bool
	Size Size
}

type summaryPanel struct {
	axis   string
	format string
	value  func(plantio.Record) float64
}

var summaryPanels = []summaryPanel{
	{"Área Plantada (ha)", "%.2f", func(r plantio.Record) float64 { return r.PlantedAreaHa }},
	{"Qtd. Mudas (UND)", "%.1f", func(r plantio.Record) float64 { return r.SeedlingCount }},
	{"Mortalidade (Qtd.)", "%.1f", func(r plantio.Record) float64 { return r.MortalityCount }},
}

// Summary draws three stacked panels per PRF: planted area, seedlings and
// expected mortality. Bars share one category axis, labelled on the bottom
// panel only, and each bar is captioned with its raw value.
func Summary(records []plantio.Record, opts SummaryOptions) (*Figure, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}
	if opts.Size == (Size{}) {
		opts.Size = Landscape
	}

	n := len(records)
	names := plantio.FormatLabels(records, opts.Labels)
	width := barWidth(opts.Size, n)

	fig := &Figure{Title: opts.Title, Size: opts.Size}
	for i, panel := range summaryPanels {
		raw := plantio.Column(records, panel.value)
		heights := raw
		if !opts.Raw {
			heights = plantio.Normalize(raw)
		}

		p := newPlot("")
		p.Y.Label.Text = panel.axis
		p.Y.Min = 0
		if opts.Raw {
			p.Y.Tick.Marker = compactTicks{}
		} else {
			p.Y.Tick.Marker = plot.ConstantTicks{}
		}

		vals := make(plotter.Values, n)
		for j, h := range heights {
			vals[j] = finiteOr(h, 0)
		}
		bars, err := plotter.NewBarChart(vals, width)
		if err != nil {
			return nil, fmt.Errorf("%s bars: %w", panel.axis, err)
		}
		bars.Color = pick(summaryColors, i)
		bars.LineStyle.Width = 0
		p.Add(bars)

		captions, err := valueLabels(vals, raw, panel.format)
		if err != nil {
			return nil, fmt.Errorf("%s labels: %w", panel.axis, err)
		}
		p.Add(captions)

		p.NominalX(names...)
		p.X.Min, p.X.Max = -0.5, float64(n)-0.5
		if i < len(summaryPanels)-1 {
			p.X.Tick.Marker = plot.ConstantTicks{}
		}
		// Headroom for the captions above the tallest bar.
		p.Y.Max *= 1.15
		fig.Plots = append(fig.Plots, p)
	}
	return fig, nil
}

// valueLabels captions each bar at its top with the matching raw value.
func valueLabels(heights plotter.Values, raw []float64, format string) (*plotter.Labels, error) {
	xys := make(plotter.XYs, len(heights))
	labels := make([]string, len(heights))
	for i, h := range heights {
		xys[i] = plotter.XY{X: float64(i), Y: h}
		labels[i] = "-"
		if !math.IsNaN(raw[i]) {
			labels[i] = fmt.Sprintf(format, raw[i])
		}
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].Font.Size = vg.Points(6)
		l.TextStyle[i].XAlign = draw.XCenter
		l.TextStyle[i].YAlign = draw.YBottom
	}
	l.Offset = vg.Point{Y: vg.Points(1)}
	return l, nil
}
