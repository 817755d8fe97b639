package chart

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/zalepa/plantio/plantio"
)

// StackedOptions configures StackedPercent.
type StackedOptions struct {
	Title  string
	Labels plantio.LabelStyle
	// Vertical turns the category labels on their side, for crowded charts.
	Vertical bool
	Size     Size
}

// StackedPercent draws one bar per PRF, split into planted and unplanted
// percentages, ordered by planted percentage, with the mortality rate marked
// as a dashed line.
func StackedPercent(records []plantio.Record, opts StackedOptions) (*Figure, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}
	if opts.Size == (Size{}) {
		opts.Size = Landscape
	}

	rows := plantio.SortByPlanted(records)
	n := len(rows)
	planted := make(plotter.Values, n)
	unplanted := make(plotter.Values, n)
	for i, r := range rows {
		planted[i] = finiteOr(r.PlantedPercent, 0)
		unplanted[i] = finiteOr(r.UnplantedPercent, 0)
	}

	p := newPlot("")
	p.Y.Label.Text = "Percentual (%)"
	p.Y.Min, p.Y.Max = 0, 110
	p.Y.Tick.Marker = percentTicks{}

	width := barWidth(opts.Size, n)
	plantedBars, err := plotter.NewBarChart(planted, width)
	if err != nil {
		return nil, fmt.Errorf("planted bars: %w", err)
	}
	plantedBars.Color = plantedColor
	plantedBars.LineStyle.Width = 0

	unplantedBars, err := plotter.NewBarChart(unplanted, width)
	if err != nil {
		return nil, fmt.Errorf("unplanted bars: %w", err)
	}
	unplantedBars.Color = unplantedColor
	unplantedBars.LineStyle.Width = 0
	unplantedBars.StackOn(plantedBars)

	rate := plantio.MortalityRate * 100
	line, err := plotter.NewLine(plotter.XYs{{X: -0.5, Y: rate}, {X: float64(n) - 0.5, Y: rate}})
	if err != nil {
		return nil, fmt.Errorf("mortality line: %w", err)
	}
	line.Color = mortalityColor
	line.Width = vg.Points(1)
	line.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}

	p.Add(plantedBars, unplantedBars, line)

	caption, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: float64(n) - 0.5, Y: rate + 1}},
		Labels: []string{MortalityLabel(plantio.MortalityRate)},
	})
	if err != nil {
		return nil, fmt.Errorf("mortality caption: %w", err)
	}
	caption.TextStyle[0].Color = mortalityColor
	caption.TextStyle[0].Font.Size = vg.Points(10)
	caption.TextStyle[0].XAlign = draw.XRight
	caption.TextStyle[0].YAlign = draw.YBottom
	p.Add(caption)

	segs, err := segmentLabels(planted, unplanted)
	if err != nil {
		return nil, err
	}
	if segs != nil {
		p.Add(segs)
	}

	p.NominalX(plantio.FormatLabels(rows, opts.Labels)...)
	p.X.Min, p.X.Max = -0.5, float64(n)-0.5
	if opts.Vertical {
		p.X.Tick.Label.Rotation = math.Pi / 2
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}

	p.Legend.Top = true
	p.Legend.Add("Área Plantada (%)", plantedBars)
	p.Legend.Add("Área Sem Plantio (%)", unplantedBars)
	p.Legend.Add("Taxa de Mortalidade", line)

	return &Figure{Title: opts.Title, Size: opts.Size, Plots: []*plot.Plot{p}}, nil
}

// segmentLabels prints each positive segment's percentage in its middle:
// white on the planted part, black on the unplanted part.
func segmentLabels(planted, unplanted plotter.Values) (*plotter.Labels, error) {
	var xys plotter.XYs
	var labels []string
	var white []bool
	for i := range planted {
		if planted[i] > 0 {
			xys = append(xys, plotter.XY{X: float64(i), Y: planted[i] / 2})
			labels = append(labels, fmt.Sprintf("%.1f%%", planted[i]))
			white = append(white, true)
		}
		if unplanted[i] > 0 {
			xys = append(xys, plotter.XY{X: float64(i), Y: planted[i] + unplanted[i]/2})
			labels = append(labels, fmt.Sprintf("%.1f%%", unplanted[i]))
			white = append(white, false)
		}
	}
	if len(xys) == 0 {
		return nil, nil
	}

	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("segment labels: %w", err)
	}
	for i := range l.TextStyle {
		l.TextStyle[i] = segmentStyle(l.TextStyle[i], white[i])
	}
	return l, nil
}

func segmentStyle(sty text.Style, white bool) text.Style {
	sty.Color = labelBlack
	if white {
		sty.Color = labelWhite
	}
	sty.Font.Size = vg.Points(6)
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YCenter
	sty.Rotation = math.Pi / 2
	return sty
}

// percentTicks labels the Y axis every 10% up to 100.
type percentTicks struct{}

func (percentTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for v := 0.0; v <= 100 && v <= max; v += 10 {
		t := plot.Tick{Value: v}
		if int(v)%20 == 0 {
			t.Label = fmt.Sprintf("%.0f", v)
		}
		ticks = append(ticks, t)
	}
	return ticks
}
