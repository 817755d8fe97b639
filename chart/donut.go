package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	ringHole  = 0.7
	ringSpan  = 0.72
	labelRing = 1.15
	arcStep   = 2 * math.Pi / 180
)

// Slice is one wedge of a donut.
type Slice struct {
	Label string
	Value float64
}

// DonutOptions configures Donut.
type DonutOptions struct {
	Title string
	// Legend heads the legend entries, e.g. "Divisão".
	Legend string
	Colors []color.Color
	Size   Size
}

// Donut draws slices as a ring, starting at twelve o'clock and running
// counter-clockwise, with the total in the hole and each wedge captioned with
// its value and share. Negative and non-finite values draw as empty wedges.
func Donut(slices []Slice, opts DonutOptions) (*Figure, error) {
	values, total := wedges(slices)
	if total <= 0 {
		return nil, ErrNoData
	}
	if opts.Size == (Size{}) {
		opts.Size = Landscape
	}
	if len(opts.Colors) == 0 {
		opts.Colors = UtilizationColors
	}

	r := &ring{values: values, colors: opts.Colors, total: total}

	p := newPlot("")
	p.HideAxes()
	p.Add(r)

	p.Legend.Top = true
	if opts.Legend != "" {
		p.Legend.Add(opts.Legend)
	}
	for i, s := range slices {
		p.Legend.Add(s.Label, swatch{pick(opts.Colors, i)})
	}

	return &Figure{Title: opts.Title, Size: opts.Size, Plots: []*plot.Plot{p}}, nil
}

// wedges returns the drawable value of each slice and their sum.
func wedges(slices []Slice) ([]float64, float64) {
	values := make([]float64, len(slices))
	var total float64
	for i, s := range slices {
		values[i] = max(finiteOr(s.Value, 0), 0)
		total += values[i]
	}
	return values, total
}

// ring implements plot.Plotter. It draws in canvas space so the ring stays
// round whatever the canvas aspect ratio.
type ring struct {
	values []float64
	colors []color.Color
	total  float64
}

func (r *ring) Plot(c draw.Canvas, _ *plot.Plot) {
	center := c.Center()
	outer := min(c.Max.X-c.Min.X, c.Max.Y-c.Min.Y) / 2 * ringSpan
	inner := outer * ringHole

	angle := math.Pi / 2
	for i, v := range r.values {
		sweep := 2 * math.Pi * v / r.total
		if sweep > 0 {
			pts := arcPoints(center, outer, angle, sweep)
			rim := arcPoints(center, inner, angle, sweep)
			for j := len(rim) - 1; j >= 0; j-- {
				pts = append(pts, rim[j])
			}
			c.FillPolygon(pick(r.colors, i), pts)
		}
		angle += sweep
	}

	edge := draw.LineStyle{Color: color.White, Width: vg.Points(2)}
	angle = math.Pi / 2
	for _, v := range r.values {
		c.StrokeLines(edge, []vg.Point{polar(center, inner, angle), polar(center, outer, angle)})
		angle += 2 * math.Pi * v / r.total
	}

	angle = math.Pi / 2
	for _, v := range r.values {
		sweep := 2 * math.Pi * v / r.total
		at := polar(center, outer*labelRing, angle+sweep/2)
		fillText(c, ptBR.Sprintf("%d", int64(v)), vg.Points(9), vg.Point{X: at.X, Y: at.Y + vg.Points(6)}, draw.XCenter, titleColor)
		fillText(c, ptBR.Sprintf("(%.2f%%)", v/r.total*100), vg.Points(8), vg.Point{X: at.X, Y: at.Y - vg.Points(5)}, draw.XCenter, labelGray)
		angle += sweep
	}

	fillText(c, ptBR.Sprintf("%d", int64(r.total)), vg.Points(24), center, draw.XCenter, titleColor)
}

func (r *ring) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -1, 1, -1, 1
}

func arcPoints(center vg.Point, radius vg.Length, start, sweep float64) []vg.Point {
	steps := int(math.Ceil(sweep / arcStep))
	if steps < 2 {
		steps = 2
	}
	pts := make([]vg.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		pts = append(pts, polar(center, radius, start+sweep*float64(i)/float64(steps)))
	}
	return pts
}

func polar(center vg.Point, radius vg.Length, angle float64) vg.Point {
	return vg.Point{
		X: center.X + radius*vg.Length(math.Cos(angle)),
		Y: center.Y + radius*vg.Length(math.Sin(angle)),
	}
}

// swatch is a filled legend thumbnail.
type swatch struct {
	color color.Color
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	c.FillPolygon(s.color, []vg.Point{
		c.Min,
		{X: c.Min.X, Y: c.Max.Y},
		c.Max,
		{X: c.Max.X, Y: c.Min.Y},
	})
}
