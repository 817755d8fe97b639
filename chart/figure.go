// Package chart draws the plantio report charts with gonum/plot.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	// Output formats for draw.NewFormattedCanvas.
	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
	_ "gonum.org/v1/plot/vg/vgtex"
)

// ErrNoData is returned when a chart is asked to draw an empty record set.
var ErrNoData = errors.New("chart: no data")

// Size is the design size of a figure. Bar widths are computed from it.
type Size struct {
	W, H vg.Length
}

// Landscape is a US letter page on its side.
var Landscape = Size{W: 11 * vg.Inch, H: 8.5 * vg.Inch}

const (
	margin      = 0.5 * vg.Inch
	headerSpace = 0.45 * vg.Inch
	panelGap    = 0.15 * vg.Inch
)

// Figure is one chart: a header title above a column of plots that share
// their X axis alignment.
type Figure struct {
	Title string
	Size  Size
	Plots []*plot.Plot
}

// Draw fills c with the figure.
func (f *Figure) Draw(c draw.Canvas) {
	c.FillPolygon(color.White, []vg.Point{
		c.Min,
		{X: c.Max.X, Y: c.Min.Y},
		c.Max,
		{X: c.Min.X, Y: c.Max.Y},
	})

	mid := (c.Min.X + c.Max.X) / 2
	fillText(c, f.Title, vg.Points(16), vg.Point{X: mid, Y: c.Max.Y - margin/2}, draw.XCenter, titleColor)

	area := draw.Crop(c, margin, -margin, margin, -(margin + headerSpace))
	switch len(f.Plots) {
	case 0:
		return
	case 1:
		f.Plots[0].Draw(area)
		return
	}

	grid := make([][]*plot.Plot, len(f.Plots))
	for i, p := range f.Plots {
		grid[i] = []*plot.Plot{p}
	}
	tiles := draw.Tiles{Rows: len(f.Plots), Cols: 1, PadY: panelGap}
	canvases := plot.Align(grid, tiles, area)
	for i, p := range f.Plots {
		p.Draw(canvases[i][0])
	}
}

// Render writes f to w in the given format (png, svg, pdf, jpg, eps, tex).
// A zero size uses the figure's design size.
func Render(w io.Writer, f *Figure, size Size, format string) error {
	if size.W == 0 || size.H == 0 {
		size = f.Size
	}
	var cw vg.CanvasWriterTo
	if format == "pdf" {
		cw = NewPDF(size)
	} else {
		var err error
		if cw, err = draw.NewFormattedCanvas(size.W, size.H, format); err != nil {
			return fmt.Errorf("render %q: %w", f.Title, err)
		}
	}
	f.Draw(draw.New(cw))
	if _, err := cw.WriteTo(w); err != nil {
		return fmt.Errorf("write %q: %w", f.Title, err)
	}
	return nil
}

// Formats lists the output formats Render accepts.
var Formats = []string{"png", "svg", "pdf", "jpg", "jpeg", "eps", "tex"}
