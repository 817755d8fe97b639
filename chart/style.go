package chart

import (
	"fmt"
	"image/color"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	titleColor     = hex("#1C4E80")
	tickColor      = hex("#4D4D4D")
	plantedColor   = hex("#6AB187")
	unplantedColor = hex("#D8AE58")
	mortalityColor = hex("#EA6A47")
	labelGray      = color.Gray{Y: 128}
	labelWhite     = color.Color(color.White)
	labelBlack     = color.Color(color.Black)

	// Panels of the summary chart, top to bottom.
	summaryColors = []color.Color{hex("#1F3F49"), hex("#6AB187"), hex("#488A99")}

	// UtilizationColors are the slices of the utilization donut.
	UtilizationColors = []color.Color{
		hex("#8FD3A9"), hex("#B1D7B0"), hex("#74B781"),
		hex("#74B7E0"), hex("#2F5263"), hex("#5B94C4"),
	}
	// DivisionColors are the slices of the division donuts.
	DivisionColors = []color.Color{hex("#8AB8A8"), hex("#476B8A")}
	// MortalityColors are the slices of the mortality donut.
	MortalityColors = []color.Color{hex("#EA6A47"), hex("#DBAE58")}

	// Land use bars per division; other divisions cycle through landUseColors.
	landUseByDivision = map[string]color.Color{
		"ASSETco": hex("#6AB187"),
		"DEVco":   hex("#488A99"),
	}
	landUseColors = []color.Color{hex("#6AB187"), hex("#488A99"), hex("#1F3F49"), hex("#D8AE58")}
)

// ptBR formats numbers the way the report readers expect them.
var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// MortalityLabel is the caption of the mortality reference line.
func MortalityLabel(rate float64) string {
	return ptBR.Sprintf("%.2f%%", rate*100)
}

func hex(s string) color.RGBA {
	var c color.RGBA
	c.A = 0xff
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		panic(fmt.Sprintf("chart: bad color %q", s))
	}
	return c
}

func pick(colors []color.Color, i int) color.Color {
	return colors[i%len(colors)]
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(12)
	p.Title.TextStyle.Color = titleColor
	p.BackgroundColor = color.White

	p.X.Tick.Label.Color = tickColor
	p.X.Tick.Label.Font.Size = vg.Points(7)
	p.Y.Tick.Label.Color = tickColor
	p.Y.LineStyle.Color = tickColor
	p.Y.LineStyle.Width = vg.Points(1.5)
	p.X.Label.TextStyle.Color = titleColor
	p.Y.Label.TextStyle.Color = titleColor
	p.Legend.TextStyle.Color = titleColor
	return p
}

func fillText(c draw.Canvas, txt string, size vg.Length, pt vg.Point, align draw.XAlignment, clr color.Color) {
	sty := draw.TextStyle{
		Color:   clr,
		Font:    plot.DefaultFont,
		Handler: plot.DefaultTextHandler,
		XAlign:  align,
		YAlign:  draw.YCenter,
	}
	sty.Font.Size = size
	c.FillText(sty, pt, txt)
}

// barWidth spreads n bars over the plotting width of size, leaving a sliver
// between neighbours.
func barWidth(size Size, n int) vg.Length {
	if n < 1 {
		n = 1
	}
	usable := size.W - 2*margin - vg.Inch
	return usable / vg.Length(n) * 0.95
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
