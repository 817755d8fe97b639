package report

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/zalepa/plantio/chart"
)

const (
	pdfMargin     = 0.6 * vg.Inch
	contentsRow   = 0.28 * vg.Inch
	contentsHead  = 1.1 * vg.Inch
	pageColWidth  = 0.7 * vg.Inch
	viewColWidth  = 2.6 * vg.Inch
	coverTitle    = "Relatório de Plantio"
	continuedNote = " (continuação)"
)

var (
	inkColor   = color.RGBA{R: 0x1c, G: 0x4e, B: 0x80, A: 0xff}
	mutedColor = color.Gray{Y: 100}
	ruleColor  = color.Gray{Y: 180}
)

// Meta is printed on the cover page.
type Meta struct {
	Source    string
	RunID     string
	Generated time.Time
	// Size is the page size. Zero means chart.Landscape.
	Size chart.Size
}

// PageCount is the number of pages WritePDF produces for views.
func PageCount(views []View, size chart.Size) int {
	n := 0
	for _, v := range views {
		n += len(v.Figures)
	}
	return coverPages(n, size) + n
}

// WriteFile writes the PDF report to path.
func WriteFile(path string, views []View, meta Meta) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := WritePDF(f, views, meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WritePDF writes a contents page followed by one page per figure.
func WritePDF(w io.Writer, views []View, meta Meta) error {
	size := meta.Size
	if size == (chart.Size{}) {
		size = chart.Landscape
	}

	type entry struct {
		view string
		fig  *chart.Figure
	}
	var entries []entry
	for _, v := range views {
		for _, f := range v.Figures {
			entries = append(entries, entry{view: v.Title, fig: f})
		}
	}
	if len(entries) == 0 {
		return chart.ErrNoData
	}

	c := chart.NewPDF(size)
	first := coverPages(len(entries), size) + 1

	rows := make([]contentsEntry, len(entries))
	for i, e := range entries {
		rows[i] = contentsEntry{page: first + i, view: e.view, title: e.fig.Title}
	}
	drawContents(c, size, meta, rows)

	for _, e := range entries {
		c.NextPage()
		e.fig.Draw(draw.New(c))
	}

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

type contentsEntry struct {
	page  int
	view  string
	title string
}

func rowsPerPage(size chart.Size, first bool) int {
	usable := size.H - 2*pdfMargin
	if first {
		usable -= contentsHead
	} else {
		usable -= contentsRow
	}
	if n := int(usable / contentsRow); n > 0 {
		return n
	}
	return 1
}

func coverPages(entries int, size chart.Size) int {
	pages := 1
	for left := entries - rowsPerPage(size, true); left > 0; left -= rowsPerPage(size, false) {
		pages++
	}
	return pages
}

// drawContents lays the contents table over as many pages as it needs. The
// first text on the first page is the report title.
func drawContents(c *chart.PDF, size chart.Size, meta Meta, rows []contentsEntry) {
	width := size.W - 2*pdfMargin
	idx := 0
	for pageNum := 0; pageNum == 0 || idx < len(rows); pageNum++ {
		if pageNum > 0 {
			c.NextPage()
		}
		dc := draw.New(c)
		area := draw.Crop(dc, pdfMargin, -pdfMargin, pdfMargin, -pdfMargin)

		yTop := area.Max.Y
		if pageNum == 0 {
			fillText(area, coverTitle, vg.Points(20), area.Min.X, yTop-vg.Points(20), inkColor)
			fillText(area, subtitle(meta), vg.Points(9), area.Min.X, yTop-0.5*vg.Inch, mutedColor)
			headerY := yTop - 0.85*vg.Inch
			fillText(area, "Página", vg.Points(10), area.Min.X, headerY, mutedColor)
			fillText(area, "Visão", vg.Points(10), area.Min.X+pageColWidth, headerY, mutedColor)
			fillText(area, "Gráfico", vg.Points(10), area.Min.X+pageColWidth+viewColWidth, headerY, mutedColor)
			strokeHLine(area, area.Min.X, area.Min.X+width, headerY-vg.Points(6), ruleColor)
			yTop -= contentsHead
		} else {
			fillText(area, coverTitle+continuedNote, vg.Points(10), area.Min.X, yTop-vg.Points(8), mutedColor)
			yTop -= contentsRow
		}

		for drawn := 0; drawn < rowsPerPage(size, pageNum == 0) && idx < len(rows); drawn++ {
			r := rows[idx]
			idx++
			y := yTop - vg.Length(drawn)*contentsRow - contentsRow*0.65
			fillText(area, fmt.Sprintf("%d", r.page), vg.Points(9), area.Min.X, y, color.Black)
			fillText(area, r.view, vg.Points(9), area.Min.X+pageColWidth, y, color.Black)
			fillText(area, r.title, vg.Points(9), area.Min.X+pageColWidth+viewColWidth, y, color.Black)
		}
	}
}

func subtitle(meta Meta) string {
	s := "Fonte: " + meta.Source
	if !meta.Generated.IsZero() {
		s += "  |  Gerado em " + meta.Generated.Format("02/01/2006 15:04")
	}
	if meta.RunID != "" {
		s += "  |  Execução " + meta.RunID
	}
	return s
}

func fillText(c draw.Canvas, txt string, size vg.Length, x, y vg.Length, clr color.Color) {
	sty := draw.TextStyle{
		Color:   clr,
		Font:    plot.DefaultFont,
		Handler: plot.DefaultTextHandler,
	}
	sty.Font.Size = size
	c.FillText(sty, vg.Point{X: x, Y: y}, txt)
}

func strokeHLine(c draw.Canvas, x0, x1, y vg.Length, clr color.Color) {
	c.StrokeLine2(draw.LineStyle{
		Color: clr,
		Width: vg.Points(0.5),
	}, x0, y, x1, y)
}
