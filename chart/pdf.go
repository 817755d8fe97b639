package chart

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgpdf"
)

// PDF is a vgpdf canvas that re-encodes text as Windows-1252 before it
// reaches the page. vgpdf builds its embedded fonts with that code page, so
// UTF-8 accents would otherwise print as two garbage glyphs.
type PDF struct {
	*vgpdf.Canvas
}

// NewPDF returns a one-page PDF canvas of the given size. Call NextPage to
// start another page.
func NewPDF(size Size) *PDF {
	return &PDF{Canvas: vgpdf.New(size.W, size.H)}
}

// FillString implements vg.Canvas.
func (p *PDF) FillString(f font.Face, pt vg.Point, s string) {
	p.Canvas.FillString(f, pt, EncodePDFText(s))
}

// EncodePDFText converts s to the byte string written into PDF content
// streams. Runes outside Windows-1252 are replaced.
func EncodePDFText(s string) string {
	out, err := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).String(s)
	if err != nil {
		return s
	}
	return out
}

// DecodePDFText is the inverse of EncodePDFText.
func DecodePDFText(b []byte) string {
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
