package report

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Page is the text content of one PDF page.
type Page struct {
	Number int `json:"number"`
	// Title is the first text drawn on the page: the chart header for
	// report pages.
	Title string   `json:"title"`
	Text  []string `json:"text"`
}

// Inspect reads a PDF file and returns the text of every page.
func Inspect(path string) ([]Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	return InspectReader(f)
}

// InspectReader is Inspect for an already open document.
func InspectReader(rs io.ReadSeeker) ([]Page, error) {
	ctx, err := pdfcpu.Read(rs, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	if err := pdfcpu.OptimizeXRefTable(ctx); err != nil {
		return nil, fmt.Errorf("optimize xref: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}

	pages := make([]Page, 0, ctx.PageCount)
	for i := 1; i <= ctx.PageCount; i++ {
		page := Page{Number: i}
		pageDict, _, _, err := ctx.PageDict(i, false)
		if err != nil {
			return nil, fmt.Errorf("page %d dict: %w", i, err)
		}
		if obj, found := pageDict.Find("Contents"); found {
			stream, err := contentStream(ctx, obj)
			if err != nil {
				return nil, fmt.Errorf("page %d content stream: %w", i, err)
			}
			page.Text = textBlocks(stream)
			if len(page.Text) > 0 {
				page.Title = page.Text[0]
			}
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// contentStream dereferences and decodes a Contents entry, which is either a
// stream or an array of streams.
func contentStream(ctx *model.Context, obj types.Object) ([]byte, error) {
	obj, err := ctx.Dereference(obj)
	if err != nil {
		return nil, err
	}

	switch v := obj.(type) {
	case types.StreamDict:
		if err := v.Decode(); err != nil {
			return nil, fmt.Errorf("decode stream: %w", err)
		}
		return v.Content, nil
	case types.Array:
		var buf bytes.Buffer
		for _, item := range v {
			data, err := contentStream(ctx, item)
			if err != nil {
				return nil, err
			}
			buf.Write(data)
			buf.WriteByte('\n')
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unexpected Contents type: %T", obj)
	}
}
