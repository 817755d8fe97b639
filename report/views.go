// Package report arranges plantio charts into views and writes them out as
// a paginated PDF, image files or spreadsheets.
package report

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/zalepa/plantio/chart"
	"github.com/zalepa/plantio/config"
	"github.com/zalepa/plantio/plantio"
)

// ErrUnknownView is returned when a view slug matches nothing.
var ErrUnknownView = errors.New("report: unknown view")

// HomeSlug names the overview.
const HomeSlug = "home"

// View is a titled group of figures: the overview, a division or a project.
type View struct {
	Slug  string
	Title string
	// Division and Project scope the rows behind the view; empty on the overview.
	Division string
	Project  string
	Figures  []*chart.Figure
}

// Options configures Build.
type Options struct {
	Projects []config.Project
	// Size is the design size of every figure. Zero means chart.Landscape.
	Size chart.Size
}

// vertical turns category labels on their side past this many bars.
const vertical = 12

// Build lays out the overview, one view per division and one per configured
// project. records must carry utilization classes. Views without rows are
// skipped.
func Build(records []plantio.Record, opts Options, logger *zap.Logger) ([]View, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(records) == 0 {
		return nil, chart.ErrNoData
	}
	b := builder{size: opts.Size, logger: logger}

	views := []View{b.home(records)}
	for _, div := range plantio.Divisions(records) {
		views = append(views, b.division(div, plantio.ByDivision(records, div)))
	}
	for _, p := range opts.Projects {
		rows := plantio.ByProject(plantio.ByDivision(records, p.Division), p.Name)
		if len(rows) == 0 {
			logger.Warn("project has no rows, skipping", zap.String("division", p.Division), zap.String("project", p.Name))
			continue
		}
		views = append(views, b.project(p, rows))
	}
	if b.err != nil {
		return nil, b.err
	}
	return views, nil
}

// builder collects figures and keeps the first hard error; ErrNoData only
// drops the figure.
type builder struct {
	size   chart.Size
	logger *zap.Logger
	err    error
}

// collect returns a sink for chart builder results that appends to v.
func (b *builder) collect(v *View) func(*chart.Figure, error) {
	return func(fig *chart.Figure, err error) {
		switch {
		case errors.Is(err, chart.ErrNoData):
			b.logger.Debug("empty chart skipped", zap.String("view", v.Slug))
		case err != nil:
			if b.err == nil {
				b.err = fmt.Errorf("%s: %w", v.Title, err)
			}
		default:
			v.Figures = append(v.Figures, fig)
		}
	}
}

func (b *builder) home(records []plantio.Record) View {
	v := View{Slug: HomeSlug, Title: "Home"}
	add := b.collect(&v)
	groups := plantio.GroupByDivision(records)

	add(chart.StackedPercent(records, chart.StackedOptions{
		Title:    "Percentual de Aproveitamento das Áreas de Plantio por PRF",
		Labels:   plantio.LabelOverview,
		Vertical: len(records) > vertical,
		Size:     b.size,
	}))
	add(chart.Summary(records, chart.SummaryOptions{
		Title:  "Resumo das Áreas de Plantio por PRF",
		Labels: plantio.LabelOverview,
		Size:   b.size,
	}))

	var classes []chart.Slice
	for _, c := range plantio.CountByClass(records) {
		classes = append(classes, chart.Slice{Label: string(c.Class), Value: float64(c.Count)})
	}
	add(chart.Donut(classes, chart.DonutOptions{
		Title:  "Aproveitamento por Projeto",
		Legend: "Classes de aproveitamento:",
		Colors: chart.UtilizationColors,
		Size:   b.size,
	}))

	metrics := []struct {
		title  string
		colors []color.Color
		value  func(plantio.DivisionTotals) float64
	}{
		{"Gestão por Quantidade de Projetos", chart.DivisionColors, func(g plantio.DivisionTotals) float64 { return float64(g.Count) }},
		{"Gestão por Total de Hectares", chart.DivisionColors, func(g plantio.DivisionTotals) float64 { return g.TotalAreaHa }},
		{"Gestão por Número de Mudas", chart.DivisionColors, func(g plantio.DivisionTotals) float64 { return g.SeedlingCount }},
		{"Gestão por Número de Mudas Mortas", chart.MortalityColors, func(g plantio.DivisionTotals) float64 { return g.MortalityCount }},
	}
	for _, m := range metrics {
		slices := make([]chart.Slice, len(groups))
		for i, g := range groups {
			slices[i] = chart.Slice{Label: g.Division, Value: m.value(g)}
		}
		add(chart.Donut(slices, chart.DonutOptions{
			Title:  m.title,
			Legend: "Divisão",
			Colors: m.colors,
			Size:   b.size,
		}))
	}

	add(chart.LandUse(groups, chart.LandUseOptions{Title: "Uso do Solo", Size: b.size}))
	return v
}

func (b *builder) division(name string, rows []plantio.Record) View {
	v := View{Slug: Slug(name), Title: name, Division: name}
	add := b.collect(&v)
	add(chart.StackedPercent(rows, chart.StackedOptions{
		Title:    name + " - Percentual de Aproveitamento das Áreas de Plantio por PRF",
		Labels:   plantio.LabelDivision,
		Vertical: len(rows) > vertical,
		Size:     b.size,
	}))
	add(chart.Summary(rows, chart.SummaryOptions{
		Title:  name + " - Resumo das Áreas de Plantio por PRF",
		Labels: plantio.LabelDivision,
		Size:   b.size,
	}))
	return v
}

func (b *builder) project(p config.Project, rows []plantio.Record) View {
	heading := p.Heading()
	v := View{
		Slug:     Slug(p.Division + " " + p.Name),
		Title:    heading + " - " + p.Division,
		Division: p.Division,
		Project:  p.Name,
	}
	add := b.collect(&v)
	add(chart.StackedPercent(rows, chart.StackedOptions{
		Title:    "Percentual de Aproveitamento das Áreas de Plantio - " + heading,
		Labels:   plantio.LabelWrap,
		Vertical: len(rows) > vertical,
		Size:     b.size,
	}))
	add(chart.Summary(rows, chart.SummaryOptions{
		Title:  "Resumo das Áreas de Plantio - " + heading,
		Labels: plantio.LabelWrap,
		Raw:    true,
		Size:   b.size,
	}))
	return v
}

// Find returns the view named by slug.
func Find(views []View, slug string) (View, error) {
	for _, v := range views {
		if v.Slug == slug {
			return v, nil
		}
	}
	return View{}, fmt.Errorf("%w: %q", ErrUnknownView, slug)
}

// Select returns the named views in the order given, or all views when slugs
// is empty.
func Select(views []View, slugs []string) ([]View, error) {
	if len(slugs) == 0 {
		return views, nil
	}
	out := make([]View, 0, len(slugs))
	for _, s := range slugs {
		v, err := Find(views, Slug(s))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Slug lowercases s, drops accents and joins words with dashes:
// "Rio do Vento Expansão" becomes "rio-do-vento-expansao".
func Slug(s string) string {
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(strip, s)
	if err != nil {
		plain = s
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(plain) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}
