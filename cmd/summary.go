package cmd

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/zalepa/plantio/plantio"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

func newSummaryCmd(a *app) *cobra.Command {
	var division string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print division totals and utilization classes as terminal tables",
		Example: `  plantio summary --data plantio.xlsx
  plantio summary --division DEVco`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := a.records()
			if err != nil {
				return err
			}
			records := tbl.Records
			if division != "" {
				records = plantio.ByDivision(records, division)
				if len(records) == 0 {
					return fmt.Errorf("no rows for division %q", division)
				}
			}
			renderSummary(cmd.OutOrStdout(), tbl.Source, records, tbl.Invalid)
			return nil
		},
	}
	cmd.Flags().StringVar(&division, "division", "", "only summarize this division")
	return cmd
}

type tableColumn struct {
	header string
	width  int
	left   bool
}

// renderSummary prints one table of per-division totals, with a planted
// percentage trend per PRF, and one of utilization classes.
func renderSummary(w io.Writer, source string, records []plantio.Record, invalid map[string]int) {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#1C4E80"))
	muted := r.NewStyle().Foreground(lipgloss.Color("#7B8794"))

	fmt.Fprintln(w, title.Render("Resumo de Plantio"))
	fmt.Fprintln(w, muted.Render(fmt.Sprintf("%s: %d PRFs", source, len(records))))
	fmt.Fprintln(w)

	groups := plantio.GroupByDivision(records)
	nameWidth := len("Total")
	for _, g := range groups {
		nameWidth = max(nameWidth, lipgloss.Width(g.Division))
	}
	cols := []tableColumn{
		{header: "Divisão", width: max(nameWidth, len("Divisão")), left: true},
		{header: "PRFs", width: 5},
		{header: "Total (ha)", width: 11},
		{header: "Mudas", width: 10},
		{header: "Mortalidade", width: 11},
		{header: "Estrada", width: 9},
		{header: "Veg. Nativa", width: 11},
		{header: "Plantio (ha)", width: 12},
		{header: "Plantio (%)", width: 0, left: true},
	}
	for _, g := range groups {
		cols[len(cols)-1].width = max(cols[len(cols)-1].width, g.Count, len("Plantio (%)"))
	}

	writeRow(w, r, cols, headers(cols), true)
	writeRule(w, cols)
	for _, g := range groups {
		trend := plantedTrend(plantio.ByDivision(records, g.Division))
		writeRow(w, r, cols, divisionRow(g, trend), false)
	}
	if len(groups) > 1 {
		writeRule(w, cols)
		total := plantio.Totals(groups)
		total.Division = "Total"
		writeRow(w, r, cols, divisionRow(total, ""), true)
	}
	fmt.Fprintln(w)

	classCols := []tableColumn{
		{header: plantio.ColUtilization, width: len(plantio.ColUtilization), left: true},
		{header: "PRFs", width: 5},
		{header: "", width: 0, left: true},
	}
	counts := plantio.CountByClass(records)
	for _, c := range counts {
		classCols[2].width = max(classCols[2].width, c.Count)
	}
	writeRow(w, r, classCols, headers(classCols), true)
	writeRule(w, classCols)
	for _, c := range counts {
		writeRow(w, r, classCols, []string{string(c.Class), formatInt(int64(c.Count)), strings.Repeat("█", c.Count)}, false)
	}

	dups := plantio.Duplicates(records)
	if len(invalid) > 0 || len(dups) > 0 {
		fmt.Fprintln(w)
	}
	for _, d := range dups {
		fmt.Fprintln(w, muted.Render(fmt.Sprintf("aviso: %s: %q também grafado como %s", d.Division, d.Keep, quoteAll(d.Others))))
	}
	if len(invalid) > 0 {
		names := make([]string, 0, len(invalid))
		for name := range invalid {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintln(w, muted.Render(fmt.Sprintf("aviso: %d valores inválidos em %q", invalid[name], name)))
		}
	}
}

func quoteAll(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(q, ", ")
}

func headers(cols []tableColumn) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.header
	}
	return out
}

func divisionRow(g plantio.DivisionTotals, trend string) []string {
	return []string{
		g.Division,
		formatInt(int64(g.Count)),
		formatNum(g.TotalAreaHa),
		formatNum(g.SeedlingCount),
		formatNum(g.MortalityCount),
		formatNum(g.RoadAreaHa),
		formatNum(g.NativeVegetationHa),
		formatNum(g.PlantedAreaHa),
		trend,
	}
}

func writeRow(w io.Writer, r *lipgloss.Renderer, cols []tableColumn, cells []string, bold bool) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		style := r.NewStyle().Width(c.width).Bold(bold)
		if c.left {
			style = style.Align(lipgloss.Left)
		} else {
			style = style.Align(lipgloss.Right)
		}
		parts[i] = style.Render(cells[i])
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
}

func writeRule(w io.Writer, cols []tableColumn) {
	n := 0
	for _, c := range cols {
		n += c.width
	}
	fmt.Fprintln(w, strings.Repeat("─", n+2*(len(cols)-1)))
}

// plantedTrend is a sparkline of planted percentages in row order.
func plantedTrend(records []plantio.Record) string {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.PlantedPercent
	}
	return sparkline(values)
}

func sparkline(values []float64) string {
	blocks := []rune("▁▂▃▄▅▆▇█")
	n := len(blocks)

	levels := plantio.Normalize(values)
	var sb strings.Builder
	for _, v := range levels {
		if math.IsNaN(v) {
			sb.WriteRune(' ')
			continue
		}
		idx := min(int(v*float64(n-1)), n-1)
		sb.WriteRune(blocks[idx])
	}
	return sb.String()
}

func formatNum(v float64) string {
	if math.IsNaN(v) {
		return "- -"
	}
	if v == float64(int64(v)) && math.Abs(v) < 1e15 {
		return formatInt(int64(v))
	}
	return printer.Sprintf("%.2f", v)
}

func formatInt(v int64) string {
	return printer.Sprintf("%d", v)
}
