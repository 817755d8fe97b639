package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/zalepa/plantio/plantio"
)

// Workbook sheet names.
const (
	SheetPRF       = "PRF"
	SheetDivisions = "Divisões"
	SheetRun       = "Execução"
)

type column struct {
	header string
	width  float64
	value  func(plantio.Record) any
}

var recordColumns = []column{
	{plantio.ColPRF, 36, func(r plantio.Record) any { return r.PRF }},
	{plantio.ColDivision, 12, func(r plantio.Record) any { return r.Division }},
	{plantio.ColProject, 26, func(r plantio.Record) any { return r.Project }},
	{plantio.ColPlantedPct, 12, func(r plantio.Record) any { return cell(r.PlantedPercent) }},
	{plantio.ColUnplantedPct, 14, func(r plantio.Record) any { return cell(r.UnplantedPercent) }},
	{plantio.ColSeedlings, 14, func(r plantio.Record) any { return cell(r.SeedlingCount) }},
	{plantio.ColMortality, 14, func(r plantio.Record) any { return cell(r.MortalityCount) }},
	{plantio.ColPlantedHa, 12, func(r plantio.Record) any { return cell(r.PlantedAreaHa) }},
	{plantio.ColRoadHa, 12, func(r plantio.Record) any { return cell(r.RoadAreaHa) }},
	{plantio.ColNativeVegHa, 14, func(r plantio.Record) any { return cell(r.NativeVegetationHa) }},
	{plantio.ColTotalHa, 12, func(r plantio.Record) any { return cell(r.TotalAreaHa) }},
	{plantio.ColYear, 8, func(r plantio.Record) any {
		if r.Year == nil {
			return nil
		}
		return *r.Year
	}},
	{plantio.ColUtilization, 16, func(r plantio.Record) any { return string(r.UtilizationClass) }},
}

var divisionHeaders = []string{
	plantio.ColDivision, "PRFs", plantio.ColTotalHa, plantio.ColSeedlings, plantio.ColMortality,
	plantio.ColRoadHa, plantio.ColNativeVegHa, plantio.ColPlantedHa,
}

// ExportMeta describes the run that produced an export.
type ExportMeta struct {
	Source    string
	RunID     string
	Generated time.Time
}

// cell maps NaN to an empty cell.
func cell(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// WriteWorkbook writes the derived records, the division totals and the run
// metadata as an xlsx workbook.
func WriteWorkbook(w io.Writer, records []plantio.Record, meta ExportMeta) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1C4E80"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetPRF); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	headers := make([]string, len(recordColumns))
	for i, c := range recordColumns {
		headers[i] = c.header
	}
	if err := writeHeader(f, SheetPRF, headers, header); err != nil {
		return err
	}
	for i, c := range recordColumns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetPRF, name, name, c.width); err != nil {
			return fmt.Errorf("column width: %w", err)
		}
	}
	for i, r := range records {
		row := make([]any, len(recordColumns))
		for j, c := range recordColumns {
			row[j] = c.value(r)
		}
		if err := setRow(f, SheetPRF, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SheetDivisions); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	if err := writeHeader(f, SheetDivisions, divisionHeaders, header); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetDivisions, "A", "H", 16); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	groups := plantio.GroupByDivision(records)
	total := plantio.Totals(groups)
	total.Division = "Total"
	for i, g := range append(groups, total) {
		row := []any{g.Division, g.Count, g.TotalAreaHa, g.SeedlingCount, g.MortalityCount, g.RoadAreaHa, g.NativeVegetationHa, g.PlantedAreaHa}
		if err := setRow(f, SheetDivisions, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SheetRun); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	runRows := [][]any{
		{"Fonte", meta.Source},
		{"Execução", meta.RunID},
		{"Gerado em", meta.Generated.Format(time.RFC3339)},
		{"PRFs", len(records)},
		{"Taxa de mortalidade", plantio.MortalityRate},
	}
	for i, row := range runRows {
		if err := setRow(f, SheetRun, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetRun, "A", "B", 24); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := setRow(f, sheet, 1, row); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, start, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	return nil
}

// WriteCSV writes the derived records with the same columns as the PRF sheet.
// Missing numbers are left empty.
func WriteCSV(w io.Writer, records []plantio.Record) error {
	cw := csv.NewWriter(w)
	headers := make([]string, len(recordColumns))
	for i, c := range recordColumns {
		headers[i] = c.header
	}
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	line := make([]string, len(recordColumns))
	for _, r := range records {
		for i, c := range recordColumns {
			line[i] = csvValue(c.value(r))
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
