package plantio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")
	// ErrEmptySource is returned when the source has no header row.
	ErrEmptySource = errors.New("source is empty")
)

// Placeholder columns left behind by the spreadsheet export.
var placeholderColumns = map[string]bool{
	"Unnamed: 13": true,
	"Unnamed: 14": true,
	"Unnamed: 15": true,
}

var requiredColumns = []string{ColPRF, ColDivision, ColProject, ColPlantedPct, ColSeedlings}

// LoadOptions controls how a source file is read.
type LoadOptions struct {
	// Sheet selects the worksheet of an .xlsx source. Empty means the first sheet.
	Sheet string
}

// Load reads a tracking spreadsheet from path. Files ending in .xlsx or .xlsm
// are read as workbooks, anything else as CSV.
func Load(path string, opts LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	var t *Table
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		t, err = ReadXLSX(f, opts.Sheet)
	default:
		t, err = ReadCSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	t.Source = path
	return t, nil
}

// ReadCSV parses a CSV tracking spreadsheet.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return fromRows(rows)
}

// ReadXLSX parses one worksheet of a workbook. Cells are read as raw values so
// numbers are not rounded by display formats; percent-formatted cells are
// scaled to percentage points, matching what a CSV export of the sheet shows.
func ReadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptySource
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	shown, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	scalePercentCells(rows, shown)
	return fromRows(rows)
}

// scalePercentCells multiplies by 100 every raw number whose displayed value
// ends in "%": the workbook stores 92.5% as 0.925.
func scalePercentCells(raw, shown [][]string) {
	for i := range min(len(raw), len(shown)) {
		for j := range min(len(raw[i]), len(shown[i])) {
			if !strings.HasSuffix(strings.TrimSpace(shown[i][j]), "%") {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(raw[i][j]), 64)
			if err != nil {
				continue
			}
			raw[i][j] = strconv.FormatFloat(v*100, 'f', -1, 64)
		}
	}
}

// fromRows builds a Table from a header row followed by data rows. Blank rows
// are skipped and the final data row, a totals footer, is dropped.
func fromRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySource
	}

	idx := make(map[string]int)
	var columns []string
	for i, raw := range rows[0] {
		name := headerName(raw, i)
		if placeholderColumns[name] {
			continue
		}
		if _, dup := idx[name]; dup {
			continue
		}
		idx[name] = i
		columns = append(columns, name)
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	var data [][]string
	for _, row := range rows[1:] {
		if !isBlankRow(row) {
			data = append(data, row)
		}
	}
	if len(data) > 0 {
		data = data[:len(data)-1]
	}

	t := &Table{
		Columns: columns,
		Records: make([]Record, 0, len(data)),
		Invalid: make(map[string]int),
	}
	p := rowParser{idx: idx, invalid: t.Invalid}
	for _, row := range data {
		t.Records = append(t.Records, p.record(row))
	}
	return t, nil
}

// headerName trims and NFC-normalizes a header cell. Blank headers are named
// "Unnamed: <index>".
func headerName(raw string, i int) string {
	name := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
	if name == "" {
		return fmt.Sprintf("Unnamed: %d", i)
	}
	return norm.NFC.String(name)
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

type rowParser struct {
	idx     map[string]int
	invalid map[string]int
}

func (p rowParser) record(row []string) Record {
	return Record{
		PRF:                p.text(row, ColPRF),
		Division:           p.text(row, ColDivision),
		Project:            p.text(row, ColProject),
		PlantedPercent:     p.number(row, ColPlantedPct),
		SeedlingCount:      p.number(row, ColSeedlings),
		PlantedAreaHa:      p.number(row, ColPlantedHa),
		RoadAreaHa:         p.number(row, ColRoadHa),
		NativeVegetationHa: p.number(row, ColNativeVegHa),
		TotalAreaHa:        p.number(row, ColTotalHa),
		Year:               p.year(row),
	}
}

func (p rowParser) cell(row []string, col string) string {
	i, ok := p.idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (p rowParser) text(row []string, col string) string {
	return norm.NFC.String(strings.TrimSpace(p.cell(row, col)))
}

func (p rowParser) number(row []string, col string) float64 {
	s := p.cell(row, col)
	v, ok := parseNumber(s)
	if !ok && strings.TrimSpace(s) != "" {
		p.invalid[col]++
	}
	return v
}

func (p rowParser) year(row []string) *int {
	s := p.cell(row, ColYear)
	v, ok := parseNumber(s)
	if !ok || v != math.Trunc(v) {
		if strings.TrimSpace(s) != "" {
			p.invalid[ColYear]++
		}
		return nil
	}
	y := int(v)
	return &y
}

// parseNumber converts a cell to a float. A trailing "%" is accepted. Empty or
// unparseable cells yield NaN and false.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return math.NaN(), false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return math.NaN(), false
	}
	return v, true
}
