package cmd

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/zalepa/plantio/report"
)

func TestReportAndInspect(t *testing.T) {
	out := filepath.Join(t.TempDir(), "devco.pdf")

	_, stderr, err := run(t, "report", "--data", fixturePath, "--out", out, "--view", "devco")
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote "+out+" (3 pages)")

	stdout, _, err := run(t, "inspect", out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Relatório de Plantio")
	assert.Contains(t, lines[1], "DEVco - Percentual de Aproveitamento das Áreas de Plantio por PRF")
	assert.Contains(t, lines[2], "DEVco - Resumo das Áreas de Plantio por PRF")
}

func TestReportImagesOnly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")

	_, stderr, err := run(t, "report", "--data", fixturePath, "--view", "home",
		"--images", dir, "--format", "svg", "--no-pdf")
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote 8 svg images")
	assert.NotContains(t, stderr, ".pdf")

	for i := range 8 {
		_, err := os.Stat(filepath.Join(dir, report.ImageName("home", i, "svg")))
		assert.NoError(t, err)
	}
}

func TestReportErrors(t *testing.T) {
	_, _, err := run(t, "report", "--data", fixturePath, "--no-pdf")
	assert.ErrorContains(t, err, "nothing to do")

	_, _, err = run(t, "report", "--data", fixturePath, "--view", "nope", "--out", filepath.Join(t.TempDir(), "x.pdf"))
	assert.ErrorIs(t, err, report.ErrUnknownView)

	_, _, err = run(t, "report", "--data", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestExportCSV(t *testing.T) {
	stdout, _, err := run(t, "export", "--data", fixturePath, "--csv", "-")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "DESCRIÇÃO DO PRF,DIVISÃO,PROJETO"))
	assert.True(t, strings.HasPrefix(lines[1], "CE - RVE,ASSETco,Rio do Vento Expansão,100,"))
}

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plantio.xlsx")
	_, _, err := run(t, "export", "--data", fixturePath, "--xlsx", path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(report.SheetPRF)
	require.NoError(t, err)
	assert.Len(t, rows, 8)
	assert.Equal(t, []string{report.SheetPRF, report.SheetDivisions, report.SheetRun}, f.GetSheetList())
}

func TestExportNothingToDo(t *testing.T) {
	_, _, err := run(t, "export", "--data", fixturePath)
	assert.ErrorContains(t, err, "nothing to do")
}

func TestSummary(t *testing.T) {
	stdout, _, err := run(t, "summary", "--data", fixturePath)
	require.NoError(t, err)

	for _, want := range []string{"Resumo de Plantio", "7 PRFs", "ASSETco", "DEVco", "Total", "100%", "<60%", "60%-69%"} {
		assert.Contains(t, stdout, want)
	}

	stdout, _, err = run(t, "summary", "--data", fixturePath, "--division", "DEVco")
	require.NoError(t, err)
	assert.Contains(t, stdout, "3 PRFs")
	assert.NotContains(t, stdout, "ASSETco")

	_, _, err = run(t, "summary", "--data", fixturePath, "--division", "XYZco")
	assert.ErrorContains(t, err, `no rows for division "XYZco"`)
}

func TestConfigCommand(t *testing.T) {
	stdout, _, err := run(t, "config", "--data", fixturePath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "workers: 4")
	assert.Contains(t, stdout, fixturePath)

	stdout, _, err = run(t, "config", "--env")
	require.NoError(t, err)
	assert.Contains(t, stdout, "PLANTIO_SERVER_ADDR")
}

func TestInspectRequiresFile(t *testing.T) {
	_, _, err := run(t, "inspect")
	assert.Error(t, err)

	_, _, err = run(t, "inspect", filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestFormatNum(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{87950, "87.950"},
		{7, "7"},
		{0.56, "0,56"},
		{39.78, "39,78"},
		{math.NaN(), "- -"},
	}
	for _, tt := range tests {
		if got := formatNum(tt.input); got != tt.want {
			t.Errorf("formatNum(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "▁▄█ ", sparkline([]float64{0, 50, 100, math.NaN()}))
	assert.Equal(t, "▄▄", sparkline([]float64{5, 5}))
	assert.Equal(t, "", sparkline(nil))
}
