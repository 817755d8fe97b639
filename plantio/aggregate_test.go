package plantio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByDivision(t *testing.T) {
	all := loadFixture(t)
	groups := GroupByDivision(all)
	require.Len(t, groups, 2)

	asset, dev := groups[0], groups[1]
	assert.Equal(t, "ASSETco", asset.Division)
	assert.Equal(t, 4, asset.Count)
	assert.InDelta(t, 102441.46, asset.SeedlingCount, 1e-6)
	assert.InDelta(t, 102441.46*MortalityRate, asset.MortalityCount, 1e-6)
	assert.InDelta(t, 48.576584, asset.TotalAreaHa, 1e-9)

	assert.Equal(t, "DEVco", dev.Division)
	assert.Equal(t, 3, dev.Count)
	assert.InDelta(t, 960.3425, dev.SeedlingCount, 1e-9)
}

func TestGroupSumIsDistributive(t *testing.T) {
	all := loadFixture(t)

	var want float64
	for _, r := range all {
		want += r.SeedlingCount
	}
	total := Totals(GroupByDivision(all))
	assert.InDelta(t, want, total.SeedlingCount, 1e-6)
	assert.Equal(t, len(all), total.Count)
}

func TestGroupByDivisionNotHardcoded(t *testing.T) {
	in := Derive([]Record{
		{Division: "C", SeedlingCount: 1, TotalAreaHa: math.NaN()},
		{Division: "A", SeedlingCount: 2, TotalAreaHa: 1},
		{Division: "B", SeedlingCount: 3, TotalAreaHa: 2},
		{Division: "A", SeedlingCount: 4, TotalAreaHa: 3},
	})
	groups := GroupByDivision(in)
	require.Len(t, groups, 3)
	assert.Equal(t, "A", groups[0].Division)
	assert.Equal(t, 6.0, groups[0].SeedlingCount)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, 0.0, groups[2].TotalAreaHa, "NaN cells are skipped")
}

func TestCountByClass(t *testing.T) {
	all := Classify(loadFixture(t))
	got := CountByClass(all)
	want := []ClassCount{
		{Class100, 1},
		{Class90to99, 1},
		{Class80to89, 1},
		{Class70to79, 1},
		{Class60to69, 1},
		{ClassBelow60, 2},
	}
	assert.Equal(t, want, got)

	got = CountByClass(Classify([]Record{{PlantedPercent: 100}, {PlantedPercent: 100}}))
	assert.Equal(t, []ClassCount{{Class100, 2}}, got)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{"range", []float64{10, 20, 30}, []float64{0, 0.5, 1}},
		{"constant", []float64{7, 7, 7}, []float64{NeutralLevel, NeutralLevel, NeutralLevel}},
		{"single", []float64{3}, []float64{NeutralLevel}},
		{"empty", []float64{}, []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			for _, v := range got {
				assert.False(t, math.IsNaN(v))
			}
		})
	}
}

func TestNormalizeKeepsNaN(t *testing.T) {
	got := Normalize([]float64{math.NaN(), 0, 4})
	assert.True(t, math.IsNaN(got[0]))
	assert.Equal(t, []float64{0, 1}, got[1:])
}

func TestNormalizeDoesNotModifyInput(t *testing.T) {
	in := []float64{1, 2, 3}
	_ = Normalize(in)
	assert.Equal(t, []float64{1, 2, 3}, in)
}

func TestColumn(t *testing.T) {
	in := []Record{{SeedlingCount: 1}, {SeedlingCount: 2}}
	assert.Equal(t, []float64{1, 2}, Column(in, func(r Record) float64 { return r.SeedlingCount }))
}
