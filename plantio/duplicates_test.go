package plantio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" CE - RVE ", "CERVE"},
		{"CE-RVE", "CERVE"},
		{"Torre Anemométrica", "TORREANEMOMETRICA"},
		{"UMARI - LT - BLOCO NORTE/SUL", "UMARILTBLOCONORTESUL"},
		{"VA84103", "VA84103"},
		{"", ""},
		{" - / ", ""},
	}
	for _, tt := range tests {
		if got := Fold(tt.input); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func year(y int) *int { return &y }

func TestDuplicates_Spellings(t *testing.T) {
	records := []Record{
		{PRF: "CE - RVE", Division: "ASSETco", Year: year(2022)},
		{PRF: "LT - RDV", Division: "ASSETco", Year: year(2024)},
		{PRF: "ce-rve", Division: "ASSETco", Year: year(2024)},
		{PRF: "CE-RVÉ", Division: "ASSETco"},
	}

	dups := Duplicates(records)
	require.Len(t, dups, 1)
	d := dups[0]
	assert.Equal(t, "ASSETco", d.Division)
	assert.Equal(t, "ce-rve", d.Keep, "keeper is the most recent spelling")
	assert.Equal(t, []string{"CE - RVE", "CE-RVÉ"}, d.Others)
	assert.Equal(t, []int{0, 2, 3}, d.Rows)
}

func TestDuplicates_TieKeepsFirstRow(t *testing.T) {
	records := []Record{
		{PRF: "VA 84103", Division: "DEVco"},
		{PRF: "VA84103", Division: "DEVco"},
	}
	dups := Duplicates(records)
	require.Len(t, dups, 1)
	assert.Equal(t, "VA 84103", dups[0].Keep)
	assert.Equal(t, []string{"VA84103"}, dups[0].Others)
}

func TestDuplicates_SeparateDivisions(t *testing.T) {
	// The same name in two divisions is two PRFs.
	records := []Record{
		{PRF: "CE - RVE", Division: "ASSETco"},
		{PRF: "CE-RVE", Division: "DEVco"},
	}
	assert.Empty(t, Duplicates(records))
}

func TestDuplicates_IdenticalSpellingIgnored(t *testing.T) {
	records := []Record{
		{PRF: "CE - RVE", Division: "ASSETco"},
		{PRF: "CE - RVE", Division: "ASSETco"},
	}
	assert.Empty(t, Duplicates(records))
}

func TestDuplicates_Fixture(t *testing.T) {
	assert.Empty(t, Duplicates(loadFixture(t)))
}

func TestMergeDuplicates(t *testing.T) {
	records := []Record{
		{PRF: "CE - RVE", Division: "ASSETco", Year: year(2022)},
		{PRF: "CE-RVE", Division: "ASSETco", Year: year(2024)},
		{PRF: "LT - RDV", Division: "ASSETco"},
	}
	merged := MergeDuplicates(records, Duplicates(records))
	assert.Equal(t, []string{"CE-RVE", "CE-RVE", "LT - RDV"}, prfs(merged))
	assert.Equal(t, "CE - RVE", records[0].PRF, "input is not modified")
}
