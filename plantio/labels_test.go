package plantio

import "testing"

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		style LabelStyle
		want  string
	}{
		{"overview lookup", "PARQUE EÓLICO SJ23 - RDV", LabelOverview, "PARQUE\nEÓLICO\nSJ23\n- RDV"},
		{"overview lookup wins over slash", "UMARI - LT - BLOCO NORTE/SUL", LabelOverview, "UMARI\n- LT - BLOCO\nNORTE/SUL"},
		{"overview trims", "  REASSENTAMENTO - RVE ", LabelOverview, "REASSENT.\n- RVE"},
		{"overview slash fallback", "VA84103/VA84113", LabelOverview, "VA84103\nVA84113"},
		{"overview unchanged", "VA84103", LabelOverview, "VA84103"},
		{"overview not in table", "CE - RDV", LabelOverview, "CE - RDV"},
		{"division slash first", "UMARI - LT - BLOCO NORTE/SUL", LabelDivision, "UMARI - LT - BLOCO NORTE\nSUL"},
		{"division lookup", "UMARI - CE - BLOCO SUL", LabelDivision, "UMARI\n- CE\n - BLOCO\nSUL"},
		{"division extra entry", "CE - RDV", LabelDivision, "CE\n- RDV"},
		{"division unchanged", "VA8481", LabelDivision, "VA8481"},
		{"wrap long", "CANTEIRO DE OBRAS CIVIL - RVE", LabelWrap, "CANTEIRO DE OBR\nAS CIVIL - RVE"},
		{"wrap exactly fifteen", "ABCDEFGHIJKLMNO", LabelWrap, "ABCDEFGHIJKLMNO"},
		{"wrap counts runes", "BAY DE CONEXÃO - RDV", LabelWrap, "BAY DE CONEXÃO \n- RDV"},
		{"wrap short", "LT - RVE", LabelWrap, "LT - RVE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLabel(tt.in, tt.style); got != tt.want {
				t.Errorf("FormatLabel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatLabels(t *testing.T) {
	got := FormatLabels([]Record{{PRF: "LT - RVE"}, {PRF: "VA8457"}}, LabelOverview)
	want := []string{"LT\n- RVE", "VA8457"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label %d = %q, want %q", i, got[i], want[i])
		}
	}
}
