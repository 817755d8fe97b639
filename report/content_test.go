package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextBlocks(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   []string
	}{
		{
			name:   "simple show",
			stream: "q 1 0 0 1 0 0 cm BT /F1 12 Tf 72 700 Td (Uso do Solo) Tj ET Q",
			want:   []string{"Uso do Solo"},
		},
		{
			name:   "blocks in order",
			stream: "BT 1 2 Td (Primeiro) Tj ET\nBT 3 4 Td (Segundo) Tj ET",
			want:   []string{"Primeiro", "Segundo"},
		},
		{
			name:   "windows-1252 octal escapes",
			stream: `BT (Planta\347\343o \(ha\)) Tj ET`,
			want:   []string{"Plantação (ha)"},
		},
		{
			name:   "TJ word gaps",
			stream: "BT [(Uso) -300 (do) 50 (Solo)] TJ ET",
			want:   []string{"Uso doSolo"},
		},
		{
			name:   "text outside BT ignored",
			stream: "(stray) Tj BT <</MCID 0>> BDC (Dentro) Tj EMC ET",
			want:   []string{"Dentro"},
		},
		{
			name:   "blank blocks dropped",
			stream: "BT ( ) Tj ET BT <48656c6c6f> Tj ET % comment (x) Tj",
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textBlocks([]byte(tt.stream)))
		})
	}
}

func TestReadStringNested(t *testing.T) {
	raw, end := readString([]byte("(a (b) c)rest"), 0)
	assert.Equal(t, "a (b) c", string(raw))
	assert.Equal(t, 9, end)
}
