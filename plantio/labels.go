package plantio

import "strings"

// LabelStyle selects how a PRF description is broken into lines for an axis.
type LabelStyle int

const (
	// LabelOverview uses the overview table, then splits on "/".
	LabelOverview LabelStyle = iota
	// LabelDivision splits on "/" first, then uses the division table.
	LabelDivision
	// LabelWrap breaks long descriptions after wrapWidth characters.
	LabelWrap
)

const wrapWidth = 15

// Hand-set line breaks for the long descriptions on the overview charts.
var overviewLabels = map[string]string{
	"CE - RVE":                               "CE\n- RVE",
	"ASV COMPLEMENTAR - RDV":                 "ASV\nCOMPLEMENTAR\n- RDV",
	"BAY DE CONEXÃO - RDV":                   "BAY\nDE CONEXÃO\n- RDV",
	"CO SE - RVE":                            "CO SE\n- RVE",
	"CO SJ23 - RDV":                          "CO\nSJ23\n- RDV",
	"LT - RDV":                               "LT\n- RDV",
	"LT - RVE":                               "LT\n- RVE",
	"RMT SJ23 - RDV":                         "RMT\nSJ23\n- RDV",
	"PARQUE EÓLICO SJ23 - RDV":               "PARQUE\nEÓLICO\nSJ23\n- RDV",
	"UMARI - LT - BLOCO NORTE/SUL":           "UMARI\n- LT - BLOCO\nNORTE/SUL",
	"UMARI - CE - BLOCO SUL":                 "UMARI\n- CE - BLOCO\nSUL",
	"UMARI - CE - BLOCO NORTE":               "UMARI\n- CE - BLOCO\nNORTE",
	"UMARI - ASV COMPLEMENTAR - BLOCO NORTE": "UMARI\n- ASV COMPLEM.\nBLOCO NORTE",
	"UMARI - CO CIVIL - BLOCO NORTE":         "UMARI\n- CO CIVIL\nBLOCO NORTE",
	"REASSENTAMENTO - RVE":                   "REASSENT.\n- RVE",
	"SE - RVE":                               "SE\n- RVE",
	"SONDAGEM DA LT - RDV":                   "SONDAGEM\nDA LT\n- RDV",
	"CANTEIRO DE OBRAS CIVIL - RVE":          "CANTEIRO\nDE OBRAS\nCIVIL - RVE",
	"SONDAGEM LT PARTE 1 - RVE":              "SONDAGEM\nLT PARTE 1\n- RVE",
	"SONDAGEM LT PARTE 2 - RVE":              "SONDAGEM\nLT PARTE 2\n- RVE",
}

// The division pages use narrower columns and break more aggressively.
var divisionLabels = map[string]string{
	"CE - RVE":                               "CE\n- RVE",
	"ASV COMPLEMENTAR - RDV":                 "ASV\nCOMPLEMENTAR\n- RDV",
	"BAY DE CONEXÃO - RDV":                   "BAY\n DE\nCONEXÃO\n- RDV",
	"CO SE - RVE":                            "CO SE\n- RVE",
	"CO SJ23 - RDV":                          "CO\nSJ23\n- RDV",
	"LT - RDV":                               "LT\n- RDV",
	"LT - RVE":                               "LT\n- RVE",
	"RMT SJ23 - RDV":                         "RMT\nSJ23\n- RDV",
	"PARQUE EÓLICO SJ23 - RDV":               "PARQUE\nEÓLICO\nSJ23\n- RDV",
	"CE - RDV":                               "CE\n- RDV",
	"UMARI - LT - BLOCO NORTE/SUL":           "UMARI\n- LT - BLOCO\nNORTE/SUL",
	"UMARI - CE - BLOCO SUL":                 "UMARI\n- CE\n - BLOCO\nSUL",
	"UMARI - CE - BLOCO NORTE":               "UMARI\n- CE\n - BLOCO\nNORTE",
	"UMARI - ASV COMPLEMENTAR - BLOCO NORTE": "UMARI\n- ASV \nCOMPLEM.\nBLOCO \nNORTE",
	"UMARI - CO CIVIL - BLOCO NORTE":         "UMARI\n- CO \nCIVIL\nBLOCO \nNORTE",
	"REASSENTAMENTO - RVE":                   "REASSENT.\n- RVE",
	"SE - RVE":                               "SE\n- RVE",
	"SONDAGEM DA LT - RDV":                   "SONDAGEM\nDA LT\n- RDV",
	"CANTEIRO DE OBRAS CIVIL - RVE":          "CANTEIRO\nDE \nOBRAS\nCIVIL - \nRVE",
	"SONDAGEM LT PARTE 1 - RVE":              "SONDAGEM\nLT PARTE 1\n- RVE",
	"SONDAGEM LT PARTE 2 - RVE":              "SONDAGEM\nLT PARTE 2\n- RVE",
}

// FormatLabel returns the axis label for a PRF description.
func FormatLabel(desc string, style LabelStyle) string {
	desc = strings.TrimSpace(desc)
	switch style {
	case LabelDivision:
		if strings.Contains(desc, "/") {
			return splitSlash(desc)
		}
		if l, ok := divisionLabels[desc]; ok {
			return l
		}
		return desc
	case LabelWrap:
		return wrap(desc, wrapWidth)
	default:
		if l, ok := overviewLabels[desc]; ok {
			return l
		}
		if strings.Contains(desc, "/") {
			return splitSlash(desc)
		}
		return desc
	}
}

// FormatLabels applies FormatLabel to the PRF of every record.
func FormatLabels(records []Record, style LabelStyle) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = FormatLabel(r.PRF, style)
	}
	return out
}

func splitSlash(s string) string {
	return strings.Join(strings.Split(s, "/"), "\n")
}

func wrap(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width]) + "\n" + string(r[width:])
}
