package plantio

import "math"

// NeutralLevel is what Normalize returns when every value is the same.
const NeutralLevel = 0.5

// GroupByDivision sums the numeric columns of records per division. Groups are
// sorted by division name and NaN cells are skipped.
func GroupByDivision(records []Record) []DivisionTotals {
	byName := make(map[string]*DivisionTotals)
	for _, r := range records {
		g, ok := byName[r.Division]
		if !ok {
			g = &DivisionTotals{Division: r.Division}
			byName[r.Division] = g
		}
		g.add(r)
	}

	names := Divisions(records)
	out := make([]DivisionTotals, len(names))
	for i, name := range names {
		out[i] = *byName[name]
	}
	return out
}

func (g *DivisionTotals) add(r Record) {
	g.Count++
	g.TotalAreaHa += finite(r.TotalAreaHa)
	g.SeedlingCount += finite(r.SeedlingCount)
	g.MortalityCount += finite(r.MortalityCount)
	g.RoadAreaHa += finite(r.RoadAreaHa)
	g.NativeVegetationHa += finite(r.NativeVegetationHa)
	g.PlantedAreaHa += finite(r.PlantedAreaHa)
}

// Totals adds up a set of division groups.
func Totals(groups []DivisionTotals) DivisionTotals {
	var t DivisionTotals
	for _, g := range groups {
		t.Count += g.Count
		t.TotalAreaHa += g.TotalAreaHa
		t.SeedlingCount += g.SeedlingCount
		t.MortalityCount += g.MortalityCount
		t.RoadAreaHa += g.RoadAreaHa
		t.NativeVegetationHa += g.NativeVegetationHa
		t.PlantedAreaHa += g.PlantedAreaHa
	}
	return t
}

// CountByClass counts records per utilization class, in the order of Classes.
// Classes with no records are omitted.
func CountByClass(records []Record) []ClassCount {
	counts := make(map[UtilizationClass]int)
	for _, r := range records {
		counts[r.UtilizationClass]++
	}
	var out []ClassCount
	for _, c := range Classes {
		if n := counts[c]; n > 0 {
			out = append(out, ClassCount{Class: c, Count: n})
		}
	}
	return out
}

// Normalize rescales values to [0, 1] by min-max into a new slice. NaN
// entries stay NaN. When all finite values are equal every finite entry
// becomes NeutralLevel.
func Normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			out[i] = math.NaN()
		case span == 0:
			out[i] = NeutralLevel
		default:
			out[i] = (v - lo) / span
		}
	}
	return out
}

// Column extracts one numeric field from every record.
func Column(records []Record, field func(Record) float64) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = field(r)
	}
	return out
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
