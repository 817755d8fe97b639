package plantio

// Derive returns a copy of records with UnplantedPercent and MortalityCount
// computed from PlantedPercent and SeedlingCount. Applying it more than once
// gives the same result.
func Derive(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		r.UnplantedPercent = 100 - r.PlantedPercent
		r.MortalityCount = r.SeedlingCount * MortalityRate
		out[i] = r
	}
	return out
}

// Classify returns a copy of records with UtilizationClass set.
func Classify(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		r.UtilizationClass = UtilizationClassOf(r.PlantedPercent)
		out[i] = r
	}
	return out
}

// UtilizationClassOf buckets a planted percentage. Each bucket includes its
// lower bound and excludes its upper bound; only exactly 100 is "100%". NaN
// compares false against every bound and lands in "<60%".
func UtilizationClassOf(pct float64) UtilizationClass {
	switch {
	case pct == 100:
		return Class100
	case pct >= 90 && pct < 100:
		return Class90to99
	case pct >= 80 && pct < 90:
		return Class80to89
	case pct >= 70 && pct < 80:
		return Class70to79
	case pct >= 60 && pct < 70:
		return Class60to69
	default:
		return ClassBelow60
	}
}
