package plantio

import (
	"math"
	"sort"
)

// Filter returns the records matching keep, in their original order. The
// result never aliases the input.
func Filter(records []Record, keep func(Record) bool) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// ByDivision returns the records of one division.
func ByDivision(records []Record, division string) []Record {
	return Filter(records, func(r Record) bool { return r.Division == division })
}

// ByProject returns the records of one project.
func ByProject(records []Record, project string) []Record {
	return Filter(records, func(r Record) bool { return r.Project == project })
}

// SortByPlanted returns a copy of records ordered by PlantedPercent ascending.
// Ties keep their order and NaN sorts last.
func SortByPlanted(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].PlantedPercent, out[j].PlantedPercent
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a < b
	})
	return out
}

// Divisions returns the distinct division names, sorted.
func Divisions(records []Record) []string {
	return distinct(records, func(r Record) string { return r.Division })
}

// Projects returns the distinct project names, sorted.
func Projects(records []Record) []string {
	return distinct(records, func(r Record) string { return r.Project })
}

func distinct(records []Record, key func(Record) string) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, r := range records {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
