package plantio

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Duplicate is a set of PRF descriptions within one division that differ only
// in case, accents, spacing or punctuation, e.g. " CE - RVE " and "CE-RVE".
type Duplicate struct {
	Division string
	// Keep is the spelling of the most recently planted row; Others are the
	// remaining spellings, sorted.
	Keep   string
	Others []string
	// Rows indexes every record of the set in the input slice.
	Rows []int
}

// Fold reduces s to upper-case letters and digits with accents removed.
func Fold(s string) string {
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(strip, s)
	if err != nil {
		plain = s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
		return -1
	}, plain)
}

// Duplicates groups PRF descriptions by division and folded name and returns
// the groups spelled more than one way, ordered by division then Keep.
// Identical spellings repeated across rows are not reported.
func Duplicates(records []Record) []Duplicate {
	type spelling struct {
		year  int
		first int
	}
	type group struct {
		rows      []int
		spellings map[string]*spelling
	}
	// division -> folded -> group
	groups := make(map[string]map[string]*group)

	for i, r := range records {
		key := Fold(r.PRF)
		if key == "" {
			continue
		}
		if groups[r.Division] == nil {
			groups[r.Division] = make(map[string]*group)
		}
		g := groups[r.Division][key]
		if g == nil {
			g = &group{spellings: make(map[string]*spelling)}
			groups[r.Division][key] = g
		}
		g.rows = append(g.rows, i)

		name := strings.TrimSpace(r.PRF)
		sp := g.spellings[name]
		if sp == nil {
			sp = &spelling{year: -1, first: i}
			g.spellings[name] = sp
		}
		if r.Year != nil && *r.Year > sp.year {
			sp.year = *r.Year
		}
	}

	var out []Duplicate
	for division, byKey := range groups {
		for _, g := range byKey {
			if len(g.spellings) < 2 {
				continue
			}
			names := make([]string, 0, len(g.spellings))
			for n := range g.spellings {
				names = append(names, n)
			}
			sort.Strings(names)

			keep := names[0]
			for _, n := range names[1:] {
				a, b := g.spellings[keep], g.spellings[n]
				if b.year > a.year || (b.year == a.year && b.first < a.first) {
					keep = n
				}
			}
			d := Duplicate{Division: division, Keep: keep, Rows: g.rows}
			for _, n := range names {
				if n != keep {
					d.Others = append(d.Others, n)
				}
			}
			out = append(out, d)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Division != out[j].Division {
			return out[i].Division < out[j].Division
		}
		return out[i].Keep < out[j].Keep
	})
	return out
}

// MergeDuplicates returns a copy of records with every duplicate spelling
// replaced by its Keep name.
func MergeDuplicates(records []Record, dups []Duplicate) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	for _, d := range dups {
		for _, i := range d.Rows {
			if i < len(out) {
				out[i].PRF = d.Keep
			}
		}
	}
	return out
}
