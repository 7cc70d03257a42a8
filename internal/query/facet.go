package query

import (
	"sort"

	"github.com/vpetrenko/specsheet/internal/model"
)

// AvailableValues computes the distinct non-empty values of facet among
// records that match every selection in chain. The chain is applied as
// cumulative string-equality filters; which facet precedes which is
// entirely the caller's choice. Results are sorted ascending so output
// is deterministic regardless of source row order. A chain containing
// an empty selection value yields no values: callers must populate the
// current facet before escalating to the next one.
func AvailableValues(records []model.Record, chain []model.Selection, facet string) []string {
	if hasEmptySelection(chain) {
		return nil
	}

	seen := make(map[string]struct{})
	for _, rec := range records {
		if !matchesChain(rec, chain) {
			continue
		}
		if v := rec.Get(facet); v != "" {
			seen[v] = struct{}{}
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// MatchingRecords returns every record, in original order, whose fields
// equal all selections in chain. Unlike FindMatch it returns all
// candidates: a saturated facet chain need not narrow to a single row.
// A chain containing an empty selection value yields no records.
func MatchingRecords(records []model.Record, chain []model.Selection) []model.Record {
	if hasEmptySelection(chain) {
		return nil
	}

	var out []model.Record
	for _, rec := range records {
		if matchesChain(rec, chain) {
			out = append(out, rec)
		}
	}
	return out
}

// matchesChain reports whether rec equals every selection's value on its
// facet. A missing field reads as "" and never matches a non-empty
// selection.
func matchesChain(rec model.Record, chain []model.Selection) bool {
	for _, sel := range chain {
		if rec.Get(sel.Facet) != sel.Value {
			return false
		}
	}
	return true
}

func hasEmptySelection(chain []model.Selection) bool {
	for _, sel := range chain {
		if sel.Value == "" {
			return true
		}
	}
	return false
}
