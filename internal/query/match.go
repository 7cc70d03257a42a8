package query

import "github.com/vpetrenko/specsheet/internal/model"

// FindMatch scans records in the order given and returns the first one
// whose Range field parses to an interval containing value. Records with
// an unparsable Range field are skipped, not treated as errors. Scan
// order is significant: first match wins, so callers must pass records
// in source row order. ok == false means no record matched, which is a
// normal outcome.
func FindMatch(records []model.Record, value float64) (model.Record, bool) {
	for _, rec := range records {
		iv, parsed := ParseRange(rec.Get(model.RangeField))
		if !parsed {
			continue
		}
		if iv.Contains(value) {
			return rec, true
		}
	}
	return nil, false
}
