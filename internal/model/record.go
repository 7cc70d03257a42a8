package model

// Record represents one row of an instrument table as a field-name to
// value mapping. Values are trimmed when the row is ingested; a missing
// field reads as the empty string.
type Record map[string]string

// Get returns the value of the named field, or "" if the field is absent.
func (r Record) Get(field string) string {
	return r[field]
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Interval is an inclusive numeric range parsed from a range description
// string. Min ≤ Max is expected from well-formed data but is not enforced.
type Interval struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the interval, inclusive both ends.
func (i Interval) Contains(v float64) bool {
	return i.Min <= v && v <= i.Max
}

// Selection is one step of a facet chain: a facet name and the value
// chosen for it.
type Selection struct {
	Facet string `json:"facet"`
	Value string `json:"value"`
}
