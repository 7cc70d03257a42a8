// Package sheet adapts external row stores to the record sequences the
// query engine consumes. Adapters own all upstream messiness: header
// drift, untrimmed cells, ragged rows. The engine only ever sees
// normalized records.
package sheet

import (
	"context"
	"strings"

	"github.com/vpetrenko/specsheet/internal/model"
)

// Source supplies the current rows of a named table and accepts new
// rows. Implementations may fail on transport errors; an empty row set
// is a normal result, not an error.
type Source interface {
	// Records returns the table's rows in source row order.
	Records(ctx context.Context, table string) ([]model.Record, error)

	// Append adds one row to the end of the table.
	Append(ctx context.Context, table string, rec model.Record) error
}

// normalizeHeaders trims raw header cells and applies the table's
// column remap, insulating the query engine from upstream header drift
// (renamed columns, a mistyped "Rnage", etc.).
func normalizeHeaders(raw []string, remap map[string]string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if canonical, ok := remap[h]; ok {
			h = canonical
		}
		headers[i] = h
	}
	return headers
}

// rowToRecord builds a record from one data row using the normalized
// headers. Cells are trimmed; a row shorter than the header reads as
// empty strings for the trailing columns, never as absent fields that
// could differ from the engine's empty-string convention.
func rowToRecord(headers []string, cells []string) model.Record {
	rec := make(model.Record, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		var v string
		if i < len(cells) {
			v = strings.TrimSpace(cells[i])
		}
		rec[h] = v
	}
	return rec
}

// recordToRow flattens a record into a row following the given column
// order. Fields missing from the record become empty cells.
func recordToRow(headers []string, rec model.Record) []string {
	row := make([]string, len(headers))
	for i, h := range headers {
		row[i] = strings.TrimSpace(rec.Get(h))
	}
	return row
}
