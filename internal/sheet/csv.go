package sheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vpetrenko/specsheet/internal/model"
)

// CSVSource reads tables from one CSV file per table under a directory,
// named by the table's slug (e.g., magnetic-flow-meter.csv). Intended
// for development and tests, where a live spreadsheet is a burden.
type CSVSource struct {
	dir    string
	tables map[string]model.Table
}

// NewCSVSource creates a CSV-backed source rooted at dir.
func NewCSVSource(dir string, tables []model.Table) *CSVSource {
	byName := make(map[string]model.Table, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}
	return &CSVSource{dir: dir, tables: byName}
}

// ID returns a stable identifier for this row store, used as the cache
// key namespace.
func (s *CSVSource) ID() string {
	return "csv:" + s.dir
}

// Records reads the table's rows from its CSV file. A missing file is
// an empty table, not an error: development setups rarely have every
// instrument populated.
func (s *CSVSource) Records(ctx context.Context, table string) ([]model.Record, error) {
	t, ok := s.tables[table]
	if !ok {
		return nil, fmt.Errorf("unknown table: %q", table)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path(t))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open table file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are padded, not rejected
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table file: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := normalizeHeaders(rows[0], t.Remap)
	records := make([]model.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, rowToRecord(headers, row))
	}
	return records, nil
}

// Append adds one row to the table's CSV file, creating the file with a
// header row if it does not exist yet.
func (s *CSVSource) Append(ctx context.Context, table string, rec model.Record) error {
	t, ok := s.tables[table]
	if !ok {
		return fmt.Errorf("unknown table: %q", table)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.path(t)
	headers := t.Columns

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.writeHeader(path, headers); err != nil {
			return err
		}
	} else {
		// Existing file: follow its own header order.
		existing, err := s.readHeader(path, t)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			headers = existing
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open table file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(recordToRow(headers, rec)); err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

func (s *CSVSource) path(t model.Table) string {
	return filepath.Join(s.dir, t.Slug+".csv")
}

func (s *CSVSource) writeHeader(path string, headers []string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create table file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	return w.Error()
}

func (s *CSVSource) readHeader(path string, t model.Table) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	row, err := r.Read()
	if err != nil {
		return nil, nil
	}
	return normalizeHeaders(row, t.Remap), nil
}
