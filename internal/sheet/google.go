package sheet

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/vpetrenko/specsheet/internal/model"
)

// GoogleSource reads and appends rows through the Google Sheets API.
// The client is constructed once at startup and handed to whoever needs
// it; nothing in the process holds a hidden global handle. All API
// calls go through a shared rate limiter to stay inside the Sheets
// read/write quota.
type GoogleSource struct {
	svc           *sheets.Service
	spreadsheetID string
	tables        map[string]model.Table
	limiter       *rate.Limiter
}

// GoogleOptions configures a GoogleSource.
type GoogleOptions struct {
	// SpreadsheetID identifies the backing spreadsheet.
	SpreadsheetID string

	// CredentialsJSON holds service-account credentials. When empty,
	// CredentialsFile is read instead.
	CredentialsJSON []byte
	CredentialsFile string

	// RequestsPerSec and Burst bound the Sheets API call rate.
	RequestsPerSec float64
	Burst          int
}

// NewGoogleSource authorizes against the Sheets API and returns a
// source for the given tables.
func NewGoogleSource(ctx context.Context, opts GoogleOptions, tables []model.Table) (*GoogleSource, error) {
	credsJSON := opts.CredentialsJSON
	if len(credsJSON) == 0 {
		if opts.CredentialsFile == "" {
			return nil, fmt.Errorf("google sheets: no credentials configured")
		}
		data, err := os.ReadFile(opts.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials: %w", err)
		}
		credsJSON = data
	}

	creds, err := google.CredentialsFromJSON(ctx, credsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	rps := opts.RequestsPerSec
	if rps <= 0 {
		rps = 1
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 5
	}

	byName := make(map[string]model.Table, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}

	return &GoogleSource{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		tables:        byName,
		limiter:       rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

// ID returns a stable identifier for this row store, used as the cache
// key namespace.
func (g *GoogleSource) ID() string {
	return "gsheet:" + g.spreadsheetID
}

// Records fetches the table's rows. The first sheet row is treated as
// the header row; headers are normalized through the table's remap
// before records are built.
func (g *GoogleSource) Records(ctx context.Context, table string) ([]model.Record, error) {
	t, ok := g.tables[table]
	if !ok {
		return nil, fmt.Errorf("unknown table: %q", table)
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, g.readRange(t)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch rows: %w", err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}

	headers := normalizeHeaders(cellsToStrings(resp.Values[0]), t.Remap)

	records := make([]model.Record, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		rec := rowToRecord(headers, cellsToStrings(row))
		if t.Tab == "" && rec.Get("Instrument") != t.Name {
			// Shared tab: rows are partitioned by the Instrument column.
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Append adds one row to the end of the table, laid out in the sheet's
// current header order.
func (g *GoogleSource) Append(ctx context.Context, table string, rec model.Record) error {
	t, ok := g.tables[table]
	if !ok {
		return fmt.Errorf("unknown table: %q", table)
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	// Fetch the header row so the appended cells line up with whatever
	// column order the sheet currently has.
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, g.headerRange(t)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("fetch headers: %w", err)
	}
	if len(resp.Values) == 0 {
		return fmt.Errorf("table %q has no header row", table)
	}
	headers := normalizeHeaders(cellsToStrings(resp.Values[0]), t.Remap)

	row := recordToRow(headers, rec)
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	vr := &sheets.ValueRange{Values: [][]interface{}{cells}}
	_, err = g.svc.Spreadsheets.Values.Append(g.spreadsheetID, g.readRange(t), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

func (g *GoogleSource) readRange(t model.Table) string {
	if t.Tab != "" {
		return t.Tab
	}
	return "A:Z"
}

func (g *GoogleSource) headerRange(t model.Table) string {
	if t.Tab != "" {
		return t.Tab + "!1:1"
	}
	return "1:1"
}

func cellsToStrings(cells []interface{}) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = fmt.Sprint(c)
	}
	return out
}
