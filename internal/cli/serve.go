package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vpetrenko/specsheet/internal/cache"
	"github.com/vpetrenko/specsheet/internal/model"
	"github.com/vpetrenko/specsheet/internal/server"
	"github.com/vpetrenko/specsheet/internal/sheet"
)

var (
	addr    string
	csvDir  string
	noCache bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the instrument specification web service",
	Long: `Serve starts the HTTP service: instrument query pages, the JSON
query API and the admin area.

Rows come from a Google spreadsheet when sheet.spreadsheet_id is
configured (credentials from GOOGLE_CREDENTIALS or a service-account
file), otherwise from local CSV files under --csv-dir.

Example:
  specsheet serve --addr :5000
  specsheet serve --csv-dir ./data`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&csvDir, "csv-dir", "", "serve rows from CSV files in this directory instead of Google Sheets")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the row cache (every query hits the row store)")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if csvDir != "" {
		cfg.Sheet.CSVDir = csvDir
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := buildSource(ctx, cfg, logger)
	if err != nil {
		return err
	}

	return server.New(cfg, source, logger).Run(ctx)
}

// buildSource picks the row store: Google Sheets when a spreadsheet is
// configured, CSV files otherwise. The client is constructed here, once,
// and handed to the server; nothing else holds it.
func buildSource(ctx context.Context, cfg *model.Config, logger *slog.Logger) (sheet.Source, error) {
	var source sheet.Source

	switch {
	case cfg.Sheet.CSVDir != "":
		logger.Info("using CSV row store", "dir", cfg.Sheet.CSVDir)
		source = sheet.NewCSVSource(cfg.Sheet.CSVDir, cfg.Tables)
	case cfg.Sheet.SpreadsheetID != "":
		logger.Info("using Google Sheets row store", "spreadsheet_id", cfg.Sheet.SpreadsheetID)
		gs, err := sheet.NewGoogleSource(ctx, sheet.GoogleOptions{
			SpreadsheetID:   cfg.Sheet.SpreadsheetID,
			CredentialsJSON: []byte(os.Getenv("GOOGLE_CREDENTIALS")),
			CredentialsFile: cfg.Sheet.CredentialsFile,
			RequestsPerSec:  cfg.Sheet.RequestsPerSec,
			Burst:           cfg.Sheet.Burst,
		}, cfg.Tables)
		if err != nil {
			return nil, fmt.Errorf("google sheets source: %w", err)
		}
		source = gs
	default:
		return nil, fmt.Errorf("no row store configured: set sheet.spreadsheet_id or --csv-dir")
	}

	if cfg.Cache.Enabled {
		ttl := cfg.Cache.TTL
		if ttl <= 0 {
			ttl = 30 * time.Second
		}
		source = sheet.NewCachedSource(source, cache.NewMemoryCache(ttl, 5*time.Minute), ttl)
	}
	return source, nil
}
