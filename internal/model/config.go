package model

import "time"

// Config holds the complete service configuration.
type Config struct {
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Sheet  SheetConfig  `yaml:"sheet" mapstructure:"sheet"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Admin  AdminConfig  `yaml:"admin" mapstructure:"admin"`
	Tables []Table      `yaml:"tables" mapstructure:"tables"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// SheetConfig holds row store settings. When SpreadsheetID is empty the
// service falls back to the CSV source rooted at CSVDir.
type SheetConfig struct {
	SpreadsheetID   string  `yaml:"spreadsheet_id" mapstructure:"spreadsheet_id"`
	CredentialsFile string  `yaml:"credentials_file,omitempty" mapstructure:"credentials_file"`
	CSVDir          string  `yaml:"csv_dir,omitempty" mapstructure:"csv_dir"`
	RequestsPerSec  float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	Burst           int     `yaml:"burst" mapstructure:"burst"`
}

// CacheConfig holds row cache settings.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// AdminConfig holds admin login settings. Credentials should come from
// SPECSHEET_ADMIN_USER / SPECSHEET_ADMIN_PASS rather than the config file.
type AdminConfig struct {
	User           string        `yaml:"user" mapstructure:"user"`
	Pass           string        `yaml:"pass" mapstructure:"pass"`
	SessionTTL     time.Duration `yaml:"session_ttl" mapstructure:"session_ttl"`
	LoginPerMinute float64       `yaml:"login_per_minute" mapstructure:"login_per_minute"`
}

// DefaultConfig returns the built-in configuration, including the stock
// instrument catalog. Values here sit at the bottom of the configuration
// hierarchy (flags > env > config file > defaults).
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":5000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Sheet: SheetConfig{
			RequestsPerSec: 1,
			Burst:          5,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Second,
		},
		Admin: AdminConfig{
			User:           "admin",
			Pass:           "admin",
			SessionTTL:     30 * time.Minute,
			LoginPerMinute: 10,
		},
		Tables: []Table{
			{
				Name:       "Magnetic Flow Meter",
				Slug:       "magnetic-flow-meter",
				Columns:    []string{"Instrument", "Size", "Type", "Liner Material", "Dia Seal Type", "Range", "Cost"},
				Remap:      map[string]string{"Rnage": "Range", "Range value": "Range"},
				Facets:     []string{"Size", "Type", "Liner Material", "Dia Seal Type"},
				QueryLabel: "Flow rate (m3/h)",
			},
			{
				Name:       "Vortex Flow Meter",
				Slug:       "vortex-flow-meter",
				Columns:    []string{"Instrument", "Size", "Type", "Range", "Cost"},
				Facets:     []string{"Size", "Type"},
				QueryLabel: "Flow rate (m3/h)",
			},
			{
				Name:       "Transmitter",
				Slug:       "transmitter",
				Columns:    []string{"Instrument", "Type", "Range", "Cost"},
				Facets:     []string{"Type"},
				QueryLabel: "Pressure (bar)",
			},
			{
				Name:       "Temperature Transmitter",
				Slug:       "temperature-transmitter",
				Columns:    []string{"Instrument", "Type", "Range", "Cost"},
				Facets:     []string{"Type"},
				QueryLabel: "Temperature (°C)",
			},
			{
				Name:       "Control Valve",
				Slug:       "control-valve",
				Columns:    []string{"Instrument", "Size", "Type", "Range", "Cost"},
				Facets:     []string{"Size", "Type"},
				QueryLabel: "Flow rate (m3/h)",
			},
		},
	}
}

// TableBySlug returns the table whose Slug matches, if any.
func (c *Config) TableBySlug(slug string) (Table, bool) {
	for _, t := range c.Tables {
		if t.Slug == slug {
			return t, true
		}
	}
	return Table{}, false
}

// TableByName returns the table whose Name matches, if any.
func (c *Config) TableByName(name string) (Table, bool) {
	for _, t := range c.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}
