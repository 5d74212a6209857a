// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers a YAML file and HIREDW_* env on top.
// - CLI flags are applied by the caller after Load.
// - External errors are wrapped with this package's sentinel errors.
package config

import "strings"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// CSVPath is the candidate input file.
	CSVPath string `koanf:"csv_path"`

	// DBPath is the SQLite warehouse file.
	DBPath string `koanf:"db_path"`

	// SchemaPath is the warehouse DDL script. Empty means the embedded default.
	SchemaPath string `koanf:"schema_path"`

	// OutDir receives KPI CSV files, the workbook and the run summary.
	OutDir string `koanf:"out_dir"`

	// Workbook enables the xlsx workbook next to the KPI CSV files.
	Workbook bool `koanf:"workbook"`

	// Delimiter separates input fields; exactly one character.
	Delimiter string `koanf:"delimiter"`

	// StrictDates turns an unparseable application date into a fatal error.
	StrictDates bool `koanf:"strict_dates"`

	// BatchSize bounds rows per INSERT statement during load.
	BatchSize int `koanf:"batch_size"`

	// Workers sizes the transform worker pool. Zero means one per CPU.
	Workers int `koanf:"workers"`

	// DateLayouts are the Go time layouts tried, in order, on application
	// dates. Empty means the built-in layouts.
	DateLayouts []string `koanf:"date_layouts"`

	// WatchCountries restricts the country-by-year KPI.
	WatchCountries []string `koanf:"watch_countries"`

	// CountryAliases extends the built-in alias table. A list rather than a
	// map because aliases such as "u.s." contain the koanf key delimiter.
	CountryAliases []CountryAlias `koanf:"country_aliases"`

	// Addr configures the HTTP listen address of the serve command.
	Addr string `koanf:"addr"`

	// MetricsFile, when set, receives the Prometheus registry after a run.
	MetricsFile string `koanf:"metrics_file"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		CSVPath:        "data/candidates.csv",
		DBPath:         "dw/dw_hiring.db",
		SchemaPath:     "",
		OutDir:         "kpi/out",
		Workbook:       true,
		Delimiter:      ";",
		StrictDates:    false,
		BatchSize:      500,
		Workers:        0,
		DateLayouts:    nil,
		WatchCountries: []string{"United States", "Brazil", "Colombia", "Ecuador"},
		CountryAliases: nil,
		Addr:           ":9080",
		MetricsFile:    "",
	}
}

// CountryAlias maps a raw spelling to a canonical country name.
type CountryAlias struct {
	Alias   string `koanf:"alias"`
	Country string `koanf:"country"`
}

// AliasMap returns the configured aliases keyed by lower-cased alias.
func (c *Config) AliasMap() map[string]string {
	out := make(map[string]string, len(c.CountryAliases))
	for _, a := range c.CountryAliases {
		if a.Alias == "" || a.Country == "" {
			continue
		}
		out[strings.ToLower(strings.TrimSpace(a.Alias))] = strings.TrimSpace(a.Country)
	}
	return out
}
