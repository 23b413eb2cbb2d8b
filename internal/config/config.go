package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rasky/toml"
)

// Defaults for the recognized options.
const (
	DefaultReportInterval         = 60 * time.Second
	DefaultRowsToShow             = 30
	DefaultScaleDivisor           = 1_000_000
	DefaultFetchTimeout           = 10 * time.Second
	DefaultFetchConcurrency       = 16
	DefaultConnectTimeout         = 10 * time.Second
	DefaultExcludedDatabasePrefix = "__realm"
	DefaultLogLevel               = "info"
)

// DefaultExcludedDatabases are the server's internal databases.
var DefaultExcludedDatabases = []string{"local", "config", "admin"}

// Config holds the run-wide settings of the monitor.
type Config struct {
	URI string `toml:"uri"`

	ReportInterval Duration `toml:"report_interval"`
	RowsToShow     int      `toml:"rows_to_show"`
	ScaleDivisor   int64    `toml:"scale_divisor"`

	ExcludedDatabases      []string `toml:"excluded_databases"`
	ExcludedDatabasePrefix string   `toml:"excluded_database_prefix"`
	IncludedDatabases      []string `toml:"included_databases"`

	FetchTimeout     Duration `toml:"fetch_timeout"`
	FetchConcurrency int      `toml:"fetch_concurrency"`
	ConnectTimeout   Duration `toml:"connect_timeout"`

	Plain    bool   `toml:"plain"`
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
}

// Duration is a time.Duration decoded from a TOML string such as "60s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns a Config populated with default values.
func Default() Config {
	excluded := make([]string, len(DefaultExcludedDatabases))
	copy(excluded, DefaultExcludedDatabases)
	return Config{
		ReportInterval:         Duration{DefaultReportInterval},
		RowsToShow:             DefaultRowsToShow,
		ScaleDivisor:           DefaultScaleDivisor,
		ExcludedDatabases:      excluded,
		ExcludedDatabasePrefix: DefaultExcludedDatabasePrefix,
		FetchTimeout:           Duration{DefaultFetchTimeout},
		FetchConcurrency:       DefaultFetchConcurrency,
		ConnectTimeout:         Duration{DefaultConnectTimeout},
		LogLevel:               DefaultLogLevel,
	}
}

// LoadFile reads a TOML file on top of the defaults.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes TOML from r on top of the defaults. Keys that do not map to a
// Config field are rejected.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeReader(r, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys: %s", strings.Join(names, ", "))
	}
	return cfg, nil
}

// Validate checks that every numeric option is usable.
func (c *Config) Validate() error {
	switch {
	case c.URI == "":
		return fmt.Errorf("uri is required")
	case c.ReportInterval.Duration < time.Second:
		return fmt.Errorf("report_interval must be at least 1s, got %v", c.ReportInterval.Duration)
	case c.RowsToShow <= 0:
		return fmt.Errorf("rows_to_show must be positive, got %d", c.RowsToShow)
	case c.ScaleDivisor <= 0:
		return fmt.Errorf("scale_divisor must be positive, got %d", c.ScaleDivisor)
	case c.FetchTimeout.Duration <= 0:
		return fmt.Errorf("fetch_timeout must be positive, got %v", c.FetchTimeout.Duration)
	case c.FetchConcurrency <= 0:
		return fmt.Errorf("fetch_concurrency must be positive, got %d", c.FetchConcurrency)
	case c.ConnectTimeout.Duration <= 0:
		return fmt.Errorf("connect_timeout must be positive, got %v", c.ConnectTimeout.Duration)
	}
	return nil
}
