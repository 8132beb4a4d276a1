package cardvault

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cardvault/cardvault/date"
)

// CSVConfig carries the flat-file dialect of a registry: all of it is
// configurable because the files are also edited by spreadsheet tools with
// locale-dependent defaults.
type CSVConfig struct {
	Sep        string `json:"sep"`         // field separator, single rune, default ","
	Decimal    string `json:"decimal"`     // decimal mark, "." or ",", default "."
	DateFormat string `json:"date_format"` // Go layout, default "2006-01-02"
	Encoding   string `json:"encoding"`    // only "utf-8" is supported
}

// ErrUnsupportedEncoding is returned when a registry config requests a file
// encoding other than UTF-8.
var ErrUnsupportedEncoding = fmt.Errorf("unsupported encoding: only utf-8 is supported")

func (c CSVConfig) validate() error {
	switch c.Encoding {
	case "", "utf-8", "utf8", "UTF-8":
	default:
		return fmt.Errorf("%w (got %q)", ErrUnsupportedEncoding, c.Encoding)
	}
	if len([]rune(c.Sep)) > 1 {
		return fmt.Errorf("invalid separator %q: want a single rune", c.Sep)
	}
	switch c.Decimal {
	case "", ".", ",":
	default:
		return fmt.Errorf("invalid decimal mark %q: want %q or %q", c.Decimal, ".", ",")
	}
	return nil
}

func (c CSVConfig) comma() rune {
	if c.Sep == "" {
		return ','
	}
	return []rune(c.Sep)[0]
}

func (c CSVConfig) dateFormat() string {
	if c.DateFormat == "" {
		return date.DateFormat
	}
	return c.DateFormat
}

// Config describes one registry: its files and their column type maps. It is
// stored as a JSON file at the registry root; all file names are relative to
// the config file's directory.
type Config struct {
	VaultFile    string `json:"vault_file"`
	ArchiveFile  string `json:"archive_file"`
	ActivityFile string `json:"activity_file"`
	TimelineFile string `json:"timeline_file"`

	CSV CSVConfig `json:"csv_config"`

	VaultColumns []Column `json:"vault_columns"`
	// An empty archive column set shares the vault's.
	ArchiveColumns  []Column `json:"archive_columns,omitempty"`
	ActivityColumns []Column `json:"activity_columns"`
	TimelineColumns []Column `json:"timeline_columns"`
}

// LoadConfig reads and validates a registry config file.
func LoadConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read registry config: %w", err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("invalid registry config %q: %w", path, err)
	}
	if err := cfg.CSV.validate(); err != nil {
		return nil, fmt.Errorf("invalid registry config %q: %w", path, err)
	}
	return cfg, nil
}

// DefaultConfig returns a config with the standard file names and the full
// column sets.
func DefaultConfig() *Config {
	return &Config{
		VaultFile:       "vault.csv",
		ArchiveFile:     "archive.csv",
		ActivityFile:    "activity.csv",
		TimelineFile:    "timeline.csv",
		VaultColumns:    DefaultVaultColumns(),
		ActivityColumns: DefaultActivityColumns(),
		TimelineColumns: DefaultTimelineColumns(),
	}
}

// VaultSchema builds the vault schema from the configured type map.
func (c *Config) VaultSchema() (*Schema, error) {
	return NewSchema(c.VaultColumns, cardColumnTypes)
}

// ArchiveSchema builds the archive schema. When no archive columns are
// configured the archive shares the vault's column set.
func (c *Config) ArchiveSchema() (*Schema, error) {
	cols := c.ArchiveColumns
	if len(cols) == 0 {
		cols = c.VaultColumns
	}
	return NewSchema(cols, cardColumnTypes)
}

// ActivitySchema builds the activity-ledger schema from the configured type map.
func (c *Config) ActivitySchema() (*Schema, error) {
	return NewSchema(c.ActivityColumns, eventColumnTypes)
}

// TimelineSchema builds the timeline schema from the configured type map.
func (c *Config) TimelineSchema() (*Schema, error) {
	return NewSchema(c.TimelineColumns, timelineColumnTypes)
}
