// Package config provides layered configuration for the leapsoql CLI.
package config

// Default values.
const (
	DefaultOutput   = "auto"
	DefaultStyle    = StyleCanonical
	DefaultIndent   = 2
	DefaultWorkers  = 4
	DefaultLogLevel = "warn"
)

// Render styles.
const (
	StyleCanonical = "canonical"
	StylePretty    = "pretty"
)

// DefaultExtensions lists the file extensions check collects from
// directories.
var DefaultExtensions = []string{".soql"}

// Config holds all CLI configuration options.
type Config struct {
	Output       string         `koanf:"output"`
	Style        string         `koanf:"style"`
	Indent       int            `koanf:"indent"`
	StrictParams bool           `koanf:"strict_params"`
	Workers      int            `koanf:"workers"`
	Verbose      bool           `koanf:"verbose"`
	LogLevel     string         `koanf:"log_level"`
	ParamsFile   string         `koanf:"params_file"`
	HistoryFile  string         `koanf:"history_file"`
	Extensions   []string       `koanf:"extensions"`
	Params       map[string]any `koanf:"params"` // default named parameters for bind
}
