package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leapsoql.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("output", "", "")
	fs.String("style", "", "")
	fs.Int("indent", 0, "")
	fs.Bool("strict-params", true, "")
	fs.Int("workers", 0, "")
	fs.Bool("verbose", false, "")
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Empty(t, GetConfigFileUsed())
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, `
output: JSON
style: pretty
indent: 4
strict_params: false
workers: 8
extensions: [soql, .txt]
params:
  name: Acme
  limit: 10
`)
	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, GetConfigFileUsed())
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, StylePretty, cfg.Style)
	assert.Equal(t, 4, cfg.Indent)
	assert.False(t, cfg.StrictParams)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, []string{".soql", ".txt"}, cfg.Extensions)
	assert.Equal(t, "Acme", cfg.Params["name"])
	assert.EqualValues(t, 10, cfg.Params["limit"])
}

func TestLoadConfig_Precedence(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "style: pretty\nworkers: 2\nindent: 4\n")

	t.Setenv("LEAPSOQL_WORKERS", "6")
	t.Setenv("LEAPSOQL_EXTENSIONS", ".soql,.query")
	t.Setenv("LEAPSOQL_STRICT_PARAMS", "false")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--style", "canonical"}))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)

	assert.Equal(t, StyleCanonical, cfg.Style, "flag beats file")
	assert.Equal(t, 6, cfg.Workers, "env beats file")
	assert.Equal(t, 4, cfg.Indent, "file beats default")
	assert.False(t, cfg.StrictParams)
	assert.Equal(t, []string{".soql", ".query"}, cfg.Extensions)
	assert.Equal(t, DefaultOutput, cfg.Output, "unchanged flag does not override")
}

func TestLoadConfig_BadFile(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "style: [unterminated\n")
	_, err := LoadConfig(path, nil)
	assert.ErrorContains(t, err, "error reading config file")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	ResetConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad output", func(c *Config) { c.Output = "xml" }, "unknown output mode"},
		{"bad style", func(c *Config) { c.Style = "fancy" }, "unknown style"},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "unknown log_level"},
		{"zero indent", func(c *Config) { c.Indent = 0 }, "indent must be positive"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "workers must be positive"},
		{"no extensions", func(c *Config) { c.Extensions = nil }, "extensions must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errSub == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errSub)
		})
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level   string
		verbose bool
		want    slog.Level
	}{
		{"debug", false, slog.LevelDebug},
		{"info", false, slog.LevelInfo},
		{"warn", false, slog.LevelWarn},
		{"error", false, slog.LevelError},
		{"error", true, slog.LevelDebug},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level, Verbose: tt.verbose}
		assert.Equal(t, tt.want, cfg.SlogLevel(), tt.level)
	}
}

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()
	assert.NotNil(t, GetLogger(ctx))
	assert.Equal(t, Default(), GetConfig(ctx))

	logger := slog.New(slog.DiscardHandler)
	cfg := &Config{Style: StylePretty}
	ctx = WithConfig(WithLogger(ctx, logger), cfg)
	assert.Same(t, logger, GetLogger(ctx))
	assert.Same(t, cfg, GetConfig(ctx))
}

func TestLoadConfig_CommandFlags(t *testing.T) {
	ResetConfig()
	fs := pflag.NewFlagSet("bind", pflag.ContinueOnError)
	fs.String("params", "", "")
	fs.Bool("watch", false, "")
	fs.StringSlice("extensions", nil, "")
	require.NoError(t, fs.Parse([]string{"--params", "p.yaml", "--watch", "--extensions", "soql,q"}))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, "p.yaml", cfg.ParamsFile)
	assert.Equal(t, []string{".soql", ".q"}, cfg.Extensions)
	assert.Nil(t, k.Get("watch"))
}
