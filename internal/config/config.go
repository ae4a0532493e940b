// Package config holds the command-line configuration and loads it from YAML.
//
// Precedence, lowest first: built-in defaults, the YAML file, explicit flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ukaji3/sheetmd-go/internal/logging"
	"github.com/ukaji3/sheetmd-go/pkg/sheetmd"
	"github.com/ukaji3/sheetmd-go/pkg/sheetmd/models"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted when no --config is given.
const EnvConfigPath = "SHEETMD_CONFIG"

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatJSON     = "json"
)

// Config holds all conversion settings.
type Config struct {
	// Format is the output format: markdown, html or json (default: html).
	Format string `yaml:"format"`
	// Output is the destination file; empty writes to stdout.
	Output string `yaml:"output"`
	// Title is the HTML document title (default: the input file name).
	Title string `yaml:"title"`
	// Sheet restricts conversion to one sheet.
	Sheet string `yaml:"sheet"`
	// Heading replaces sheet names as table headings.
	Heading string `yaml:"heading"`
	// Columns selects and orders rendered columns.
	Columns []string `yaml:"columns"`
	// Filters keep only matching rows.
	Filters []models.KVFilter `yaml:"filters"`
	// Sanitize applies an HTML policy to the rendered fragment.
	Sanitize bool `yaml:"sanitize"`
	// RawValues disables number formatting.
	RawValues bool `yaml:"raw_values"`
	// Pretty indents JSON output.
	Pretty bool `yaml:"pretty"`
	// MaxFileSize is the largest input accepted, in bytes (default: 100 MB).
	MaxFileSize int64 `yaml:"max_file_size"`

	Log LogConfig `yaml:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error (default: warn).
	Level string `yaml:"level"`
	// Format is text or json (default: text).
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Format:      FormatHTML,
		MaxFileSize: sheetmd.DefaultMaxFileSize,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty path
// falls back to $SHEETMD_CONFIG; when both are empty only defaults are used.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config load %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks that enumerated settings hold known values.
func (c *Config) Validate() error {
	var errs []error

	switch c.Format {
	case FormatMarkdown, FormatHTML, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("invalid format %q (must be markdown, html or json)", c.Format))
	}
	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q (must be text or json)", c.Log.Format))
	}
	if c.MaxFileSize < 0 {
		errs = append(errs, errors.New("max_file_size must not be negative"))
	}
	for _, f := range c.Filters {
		if f.Key == "" {
			errs = append(errs, fmt.Errorf("filter with value %q has an empty key", f.Value))
		}
	}

	return errors.Join(errs...)
}

// RenderOptions builds renderer options from the configuration.
func (c *Config) RenderOptions() models.RenderOptions {
	ro := models.RenderOptions{
		Filters: c.Filters,
		Columns: c.Columns,
	}
	if c.Sheet != "" {
		sheet := c.Sheet
		ro.SheetName = &sheet
	}
	if c.Heading != "" {
		heading := c.Heading
		ro.Heading = &heading
	}
	return ro
}

// ParseFilter parses a key=value filter expression.
func ParseFilter(expr string) (models.KVFilter, error) {
	key, value, ok := strings.Cut(expr, "=")
	if !ok || key == "" {
		return models.KVFilter{}, fmt.Errorf("invalid filter %q (want key=value)", expr)
	}
	return models.KVFilter{Key: key, Value: value}, nil
}
