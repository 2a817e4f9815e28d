// Package config loads the YAML configuration of the svgfit tool.
// File values are validated against an embedded JSON schema, merged
// over the defaults, and finally overridden by environment variables.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgfit/internal/log"
	"github.com/benoitkugler/svgfit/svgpath"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type DocumentConfig struct {
	UnknownElements string `yaml:"unknown_elements"` // ignore, warn or strict
	Precision       int    `yaml:"precision"`        // -1 for the shortest exact form
}

type PreviewConfig struct {
	Scale float64 `yaml:"scale"` // pixels per unit
}

// Config is the tool configuration.
type Config struct {
	ConfigVersion int            `yaml:"config_version"`
	Logging       LoggingConfig  `yaml:"logging"`
	Document      DocumentConfig `yaml:"document"`
	Preview       PreviewConfig  `yaml:"preview"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() Config {
	return Config{
		ConfigVersion: 1,
		Logging:       LoggingConfig{Level: "info", Format: "console"},
		Document:      DocumentConfig{UnknownElements: "ignore", Precision: -1},
		Preview:       PreviewConfig{Scale: 4},
	}
}

// Env var names used as overrides, in addition to the
// logging ones defined in the log package.
const (
	EnvUnknownElements = "SVGFIT_UNKNOWN_ELEMENTS"
	EnvPrecision       = "SVGFIT_PRECISION"
	EnvPreviewScale    = "SVGFIT_PREVIEW_SCALE"
)

// maxPreviewScale matches the preview.scale maximum of schema.json.
const maxPreviewScale = 64

// SchemaError lists the schema violations of a configuration file.
type SchemaError struct {
	Path     string
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Path, strings.Join(e.Problems, "; "))
}

// Load reads the named YAML file (if path is not empty), merges it over
// the defaults and applies the environment overrides.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading configuration: %w", err)
		}
		if err := validate(path, data); err != nil {
			return cfg, err
		}
		// fields absent from the file keep their default value
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decoding configuration %s: %w", path, err)
		}
	}
	normalize(&cfg)
	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validate(path string, data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding configuration %s: %w", path, err)
	}
	if doc == nil { // empty file
		doc = map[string]interface{}{}
	}
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validating configuration %s: %w", path, err)
	}
	if result.Valid() {
		return nil
	}
	se := &SchemaError{Path: path}
	for _, desc := range result.Errors() {
		se.Problems = append(se.Problems, desc.String())
	}
	return se
}

func normalize(cfg *Config) {
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	cfg.Logging.File = strings.TrimSpace(cfg.Logging.File)
	cfg.Document.UnknownElements = strings.ToLower(strings.TrimSpace(cfg.Document.UnknownElements))
}

func applyEnvOverrides(cfg *Config) error {
	opts := log.ApplyEnv(cfg.LogOptions())
	cfg.Logging = LoggingConfig{Level: strings.ToLower(opts.Level), Format: strings.ToLower(opts.Format), Source: opts.AddSource, File: opts.File}

	if v := strings.TrimSpace(os.Getenv(EnvUnknownElements)); v != "" {
		cfg.Document.UnknownElements = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvPrecision)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPrecision, err)
		}
		if n < -1 || n > svgpath.MaxPrecision {
			return fmt.Errorf("invalid %s: %d is not between -1 and %d", EnvPrecision, n, svgpath.MaxPrecision)
		}
		cfg.Document.Precision = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvPreviewScale)); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || !(f > 0 && f <= maxPreviewScale) {
			return fmt.Errorf("invalid %s: %q", EnvPreviewScale, v)
		}
		cfg.Preview.Scale = f
	}
	return nil
}

// LogOptions returns the logger options matching the configuration.
func (c Config) LogOptions() log.Options {
	return log.Options{Level: c.Logging.Level, Format: c.Logging.Format, AddSource: c.Logging.Source, File: c.Logging.File}
}
