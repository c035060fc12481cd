// Package config loads the rots configuration file.
//
// The file may be TOML or YAML; the format is chosen by extension:
//
//	# rots.toml
//	src_dir   = "src"
//	out_dir   = "dist"
//	extension = ".rots"
//	workers   = 4
//	entry_attribute = "EntryPoint"
//
//	[log]
//	level  = "info"
//	format = "text"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file format.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "rots.toml"

// Config holds every setting of a transpile run.
type Config struct {
	SrcDir         string `toml:"src_dir" yaml:"src_dir"`
	OutDir         string `toml:"out_dir" yaml:"out_dir"`
	Extension      string `toml:"extension" yaml:"extension"`
	OutExtension   string `toml:"out_extension" yaml:"out_extension"`
	Workers        int    `toml:"workers" yaml:"workers"`
	EntryAttribute string `toml:"entry_attribute" yaml:"entry_attribute"`
	Log            Log    `toml:"log" yaml:"log"`
}

// Log configures the logger.
type Log struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		SrcDir:         "src",
		OutDir:         "dist",
		Extension:      ".rots",
		OutExtension:   ".js",
		Workers:        runtime.NumCPU(),
		EntryAttribute: "EntryPoint",
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// DetectFormat picks the format from the file extension, defaulting to TOML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Load reads path over the defaults. An empty path loads DefaultFile when it
// exists and the defaults otherwise.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultFile); errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		path = DefaultFile
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(content, DetectFormat(path), cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes content into cfg. Keys missing from content keep the values
// already in cfg.
func Parse(content []byte, format Format, cfg *Config) error {
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return fmt.Errorf("TOML parse error: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.SrcDir == "" {
		errs = append(errs, errors.New("src_dir is required"))
	}
	if c.OutDir == "" {
		errs = append(errs, errors.New("out_dir is required"))
	}
	if !strings.HasPrefix(c.Extension, ".") {
		errs = append(errs, fmt.Errorf("extension %q must start with a dot", c.Extension))
	}
	if c.OutExtension != "" && !strings.HasPrefix(c.OutExtension, ".") {
		errs = append(errs, fmt.Errorf("out_extension %q must start with a dot", c.OutExtension))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not text or json", c.Log.Format))
	}
	return errors.Join(errs...)
}

// OutputPath maps a source path under SrcDir to its output path under OutDir.
// Files outside SrcDir land directly in OutDir.
func (c *Config) OutputPath(src string) (string, error) {
	rel, err := filepath.Rel(c.SrcDir, src)
	if err != nil {
		return "", fmt.Errorf("output path for %s: %w", src, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(src)
	}
	if c.OutExtension != "" {
		rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + c.OutExtension
	}
	return filepath.Join(c.OutDir, rel), nil
}
