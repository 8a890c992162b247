package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Loader handles loading and initial parsing of the Config from a file.
type Loader struct {
	filePath string
}

// NewLoader creates a new configuration loader for the given file path.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads the configuration file and decodes it as TOML when the file ends
// in ".toml", YAML otherwise. A missing or empty file yields the defaults.
// Defaults are applied but the result is not validated; call Validate after
// merging command line overrides.
func (l *Loader) Load() (*Config, error) {
	var cfg Config
	if l.filePath == "" {
		SetDefaults(&cfg)
		return &cfg, nil
	}

	content, err := os.ReadFile(l.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		SetDefaults(&cfg)
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", l.filePath, err)
	}

	if len(bytes.TrimSpace(content)) > 0 {
		if err := decode(l.filePath, content, &cfg); err != nil {
			return nil, err
		}
	}
	SetDefaults(&cfg)
	return &cfg, nil
}

func decode(path string, content []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		dec := toml.NewDecoder(bytes.NewReader(content))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("failed to unmarshal config TOML from '%s': %w", path, err)
		}
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to unmarshal config YAML from '%s': %w", path, err)
	}
	return nil
}

// BoolFlag is a command line boolean that may not have been given.
type BoolFlag struct {
	Value bool
	Set   bool
}

// Overrides are command line values applied on top of the file.
type Overrides struct {
	DryRun           BoolFlag
	NoRetry          BoolFlag
	Verbose          BoolFlag
	ShowSkipped      BoolFlag
	AssertInvariants BoolFlag
	Only             []string
	Disable          []string
	IgnoreFailures   []string
	LogDir           string
	LogLevel         string
}

// Apply merges o into c. Booleans given on the command line win; step lists
// given on the command line replace "only" and extend the others.
func (c *Config) Apply(o Overrides) {
	setBool(&c.Misc.DryRun, o.DryRun)
	setBool(&c.Misc.NoRetry, o.NoRetry)
	setBool(&c.Misc.Verbose, o.Verbose)
	setBool(&c.Misc.ShowSkipped, o.ShowSkipped)
	setBool(&c.Misc.AssertInvariants, o.AssertInvariants)

	if len(o.Only) > 0 {
		c.Misc.Only = append([]string{}, o.Only...)
	}
	c.Misc.Disable = append(c.Misc.Disable, o.Disable...)
	c.Misc.IgnoreFailures = append(c.Misc.IgnoreFailures, o.IgnoreFailures...)

	if o.LogDir != "" {
		c.Misc.LogDir = o.LogDir
	}
	if o.LogLevel != "" {
		c.Misc.LogLevel = o.LogLevel
	}
}

func setBool(dst *bool, f BoolFlag) {
	if f.Set {
		*dst = f.Value
	}
}
