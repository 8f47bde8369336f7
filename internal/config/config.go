package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/csvmongo/pkg/csvmongo"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type StoreConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
	Mode       string `yaml:"mode,omitempty"`
	Retries    *int   `yaml:"retries,omitempty"`
}

type InputConfig struct {
	Path             string `yaml:"path"`
	Delimiter        string `yaml:"delimiter,omitempty"`
	DuplicateHeaders string `yaml:"duplicate_headers,omitempty"`
}

type ProjectConfig struct {
	Input   InputConfig `yaml:"input"`
	Store   StoreConfig `yaml:"store"`
	Timeout string      `yaml:"timeout"`
}

const ConfigFileName = "csvmongo.yaml"

// Load reads the config file at path.
func Load(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromDir reads ConfigFileName in dir.
func LoadFromDir(dir string) (*ProjectConfig, error) {
	return Load(filepath.Join(dir, ConfigFileName))
}

// ApplyTo overwrites the fields of target that are set in the file.
// Malformed values match csvmongo.ErrInvalidConfig.
func (p *ProjectConfig) ApplyTo(target *csvmongo.ImportConfig) error {
	var errs []error

	setString(&target.InputPath, p.Input.Path)
	setString(&target.StoreAddress, p.Store.URI)
	setString(&target.DatabaseName, p.Store.Database)
	setString(&target.CollectionName, p.Store.Collection)

	if p.Store.Mode != "" {
		target.Mode = csvmongo.ReplaceMode(p.Store.Mode)
	}
	if p.Input.DuplicateHeaders != "" {
		target.DuplicateHeaders = csvmongo.HeaderPolicy(p.Input.DuplicateHeaders)
	}
	if p.Store.Retries != nil {
		target.Retries = *p.Store.Retries
	}

	if p.Input.Delimiter != "" {
		d, err := ParseDelimiter(p.Input.Delimiter)
		if err != nil {
			errs = append(errs, err)
		} else {
			target.Delimiter = d
		}
	}

	if p.Timeout != "" {
		d, err := time.ParseDuration(p.Timeout)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid timeout %q in %s: %w", p.Timeout, ConfigFileName, csvmongo.ErrInvalidConfig))
		} else {
			target.Timeout = d
		}
	}

	return errors.Join(errs...)
}

// ParseDelimiter accepts a single character, or the names "tab" and "\t".
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q: %w", s, csvmongo.ErrInvalidConfig)
	}
	return r, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
