// Package config resolves recordkeep settings from YAML files, environment
// variables and defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all recordkeep configuration.
type Config struct {
	Storage Storage `yaml:"storage"`
	Log     Log     `yaml:"log"`
	Display Display `yaml:"display"`
}

// Storage holds the data file locations.
type Storage struct {
	ContactsFile string `yaml:"contacts_file"`
	LibraryFile  string `yaml:"library_file"`
}

// Log holds diagnostic logging settings.
type Log struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// Display holds terminal output settings.
type Display struct {
	Plain bool `yaml:"plain"` // Never start the browse TUI
}

// DefaultConfig returns a Config with data files in the working directory.
func DefaultConfig() Config {
	return Config{
		Storage: Storage{
			ContactsFile: "contacts.json",
			LibraryFile:  "library_books.json",
		},
		Log: Log{
			Level: "warn",
		},
	}
}

// ProjectFile is the per-directory config layer, read from the working
// directory.
const ProjectFile = ".recordkeep.yaml"

// DefaultPaths lists the layered lookup: the user file under
// $HOME/.config/recordkeep, then ProjectFile.
func DefaultPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "recordkeep", "config.yaml"))
	}
	return append(paths, ProjectFile)
}

// Resolve returns the effective config with environment overrides applied.
// A non-empty explicit path is read alone and must exist; otherwise the
// DefaultPaths layers are merged.
func Resolve(explicit string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if explicit != "" {
		cfg, err = LoadFile(explicit)
	} else {
		cfg, err = LoadLayered(DefaultPaths()...)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads one config file over the defaults. A missing file is an
// error.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	layer, err := readLayer(path, true)
	if err != nil {
		return nil, err
	}
	if layer != nil {
		cfg.merge(layer)
	}
	return &cfg, nil
}

// LoadLayered merges each file in paths over the defaults; later files
// win field by field and absent files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()
	for _, path := range paths {
		layer, err := readLayer(path, false)
		if err != nil {
			return nil, err
		}
		if layer != nil {
			cfg.merge(layer)
		}
	}
	return &cfg, nil
}

// Validate rejects empty data file paths and unknown log levels.
func (c *Config) Validate() error {
	if c.Storage.ContactsFile == "" {
		return errors.New("config: storage.contacts_file cannot be empty")
	}
	if c.Storage.LibraryFile == "" {
		return errors.New("config: storage.library_file cannot be empty")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}

// ApplyEnv overrides c from RECORDKEEP_CONTACTS_FILE,
// RECORDKEEP_LIBRARY_FILE, RECORDKEEP_LOG_LEVEL and RECORDKEEP_PLAIN when
// they are set and non-empty.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("RECORDKEEP_CONTACTS_FILE"); v != "" {
		c.Storage.ContactsFile = v
	}
	if v := os.Getenv("RECORDKEEP_LIBRARY_FILE"); v != "" {
		c.Storage.LibraryFile = v
	}
	if v := os.Getenv("RECORDKEEP_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("RECORDKEEP_PLAIN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid RECORDKEEP_PLAIN %q: %w", v, err)
		}
		c.Display.Plain = b
	}
	return nil
}

// rawConfig is one decoded layer; nil pointers are keys the file left out.
type rawConfig struct {
	Storage *rawStorage `yaml:"storage"`
	Log     *rawLog     `yaml:"log"`
	Display *rawDisplay `yaml:"display"`
}

type rawStorage struct {
	ContactsFile *string `yaml:"contacts_file"`
	LibraryFile  *string `yaml:"library_file"`
}

type rawLog struct {
	Level *string `yaml:"level"`
}

type rawDisplay struct {
	Plain *bool `yaml:"plain"`
}

// readLayer decodes one file strictly, rejecting unknown keys. An empty or
// comment-only file is a nil layer, as is a missing one unless required.
func readLayer(path string, required bool) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !required:
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	switch err := dec.Decode(&raw); {
	case errors.Is(err, io.EOF):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &raw, nil
}

// merge copies the keys set in layer onto c.
func (c *Config) merge(layer *rawConfig) {
	if layer.Storage != nil {
		if layer.Storage.ContactsFile != nil {
			c.Storage.ContactsFile = *layer.Storage.ContactsFile
		}
		if layer.Storage.LibraryFile != nil {
			c.Storage.LibraryFile = *layer.Storage.LibraryFile
		}
	}
	if layer.Log != nil && layer.Log.Level != nil {
		c.Log.Level = *layer.Log.Level
	}
	if layer.Display != nil && layer.Display.Plain != nil {
		c.Display.Plain = *layer.Display.Plain
	}
}
