package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	applog "github.com/mithun-t/expense-tracker/internal/log"
	"github.com/mithun-t/expense-tracker/internal/storage"
)

// FileName is the default config file name.
const FileName = "expenses.yaml"

// Environment variables that override the config file.
const (
	EnvBackend    = "EXPENSES_BACKEND"
	EnvDataPath   = "EXPENSES_DATA_PATH"
	EnvStorageKey = "EXPENSES_STORAGE_KEY"
	EnvLogLevel   = "EXPENSES_LOG_LEVEL"
)

// Config represents expenses.yaml.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Display DisplayConfig `yaml:"display"`
}

// StorageConfig selects where the collection is persisted.
type StorageConfig struct {
	Backend string `yaml:"backend"` // memory, file or sqlite
	Path    string `yaml:"path"`    // data dir (file) or database file (sqlite)
	Key     string `yaml:"key"`
}

// LogConfig controls log verbosity.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DisplayConfig controls how amounts are rendered.
type DisplayConfig struct {
	Currency string `yaml:"currency"`
}

// Load reads a config file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault reads path if it exists and falls back to Default otherwise.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config that stores data as JSON files under ./data.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: storage.BackendFile,
			Path:    "data",
			Key:     "@expenses",
		},
		Log: LogConfig{
			Level: "warn",
		},
		Display: DisplayConfig{
			Currency: "$",
		},
	}
}

// LoadEnv loads variables from the given .env files into the process
// environment. Missing files are skipped; existing variables win.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides config values with any EXPENSES_* variables that are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvBackend); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv(EnvDataPath); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(EnvStorageKey); v != "" {
		c.Storage.Key = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var problems []string

	switch strings.ToLower(c.Storage.Backend) {
	case storage.BackendMemory:
	case storage.BackendFile, storage.BackendSQLite:
		if c.Storage.Path == "" {
			problems = append(problems, fmt.Sprintf("storage.path is required for the %s backend", c.Storage.Backend))
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown storage.backend %q: must be memory, file or sqlite", c.Storage.Backend))
	}

	if c.Storage.Key == "" {
		problems = append(problems, "storage.key must not be empty")
	}

	if _, err := applog.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// StorageOptions translates the storage section for storage.Open. A relative
// storage.path is resolved against baseDir, normally the config file's directory.
func (c *Config) StorageOptions(baseDir string) storage.Options {
	path := c.Storage.Path
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	return storage.Options{Backend: c.Storage.Backend, Path: path}
}
