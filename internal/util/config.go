package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Storage backends.
const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Load-error policies: abort startup or start from empty progress.
const (
	LoadErrorFail  = "fail"
	LoadErrorEmpty = "empty"
)

const (
	dataDirName    = ".jterm"
	configFileName = "config.yaml"
)

// Config holds runtime settings. It is resolved once at startup and passed to
// the store, the exporter and the UI.
type Config struct {
	DataDir     string `env:"JTERM_DATA_DIR" yaml:"data_dir"`
	ExportDir   string `env:"JTERM_EXPORT_DIR" yaml:"export_dir"`
	Backend     string `env:"JTERM_BACKEND" yaml:"backend"`
	DSN         string `env:"DATABASE_URL" yaml:"dsn"`
	Theme       string `env:"JTERM_THEME" yaml:"theme"`
	OnLoadError string `env:"JTERM_ON_LOAD_ERROR" yaml:"on_load_error"`
	MapImage    string `env:"JTERM_MAP_IMAGE" yaml:"map_image"`
	LogFile     string `env:"JTERM_LOG_FILE" yaml:"log_file"`
	Debug       bool   `env:"JTERM_DEBUG" yaml:"debug"`
}

// Default returns the built-in settings. Paths stay empty until Resolve.
func Default() Config {
	return Config{
		Backend:     BackendJSON,
		Theme:       "flexoki_light",
		OnLoadError: LoadErrorFail,
	}
}

// homeDir is swapped in tests.
var homeDir = homedir.Dir

// Load layers defaults, the YAML file, the environment and finally the
// overrides callback (command-line flags), then resolves the result.
// An empty configPath means <home>/.jterm/config.yaml, which may be absent.
func Load(configPath string, overrides func(*Config)) (Config, error) {
	cfg := Default()
	explicit := configPath != ""
	if !explicit {
		home, err := homeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		configPath = filepath.Join(home, dataDirName, configFileName)
	}
	if err := LoadFile(configPath, &cfg, explicit); err != nil {
		return Config{}, err
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if overrides != nil {
		overrides(&cfg)
	}
	return cfg.Resolve()
}

// LoadFile merges a YAML file into cfg. A missing file is only an error when
// required is set.
func LoadFile(path string, cfg *Config, required bool) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Resolve fills derived paths from the home directory and validates enums.
func (c Config) Resolve() (Config, error) {
	c.Backend = normalize(c.Backend, BackendJSON)
	c.OnLoadError = normalize(c.OnLoadError, LoadErrorFail)
	switch c.Backend {
	case BackendJSON, BackendSQLite, BackendPostgres:
	default:
		return Config{}, fmt.Errorf("%w: backend %q (json|sqlite|postgres)", ErrInvalidConfig, c.Backend)
	}
	switch c.OnLoadError {
	case LoadErrorFail, LoadErrorEmpty:
	default:
		return Config{}, fmt.Errorf("%w: on_load_error %q (fail|empty)", ErrInvalidConfig, c.OnLoadError)
	}
	if c.Backend == BackendPostgres && c.DSN == "" {
		return Config{}, fmt.Errorf("%w: postgres backend requires a DSN", ErrInvalidConfig)
	}
	if c.DataDir == "" || c.ExportDir == "" {
		home, err := homeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		if c.DataDir == "" {
			c.DataDir = filepath.Join(home, dataDirName)
		}
		if c.ExportDir == "" {
			c.ExportDir = home
		}
	}
	if c.MapImage == "" {
		c.MapImage = filepath.Join(c.DataDir, "japan.png")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.DataDir, "jterm.log")
	}
	return c, nil
}

func (c Config) ProgressPath() string { return filepath.Join(c.DataDir, "progress.json") }
func (c Config) SQLitePath() string   { return filepath.Join(c.DataDir, "progress.db") }

func normalize(v, fallback string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return fallback
	}
	return v
}
