package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

const envOverride = "ARC_CONFIG"

type Config struct {
	Log     LogConfig         `toml:"log"`
	Extract ExtractConfig     `toml:"extract"`
	Exec    ExecConfig        `toml:"exec"`
	History HistoryConfig     `toml:"history"`
	Tools   map[string]string `toml:"tools"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type ExtractConfig struct {
	DestDir string `toml:"dest_dir"`
}

type ExecConfig struct {
	Timeout string        `toml:"timeout"`
	Parsed  time.Duration `toml:"-"` // resolved from Timeout at load time
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// DefaultPath returns the configuration file path, honoring ARC_CONFIG.
func DefaultPath() string {
	if p := os.Getenv(envOverride); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "arc.conf"
	}
	return filepath.Join(dir, "arc", "arc.conf")
}

func defaultHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "arc-history.db"
	}
	return filepath.Join(dir, "arc", "history.db")
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads configuration from the default path.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads configuration from the given path. A missing file yields
// the defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	applyDefaults(&cfg)

	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("config: log.level %q is not a valid level", cfg.Log.Level)
	}
	if cfg.Exec.Timeout != "" {
		d, err := time.ParseDuration(cfg.Exec.Timeout)
		if err != nil {
			return nil, fmt.Errorf("config: exec.timeout %q: %w", cfg.Exec.Timeout, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("config: exec.timeout must not be negative")
		}
		cfg.Exec.Parsed = d
	}
	for name, prog := range cfg.Tools {
		if prog == "" {
			return nil, fmt.Errorf("config: tools.%s must not be empty", name)
		}
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.History.Path == "" {
		cfg.History.Path = defaultHistoryPath()
	}
	if cfg.Tools == nil {
		cfg.Tools = map[string]string{}
	}
}

// Program returns the executable to run in place of name.
func (c *Config) Program(name string) string {
	if p, ok := c.Tools[name]; ok {
		return p
	}
	return name
}

// TemplateConfig returns a TOML template with the default settings.
func TemplateConfig() string {
	return `[log]
# panic, fatal, error, warn, info, debug, trace
level = "info"

[extract]
# Parent directory for extraction output. Empty means the current directory.
dest_dir = ""

[exec]
# Maximum run time per external command, e.g. "10m". Empty waits forever.
timeout = ""

[history]
enabled = false
# path = "/home/you/.cache/arc/history.db"

[tools]
# Replace a program name from the format table, e.g.
# 7z = "7zz"
`
}
