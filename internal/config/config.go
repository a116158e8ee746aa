package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Directory DirectoryConfig `mapstructure:"directory"`
	Preview   PreviewConfig   `mapstructure:"preview"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Log       LogConfig       `mapstructure:"log"`
	UI        UIConfig        `mapstructure:"ui"`
	// Keys overrides the default keys per action, e.g. bookmark = ["b"].
	Keys map[string][]string `mapstructure:"keys"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path       string `mapstructure:"path"`
	Migrations string `mapstructure:"migrations"`
}

// DirectoryConfig points at the dataset file. An empty path uses the built-in seed.
type DirectoryConfig struct {
	Path string `mapstructure:"path"`
}

// PreviewConfig selects the embedded-content strategy for the preview modal.
type PreviewConfig struct {
	Mode      string        `mapstructure:"mode"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// StorageConfig bounds bookmark and session round trips.
type StorageConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig holds slog settings. The terminal belongs to the TUI, so logs go to a file.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Accent string `mapstructure:"accent"`
}

const (
	PreviewLive     = "live"
	PreviewSnapshot = "snapshot"
)

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "showcase")
}

func configPath() string {
	if p := os.Getenv("SHOWCASE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "showcase", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix SHOWCASE_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(dataDir(), "showcase.db"))
	v.SetDefault("database.migrations", "internal/database/migrations")
	v.SetDefault("directory.path", "")
	v.SetDefault("preview.mode", PreviewLive)
	v.SetDefault("preview.timeout", "10s")
	v.SetDefault("preview.user_agent", "showcase-preview/1.0")
	v.SetDefault("storage.timeout", "5s")
	v.SetDefault("log.path", filepath.Join(dataDir(), "showcase.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.accent", "#FF3D00")

	v.SetConfigType("toml")

	if p := os.Getenv("SHOWCASE_CONFIG"); p != "" {
		v.SetConfigFile(p)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "showcase"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SHOWCASE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the app cannot run with.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Preview.Mode)) {
	case PreviewLive, PreviewSnapshot:
	default:
		return fmt.Errorf("preview.mode %q: want %q or %q", c.Preview.Mode, PreviewLive, PreviewSnapshot)
	}
	if c.Storage.Timeout <= 0 {
		return fmt.Errorf("storage.timeout must be positive")
	}
	if c.Preview.Timeout <= 0 {
		return fmt.Errorf("preview.timeout must be positive")
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations", cfg.Database.Migrations)
	v.Set("directory.path", cfg.Directory.Path)
	v.Set("preview.mode", cfg.Preview.Mode)
	v.Set("preview.timeout", cfg.Preview.Timeout.String())
	v.Set("preview.user_agent", cfg.Preview.UserAgent)
	v.Set("storage.timeout", cfg.Storage.Timeout.String())
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.accent", cfg.UI.Accent)
	if len(cfg.Keys) > 0 {
		v.Set("keys", cfg.Keys)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
