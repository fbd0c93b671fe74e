package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level application configuration
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
	Links    LinksConfig    `mapstructure:"links"`
	Advanced AdvancedConfig `mapstructure:"advanced"`
}

// LoggingConfig controls where and how logs are written
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
	Color      bool   `mapstructure:"color"`
}

// DatabaseConfig controls the local catalog database
type DatabaseConfig struct {
	Path           string `mapstructure:"path"`
	MaxConnections int    `mapstructure:"max_connections"`
	WALMode        bool   `mapstructure:"wal_mode"`
	AutoVacuum     bool   `mapstructure:"auto_vacuum"`
}

// UIConfig holds the layout constants of the detail screen
type UIConfig struct {
	// BannerRatio divides the terminal height to get the banner height.
	BannerRatio float64 `mapstructure:"banner_ratio"`
	// ContentOverlap is how many banner rows the content card covers.
	ContentOverlap int `mapstructure:"content_overlap"`
	ChipWidth      int `mapstructure:"chip_width"`
	ChipSeparator  int `mapstructure:"chip_separator"`
	// HorizontalMargin mirrors the side padding of the content card.
	HorizontalMargin int `mapstructure:"horizontal_margin"`
}

// LinksConfig controls how external links are opened
type LinksConfig struct {
	// Command overrides the system browser, e.g. "firefox --new-tab".
	Command string `mapstructure:"command"`
}

// AdvancedConfig groups rarely changed settings
type AdvancedConfig struct {
	Debug     bool            `mapstructure:"debug"`
	Clipboard ClipboardConfig `mapstructure:"clipboard"`
}

// ClipboardConfig configures the clipboard fallback command
type ClipboardConfig struct {
	Command string `mapstructure:"command"`
}

// SetDefaults registers every default value on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", filepath.Join(getStateDir(), "aniview", "aniview.log"))
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", false)
	v.SetDefault("logging.color", true)

	v.SetDefault("database.path", filepath.Join(getDataDir(), "aniview", "aniview.db"))
	v.SetDefault("database.max_connections", 4)
	v.SetDefault("database.wal_mode", true)
	v.SetDefault("database.auto_vacuum", true)

	v.SetDefault("ui.banner_ratio", 1.8)
	v.SetDefault("ui.content_overlap", 3)
	v.SetDefault("ui.chip_width", 14)
	v.SetDefault("ui.chip_separator", 1)
	v.SetDefault("ui.horizontal_margin", 4)

	v.SetDefault("links.command", "")

	v.SetDefault("advanced.debug", false)
	v.SetDefault("advanced.clipboard.command", "")
}

// Load reads the configuration file at path, or the default location when
// path is empty. A missing file is not an error; defaults apply.
func Load(path string) (*Config, *viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("ANIVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(getConfigDir(), "aniview"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(path != "" && errors.Is(err, os.ErrNotExist)) {
			return nil, nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return cfg, v, nil
}

// Default returns the configuration built from defaults only
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg := &Config{}
	// Defaults always decode.
	_ = v.Unmarshal(cfg)
	return cfg
}

// Validate checks values that would break the layout
func (c *Config) Validate() error {
	if c.UI.BannerRatio < 1 {
		return fmt.Errorf("ui.banner_ratio must be at least 1, got %v", c.UI.BannerRatio)
	}
	if c.UI.ContentOverlap < 0 {
		return fmt.Errorf("ui.content_overlap must not be negative, got %d", c.UI.ContentOverlap)
	}
	if c.UI.ChipWidth < 4 {
		return fmt.Errorf("ui.chip_width must be at least 4, got %d", c.UI.ChipWidth)
	}
	if c.UI.ChipSeparator < 0 {
		return fmt.Errorf("ui.chip_separator must not be negative, got %d", c.UI.ChipSeparator)
	}
	if c.UI.HorizontalMargin < 0 {
		return fmt.Errorf("ui.horizontal_margin must not be negative, got %d", c.UI.HorizontalMargin)
	}
	return nil
}

// WriteDefault writes the default configuration to path, refusing to
// overwrite an existing file
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// DefaultConfigPath returns where Load looks when no path is given
func DefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "aniview", "config.yaml")
}

// InitializeDirs creates the config, data and state directories
func InitializeDirs() error {
	for _, dir := range []string{
		filepath.Join(getConfigDir(), "aniview"),
		filepath.Join(getDataDir(), "aniview"),
		filepath.Join(getStateDir(), "aniview"),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

func getConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

func getDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share")
}

func getStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state")
}
