package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jacksmith/daily/internal/model"
	"gopkg.in/yaml.v3"
)

const (
	// userConfigFile is the name of the user configuration file (sibling to .daily/).
	userConfigFile = ".dailyconfig.yaml"

	// AppName is the application directory name under XDG_DATA_HOME.
	AppName = "daily"

	// HomeEnv overrides the data directory.
	HomeEnv = "DAILY_HOME"

	// Default configuration values
	DefaultDefaultPriority = model.PriorityLow
	DefaultConfirmDelay    = 500 * time.Millisecond
	DefaultColor           = ColorAuto
	DefaultStoreKey        = "myDailyTasks_DB"
)

// Color modes for terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents user configuration from .dailyconfig.yaml.
// This file is user-managed and never written by daily.
type Config struct {
	// DefaultPriority is the priority for new tasks when none is given.
	DefaultPriority model.Priority `yaml:"default_priority"`

	// ConfirmDelay is how long a confirmed batch is shown before it is applied.
	ConfirmDelay time.Duration `yaml:"confirm_delay"`

	// Color is one of auto, always, never.
	Color string `yaml:"color"`

	// StoreKey is the key the task blob is stored under.
	StoreKey string `yaml:"store_key"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		DefaultPriority: DefaultDefaultPriority,
		ConfirmDelay:    DefaultConfirmDelay,
		Color:           DefaultColor,
		StoreKey:        DefaultStoreKey,
	}
}

// LoadConfig loads .dailyconfig.yaml if it exists, otherwise returns defaults.
// The config file is a sibling to .daily/ (in the same directory).
// Partial config files are merged with defaults.
func (s *Storage) LoadConfig() (*Config, error) {
	data, err := os.ReadFile(s.ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
	}

	p, err := model.ParsePriority(string(cfg.DefaultPriority))
	if err != nil {
		return nil, fmt.Errorf("invalid default_priority in %s: %w", userConfigFile, err)
	}
	cfg.DefaultPriority = p

	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return nil, fmt.Errorf("invalid color %q in %s: must be auto, always or never", cfg.Color, userConfigFile)
	}
	if cfg.ConfirmDelay < 0 {
		return nil, fmt.Errorf("invalid confirm_delay in %s: must not be negative", userConfigFile)
	}
	if !keyRegex.MatchString(cfg.StoreKey) {
		return nil, fmt.Errorf("invalid store_key %q in %s", cfg.StoreKey, userConfigFile)
	}

	return cfg, nil
}

// ConfigPath returns the path to the user config file.
func (s *Storage) ConfigPath() string {
	return filepath.Join(s.root, userConfigFile)
}

// DefaultDir returns the default data directory.
// Uses $DAILY_HOME if set, then $XDG_DATA_HOME/daily, then ~/.local/share/daily.
func DefaultDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return "."
	}
	return filepath.Join(home, ".local", "share", AppName)
}
