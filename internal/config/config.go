package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Iron-Ham/groundcrew/internal/logging"
	"github.com/spf13/viper"
)

// Config holds all groundcrew configuration
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Events  EventsConfig  `mapstructure:"events"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Emit    EmitConfig    `mapstructure:"emit"`
}

// LoggingConfig controls the category/level filter and where records go
type LoggingConfig struct {
	// Level is the minimum level: "debug", "info", "warn", "error", "critical".
	// Empty means the preset's level, or "info" without a preset.
	Level string `mapstructure:"level"`
	// Preset names a logging preset such as "refueling" or "critical" (default: none)
	Preset string `mapstructure:"preset"`
	// Categories lists active categories by name. When set it replaces the
	// preset's categories. Empty means the preset's categories, or all.
	Categories []string `mapstructure:"categories"`
	// File is the log file path. Empty writes to stderr.
	File string `mapstructure:"file"`
	// Format is "json" or "console" (default: "json")
	Format string `mapstructure:"format"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated backups (default: false)
	Compress bool `mapstructure:"compress"`
}

// EventsConfig controls the event aggregator
type EventsConfig struct {
	// LogHandlerPanics writes subscriber panics to the operational log (default: true)
	LogHandlerPanics bool `mapstructure:"log_handler_panics"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	// Enabled starts the metrics HTTP server in serve mode (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Address is the listen address of the metrics server (default: ":9464")
	Address string `mapstructure:"address"`
}

// EmitConfig controls the synthetic load generated by the emit command
type EmitConfig struct {
	// Producers is the number of concurrent publishing goroutines (default: 4)
	Producers int `mapstructure:"producers"`
	// Events is the number of events each producer publishes (default: 100)
	Events int `mapstructure:"events"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Format:     FormatJSON,
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Events: EventsConfig{
			LogHandlerPanics: true,
		},
		Metrics: MetricsConfig{
			Address: ":9464",
		},
		Emit: EmitConfig{
			Producers: 4,
			Events:    100,
		},
	}
}

// Log output formats
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// SetDefaults registers default values with viper
func SetDefaults() {
	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	// Logging defaults
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.preset", defaults.Logging.Preset)
	v.SetDefault("logging.categories", defaults.Logging.Categories)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	v.SetDefault("logging.compress", defaults.Logging.Compress)

	// Events defaults
	v.SetDefault("events.log_handler_panics", defaults.Events.LogHandlerPanics)

	// Metrics defaults
	v.SetDefault("metrics.enabled", defaults.Metrics.Enabled)
	v.SetDefault("metrics.address", defaults.Metrics.Address)

	// Emit defaults
	v.SetDefault("emit.producers", defaults.Emit.Producers)
	v.SetDefault("emit.events", defaults.Emit.Events)
}

// EnvPrefix is the prefix of environment variables that override config
// keys, e.g. GROUNDCREW_LOGGING_PRESET for logging.preset
const EnvPrefix = "GROUNDCREW"

// envKeyReplacer maps nested keys to env var names
var envKeyReplacer = strings.NewReplacer(".", "_")

// BindEnv makes viper consult GROUNDCREW_* environment variables
func BindEnv() {
	bindEnv(viper.GetViper())
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	return load(viper.GetViper())
}

func load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when the
// loaded values are invalid
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "groundcrew")
	}
	// Fall back to ~/.config/groundcrew
	home, err := os.UserHomeDir()
	if err != nil {
		return ".groundcrew"
	}
	return filepath.Join(home, ".config", "groundcrew")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Filter resolves the logging section into the level and category set a
// logging.Service should use. The preset is applied first; explicit
// categories and level then override what the preset chose.
func (c *LoggingConfig) Filter() (logging.Level, logging.Category, error) {
	level := logging.LevelInfo
	cats := logging.CategoryAll

	if name := strings.TrimSpace(c.Preset); name != "" {
		p, err := logging.LookupPreset(name)
		if err != nil {
			return 0, 0, err
		}
		cats = p.Categories
		if p.SetsLevel {
			level = p.Level
		}
	}

	if len(c.Categories) > 0 {
		parsed, err := logging.ParseCategories(c.Categories)
		if err != nil {
			return 0, 0, err
		}
		cats = parsed
	}

	if c.Level != "" {
		parsed, err := logging.ParseLevel(c.Level)
		if err != nil {
			return 0, 0, err
		}
		level = parsed
	}

	return level, cats, nil
}

// Rotation returns the rotation settings for the log file
func (c *LoggingConfig) Rotation() logging.RotationConfig {
	return logging.RotationConfig{
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		Compress:   c.Compress,
	}
}

// ValidFormats returns the list of valid log output formats
func ValidFormats() []string {
	return []string{FormatJSON, FormatConsole}
}
