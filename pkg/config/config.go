package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. WORLDBOOK_LOG_LEVEL.
const EnvPrefix = "WORLDBOOK"

// Config holds all worldbook settings.
type Config struct {
	// World file to open
	World string `mapstructure:"world"`

	// Reload the world file when it changes on disk
	Watch bool `mapstructure:"watch"`

	Log LogConfig `mapstructure:"log"`
	UI  UIConfig  `mapstructure:"ui"`
}

// LogConfig configures the file logger. The terminal belongs to the UI, so
// logs only go to a file.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// UIConfig configures rendering.
type UIConfig struct {
	Style    string `mapstructure:"style"` // glamour style: auto, dark, light, notty
	WordWrap int    `mapstructure:"word_wrap"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		UI:  UIConfig{Style: "auto", WordWrap: 80},
	}
}

// New returns a viper instance with defaults and environment overrides wired.
func New() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("world", d.World)
	v.SetDefault("watch", d.Watch)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("ui.style", d.UI.Style)
	v.SetDefault("ui.word_wrap", d.UI.WordWrap)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags maps command-line flags onto config keys. Flags that are absent
// from the set are skipped.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"world":     "world",
		"watch":     "watch",
		"log-file":  "log.file",
		"log-level": "log.level",
		"style":     "ui.style",
	}
	for flag, key := range bindings {
		f := flags.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// Load reads the optional config file at path and decodes the result.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values viper cannot type-check on its own.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q: %w", c.Log.Level, ErrInvalid)
	}
	switch c.UI.Style {
	case "auto", "dark", "light", "notty", "pink", "dracula":
	default:
		return fmt.Errorf("ui.style %q: %w", c.UI.Style, ErrInvalid)
	}
	if c.UI.WordWrap < 0 {
		return fmt.Errorf("ui.word_wrap %d: %w", c.UI.WordWrap, ErrInvalid)
	}
	return nil
}

// ErrInvalid marks a config value outside its allowed range.
var ErrInvalid = errors.New("invalid config value")
