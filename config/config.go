// Package config provides configuration types, defaults, and loading for
// cppedit.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/iw2rmb/cppedit/gutter"
	"github.com/iw2rmb/cppedit/internal/log"
	"github.com/iw2rmb/cppedit/syntax"
)

const (
	// LocalPath is looked up relative to the working directory first.
	LocalPath = ".cppedit/config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. CPPEDIT_TAB_WIDTH.
	EnvPrefix = "CPPEDIT"
)

var (
	ErrInvalidTabWidth = errors.New("tab_width must be at least 1")
	ErrInvalidGutter   = errors.New("gutter metrics must not be negative")
	ErrInvalidTimeout  = errors.New("highlight.match_timeout must not be negative")
)

// Config holds all configuration options for cppedit.
type Config struct {
	TabWidth        int                         `mapstructure:"tab_width" yaml:"tab_width"`
	ShowLineNumbers bool                        `mapstructure:"show_line_numbers" yaml:"show_line_numbers"`
	Gutter          gutter.Metrics              `mapstructure:"gutter" yaml:"gutter"`
	Highlight       HighlightConfig             `mapstructure:"highlight" yaml:"highlight"`
	Theme           map[string]syntax.StyleSpec `mapstructure:"theme" yaml:"theme,omitempty"`
	Log             LogConfig                   `mapstructure:"log" yaml:"log"`

	// Source is the file the configuration was read from, if any.
	Source string `mapstructure:"-" yaml:"-"`
}

// HighlightConfig tunes the rule engine.
type HighlightConfig struct {
	// MatchTimeout bounds one rule on one line. Zero means no limit.
	MatchTimeout time.Duration `mapstructure:"match_timeout" yaml:"match_timeout"`
}

// LogConfig holds debug log options.
type LogConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// Defaults returns the built-in configuration. Theme is empty: the built-in
// palette applies.
func Defaults() Config {
	return Config{
		TabWidth:        4,
		ShowLineNumbers: true,
		Gutter:          gutter.TerminalMetrics(),
		Highlight:       HighlightConfig{MatchTimeout: 50 * time.Millisecond},
		Log:             LogConfig{Path: "debug.log"},
	}
}

// UserPath returns ~/.config/cppedit/config.yaml.
func UserPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".config", "cppedit", "config.yaml"), nil
}

// Load reads the configuration. An explicit path must exist. Without one the
// lookup order is LocalPath, then UserPath; when neither exists the defaults
// apply. Environment variables override file values.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case path != "":
		v.SetConfigFile(path)
	case fileExists(LocalPath):
		v.SetConfigFile(LocalPath)
	default:
		if user, err := UserPath(); err == nil {
			v.AddConfigPath(filepath.Dir(user))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		log.Debug(log.CatConfig, "no config file, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()
	if cfg.Source != "" && !fileExists(cfg.Source) {
		cfg.Source = ""
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	log.Info(log.CatConfig, "config loaded", "source", cfg.Source, "tab_width", cfg.TabWidth)
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("tab_width", d.TabWidth)
	v.SetDefault("show_line_numbers", d.ShowLineNumbers)
	v.SetDefault("gutter.glyph_advance", d.Gutter.GlyphAdvance)
	v.SetDefault("gutter.padding", d.Gutter.Padding)
	v.SetDefault("highlight.match_timeout", d.Highlight.MatchTimeout)
	v.SetDefault("log.path", d.Log.Path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Validate checks value ranges and the theme overrides.
func (c Config) Validate() error {
	if c.TabWidth < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidTabWidth, c.TabWidth)
	}
	if c.Gutter.GlyphAdvance < 0 || c.Gutter.Padding < 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidGutter, c.Gutter)
	}
	if c.Highlight.MatchTimeout < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.Highlight.MatchTimeout)
	}
	if _, err := c.Registry(); err != nil {
		return err
	}
	return nil
}

// Registry returns the built-in palette with the theme overrides applied.
func (c Config) Registry() (*syntax.Registry, error) {
	r, err := syntax.NewRegistry(nil, c.Theme)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	return r, nil
}

// Engine returns the default rule engine with the configured match timeout.
func (c Config) Engine() (*syntax.Engine, error) {
	return syntax.NewEngine(syntax.WithMatchTimeout(c.Highlight.MatchTimeout))
}
