// Package config loads TheQuest settings from an optional YAML file,
// THEQUEST_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config defines where projects live, how they are opened and how the window behaves.
type Config struct {
	BasePath     string                    `mapstructure:"base_path"`
	Editor       string                    `mapstructure:"editor"`
	OpenOnCreate bool                      `mapstructure:"open_on_create"`
	ShowHidden   bool                      `mapstructure:"show_hidden"`
	RecentLimit  int                       `mapstructure:"recent_limit"`
	Watch        bool                      `mapstructure:"watch"`
	Window       Window                    `mapstructure:"window"`
	Templates    []LanguageTemplate        `mapstructure:"templates"`
}

// Window holds the initial window size.
type Window struct {
	Width  float32 `mapstructure:"width"`
	Height float32 `mapstructure:"height"`
}

// LanguageTemplate declares the starter files of one language bucket. The
// language is a value rather than a map key so its case survives decoding.
type LanguageTemplate struct {
	Language string         `mapstructure:"language"`
	Files    []TemplateFile `mapstructure:"files"`
}

// TemplateFile is a starter file declared in the config file.
type TemplateFile struct {
	Name    string `mapstructure:"name"`
	Content string `mapstructure:"content"`
}

// DefaultConfig returns the built-in configuration: projects under ~/Projects,
// opened with VS Code, hidden folders ignored.
func DefaultConfig() *Config {
	return &Config{
		BasePath:     ExpandPath(DefaultBasePath),
		Editor:       DefaultEditor,
		OpenOnCreate: true,
		ShowHidden:   false,
		RecentLimit:  DefaultRecentLimit,
		Watch:        true,
		Window:       DefaultWindow,
	}
}

// Load reads configuration from cfgFile, or from config.yaml in the default
// config directory when cfgFile is empty. A missing file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("base_path", DefaultBasePath)
	v.SetDefault("editor", DefaultEditor)
	v.SetDefault("open_on_create", true)
	v.SetDefault("show_hidden", false)
	v.SetDefault("recent_limit", DefaultRecentLimit)
	v.SetDefault("watch", true)
	v.SetDefault("window.width", DefaultWindow.Width)
	v.SetDefault("window.height", DefaultWindow.Height)

	v.SetEnvPrefix("thequest")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(ExpandPath(cfgFile))
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.BasePath = ExpandPath(cfg.BasePath)
	if cfg.RecentLimit < 0 {
		cfg.RecentLimit = 0
	}
	if strings.TrimSpace(cfg.Editor) == "" {
		cfg.Editor = DefaultEditor
	}

	return &cfg, nil
}

// Dir returns the expanded configuration directory.
func Dir() string {
	return ExpandPath(DefaultConfigDir)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
