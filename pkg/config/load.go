package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/feedtui/config.toml
//  2. ~/.config/feedtui/config.toml
//  3. same directories with config.yaml (legacy installs)
//
// If no file exists, returns DefaultConfig().
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path. The format
// is chosen by extension: ".yaml"/".yml" decode as YAML, everything else
// as TOML.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse toml config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	cfg.applyDefaults()
	return cfg, nil
}

// DefaultConfig returns the configuration used when no file exists: a
// starter two-by-two dashboard with the companion pane.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	cfg := &Config{
		General: GeneralConfig{
			RefreshInterval: Duration{5 * time.Minute},
			FetchTimeout:    Duration{15 * time.Second},
			TickInterval:    Duration{time.Second},
			LogFile:         filepath.Join(xdgStateHome(home), "feedtui", "feedtui.log"),
			LogLevel:        "info",
		},
		Theme: ThemeConfig{Name: "default"},
		Pet: PetConfig{
			SavePath:      filepath.Join(xdgDataHome(home), "feedtui", "pet.json"),
			FlushInterval: Duration{30 * time.Second},
		},
		Widgets: []WidgetSpec{
			{Type: "hackernews", Title: "Hacker News", Row: 0, Col: 0},
			{Type: "clock", Title: "Clock", Row: 0, Col: 1,
				Timezones: []string{"UTC", "America/New_York"}},
			{Type: "github", Title: "GitHub", Row: 1, Col: 0, TokenEnv: "GITHUB_TOKEN"},
			{Type: "pet", Title: "Pet", Row: 1, Col: 1, Species: "cat"},
		},
	}
	return cfg
}

// applyDefaults backfills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.General.RefreshInterval.Duration <= 0 {
		c.General.RefreshInterval = def.General.RefreshInterval
	}
	if c.General.FetchTimeout.Duration <= 0 {
		c.General.FetchTimeout = def.General.FetchTimeout
	}
	if c.General.TickInterval.Duration <= 0 {
		c.General.TickInterval = def.General.TickInterval
	}
	if c.General.LogFile == "" {
		c.General.LogFile = def.General.LogFile
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = def.General.LogLevel
	}
	if c.Theme.Name == "" {
		c.Theme.Name = def.Theme.Name
	}
	if c.Pet.SavePath == "" {
		c.Pet.SavePath = def.Pet.SavePath
	}
	if c.Pet.FlushInterval.Duration <= 0 {
		c.Pet.FlushInterval = def.Pet.FlushInterval
	}
}

// applyEnvOverrides checks environment variables and overrides config
// values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FEEDTUI_THEME"); v != "" {
		cfg.Theme.Name = v
	}
	if v := os.Getenv("FEEDTUI_LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = v
	}
	if v := os.Getenv("FEEDTUI_PET_SAVE"); v != "" {
		cfg.Pet.SavePath = v
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	dirs := []string{filepath.Join(xdgConfigHome(home), "feedtui")}

	defaultXDG := filepath.Join(home, ".config")
	if dirs[0] != filepath.Join(defaultXDG, "feedtui") {
		dirs = append(dirs, filepath.Join(defaultXDG, "feedtui"))
	}

	var paths []string
	for _, d := range dirs {
		paths = append(paths,
			filepath.Join(d, "config.toml"),
			filepath.Join(d, "config.yaml"),
			filepath.Join(d, "config.yml"),
		)
	}
	return paths
}

func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

func xdgDataHome(home string) string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "share")
}

func xdgStateHome(home string) string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "state")
}
