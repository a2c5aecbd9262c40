// Package config provides file-based configuration for feedtui. The
// primary format is TOML; `.yaml`/`.yml` files from older installs are
// still accepted. A missing config file yields DefaultConfig, never an
// error.
package config

import (
	"strconv"
	"time"
)

// Config is the root configuration document.
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Theme   ThemeConfig   `toml:"theme" yaml:"theme"`
	Pet     PetConfig     `toml:"pet" yaml:"pet"`
	Widgets []WidgetSpec  `toml:"widgets" yaml:"widgets"`
}

// GeneralConfig holds dashboard-wide settings.
type GeneralConfig struct {
	// RefreshInterval is the default refresh cadence for widgets that do
	// not declare their own.
	RefreshInterval Duration `toml:"refresh_interval" yaml:"refresh_interval"`

	// FetchTimeout bounds a single refresh's I/O. A hung fetch past this
	// deadline is cancelled so the widget's cadence can resume.
	FetchTimeout Duration `toml:"fetch_timeout" yaml:"fetch_timeout"`

	// TickInterval drives clock updates and stale-data checks.
	TickInterval Duration `toml:"tick_interval" yaml:"tick_interval"`

	LogFile  string `toml:"log_file" yaml:"log_file"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// ThemeConfig selects the color palette.
type ThemeConfig struct {
	Name string `toml:"name" yaml:"name"`
}

// PetConfig holds companion settings that are configuration rather than
// persisted game state.
type PetConfig struct {
	// SavePath overrides where companion state is persisted. Empty means
	// the default under the XDG data directory.
	SavePath string `toml:"save_path" yaml:"save_path"`

	// FlushInterval is the debounce window for periodic saves of dirty
	// companion state.
	FlushInterval Duration `toml:"flush_interval" yaml:"flush_interval"`
}

// WidgetSpec describes one dashboard pane. Immutable after load; the
// registry validates it and an invalid spec fails only that widget.
type WidgetSpec struct {
	// Type is one of the closed widget type tags (see pkg/widgets).
	Type  string `toml:"type" yaml:"type"`
	Title string `toml:"title" yaml:"title"`
	Row   int    `toml:"row" yaml:"row"`
	Col   int    `toml:"col" yaml:"col"`

	// Refresh optionally overrides General.RefreshInterval for this
	// widget. Zero means use the default.
	Refresh Duration `toml:"refresh" yaml:"refresh"`

	// Per-type options. Only the fields relevant to Type are honored.
	Timezones    []string `toml:"timezones" yaml:"timezones"`
	Symbols      []string `toml:"symbols" yaml:"symbols"`
	FeedURLs     []string `toml:"feed_urls" yaml:"feed_urls"`
	Leagues      []string `toml:"leagues" yaml:"leagues"`
	Channels     []string `toml:"channels" yaml:"channels"`
	MaxItems     int      `toml:"max_items" yaml:"max_items"`
	TokenEnv     string   `toml:"token_env" yaml:"token_env"`
	ImagePath    string   `toml:"image_path" yaml:"image_path"`
	PixelSize    int      `toml:"pixel_size" yaml:"pixel_size"`
	ArchiveQuery string   `toml:"archive_query" yaml:"archive_query"`
	BridgeCmd    string   `toml:"bridge_cmd" yaml:"bridge_cmd"`
	Species      string   `toml:"species" yaml:"species"`
}

// ID returns the stable widget identifier derived from type and declared
// cell, e.g. "clock-0-2". Two specs at the same cell share an ID prefix
// only if they share a type; uniqueness across the session comes from the
// duplicate-cell tie-break in pkg/layout.
func (s WidgetSpec) ID() string {
	return s.Type + "-" + strconv.Itoa(s.Row) + "-" + strconv.Itoa(s.Col)
}

// RefreshOr returns the spec's refresh override, or def when unset.
func (s WidgetSpec) RefreshOr(def time.Duration) time.Duration {
	if s.Refresh.Duration > 0 {
		return s.Refresh.Duration
	}
	return def
}
