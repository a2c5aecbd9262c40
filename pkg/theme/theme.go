// Package theme defines the color palettes used by the feedtui dashboard.
// A theme is a flat struct of hex colors; widgets and the app shell read
// from the active theme rather than hard-coding colors.
package theme

import (
	"sort"
	"sync"
)

// Theme defines the complete color palette for the dashboard.
type Theme struct {
	Name string

	// Base colors
	Background string // hex color e.g. "#1a1b26"
	Foreground string
	Dim        string // de-emphasized text
	Accent     string // highlights, focused borders

	// Widget chrome
	Border      string // unfocused widget borders
	BorderFocus string // focused widget border
	Title       string // widget title text

	// Status colors
	StatusOK    string
	StatusWarn  string
	StatusError string
	StatusStale string // stale-but-available data marker

	// Companion colors
	PetBody  string // the pet's sprite
	PetXP    string // xp bar fill
	PetMood  string // mood line
	PetMenu  string // skill/outfit menu highlight
	PetLevel string // level badge
}

// Current holds the active theme (set via SetCurrent).
var Current Theme

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	registerBuiltins()
	Current = registry["default"]
}

// Get returns a named theme, falling back to the default if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[name]; ok {
		return t
	}
	return registry["default"]
}

// SetCurrent activates the named theme. Unknown names activate the default.
func SetCurrent(name string) {
	t := Get(name)
	mu.Lock()
	Current = t
	mu.Unlock()
}

// Register adds or replaces a theme by name.
func Register(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[t.Name] = t
}

// Names returns a sorted list of registered theme names.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
