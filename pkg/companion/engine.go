package companion

import (
	"errors"
	"sync"
	"time"
)

// XP grant events and their base amounts.
const (
	XPKeypress      = 1
	XPFeedInteract  = 3
	XPManualRefresh = 5
)

var (
	// ErrUnknownSkill is returned for a purchase of an ID not in the catalog.
	ErrUnknownSkill = errors.New("companion: unknown skill")
	// ErrAlreadyOwned is returned when the skill was purchased before.
	ErrAlreadyOwned = errors.New("companion: skill already owned")
	// ErrInsufficientPoints is returned when the cost exceeds available points.
	ErrInsufficientPoints = errors.New("companion: not enough skill points")
)

// Engine owns the live companion state and applies progression rules.
// All methods are safe for concurrent use. State mutations set a dirty
// flag; the caller persists via Snapshot/ClearDirty on its own cadence.
type Engine struct {
	mu    sync.Mutex
	c     Companion
	dirty bool
}

// NewEngine wraps an existing companion, typically from Load.
func NewEngine(c Companion) *Engine {
	c.normalize()
	return &Engine{c: c}
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Companion {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.c.clone()
}

// Dirty reports whether state changed since the last ClearDirty.
func (e *Engine) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// ClearDirty marks the current state as persisted.
func (e *Engine) ClearDirty() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dirty = false
}

// Grant awards base XP scaled by any owned XP-boost skills, then
// applies level-ups. A single large grant can cross several thresholds;
// each level gained awards one skill point and the remainder carries
// into the new level. Returns the number of levels gained.
func (e *Engine) Grant(base int, now time.Time) int {
	if base <= 0 {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	amount := base * (100 + e.xpBoostLocked()) / 100
	e.c.XP += amount
	levels := 0
	for e.c.XP >= Threshold(e.c.Level) {
		e.c.XP -= Threshold(e.c.Level)
		e.c.Level++
		e.c.SkillPoints++
		levels++
	}
	e.c.LastInteraction = now
	e.dirty = true
	return levels
}

// Touch records an interaction without granting XP, so mood reflects
// attention even when the action carries no reward.
func (e *Engine) Touch(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.c.LastInteraction = now
	e.dirty = true
}

// Purchase spends skill points on a catalog skill. On any error the
// state is unchanged: points are deducted and the skill recorded in
// one step, never separately.
func (e *Engine) Purchase(id string) error {
	def, ok := SkillByID(id)
	if !ok {
		return ErrUnknownSkill
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.c.HasSkill(id) {
		return ErrAlreadyOwned
	}
	if e.c.SkillPoints < def.Cost {
		return ErrInsufficientPoints
	}
	e.c.SkillPoints -= def.Cost
	e.c.Skills = append(e.c.Skills, id)
	e.c.normalize()
	e.dirty = true
	return nil
}

// XPBoostPercent sums the XP-boost of all owned skills.
func (e *Engine) XPBoostPercent() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.xpBoostLocked()
}

func (e *Engine) xpBoostLocked() int {
	total := 0
	for _, id := range e.c.Skills {
		if def, ok := SkillByID(id); ok && def.Effect == EffectXPBoost {
			total += def.Value
		}
	}
	return total
}

// RefreshFactor returns the speed factor for the scheduler hook: 1.0
// with no refresh skills, larger as boosts accumulate (the scheduler
// divides each interval by it).
func (e *Engine) RefreshFactor() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	pct := 0
	for _, id := range e.c.Skills {
		if def, ok := SkillByID(id); ok && def.Effect == EffectRefreshBoost {
			pct += def.Value
		}
	}
	return float64(100+pct) / 100.0
}

// Outfits returns the outfit set derived from the current level.
func (e *Engine) Outfits() []Outfit {
	e.mu.Lock()
	defer e.mu.Unlock()
	return UnlockedOutfits(e.c.Level)
}

// Mood derives the current mood from time since last interaction.
func (e *Engine) Mood(now time.Time) Mood {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.c.MoodAt(now)
}
