// Package companion implements the persistent virtual-pet state machine:
// leveling, skills, and the derived outfit and mood views. The persisted
// state is exactly {species, level, xp, skill points, owned skills, last
// interaction}; outfits and mood are always recomputed so they can never
// desynchronize from level across a save/load boundary.
package companion

import (
	"sort"
	"time"
)

// Species is the pet's kind. The set is closed; unknown strings from a
// save or config fall back to SpeciesCat.
type Species string

const (
	SpeciesCat     Species = "cat"
	SpeciesDog     Species = "dog"
	SpeciesFox     Species = "fox"
	SpeciesRabbit  Species = "rabbit"
	SpeciesOwl     Species = "owl"
	SpeciesDragon  Species = "dragon"
	SpeciesPenguin Species = "penguin"
	SpeciesAxolotl Species = "axolotl"
	SpeciesHamster Species = "hamster"
	SpeciesTurtle  Species = "turtle"
)

// AllSpecies lists every valid species.
var AllSpecies = []Species{
	SpeciesCat, SpeciesDog, SpeciesFox, SpeciesRabbit, SpeciesOwl,
	SpeciesDragon, SpeciesPenguin, SpeciesAxolotl, SpeciesHamster,
	SpeciesTurtle,
}

// Valid reports whether s is one of the enumerated species.
func (s Species) Valid() bool {
	for _, v := range AllSpecies {
		if s == v {
			return true
		}
	}
	return false
}

// Companion is the persisted pet state. Invariants:
//   - Level >= 1 and monotonic non-decreasing over the pet's lifetime
//   - 0 <= XP < Threshold(Level); overflow converts to level-ups
//   - SkillPoints >= 0
//   - Skills contains each skill id at most once, sorted
type Companion struct {
	Species         Species   `json:"species"`
	Level           int       `json:"level"`
	XP              int       `json:"xp"`
	SkillPoints     int       `json:"skill_points"`
	Skills          []string  `json:"skills"`
	LastInteraction time.Time `json:"last_interaction"`
}

// New returns a fresh level-1 companion of the given species. Unknown
// species fall back to cat.
func New(species Species, now time.Time) Companion {
	if !species.Valid() {
		species = SpeciesCat
	}
	return Companion{
		Species:         species,
		Level:           1,
		LastInteraction: now,
	}
}

// HasSkill reports whether the companion owns the given skill.
func (c Companion) HasSkill(id string) bool {
	for _, s := range c.Skills {
		if s == id {
			return true
		}
	}
	return false
}

// Equal reports whether two companions carry identical persisted state.
func (c Companion) Equal(other Companion) bool {
	if c.Species != other.Species || c.Level != other.Level ||
		c.XP != other.XP || c.SkillPoints != other.SkillPoints ||
		!c.LastInteraction.Equal(other.LastInteraction) {
		return false
	}
	if len(c.Skills) != len(other.Skills) {
		return false
	}
	for i := range c.Skills {
		if c.Skills[i] != other.Skills[i] {
			return false
		}
	}
	return true
}

// clone returns a deep copy so callers cannot alias the skill slice.
func (c Companion) clone() Companion {
	out := c
	out.Skills = append([]string(nil), c.Skills...)
	return out
}

// valid reports whether c satisfies the persisted-state invariants. A
// loaded save failing this check is treated as corrupt.
func (c Companion) valid() bool {
	if !c.Species.Valid() {
		return false
	}
	if c.Level < 1 || c.XP < 0 || c.SkillPoints < 0 {
		return false
	}
	if c.XP >= Threshold(c.Level) {
		return false
	}
	seen := map[string]bool{}
	for _, s := range c.Skills {
		if seen[s] {
			return false
		}
		seen[s] = true
	}
	return true
}

// normalize sorts the skill list so persisted state is deterministic.
func (c *Companion) normalize() {
	sort.Strings(c.Skills)
}

// Threshold returns the XP required to advance from the given level to
// the next. Deterministic and strictly increasing in level, which is
// all the leveling invariants require of the curve.
func Threshold(level int) int {
	if level < 1 {
		level = 1
	}
	return 100 + 50*(level-1)
}

// Mood is the derived freshness band of the pet's last interaction.
type Mood string

const (
	MoodHappy   Mood = "happy"   // interacted within the last 5 minutes
	MoodContent Mood = "content" // within 30 minutes
	MoodBored   Mood = "bored"   // within 2 hours
	MoodLonely  Mood = "lonely"  // longer ago
)

// MoodAt computes the mood purely from (now - LastInteraction). Never
// stored; recomputed on render.
func (c Companion) MoodAt(now time.Time) Mood {
	since := now.Sub(c.LastInteraction)
	switch {
	case since < 5*time.Minute:
		return MoodHappy
	case since < 30*time.Minute:
		return MoodContent
	case since < 2*time.Hour:
		return MoodBored
	default:
		return MoodLonely
	}
}
