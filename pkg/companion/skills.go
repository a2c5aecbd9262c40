package companion

// EffectKind classifies what a skill does.
type EffectKind int

const (
	// EffectXPBoost adds Value percent to every XP grant.
	EffectXPBoost EffectKind = iota
	// EffectRefreshBoost speeds widget refresh cadence by Value percent.
	EffectRefreshBoost
	// EffectCosmetic has no mechanical effect.
	EffectCosmetic
)

// SkillDef describes one purchasable skill.
type SkillDef struct {
	ID     string
	Name   string
	Cost   int
	Effect EffectKind
	Value  int // percent, meaning depends on Effect
}

// SkillCatalog is the fixed set of purchasable skills, in menu order.
var SkillCatalog = []SkillDef{
	{ID: "quick-study", Name: "Quick Study", Cost: 1, Effect: EffectXPBoost, Value: 10},
	{ID: "scholar", Name: "Scholar", Cost: 3, Effect: EffectXPBoost, Value: 25},
	{ID: "overclock", Name: "Overclock", Cost: 2, Effect: EffectRefreshBoost, Value: 25},
	{ID: "turbo", Name: "Turbo", Cost: 4, Effect: EffectRefreshBoost, Value: 50},
	{ID: "sparkle", Name: "Sparkle", Cost: 1, Effect: EffectCosmetic, Value: 0},
	{ID: "party-trick", Name: "Party Trick", Cost: 2, Effect: EffectCosmetic, Value: 0},
}

// SkillByID looks up a skill definition.
func SkillByID(id string) (SkillDef, bool) {
	for _, s := range SkillCatalog {
		if s.ID == id {
			return s, true
		}
	}
	return SkillDef{}, false
}

// Outfit is one cosmetic unlock gated by level.
type Outfit struct {
	ID       string
	Name     string
	MinLevel int
}

// OutfitCatalog is the fixed level→outfit table, ascending by MinLevel.
// The outfit set is always derived from it; an entry is unlocked iff
// MinLevel <= current level.
var OutfitCatalog = []Outfit{
	{ID: "base", Name: "Base", MinLevel: 1},
	{ID: "scarf", Name: "Cozy Scarf", MinLevel: 3},
	{ID: "beret", Name: "Beret", MinLevel: 5},
	{ID: "glasses", Name: "Reading Glasses", MinLevel: 8},
	{ID: "cape", Name: "Hero Cape", MinLevel: 12},
	{ID: "wings", Name: "Tiny Wings", MinLevel: 16},
	{ID: "crown", Name: "Crown", MinLevel: 20},
}

// MaxDefinedLevel is the highest level referenced by any outfit
// threshold. Leveling continues past it; it only bounds cosmetics.
func MaxDefinedLevel() int {
	max := 1
	for _, o := range OutfitCatalog {
		if o.MinLevel > max {
			max = o.MinLevel
		}
	}
	return max
}

// UnlockedOutfits recomputes the outfit set for the given level. Never
// cached: equality with {outfits: MinLevel <= level} holds at every
// instant, including immediately after loading an older save.
func UnlockedOutfits(level int) []Outfit {
	var out []Outfit
	for _, o := range OutfitCatalog {
		if o.MinLevel <= level {
			out = append(out, o)
		}
	}
	return out
}
