package companion

import (
	"errors"
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	now := time.Now()
	c := New(SpeciesFox, now)
	if c.Species != SpeciesFox {
		t.Errorf("species = %q, want fox", c.Species)
	}
	if c.Level != 1 || c.XP != 0 || c.SkillPoints != 0 {
		t.Errorf("fresh companion = level %d xp %d points %d, want 1/0/0", c.Level, c.XP, c.SkillPoints)
	}
	if len(c.Skills) != 0 {
		t.Errorf("fresh companion owns skills: %v", c.Skills)
	}
	if !c.LastInteraction.Equal(now) {
		t.Errorf("LastInteraction = %v, want %v", c.LastInteraction, now)
	}
}

func TestNewUnknownSpeciesFallsBack(t *testing.T) {
	c := New(Species("gryphon"), time.Now())
	if c.Species != SpeciesCat {
		t.Errorf("species = %q, want cat fallback", c.Species)
	}
}

func TestThreshold(t *testing.T) {
	tests := []struct {
		level, want int
	}{
		{1, 100},
		{2, 150},
		{3, 200},
		{10, 550},
	}
	for _, tt := range tests {
		if got := Threshold(tt.level); got != tt.want {
			t.Errorf("Threshold(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
	for l := 1; l < 50; l++ {
		if Threshold(l+1) <= Threshold(l) {
			t.Fatalf("threshold not strictly increasing at level %d", l)
		}
	}
}

func TestGrantSingleLevelUp(t *testing.T) {
	e := NewEngine(New(SpeciesCat, time.Now()))
	gained := e.Grant(120, time.Now())
	if gained != 1 {
		t.Fatalf("levels gained = %d, want 1", gained)
	}
	c := e.Snapshot()
	if c.Level != 2 || c.XP != 20 || c.SkillPoints != 1 {
		t.Errorf("after grant: level %d xp %d points %d, want 2/20/1", c.Level, c.XP, c.SkillPoints)
	}
}

func TestGrantCrossesMultipleThresholds(t *testing.T) {
	// Level 3 companion 10 XP short of leveling, granted exactly that
	// plus the whole next threshold: two level-ups, zero remainder.
	start := Companion{
		Species:         SpeciesOwl,
		Level:           3,
		XP:              Threshold(3) - 10,
		LastInteraction: time.Now(),
	}
	e := NewEngine(start)
	gained := e.Grant(10+Threshold(4), time.Now())
	if gained != 2 {
		t.Fatalf("levels gained = %d, want 2", gained)
	}
	c := e.Snapshot()
	if c.Level != 5 || c.XP != 0 || c.SkillPoints != 2 {
		t.Errorf("after grant: level %d xp %d points %d, want 5/0/2", c.Level, c.XP, c.SkillPoints)
	}
}

func TestGrantOrderIndependent(t *testing.T) {
	grants := []int{XPKeypress, XPManualRefresh, XPFeedInteract, 120, XPKeypress, 75}
	reversed := make([]int, len(grants))
	for i, g := range grants {
		reversed[len(grants)-1-i] = g
	}

	apply := func(order []int) Companion {
		e := NewEngine(New(SpeciesCat, time.Unix(0, 0)))
		for _, g := range order {
			e.Grant(g, time.Unix(1000, 0))
		}
		return e.Snapshot()
	}

	a, b := apply(grants), apply(reversed)
	if !a.Equal(b) {
		t.Errorf("grant order changed outcome:\n %+v\nvs %+v", a, b)
	}
}

func TestGrantIgnoresNonPositive(t *testing.T) {
	e := NewEngine(New(SpeciesCat, time.Unix(0, 0)))
	if e.Grant(0, time.Now()) != 0 || e.Grant(-5, time.Now()) != 0 {
		t.Error("non-positive grant reported level gain")
	}
	if c := e.Snapshot(); c.XP != 0 {
		t.Errorf("xp = %d after non-positive grants, want 0", c.XP)
	}
}

func TestPurchase(t *testing.T) {
	e := NewEngine(Companion{
		Species:         SpeciesDog,
		Level:           4,
		SkillPoints:     3,
		LastInteraction: time.Now(),
	})

	if err := e.Purchase("quick-study"); err != nil {
		t.Fatalf("Purchase(quick-study) = %v", err)
	}
	c := e.Snapshot()
	if c.SkillPoints != 2 || !c.HasSkill("quick-study") {
		t.Errorf("after purchase: points %d skills %v", c.SkillPoints, c.Skills)
	}

	if err := e.Purchase("quick-study"); !errors.Is(err, ErrAlreadyOwned) {
		t.Errorf("repurchase err = %v, want ErrAlreadyOwned", err)
	}
	if err := e.Purchase("no-such-skill"); !errors.Is(err, ErrUnknownSkill) {
		t.Errorf("unknown skill err = %v, want ErrUnknownSkill", err)
	}
}

func TestPurchaseInsufficientLeavesStateUnchanged(t *testing.T) {
	e := NewEngine(Companion{
		Species:         SpeciesCat,
		Level:           2,
		SkillPoints:     1,
		LastInteraction: time.Now(),
	})
	before := e.Snapshot()

	if err := e.Purchase("turbo"); !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("err = %v, want ErrInsufficientPoints", err)
	}
	after := e.Snapshot()
	if !before.Equal(after) {
		t.Errorf("failed purchase mutated state:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestXPBoostScalesGrants(t *testing.T) {
	e := NewEngine(Companion{
		Species:         SpeciesCat,
		Level:           1,
		Skills:          []string{"quick-study"},
		LastInteraction: time.Now(),
	})
	if got := e.XPBoostPercent(); got != 10 {
		t.Fatalf("XPBoostPercent = %d, want 10", got)
	}
	e.Grant(10, time.Now())
	if c := e.Snapshot(); c.XP != 11 {
		t.Errorf("xp = %d after boosted grant of 10, want 11", c.XP)
	}
}

func TestRefreshFactor(t *testing.T) {
	plain := NewEngine(New(SpeciesCat, time.Now()))
	if got := plain.RefreshFactor(); got != 1.0 {
		t.Errorf("RefreshFactor with no skills = %v, want 1.0", got)
	}

	boosted := NewEngine(Companion{
		Species:         SpeciesCat,
		Level:           3,
		Skills:          []string{"overclock"},
		LastInteraction: time.Now(),
	})
	if got := boosted.RefreshFactor(); got != 1.25 {
		t.Errorf("RefreshFactor with overclock = %v, want 1.25", got)
	}
}

func TestOutfitsDerivedFromLevel(t *testing.T) {
	tests := []struct {
		level, want int
	}{
		{1, 1},
		{2, 1},
		{3, 2},
		{5, 3},
		{20, 7},
		{99, 7},
	}
	for _, tt := range tests {
		if got := len(UnlockedOutfits(tt.level)); got != tt.want {
			t.Errorf("UnlockedOutfits(%d): %d outfits, want %d", tt.level, got, tt.want)
		}
	}
}

func TestOutfitsMatchCatalogAfterStaleLoad(t *testing.T) {
	// A save written before new outfits were added must still unlock
	// everything its level earns, because nothing about outfits is
	// stored.
	e := NewEngine(Companion{
		Species:         SpeciesRabbit,
		Level:           12,
		LastInteraction: time.Now(),
	})
	got := e.Outfits()
	for _, o := range OutfitCatalog {
		unlocked := false
		for _, g := range got {
			if g.ID == o.ID {
				unlocked = true
			}
		}
		if want := o.MinLevel <= 12; unlocked != want {
			t.Errorf("outfit %q unlocked = %v, want %v", o.ID, unlocked, want)
		}
	}
}

func TestMoodBands(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	c := Companion{Species: SpeciesCat, Level: 1, LastInteraction: base}

	tests := []struct {
		elapsed time.Duration
		want    Mood
	}{
		{time.Minute, MoodHappy},
		{5*time.Minute - time.Second, MoodHappy},
		{5 * time.Minute, MoodContent},
		{29 * time.Minute, MoodContent},
		{30 * time.Minute, MoodBored},
		{2*time.Hour - time.Second, MoodBored},
		{2 * time.Hour, MoodLonely},
		{48 * time.Hour, MoodLonely},
	}
	for _, tt := range tests {
		if got := c.MoodAt(base.Add(tt.elapsed)); got != tt.want {
			t.Errorf("MoodAt(+%v) = %q, want %q", tt.elapsed, got, tt.want)
		}
	}
}

func TestDirtyFlag(t *testing.T) {
	e := NewEngine(New(SpeciesCat, time.Now()))
	if e.Dirty() {
		t.Error("fresh engine dirty")
	}
	e.Grant(1, time.Now())
	if !e.Dirty() {
		t.Error("engine clean after grant")
	}
	e.ClearDirty()
	if e.Dirty() {
		t.Error("engine dirty after ClearDirty")
	}
	e.Touch(time.Now())
	if !e.Dirty() {
		t.Error("engine clean after touch")
	}
}
