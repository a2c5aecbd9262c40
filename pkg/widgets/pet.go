package widgets

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/feedtui/pkg/app"
	"gitlab.com/tinyland/lab/feedtui/pkg/companion"
	"gitlab.com/tinyland/lab/feedtui/pkg/components"
	"gitlab.com/tinyland/lab/feedtui/pkg/theme"
)

// petMenu is the pet widget's transient UI substate. Menu state lives
// only here; nothing about it is persisted.
type petMenu int

const (
	petIdle petMenu = iota
	petSkillMenu
	petOutfitMenu
)

// sprites maps each species to its two-line face.
var sprites = map[companion.Species][]string{
	companion.SpeciesCat:     {" /\\_/\\", "( o.o )"},
	companion.SpeciesDog:     {" /^ ^\\", "( ´˘` )"},
	companion.SpeciesFox:     {" /\\·/\\", "( >ᴥ< )"},
	companion.SpeciesRabbit:  {" (\\_/)", "( •ㅅ• )"},
	companion.SpeciesOwl:     {" ,___,", "( o,o )"},
	companion.SpeciesDragon:  {" ^===^", "( Ò∀Ó )"},
	companion.SpeciesPenguin: {"  (o_ ", "  //\\ "},
	companion.SpeciesAxolotl: {" ~v~v~", "( ˙▾˙ )"},
	companion.SpeciesHamster: {" (\\,/)", "( ･ω･ )"},
	companion.SpeciesTurtle:  {" _____", "(  º_º)"},
}

// PetWidget renders the companion: sprite, level, XP progress, mood,
// and the skill and outfit menus. The engine itself is shared with the
// root model, which routes usage XP into it.
type PetWidget struct {
	id       string
	title    string
	engine   *companion.Engine
	menu     petMenu
	selected int
	notice   string
	now      time.Time
}

func NewPetWidget(id, title string, engine *companion.Engine) *PetWidget {
	if title == "" {
		title = "Pet"
	}
	return &PetWidget{id: id, title: title, engine: engine, now: time.Now()}
}

func (w *PetWidget) ID() string          { return w.id }
func (w *PetWidget) Title() string       { return w.title }
func (w *PetWidget) MinSize() (int, int) { return 22, 6 }

func (w *PetWidget) Capturing() bool { return w.menu != petIdle }

func (w *PetWidget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case app.TickEvent:
		w.now = msg.Time
	case app.CompanionChangedEvent:
		// State is read fresh on every View; nothing to cache.
	}
	return nil
}

func (w *PetWidget) HandleKey(key tea.KeyMsg) (tea.Cmd, bool) {
	if w.menu != petIdle {
		return w.handleMenuKey(key), true
	}

	switch key.String() {
	case "s":
		w.menu = petSkillMenu
		w.selected = 0
		w.notice = ""
		return nil, true
	case "o":
		w.menu = petOutfitMenu
		w.selected = 0
		w.notice = ""
		return nil, true
	case "p":
		// A pat: pure affection, refreshes mood.
		w.engine.Touch(w.now)
		return nil, true
	}
	return nil, false
}

func (w *PetWidget) handleMenuKey(key tea.KeyMsg) tea.Cmd {
	n := len(companion.SkillCatalog)
	if w.menu == petOutfitMenu {
		n = len(companion.OutfitCatalog)
	}
	switch key.String() {
	case "esc", "q":
		w.menu = petIdle
		w.notice = ""
	case "j", "down":
		w.selected = components.ClampIndex(w.selected+1, n)
	case "k", "up":
		w.selected = components.ClampIndex(w.selected-1, n)
	case "enter":
		if w.menu != petSkillMenu || n == 0 {
			return nil
		}
		def := companion.SkillCatalog[w.selected]
		switch err := w.engine.Purchase(def.ID); {
		case err == nil:
			w.notice = "learned " + def.Name
			// A purchase must reach disk promptly, not wait out the
			// periodic flush window.
			return func() tea.Msg { return app.CompanionChangedEvent{} }
		case errors.Is(err, companion.ErrAlreadyOwned):
			w.notice = "already learned"
		case errors.Is(err, companion.ErrInsufficientPoints):
			w.notice = "not enough points"
		default:
			w.notice = err.Error()
		}
	}
	return nil
}

func (w *PetWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	switch w.menu {
	case petSkillMenu:
		return w.viewSkillMenu(width, height)
	case petOutfitMenu:
		return w.viewOutfitMenu(width, height)
	}
	return w.viewIdle(width, height)
}

func (w *PetWidget) viewIdle(width, height int) string {
	t := theme.Current
	c := w.engine.Snapshot()

	body := lipgloss.NewStyle().Foreground(lipgloss.Color(t.PetBody))
	level := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.PetLevel))
	mood := lipgloss.NewStyle().Foreground(lipgloss.Color(t.PetMood))
	xp := lipgloss.NewStyle().Foreground(lipgloss.Color(t.PetXP))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dim))

	var lines []string
	for _, row := range sprites[c.Species] {
		lines = append(lines, body.Render(row))
	}
	lines = append(lines, level.Render(fmt.Sprintf("%s · Lv %d", c.Species, c.Level)))

	need := companion.Threshold(c.Level)
	barW := width - 14
	if barW < 4 {
		barW = 4
	}
	lines = append(lines, xp.Render(fmt.Sprintf("%s %d/%d",
		components.Bar(float64(c.XP)/float64(need), barW), c.XP, need)))
	lines = append(lines, mood.Render("mood: "+string(w.engine.Mood(w.now))))
	if c.SkillPoints > 0 {
		lines = append(lines, dim.Render(fmt.Sprintf("%d skill point(s) · s to spend", c.SkillPoints)))
	} else {
		lines = append(lines, dim.Render("s skills · o outfits · p pat"))
	}

	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += components.Truncate(l, width)
	}
	return components.FitBlock(out, width, height)
}

func (w *PetWidget) viewSkillMenu(width, height int) string {
	t := theme.Current
	c := w.engine.Snapshot()

	head := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.PetMenu)).
		Render(fmt.Sprintf("Skills · %d pts (enter to learn, esc to close)", c.SkillPoints))

	rows := make([]string, len(companion.SkillCatalog))
	for i, def := range companion.SkillCatalog {
		mark := " "
		if c.HasSkill(def.ID) {
			mark = "✓"
		}
		rows[i] = fmt.Sprintf("%s %-12s %dpt  %s", mark, def.Name, def.Cost, skillBlurb(def))
	}

	body := height - 1
	if w.notice != "" && height > 2 {
		body--
	}
	if body < 1 {
		body = 1
	}
	out := head + "\n" + components.RenderList(rows, w.selected, width, body,
		components.ListStyle{SelectedFG: t.PetMenu, Marker: "> "})
	if w.notice != "" && height > 2 {
		out += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color(t.StatusWarn)).
			Render(components.Truncate(w.notice, width))
	}
	return components.FitBlock(out, width, height)
}

func (w *PetWidget) viewOutfitMenu(width, height int) string {
	t := theme.Current
	c := w.engine.Snapshot()

	head := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.PetMenu)).
		Render("Outfits (esc to close)")

	rows := make([]string, len(companion.OutfitCatalog))
	for i, o := range companion.OutfitCatalog {
		if o.MinLevel <= c.Level {
			rows[i] = fmt.Sprintf("✓ %-16s Lv %d", o.Name, o.MinLevel)
		} else {
			rows[i] = fmt.Sprintf("  %-16s Lv %d (locked)", o.Name, o.MinLevel)
		}
	}

	body := height - 1
	if body < 1 {
		body = 1
	}
	out := head + "\n" + components.RenderList(rows, w.selected, width, body,
		components.ListStyle{SelectedFG: t.PetMenu, Marker: "> "})
	return components.FitBlock(out, width, height)
}

// skillBlurb is the one-phrase effect description shown in the menu.
func skillBlurb(def companion.SkillDef) string {
	switch def.Effect {
	case companion.EffectXPBoost:
		return fmt.Sprintf("+%d%% xp", def.Value)
	case companion.EffectRefreshBoost:
		return fmt.Sprintf("+%d%% refresh speed", def.Value)
	default:
		return "cosmetic"
	}
}
