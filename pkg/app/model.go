package app

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/feedtui/pkg/companion"
	"gitlab.com/tinyland/lab/feedtui/pkg/layout"
	"gitlab.com/tinyland/lab/feedtui/pkg/schedule"
)

// Options wires the root model to its collaborators. Everything here is
// built in main before the program starts.
type Options struct {
	Widgets    []Widget
	Placements []layout.Placement

	Scheduler *schedule.Scheduler
	Engine    *companion.Engine

	// SavePath is where dirty companion state is flushed.
	SavePath string

	// TickInterval drives the render ticker. FlushInterval debounces
	// companion saves.
	TickInterval  time.Duration
	FlushInterval time.Duration

	// Warnings are config problems surfaced in the status bar.
	Warnings []string

	Logger *slog.Logger
}

// Model is the bubbletea root model: it owns focus, layout, key
// dispatch, the scheduler inbox, and companion XP routing. All widget
// state mutation happens here, on the single update goroutine.
type Model struct {
	widgets map[string]Widget
	order   []string // focusable widgets in declaration order

	placements []layout.Placement
	grid       layout.Grid
	width      int
	height     int

	focused  string
	showHelp bool

	sched  *schedule.Scheduler
	engine *companion.Engine

	// appliedSeq records the newest sequence number applied per widget;
	// older results are discarded.
	appliedSeq map[string]uint64

	savePath      string
	flushInterval time.Duration
	lastFlush     time.Time

	tickInterval time.Duration
	warnings     []string
	logger       *slog.Logger
}

// New builds the root model. Widgets dropped by the duplicate-cell
// tie-break are excluded from focus order and never rendered.
func New(opts Options) *Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	m := &Model{
		widgets:       map[string]Widget{},
		placements:    opts.Placements,
		sched:         opts.Scheduler,
		engine:        opts.Engine,
		appliedSeq:    map[string]uint64{},
		savePath:      opts.SavePath,
		flushInterval: opts.FlushInterval,
		lastFlush:     time.Now(),
		tickInterval:  opts.TickInterval,
		warnings:      opts.Warnings,
		logger:        opts.Logger,
	}

	// Resolve duplicate placements once against a probe area, so focus
	// order matches what will be rendered.
	probe := layout.Compute(opts.Placements, layout.Rect{Width: 80, Height: 24})
	dropped := map[string]bool{}
	for _, id := range probe.Dropped {
		dropped[id] = true
		m.logger.Warn("widget dropped, duplicate grid position", "widget", id)
	}

	for _, w := range opts.Widgets {
		m.widgets[w.ID()] = w
		if !dropped[w.ID()] {
			m.order = append(m.order, w.ID())
		}
	}
	if len(m.order) > 0 {
		m.focused = m.order[0]
	}
	return m
}

// Init starts the render ticker and the scheduler inbox listener.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd(m.tickInterval)}
	if m.sched != nil {
		cmds = append(cmds, m.listenResults())
	}
	return tea.Batch(cmds...)
}

// listenResults blocks on the scheduler's result channel and surfaces
// the next result as a DataUpdateEvent. Update re-issues it after each
// delivery, so exactly one listener is outstanding at a time.
func (m *Model) listenResults() tea.Cmd {
	ch := m.sched.Results()
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return nil
		}
		return DataUpdateEvent{
			WidgetID:  res.WidgetID,
			Seq:       res.Seq,
			Data:      res.Payload,
			Err:       res.Err,
			Timestamp: res.Timestamp,
		}
	}
}

// Update is the single state-mutation point for the whole UI.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.recomputeLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case TickEvent:
		cmds := []tea.Cmd{TickCmd(m.tickInterval)}
		for _, w := range m.widgets {
			if cmd := w.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		m.maybeFlush(msg.Time, false)
		return m, tea.Batch(cmds...)

	case DataUpdateEvent:
		cmds := []tea.Cmd{m.listenResults()}
		if cmd := m.applyResult(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case FeedInteractEvent:
		m.grantXP(companion.XPFeedInteract)
		return m, nil

	case CompanionChangedEvent:
		m.maybeFlush(time.Now(), true)
		return m, nil
	}
	return m, nil
}

// applyResult forwards a refresh result to its widget unless a newer
// result was already applied.
func (m *Model) applyResult(msg DataUpdateEvent) tea.Cmd {
	w, ok := m.widgets[msg.WidgetID]
	if !ok {
		return nil
	}
	if msg.Seq <= m.appliedSeq[msg.WidgetID] {
		m.logger.Debug("discarding stale refresh result",
			"widget", msg.WidgetID, "seq", msg.Seq, "applied", m.appliedSeq[msg.WidgetID])
		return nil
	}
	m.appliedSeq[msg.WidgetID] = msg.Seq
	if msg.Err != nil {
		m.logger.Warn("refresh failed", "widget", msg.WidgetID, "error", msg.Err)
	}
	return w.Update(msg)
}

// handleKey implements the dispatch contract: a modal focused widget
// sees every key first; otherwise global bindings win, then the key
// falls through to the focused widget.
func (m *Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	focused := m.focusedWidget()

	if focused != nil && focused.Capturing() {
		cmd, _ := focused.HandleKey(key)
		m.grantXP(companion.XPKeypress)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "q":
		m.maybeFlush(time.Now(), true)
		return m, tea.Quit

	case "tab":
		m.CycleFocusForward()
		m.grantXP(companion.XPKeypress)
		return m, nil

	case "shift+tab":
		m.CycleFocusBackward()
		m.grantXP(companion.XPKeypress)
		return m, nil

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "r":
		// Manual refresh of the focused widget. Widgets without a
		// refresh unit get the key instead (the clock uses it).
		if focused != nil && m.sched != nil && m.sched.HasUnit(focused.ID()) {
			m.sched.RefreshNow(focused.ID())
			m.grantXP(companion.XPManualRefresh)
			return m, nil
		}
	}

	if m.showHelp {
		// Any unbound key closes the help overlay.
		m.showHelp = false
		return m, nil
	}

	if focused != nil {
		cmd, consumed := focused.HandleKey(key)
		if consumed {
			m.grantXP(companion.XPKeypress)
		}
		return m, cmd
	}
	return m, nil
}

// handleMouse moves focus to the clicked widget.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for _, id := range m.order {
		if zone.Get(id).InBounds(msg) {
			m.FocusWidget(id)
			break
		}
	}
	return m, nil
}

// grantXP routes a usage event to the companion engine and levels up
// with a log line when thresholds are crossed.
func (m *Model) grantXP(base int) {
	if m.engine == nil {
		return
	}
	if gained := m.engine.Grant(base, time.Now()); gained > 0 {
		snap := m.engine.Snapshot()
		m.logger.Info("companion leveled up", "level", snap.Level, "points", snap.SkillPoints)
		m.maybeFlush(time.Now(), true)
	}
}

// maybeFlush persists dirty companion state. Forced flushes (level-up,
// purchase, shutdown) skip the debounce window.
func (m *Model) maybeFlush(now time.Time, force bool) {
	if m.engine == nil || m.savePath == "" || !m.engine.Dirty() {
		return
	}
	if !force && now.Sub(m.lastFlush) < m.flushInterval {
		return
	}
	if err := companion.Save(m.savePath, m.engine.Snapshot()); err != nil {
		m.logger.Warn("companion save failed", "path", m.savePath, "error", err)
		return
	}
	m.engine.ClearDirty()
	m.lastFlush = now
}

// recomputeLayout rebuilds the grid for the current terminal size,
// reserving the bottom line for the status bar.
func (m *Model) recomputeLayout() {
	area := layout.Rect{X: 0, Y: 0, Width: m.width, Height: m.height - 1}
	m.grid = layout.Compute(m.placements, area)
}

func (m *Model) focusedWidget() Widget {
	if m.focused == "" {
		return nil
	}
	return m.widgets[m.focused]
}
