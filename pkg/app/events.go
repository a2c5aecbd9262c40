// Package app provides the Bubbletea application core for feedtui: the
// event types, the widget interface, the root model, and the focus and
// key-dispatch logic that form the Elm-architecture skeleton. Widgets
// live in pkg/widgets and implement the Widget interface defined here.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DataUpdateEvent carries a completed refresh from the scheduler back
// into the bubbletea update loop. Receivers type-assert Data based on
// WidgetID. Seq is the scheduler's per-widget sequence number; the root
// model drops events whose Seq is not newer than the last one applied,
// so a slow fetch can never overwrite fresher data.
type DataUpdateEvent struct {
	WidgetID  string
	Seq       uint64
	Data      any
	Err       error
	Timestamp time.Time
}

// TickEvent is sent on the render ticker cadence. It drives clocks,
// stopwatch displays, mood recomputation, and stale-data indicators.
type TickEvent struct {
	Time time.Time
}

// CompanionChangedEvent signals a durable change to companion state,
// such as a skill purchase. The model flushes the save file on it.
type CompanionChangedEvent struct{}

// FeedInteractEvent is emitted by a widget when the user acts on a feed
// item (opening, selecting, replying). The root model converts it into
// a companion XP grant.
type FeedInteractEvent struct {
	WidgetID string
}

// TickCmd returns a Cmd that delivers a TickEvent after d.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickEvent{Time: t}
	})
}
