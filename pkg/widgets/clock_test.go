package widgets

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/feedtui/pkg/app"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStopwatchLifecycle(t *testing.T) {
	var sw Stopwatch
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	if sw.Running() || sw.Elapsed(t0) != 0 {
		t.Fatal("fresh stopwatch not zeroed")
	}

	sw.Toggle(t0) // start
	if !sw.Running() {
		t.Fatal("not running after start")
	}
	if got := sw.Elapsed(t0.Add(3 * time.Second)); got != 3*time.Second {
		t.Errorf("elapsed while running = %v, want 3s", got)
	}

	sw.Toggle(t0.Add(5 * time.Second)) // pause at 5s
	if sw.Running() {
		t.Fatal("still running after pause")
	}
	if got := sw.Elapsed(t0.Add(time.Hour)); got != 5*time.Second {
		t.Errorf("paused elapsed = %v, want 5s frozen", got)
	}

	sw.Toggle(t0.Add(10 * time.Second)) // resume
	if got := sw.Elapsed(t0.Add(12 * time.Second)); got != 7*time.Second {
		t.Errorf("resumed elapsed = %v, want 7s", got)
	}

	sw.Reset()
	if sw.Running() || sw.Elapsed(t0) != 0 {
		t.Error("reset did not zero the stopwatch")
	}
}

func TestClockKeysDriveStopwatch(t *testing.T) {
	w := NewClockWidget("clock-0-0", "", nil)
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	w.Update(app.TickEvent{Time: now})

	if _, consumed := w.HandleKey(runeKey("s")); !consumed {
		t.Fatal("s not consumed")
	}
	if !w.stopwatch.Running() {
		t.Fatal("s did not start the stopwatch")
	}

	w.Update(app.TickEvent{Time: now.Add(90 * time.Second)})
	if _, consumed := w.HandleKey(runeKey("r")); !consumed {
		t.Fatal("r not consumed")
	}
	if w.stopwatch.Elapsed(now.Add(2*time.Minute)) != 0 {
		t.Error("r did not reset the stopwatch")
	}

	if _, consumed := w.HandleKey(runeKey("x")); consumed {
		t.Error("unbound key consumed")
	}
}

func TestClockSkipsBadTimezones(t *testing.T) {
	w := NewClockWidget("clock-0-0", "", []string{"UTC", "Not/AZone"})
	// Local plus UTC; the bad zone is dropped.
	if len(w.zones) != 2 {
		t.Fatalf("zones = %d, want 2", len(w.zones))
	}
}

func TestClockViewShowsZonesAndStopwatch(t *testing.T) {
	w := NewClockWidget("clock-0-0", "", []string{"UTC"})
	w.Update(app.TickEvent{Time: time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)})

	out := w.View(30, 4)
	if !strings.Contains(out, "UTC") {
		t.Error("zone name missing from view")
	}
	if !strings.Contains(out, "⏱") {
		t.Error("stopwatch line missing from view")
	}
}
