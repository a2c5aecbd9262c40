package widgets

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/feedtui/pkg/app"
	"gitlab.com/tinyland/lab/feedtui/pkg/components"
	"gitlab.com/tinyland/lab/feedtui/pkg/feeds"
)

// PixelArtWidget renders a decoded image as colored half-block cells:
// each terminal cell shows two vertically stacked pixels, the upper one
// as the foreground of '▀' and the lower as its background.
type PixelArtWidget struct {
	feedStatus
	id    string
	title string
	img   *feeds.PixelImage
	now   time.Time
}

func NewPixelArtWidget(id, title string) *PixelArtWidget {
	if title == "" {
		title = "Pixel Art"
	}
	return &PixelArtWidget{id: id, title: title, now: time.Now()}
}

func (w *PixelArtWidget) ID() string          { return w.id }
func (w *PixelArtWidget) Title() string       { return w.title }
func (w *PixelArtWidget) MinSize() (int, int) { return 10, 5 }
func (w *PixelArtWidget) Capturing() bool     { return false }

func (w *PixelArtWidget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case app.TickEvent:
		w.now = msg.Time
	case app.DataUpdateEvent:
		if msg.WidgetID != w.id {
			return nil
		}
		if msg.Err != nil {
			w.markErr(msg.Err)
			return nil
		}
		if img, ok := msg.Data.(*feeds.PixelImage); ok && img != nil {
			w.img = img
			w.markOK(msg.Timestamp)
		}
	}
	return nil
}

func (w *PixelArtWidget) HandleKey(tea.KeyMsg) (tea.Cmd, bool) {
	return nil, false
}

func (w *PixelArtWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if w.img == nil {
		if w.lastErr != nil {
			return components.FitBlock(w.footer(width, w.now), width, height)
		}
		return centerMessage("no image", width, height)
	}

	img := w.img
	cols := img.Width
	if cols > width {
		cols = width
	}
	// Two pixel rows per text row.
	rows := (img.Height + 1) / 2
	if rows > height {
		rows = height
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := img.At(col, row*2)
			bottom := img.At(col, row*2+1)
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(top))).
				Background(lipgloss.Color(hexColor(bottom)))
			b.WriteString(style.Render("▀"))
		}
		if row < rows-1 {
			b.WriteByte('\n')
		}
	}
	return components.CenterBlock(b.String(), width, height)
}

// hexColor formats an RGB triple as a lipgloss hex color string.
func hexColor(rgb [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}
