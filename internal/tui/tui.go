// Package tui is an interactive terminal editor built on bubbletea.
//
// Keys:
//
//	arrows / hjkl   move the cursor (drags while the pen is down)
//	space           press: put the pen down or apply bucket/eyedropper
//	                again: lift the pen
//	b e f i         brush, eraser, fill bucket, eyedropper
//	u               undo
//	c               clear
//	+ -             zoom
//	s               export PNG
//	q               quit
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mcmodkit/texel"
	"github.com/mcmodkit/texel/internal/termview"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#79e68a"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a0a0a0"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b"))
	helpText    = "arrows move · space draw · b/e/f/i tools · u undo · c clear · +/- zoom · s save · q quit"
)

// Model is the bubbletea model wrapping one editor.
type Model struct {
	ed        *texel.Editor
	exportDir string

	x, y    int
	message string
	failed  bool
}

// New returns a model editing ed. Exports are written to exportDir.
func New(ed *texel.Editor, exportDir string) Model {
	return Model{ed: ed, exportDir: exportDir}
}

// Editor returns the edited session.
func (m Model) Editor() *texel.Editor {
	return m.ed
}

// Cursor returns the cursor cell.
func (m Model) Cursor() (x, y int) {
	return m.x, m.y
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.ed.GestureLeave()
		return m, tea.Quit

	case "up", "k":
		m.move(0, -1)
	case "down", "j":
		m.move(0, 1)
	case "left", "h":
		m.move(-1, 0)
	case "right", "l":
		m.move(1, 0)

	case " ", "enter":
		m.press()

	case "b":
		m.selectTool(texel.Brush)
	case "e":
		m.selectTool(texel.Eraser)
	case "f":
		m.selectTool(texel.Bucket)
	case "i":
		m.selectTool(texel.Eyedropper)

	case "u":
		m.ed.GestureEnd()
		if m.ed.Undo() {
			m.say("undone")
		} else {
			m.say("nothing to undo")
		}
	case "c":
		m.ed.Clear()
		m.say("cleared")

	case "+", "=":
		m.ed.ZoomIn()
	case "-", "_":
		m.ed.ZoomOut()

	case "s":
		m.ed.GestureEnd()
		path, err := m.ed.ExportFile(m.exportDir, texel.PNG)
		if err != nil {
			m.fail(err)
		} else {
			m.say("saved " + path)
		}
	}
	return m, nil
}

func (m *Model) move(dx, dy int) {
	n := m.ed.Size()
	m.x = min(max(m.x+dx, 0), n-1)
	m.y = min(max(m.y+dy, 0), n-1)
	m.ed.GestureMove(m.x, m.y)
}

func (m *Model) press() {
	if m.ed.Drawing() {
		m.ed.GestureEnd()
		m.say("pen up")
		return
	}
	tool := m.ed.Tool()
	m.ed.GestureStart(m.x, m.y)
	if tool == texel.Brush || tool == texel.Eraser {
		m.say("pen down")
		return
	}
	m.ed.GestureEnd()
	m.say(strings.ToLower(tool.Label()))
}

func (m *Model) selectTool(t texel.Tool) {
	m.ed.GestureEnd()
	m.ed.SelectTool(t)
	m.say(t.Label())
}

func (m *Model) say(s string) {
	m.message, m.failed = s, false
}

func (m *Model) fail(err error) {
	m.message, m.failed = err.Error(), true
}

// View implements tea.Model.
func (m Model) View() string {
	ed := m.ed
	n := ed.Size()

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("texel %dx%d", n, n)))
	sb.WriteString("\n\n")
	sb.WriteString(termview.Render(ed.Raster(),
		termview.WithScale(termview.ScaleForZoom(ed.Viewport().Zoom())),
		termview.WithCursor(m.x, m.y)))
	sb.WriteString("\n\n")

	pen := "up"
	if ed.Drawing() {
		pen = "down"
	}
	sb.WriteString(statusStyle.Render(fmt.Sprintf("%s  %s  zoom %s  (%d, %d)  pen %s  history %d/%d",
		ed.Tool().Label(), ed.Color().Preview(), ed.Viewport().Label(), m.x, m.y, pen,
		ed.HistoryCursor()+1, ed.HistoryLen())))
	sb.WriteString("\n")

	if m.message != "" {
		if m.failed {
			sb.WriteString(errorStyle.Render(m.message))
		} else {
			sb.WriteString(m.message)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(statusStyle.Render(helpText))
	return sb.String()
}

// Run starts the interactive program and blocks until the user quits.
func Run(ed *texel.Editor, exportDir string) error {
	_, err := tea.NewProgram(New(ed, exportDir), tea.WithAltScreen()).Run()
	return err
}
