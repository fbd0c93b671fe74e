package help

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/aniview/internal/tui/styles"
)

// Context is the screen the help panel describes
type Context int

const (
	GlobalContext Context = iota
	LibraryContext
	DetailContext
)

// Shortcut is a key with its description and the screens it applies to
type Shortcut struct {
	Key         string
	Description string
	Context     []Context
}

// Model is the keyboard shortcut panel
type Model struct {
	context      Context
	width        int
	height       int
	visible      bool
	scrollOffset int
}

var allShortcuts = []Shortcut{
	{Key: "q", Description: "Quit", Context: []Context{GlobalContext}},
	{Key: "ctrl+c", Description: "Quit immediately", Context: []Context{GlobalContext}},
	{Key: "?", Description: "Show/hide this help", Context: []Context{GlobalContext}},

	{Key: "↑/↓ or j/k", Description: "Move the cursor", Context: []Context{LibraryContext}},
	{Key: "enter", Description: "Open details", Context: []Context{LibraryContext}},
	{Key: "/", Description: "Filter by title or genre", Context: []Context{LibraryContext}},
	{Key: "esc", Description: "Lock, then clear the filter", Context: []Context{LibraryContext}},
	{Key: "s", Description: "Cycle sort order", Context: []Context{LibraryContext}},
	{Key: "r", Description: "Reload the catalog", Context: []Context{LibraryContext}},

	{Key: "esc/backspace/b", Description: "Back to the catalog", Context: []Context{DetailContext}},
	{Key: "f", Description: "Favorite", Context: []Context{DetailContext}},
	{Key: "p/enter", Description: "Open the link", Context: []Context{DetailContext}},
	{Key: "y", Description: "Copy the link", Context: []Context{DetailContext}},
	{Key: "←/→ or h/l", Description: "Scroll genres", Context: []Context{DetailContext}},
	{Key: "↑/↓ or j/k", Description: "Scroll the page", Context: []Context{DetailContext}},
	{Key: "pgup/pgdn", Description: "Scroll a page", Context: []Context{DetailContext}},
}

// New creates a hidden help panel
func New() Model {
	return Model{context: GlobalContext}
}

// Update handles resizing and, while visible, less-style scrolling
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if !m.visible {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			m.scrollOffset = max(m.scrollOffset-1, 0)
		case "down", "j":
			m.scrollOffset++
		case "pgup", "ctrl+u":
			m.scrollOffset = max(m.scrollOffset-10, 0)
		case "pgdown", "ctrl+d", " ":
			m.scrollOffset += 10
		case "home", "g":
			m.scrollOffset = 0
		case "end", "G":
			m.scrollOffset = 1 << 20 // clamped in View
		}
	}
	return m, nil
}

// View renders the panel centred on screen
func (m Model) View() string {
	if !m.visible || m.width == 0 || m.height == 0 {
		return ""
	}

	var content strings.Builder

	nav := styles.HelpStyle.Render("↑/↓ scroll • g/G top/bottom • esc/? close")
	content.WriteString(lipgloss.NewStyle().Width(56).Align(lipgloss.Center).Render(nav))
	content.WriteString("\n")

	section := func(title string, shortcuts []Shortcut) {
		if len(shortcuts) == 0 {
			return
		}
		content.WriteString("\n" + styles.ListTitleSelectedStyle.Render(title) + "\n")
		for _, sc := range shortcuts {
			content.WriteString(renderShortcutLine(sc) + "\n")
		}
	}
	section("General", forContext(GlobalContext))
	if name := contextName(m.context); name != "" {
		section(name, forContext(m.context))
	}

	lines := strings.Split(strings.TrimRight(content.String(), "\n"), "\n")

	available := max(m.height-6, 5)
	maxOffset := max(len(lines)-available, 0)
	offset := min(m.scrollOffset, maxOffset)
	end := min(offset+available, len(lines))

	title := "KEYBOARD SHORTCUTS"
	if len(lines) > available {
		title += fmt.Sprintf(" (%d-%d/%d)", offset+1, end, len(lines))
	}

	boxWidth := 60
	if m.width < boxWidth+4 {
		boxWidth = max(m.width-4, 30)
	}

	titleBar := lipgloss.NewStyle().
		Foreground(styles.OxocarbonWhite).
		Background(styles.OxocarbonPurple).
		Padding(0, 2).
		Bold(true).
		Width(boxWidth - 4).
		Align(lipgloss.Center).
		Render(title)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OxocarbonPurple).
		Padding(0, 2).
		Width(boxWidth).
		Render(titleBar + "\n\n" + strings.Join(lines[offset:end], "\n"))

	if lipgloss.Height(box) >= m.height {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// SetContext picks the screen whose shortcuts are listed
func (m *Model) SetContext(ctx Context) {
	m.context = ctx
}

// Show opens the panel at the top
func (m *Model) Show() {
	m.visible = true
	m.scrollOffset = 0
}

// Hide closes the panel
func (m *Model) Hide() {
	m.visible = false
	m.scrollOffset = 0
}

// IsVisible reports whether the panel is open
func (m Model) IsVisible() bool {
	return m.visible
}

func renderShortcutLine(sc Shortcut) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.OxocarbonPurple).
		Bold(true).
		Width(18)

	return "  " + keyStyle.Render(sc.Key) + styles.SynopsisStyle.Render(sc.Description)
}

func contextName(ctx Context) string {
	switch ctx {
	case LibraryContext:
		return "Catalog"
	case DetailContext:
		return "Details"
	default:
		return ""
	}
}

// forContext returns the shortcuts listed for exactly ctx
func forContext(ctx Context) []Shortcut {
	var out []Shortcut
	for _, sc := range allShortcuts {
		for _, c := range sc.Context {
			if c == ctx {
				out = append(out, sc)
				break
			}
		}
	}
	return out
}
