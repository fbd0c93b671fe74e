// Package library is the root screen: the list of catalog entries the user
// can open.
package library

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/justchokingaround/aniview/internal/anime"
	"github.com/justchokingaround/aniview/internal/catalog"
	"github.com/justchokingaround/aniview/internal/tui/common"
	"github.com/justchokingaround/aniview/internal/tui/nav"
	"github.com/justchokingaround/aniview/internal/tui/styles"
	"github.com/justchokingaround/aniview/internal/tui/utils"
)

// Source is the part of the catalog service the list reads from
type Source interface {
	List(filter catalog.FilterOptions) ([]catalog.Item, error)
	SetLastViewed(malID int) error
}

// Selection receives the record the user opens
type Selection interface {
	Select(rec anime.Record)
}

// Options are the collaborators of the list
type Options struct {
	Source    Source
	Selection Selection
	Navigator nav.Navigator
	Logger    *slog.Logger
	// Now is used for the "added" column
	Now func() time.Time
}

// LoadedMsg carries the result of a catalog load
type LoadedMsg struct {
	Items []catalog.Item
	Err   error
}

var sortOrders = []catalog.SortOrder{
	catalog.SortRecentFirst,
	catalog.SortTitleAsc,
	catalog.SortScoreDesc,
	catalog.SortYearDesc,
}

var sortLabels = map[catalog.SortOrder]string{
	catalog.SortRecentFirst: "Recent",
	catalog.SortTitleAsc:    "Title",
	catalog.SortTitleDesc:   "Title (desc)",
	catalog.SortScoreDesc:   "Score",
	catalog.SortYearDesc:    "Year",
}

// Model is the catalog list
type Model struct {
	source    Source
	selection Selection
	navigator nav.Navigator
	logger    *slog.Logger
	now       func() time.Time

	items     []catalog.Item
	cursor    int
	sortOrder catalog.SortOrder
	loaded    bool
	err       error

	filter *common.FuzzySearch
	keys   KeyMap
	help   help.Model

	width  int
	height int
}

// New creates the list; Init loads it
func New(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Navigator == nil {
		opts.Navigator = nav.MsgNavigator{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	h := help.New()
	h.Styles.ShortKey = styles.HelpStyle
	h.Styles.ShortDesc = styles.HelpStyle

	return &Model{
		source:    opts.Source,
		selection: opts.Selection,
		navigator: opts.Navigator,
		logger:    opts.Logger,
		now:       opts.Now,
		sortOrder: catalog.SortRecentFirst,
		filter:    common.NewFuzzySearch(),
		keys:      DefaultKeyMap(),
		help:      h,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.Load()
}

// Load reads the catalog in the current sort order
func (m *Model) Load() tea.Cmd {
	source := m.source
	order := m.sortOrder
	return func() tea.Msg {
		if source == nil {
			return LoadedMsg{Err: fmt.Errorf("catalog is not available")}
		}
		items, err := source.List(catalog.FilterOptions{SortBy: order})
		return LoadedMsg{Items: items, Err: err}
	}
}

// SetSize sets the view dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.filter.SetWidth(width)
}

// IsInputActive reports whether keystrokes are being typed into the filter
func (m *Model) IsInputActive() bool {
	return m.filter.IsEditing()
}

// Items returns the entries currently shown, filter applied
func (m *Model) Items() []catalog.Item {
	candidates := make([]string, len(m.items))
	for i, it := range m.items {
		candidates[i] = it.Record.Title + " " + strings.Join(it.Record.GenreNames(), " ")
	}

	indices := m.filter.Filter(candidates)
	out := make([]catalog.Item, len(indices))
	for i, idx := range indices {
		out[i] = m.items[idx]
	}
	return out
}

// Selected returns the entry under the cursor
func (m *Model) Selected() (catalog.Item, bool) {
	items := m.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return catalog.Item{}, false
	}
	return items[m.cursor], true
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loaded = true
		m.err = msg.Err
		if msg.Err != nil {
			m.logger.Error("failed to load catalog", "error", msg.Err)
			m.items = nil
		} else {
			m.items = msg.Items
		}
		m.cursor = clamp(m.cursor, len(m.Items()))
		return m, nil

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.filter.IsEditing() {
		switch msg.String() {
		case "esc", "enter":
			m.filter.Lock()
			return nil
		}
		before := m.filter.Query()
		cmd := m.filter.Update(msg)
		if m.filter.Query() != before {
			m.cursor = 0
		}
		return cmd
	}

	if m.filter.IsActive() {
		switch msg.String() {
		case "esc":
			m.filter.Deactivate()
			m.cursor = 0
			return nil
		case "/":
			return m.filter.Unlock()
		}
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.Items())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		return m.open()
	case key.Matches(msg, m.keys.Filter):
		return m.filter.Activate()
	case key.Matches(msg, m.keys.Sort):
		m.sortOrder = nextSort(m.sortOrder)
		m.cursor = 0
		return m.Load()
	case key.Matches(msg, m.keys.Reload):
		return m.Load()
	}
	return nil
}

// open puts the entry under the cursor into the shared selection and moves
// to the detail screen
func (m *Model) open() tea.Cmd {
	item, ok := m.Selected()
	if !ok || m.selection == nil {
		return nil
	}

	m.selection.Select(item.Record)
	if m.source != nil {
		if err := m.source.SetLastViewed(item.Record.MalID); err != nil {
			m.logger.Warn("failed to remember last viewed", "mal_id", item.Record.MalID, "error", err)
		}
	}
	m.logger.Debug("opening detail", "mal_id", item.Record.MalID, "title", item.Record.Title)
	return m.navigator.Navigate(nav.Detail)
}

func nextSort(current catalog.SortOrder) catalog.SortOrder {
	for i, o := range sortOrders {
		if o == current {
			return sortOrders[(i+1)%len(sortOrders)]
		}
	}
	return sortOrders[0]
}

func clamp(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// View implements tea.Model
func (m *Model) View() string {
	if !m.loaded {
		return styles.HelpStyle.Render("\n  Loading catalog...")
	}

	var content strings.Builder
	content.WriteString("\n")
	content.WriteString(styles.TitleStyle.Render("  Anime Catalog  ") + "\n")

	items := m.Items()
	count := fmt.Sprintf("  %d entries • %s", len(items), sortLabels[m.sortOrder])
	if m.filter.IsActive() && m.filter.Query() != "" {
		count += " (filtered)"
	}
	content.WriteString(styles.MetadataStyle.Render(count) + "\n")

	if m.filter.IsActive() {
		view := m.filter.View()
		if m.filter.IsEditing() {
			view = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(styles.OxocarbonPurple).
				Padding(0, 1).
				Render(view)
		}
		content.WriteString("\n" + view + "\n")
	}
	content.WriteString("\n")

	switch {
	case m.err != nil:
		content.WriteString(styles.HelpStyle.Render("  Could not load the catalog: "+m.err.Error()) + "\n")
	case len(m.items) == 0:
		content.WriteString(styles.HelpStyle.Render("  The catalog is empty. Add entries with `aniview import <file>`.") + "\n")
	case len(items) == 0:
		content.WriteString(styles.HelpStyle.Render("  Nothing matches the filter.") + "\n")
	default:
		start, end := m.visibleRange(len(items))
		for i := start; i < end; i++ {
			content.WriteString(m.renderItem(items[i], i == m.cursor) + "\n")
		}
	}

	helpView := m.help.View(m.keys)
	if m.height > 0 {
		used := lipgloss.Height(content.String()) + lipgloss.Height(helpView)
		if pad := m.height - used; pad > 0 {
			content.WriteString(strings.Repeat("\n", pad))
		}
	}
	return content.String() + helpView
}

// visibleRange keeps the cursor roughly centred in the page of items
func (m *Model) visibleRange(total int) (int, int) {
	maxVisible := 5
	if m.height > 0 {
		overhead := 6
		if m.filter.IsActive() {
			overhead += 4
		}
		// two content lines plus a blank line per item
		maxVisible = max((m.height-overhead)/3, 1)
	}

	if total <= maxVisible {
		return 0, total
	}

	start := max(m.cursor-maxVisible/2, 0)
	end := start + maxVisible
	if end > total {
		end = total
		start = end - maxVisible
	}
	return start, end
}

func (m *Model) renderItem(item catalog.Item, selected bool) string {
	style := styles.ListItemStyle
	titleStyle := styles.ListTitleStyle
	metaStyle := styles.MetadataStyle
	if selected {
		style = styles.ListItemSelectedStyle
		titleStyle = styles.ListTitleSelectedStyle
		metaStyle = metaStyle.Foreground(styles.OxocarbonMauve)
	}

	width := max(m.width-8, 10)
	rec := item.Record

	meta := rec.Details()
	if names := rec.GenreNames(); len(names) > 0 {
		meta = append(meta, strings.Join(names, ", "))
	}
	if !item.AddedAt.IsZero() {
		meta = append(meta, "added "+humanize.RelTime(item.AddedAt, m.now(), "ago", "from now"))
	}

	lines := []string{titleStyle.Render(utils.TruncateWithWidth(rec.Title, width))}
	if len(meta) > 0 {
		lines = append(lines, metaStyle.Render(utils.TruncateWithWidth(strings.Join(meta, " • "), width)))
	}
	return style.Render(strings.Join(lines, "\n")) + "\n"
}
