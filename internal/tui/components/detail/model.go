package detail

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/aniview/internal/anime"
	"github.com/justchokingaround/aniview/internal/clipboard"
	"github.com/justchokingaround/aniview/internal/linkopen"
	"github.com/justchokingaround/aniview/internal/state"
	"github.com/justchokingaround/aniview/internal/tui/nav"
	"github.com/justchokingaround/aniview/internal/tui/styles"
)

// Options are the collaborators of the detail view
type Options struct {
	Query     state.DetailQuery
	Navigator nav.Navigator
	Opener    linkopen.Opener
	// Clipboard is optional; without it the copy key does nothing
	Clipboard clipboard.Service
	Logger    *slog.Logger
	Layout    Layout
}

// Model is the bubbletea model of the detail view
type Model struct {
	query     state.DetailQuery
	navigator nav.Navigator
	opener    linkopen.Opener
	clipboard clipboard.Service
	logger    *slog.Logger
	layout    Layout

	keys     KeyMap
	help     help.Model
	viewport viewport.Model

	record      anime.Record
	screen      Screen
	genreOffset int

	// pending collects the commands button handlers produce during one Update
	pending []tea.Cmd

	Width  int
	Height int
}

// New creates a detail view. Call Refresh (or Init) before showing it.
func New(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Navigator == nil {
		opts.Navigator = nav.MsgNavigator{}
	}
	if opts.Opener == nil {
		opts.Opener = linkopen.NewBrowserOpener()
	}
	if opts.Layout == (Layout{}) {
		opts.Layout = DefaultLayout()
	}

	h := help.New()
	h.Styles.ShortKey = styles.HelpStyle
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.FullKey = styles.HelpStyle
	h.Styles.FullDesc = styles.HelpStyle

	m := &Model{
		query:     opts.Query,
		navigator: opts.Navigator,
		opener:    opts.Opener,
		clipboard: opts.Clipboard,
		logger:    opts.Logger,
		layout:    opts.Layout,
		keys:      DefaultKeyMap(),
		help:      h,
		viewport:  viewport.New(0, 0),
	}
	m.SetSize(80, 24)
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	m.Refresh()
	return nil
}

// Refresh reads the current record from the shared state and rebuilds the
// screen, scrolled back to the top
func (m *Model) Refresh() {
	if m.query != nil {
		m.record = m.query.CurrentDetail()
	} else {
		m.record = anime.Record{}
	}
	m.screen = Build(m.record, m.handlers(), m.layout.ChipSeparator)
	m.genreOffset = 0

	m.keys.Play.SetEnabled(m.screen.Header.Play != nil)
	m.keys.CopyURL.SetEnabled(m.record.HasURL() && m.clipboard != nil)
	hasGenres := m.screen.Genres != nil
	m.keys.GenresLeft.SetEnabled(hasGenres)
	m.keys.GenresRight.SetEnabled(hasGenres)

	m.renderBody()
	m.viewport.GotoTop()
}

// SetLayout swaps the layout constants, e.g. after a config reload
func (m *Model) SetLayout(l Layout) {
	m.layout = l
	m.Refresh()
}

// Layout returns the layout in use
func (m *Model) Layout() Layout {
	return m.layout
}

// Screen returns the current render tree
func (m *Model) Screen() Screen {
	return m.screen
}

// Record returns the record on display
func (m *Model) Record() anime.Record {
	return m.record
}

func (m *Model) handlers() Handlers {
	return Handlers{
		Back: func() {
			m.queue(m.navigator.Navigate(nav.Root))
		},
		// Favorite has no store of its own yet and returns to the root like Back.
		Favorite: func() {
			m.queue(m.navigator.Navigate(nav.Root))
		},
		Play: func(url string) {
			m.queue(linkopen.OpenCmd(m.opener, url, m.logger))
		},
	}
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) flush() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

// SetSize resizes the view
func (m *Model) SetSize(width, height int) {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	m.Width = width
	m.Height = height
	m.help.Width = width

	m.viewport.Width = width
	m.viewport.Height = max(height-lipgloss.Height(m.actionsView())-lipgloss.Height(m.helpView()), 1)
	m.renderBody()
}

func (m *Model) renderBody() {
	m.viewport.SetContent(RenderBody(m.screen, m.layout, m.Width, m.Height, m.genreOffset))
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.screen.Actions.Back.Press()
		case key.Matches(msg, m.keys.Favorite):
			m.screen.Actions.Favorite.Press()
		case key.Matches(msg, m.keys.Play):
			m.screen.Header.Play.Press()
		case key.Matches(msg, m.keys.CopyURL):
			m.queue(m.clipboard.Write(context.Background(), m.record.URL))
		case key.Matches(msg, m.keys.GenresLeft):
			m.scrollGenres(-1)
		case key.Matches(msg, m.keys.GenresRight):
			m.scrollGenres(1)
		case key.Matches(msg, m.keys.Up):
			m.viewport.ScrollUp(1)
		case key.Matches(msg, m.keys.Down):
			m.viewport.ScrollDown(1)
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.PageUp()
		case key.Matches(msg, m.keys.PageDown):
			m.viewport.PageDown()
		}
		return m, m.flush()

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// scrollGenres moves the first visible chip by delta, within bounds
func (m *Model) scrollGenres(delta int) {
	if m.screen.Genres == nil {
		return
	}
	next := clampOffset(m.genreOffset+delta, len(m.screen.Genres.Items))
	if next == m.genreOffset {
		return
	}
	m.genreOffset = next
	y := m.viewport.YOffset
	m.renderBody()
	m.viewport.SetYOffset(y)
}

// GenreOffset returns the index of the first visible genre chip
func (m *Model) GenreOffset() int {
	return m.genreOffset
}

func (m *Model) actionsView() string {
	return renderActions(m.screen.Actions, m.Width, m.layout.Margin)
}

func (m *Model) helpView() string {
	return m.help.View(m.keys)
}

// View implements tea.Model
func (m *Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.actionsView(),
		m.viewport.View(),
		m.helpView(),
	)
}
