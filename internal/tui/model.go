package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/aniview/internal/clipboard"
	"github.com/justchokingaround/aniview/internal/linkopen"
	"github.com/justchokingaround/aniview/internal/state"
	"github.com/justchokingaround/aniview/internal/tui/common"
	"github.com/justchokingaround/aniview/internal/tui/components/detail"
	"github.com/justchokingaround/aniview/internal/tui/components/help"
	"github.com/justchokingaround/aniview/internal/tui/components/library"
	"github.com/justchokingaround/aniview/internal/tui/nav"
	"github.com/justchokingaround/aniview/internal/tui/styles"
	"github.com/justchokingaround/aniview/internal/tui/utils"
)

// LayoutChangedMsg swaps the detail layout, e.g. after the config file changed
type LayoutChangedMsg struct {
	Layout detail.Layout
}

// App is the root model: a stack of screens with the catalog at the bottom
type App struct {
	library *library.Model
	detail  *detail.Model
	help    help.Model

	// stack always starts with nav.Root
	stack []nav.Destination

	// events delivers messages from outside the program
	events <-chan tea.Msg

	logger *slog.Logger

	status     string
	statusKind common.StatusKind
	statusID   int
	statusTTL  time.Duration

	width  int
	height int
}

// NewApp wires the screens together
func NewApp(opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Store == nil {
		opts.Store = state.NewStore()
	}

	a := &App{
		library: library.New(library.Options{
			Source:    opts.Catalog,
			Selection: opts.Store,
			Logger:    opts.Logger,
		}),
		detail: detail.New(detail.Options{
			Query:     opts.Store,
			Opener:    opts.Opener,
			Clipboard: opts.Clipboard,
			Logger:    opts.Logger,
			Layout:    opts.Layout,
		}),
		help:      help.New(),
		stack:     []nav.Destination{nav.Root},
		events:    opts.Events,
		logger:    opts.Logger,
		statusTTL: common.StatusTTL,
	}

	if opts.Initial == nav.Detail {
		a.stack = append(a.stack, nav.Detail)
	}
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.library.Init(), a.listenForEvents()}
	if a.current() == nav.Detail {
		cmds = append(cmds, a.detail.Init())
	}
	return tea.Batch(cmds...)
}

// listenForEvents waits for the next message from outside the program
func (a *App) listenForEvents() tea.Cmd {
	if a.events == nil {
		return nil
	}
	events := a.events
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg{msg}
	}
}

// eventMsg wraps a message from the events channel so the listener can be
// re-armed after it is handled
type eventMsg struct {
	msg tea.Msg
}

func (a *App) current() nav.Destination {
	return a.stack[len(a.stack)-1]
}

// Current returns the screen on top of the stack
func (a *App) Current() nav.Destination {
	return a.current()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		_, cmd := a.Update(msg.msg)
		return a, tea.Batch(cmd, a.listenForEvents())

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// the last row belongs to the status line
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-1, 1)}
		a.library.Update(inner)
		a.detail.Update(inner)
		a.help, _ = a.help.Update(inner)
		return a, nil

	case tea.KeyMsg:
		typing := a.current() == nav.Root && a.library.IsInputActive()
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if !typing {
				return a, tea.Quit
			}
		}

		if a.help.IsVisible() {
			switch msg.String() {
			case "esc", "?":
				a.help.Hide()
			default:
				a.help, _ = a.help.Update(msg)
			}
			return a, nil
		}
		if msg.String() == "?" && !typing {
			a.help.SetContext(helpContext(a.current()))
			a.help.Show()
			return a, nil
		}

	case nav.NavigateMsg:
		return a, a.navigate(msg.To)

	case linkopen.OpenedMsg:
		if msg.Err != nil {
			return a, a.setStatus("Could not open link: "+msg.Err.Error(), common.StatusError)
		}
		return a, a.setStatus("Opened "+msg.URL, common.StatusSuccess)

	case clipboard.CopiedMsg:
		if msg.Err != nil {
			return a, a.setStatus("Copy failed: "+msg.Err.Error(), common.StatusError)
		}
		return a, a.setStatus("Link copied to clipboard", common.StatusClipboard)

	case common.StatusMsg:
		return a, a.setStatusTTL(msg)

	case common.ClearStatusMsg:
		if msg.ID == a.statusID {
			a.status = ""
		}
		return a, nil

	case LayoutChangedMsg:
		a.logger.Info("layout updated")
		a.detail.SetLayout(msg.Layout)
		return a, nil

	case library.LoadedMsg:
		_, cmd := a.library.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.current() {
	case nav.Detail:
		_, cmd = a.detail.Update(msg)
	default:
		_, cmd = a.library.Update(msg)
	}
	return a, cmd
}

func helpContext(d nav.Destination) help.Context {
	if d == nav.Detail {
		return help.DetailContext
	}
	return help.LibraryContext
}

// navigate switches screens. Root pops everything above the catalog.
func (a *App) navigate(to nav.Destination) tea.Cmd {
	a.logger.Debug("navigate", "from", a.current(), "to", to)

	switch to {
	case nav.Root:
		a.stack = a.stack[:1]
		// the catalog may have changed while the detail was open
		return a.library.Load()
	case nav.Detail:
		if a.current() != nav.Detail {
			a.stack = append(a.stack, nav.Detail)
		}
		a.detail.Refresh()
		return nil
	default:
		a.logger.Warn("unknown destination", "to", to)
		return nil
	}
}

func (a *App) setStatus(text string, kind common.StatusKind) tea.Cmd {
	return a.setStatusTTL(common.StatusMsg{Text: text, Kind: kind})
}

func (a *App) setStatusTTL(msg common.StatusMsg) tea.Cmd {
	ttl := msg.TTL
	if ttl <= 0 {
		ttl = a.statusTTL
	}

	a.statusID++
	id := a.statusID
	a.status = msg.Text
	a.statusKind = msg.Kind

	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return common.ClearStatusMsg{ID: id}
	})
}

// Status returns the status line text
func (a *App) Status() string {
	return a.status
}

// View implements tea.Model
func (a *App) View() string {
	var body string
	switch {
	case a.help.IsVisible():
		body = a.help.View()
	case a.current() == nav.Detail:
		body = a.detail.View()
	default:
		body = a.library.View()
	}

	width := a.width
	if width == 0 {
		width = 80
	}

	body = strings.TrimRight(body, "\n")
	if a.height > 1 {
		lines := strings.Split(body, "\n")
		if len(lines) > a.height-1 {
			body = strings.Join(lines[:a.height-1], "\n")
		}
	}

	return body + "\n" + a.footerView(width)
}

func (a *App) footerView(width int) string {
	if a.status == "" {
		return ""
	}

	style := styles.FooterStyle.
		Width(width).
		Background(styles.StatusColor(string(a.statusKind))).
		Foreground(styles.OxocarbonBase00).
		Bold(true).
		Align(lipgloss.Left)

	text := fmt.Sprintf("%s %s", statusIcon(a.statusKind), a.status)
	return style.Render(utils.TruncateWithWidth(text, width-2))
}

func statusIcon(kind common.StatusKind) string {
	switch kind {
	case common.StatusSuccess:
		return "✓"
	case common.StatusError:
		return "✗"
	case common.StatusClipboard:
		return "📋"
	default:
		return "ℹ"
	}
}
