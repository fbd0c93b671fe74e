package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/aniview/internal/clipboard"
	"github.com/justchokingaround/aniview/internal/linkopen"
	"github.com/justchokingaround/aniview/internal/state"
	"github.com/justchokingaround/aniview/internal/tui/components/detail"
	"github.com/justchokingaround/aniview/internal/tui/components/library"
	"github.com/justchokingaround/aniview/internal/tui/nav"
)

// Options configure the TUI
type Options struct {
	Catalog   library.Source
	Store     *state.Store
	Opener    linkopen.Opener
	Clipboard clipboard.Service
	Layout    detail.Layout
	Logger    *slog.Logger
	// Initial is the first screen; Detail needs a record in Store
	Initial nav.Destination
	// Events are forwarded into the program, e.g. LayoutChangedMsg
	Events <-chan tea.Msg
}

// Start is the entry point for the TUI. It blocks until the user quits.
func Start(opts Options) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
