package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/aniview/internal/anime"
	"github.com/justchokingaround/aniview/internal/catalog"
	"github.com/justchokingaround/aniview/internal/clipboard"
	"github.com/justchokingaround/aniview/internal/linkopen"
	"github.com/justchokingaround/aniview/internal/state"
	"github.com/justchokingaround/aniview/internal/tui/common"
	"github.com/justchokingaround/aniview/internal/tui/components/detail"
	"github.com/justchokingaround/aniview/internal/tui/nav"
	"github.com/justchokingaround/aniview/internal/tui/tuitest"
)

type fakeCatalog struct {
	items      []catalog.Item
	loads      int
	lastViewed []int
}

func (f *fakeCatalog) List(catalog.FilterOptions) ([]catalog.Item, error) {
	f.loads++
	return f.items, nil
}

func (f *fakeCatalog) SetLastViewed(malID int) error {
	f.lastViewed = append(f.lastViewed, malID)
	return nil
}

type fakeOpener struct {
	calls []string
}

func (f *fakeOpener) OpenURL(url string) error {
	f.calls = append(f.calls, url)
	return nil
}

func naruto() anime.Record {
	return anime.Record{
		MalID:  20,
		Title:  "Naruto",
		Score:  8,
		Year:   2002,
		URL:    "https://myanimelist.net/anime/20/Naruto",
		Genres: []anime.Genre{{MalID: 1, Name: "Action"}},
	}
}

func newTestApp(t *testing.T) (*App, *fakeCatalog, *fakeOpener, *state.Store) {
	t.Helper()
	cat := &fakeCatalog{items: []catalog.Item{{Record: naruto()}}}
	opener := &fakeOpener{}
	store := state.NewStore()

	app := NewApp(Options{Catalog: cat, Store: store, Opener: opener, Layout: detail.DefaultLayout()})
	app.statusTTL = time.Millisecond
	app.Update(tea.WindowSizeMsg{Width: 70, Height: 30})
	app.Update(app.library.Load()())
	return app, cat, opener, store
}

// drive feeds msg to the app and keeps feeding the messages its commands
// produce, skipping timers
func drive(a *App, msg tea.Msg) {
	queue := []tea.Msg{msg}
	for len(queue) > 0 && len(queue) < 100 {
		next := queue[0]
		queue = queue[1:]
		_, cmd := a.Update(next)
		queue = append(queue, collect(cmd)...)
	}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	case common.ClearStatusMsg, nil:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

func TestOpenDetailAndBack(t *testing.T) {
	app, cat, _, store := newTestApp(t)
	require.Equal(t, nav.Root, app.Current())

	drive(app, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, nav.Detail, app.Current())
	assert.Equal(t, "Naruto", store.CurrentDetail().Title)
	assert.Equal(t, []int{20}, cat.lastViewed)
	assert.Contains(t, tuitest.StripANSI(app.View()), "▶ Play")

	drive(app, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, nav.Root, app.Current())
	assert.Equal(t, 2, cat.loads, "returning to the root reloads the catalog")
}

func TestFavoriteReturnsToRoot(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	drive(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, nav.Detail, app.Current())

	drive(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})

	assert.Equal(t, nav.Root, app.Current())
}

func TestPlayShowsStatus(t *testing.T) {
	app, _, opener, _ := newTestApp(t)
	drive(app, tea.KeyMsg{Type: tea.KeyEnter})

	drive(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})

	assert.Equal(t, []string{"https://myanimelist.net/anime/20/Naruto"}, opener.calls)
	assert.Equal(t, "Opened https://myanimelist.net/anime/20/Naruto", app.Status())
	assert.Equal(t, nav.Detail, app.Current())
}

func TestStatusMessages(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	app.Update(linkopen.OpenedMsg{URL: "https://example.com", Err: errors.New("no browser")})
	assert.Equal(t, "Could not open link: no browser", app.Status())
	assert.Contains(t, tuitest.StripANSI(app.View()), "✗ Could not open link")

	app.Update(clipboard.CopiedMsg{Text: "https://example.com"})
	assert.Equal(t, "Link copied to clipboard", app.Status())

	// a stale clear does not hide the newer message
	app.Update(common.ClearStatusMsg{ID: 1})
	assert.Equal(t, "Link copied to clipboard", app.Status())

	app.Update(common.ClearStatusMsg{ID: 2})
	assert.Empty(t, app.Status())
}

func TestQuit(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	// while typing a filter, q is just a letter
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, app.library.IsInputActive())
}

func TestInitialDetail(t *testing.T) {
	store := state.NewStore()
	store.Select(naruto())

	app := NewApp(Options{Catalog: &fakeCatalog{}, Store: store, Opener: &fakeOpener{}, Initial: nav.Detail})
	app.Init()

	assert.Equal(t, nav.Detail, app.Current())
	assert.Equal(t, "Naruto", app.detail.Record().Title)
}

func TestEventsAreForwarded(t *testing.T) {
	events := make(chan tea.Msg, 1)
	app := NewApp(Options{Catalog: &fakeCatalog{}, Opener: &fakeOpener{}, Events: events})

	events <- LayoutChangedMsg{Layout: detail.Layout{BannerRatio: 2, ChipWidth: 10, ChipSeparator: 2}}
	msg := app.listenForEvents()()

	_, cmd := app.Update(msg)
	assert.NotNil(t, cmd, "listener is re-armed")
	assert.Equal(t, 2, app.detail.Layout().ChipSeparator, "layout applied")
}

func TestHelpOverlay(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	drive(app, tea.KeyMsg{Type: tea.KeyEnter})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	view := tuitest.StripANSI(app.View())
	assert.Contains(t, view, "KEYBOARD SHORTCUTS")
	assert.Contains(t, view, "Scroll genres")

	// keys go to the panel, not the screen below
	drive(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	assert.Equal(t, nav.Detail, app.Current())

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, tuitest.StripANSI(app.View()), "KEYBOARD SHORTCUTS")
	assert.Equal(t, nav.Detail, app.Current())
}
