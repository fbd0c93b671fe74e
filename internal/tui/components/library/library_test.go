package library

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/aniview/internal/anime"
	"github.com/justchokingaround/aniview/internal/catalog"
	"github.com/justchokingaround/aniview/internal/state"
	"github.com/justchokingaround/aniview/internal/tui/nav"
	"github.com/justchokingaround/aniview/internal/tui/tuitest"
)

type fakeSource struct {
	items      []catalog.Item
	err        error
	orders     []catalog.SortOrder
	lastViewed []int
}

func (f *fakeSource) List(filter catalog.FilterOptions) ([]catalog.Item, error) {
	f.orders = append(f.orders, filter.SortBy)
	return f.items, f.err
}

func (f *fakeSource) SetLastViewed(malID int) error {
	f.lastViewed = append(f.lastViewed, malID)
	return nil
}

type fakeNavigator struct {
	calls []nav.Destination
}

func (f *fakeNavigator) Navigate(to nav.Destination) tea.Cmd {
	f.calls = append(f.calls, to)
	return func() tea.Msg { return nav.NavigateMsg{To: to} }
}

var now = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func sampleItems() []catalog.Item {
	return []catalog.Item{
		{
			Record: anime.Record{
				MalID: 20, Title: "Naruto", Score: 8, Year: 2002,
				Genres: []anime.Genre{{MalID: 1, Name: "Action"}},
			},
			AddedAt: now.Add(-2 * time.Hour),
		},
		{
			Record:  anime.Record{MalID: 1, Title: "Cowboy Bebop", Rating: "R - 17+", Score: 8.75, Year: 1998},
			AddedAt: now.Add(-72 * time.Hour),
		},
		{
			Record:  anime.Record{MalID: 19, Title: "Monster"},
			AddedAt: now.Add(-30 * 24 * time.Hour),
		},
	}
}

type fixture struct {
	model  *Model
	source *fakeSource
	store  *state.Store
	nav    *fakeNavigator
}

func newFixture(t *testing.T, items []catalog.Item) *fixture {
	t.Helper()
	f := &fixture{
		source: &fakeSource{items: items},
		store:  state.NewStore(),
		nav:    &fakeNavigator{},
	}
	f.model = New(Options{
		Source:    f.source,
		Selection: f.store,
		Navigator: f.nav,
		Now:       func() time.Time { return now },
	})
	f.model.SetSize(70, 24)

	f.model.Update(f.model.Init()())
	return f
}

func (f *fixture) press(keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = f.model.Update(k)
	}
	return cmd
}

var (
	down  = tea.KeyMsg{Type: tea.KeyDown}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSelectOpensDetail(t *testing.T) {
	f := newFixture(t, sampleItems())

	cmd := f.press(down, enter)
	require.NotNil(t, cmd)
	assert.Equal(t, nav.NavigateMsg{To: nav.Detail}, cmd())

	rec, ok := f.store.Selected()
	require.True(t, ok)
	assert.Equal(t, "Cowboy Bebop", rec.Title)
	assert.Equal(t, []int{1}, f.source.lastViewed)
	assert.Equal(t, []nav.Destination{nav.Detail}, f.nav.calls)
}

func TestCursorBounds(t *testing.T) {
	f := newFixture(t, sampleItems())

	f.press(up)
	item, _ := f.model.Selected()
	assert.Equal(t, "Naruto", item.Record.Title)

	f.press(down, down, down, down)
	item, _ = f.model.Selected()
	assert.Equal(t, "Monster", item.Record.Title)
}

func TestFilter(t *testing.T) {
	f := newFixture(t, sampleItems())

	f.press(runes("/"))
	assert.True(t, f.model.IsInputActive())

	f.press(runes("b"), runes("e"), runes("b"))
	items := f.model.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Cowboy Bebop", items[0].Record.Title)

	// esc locks the filter so enter opens the match
	f.press(esc)
	assert.False(t, f.model.IsInputActive())
	cmd := f.press(enter)
	require.NotNil(t, cmd)
	rec := f.store.CurrentDetail()
	assert.Equal(t, 1, rec.MalID)

	// a second esc clears it
	f.press(esc)
	assert.Len(t, f.model.Items(), 3)
}

func TestFilterMatchesGenres(t *testing.T) {
	f := newFixture(t, sampleItems())

	f.press(runes("/"), runes("a"), runes("c"), runes("t"), runes("i"), runes("o"), runes("n"))

	items := f.model.Items()
	require.NotEmpty(t, items)
	assert.Equal(t, "Naruto", items[0].Record.Title)
}

func TestSortCyclesAndReloads(t *testing.T) {
	f := newFixture(t, sampleItems())

	cmd := f.press(runes("s"))
	require.NotNil(t, cmd)
	f.model.Update(cmd())

	assert.Equal(t, []catalog.SortOrder{catalog.SortRecentFirst, catalog.SortTitleAsc}, f.source.orders)
}

func TestEmptyAndErrorStates(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		f := newFixture(t, nil)

		assert.Nil(t, f.press(enter))
		assert.Contains(t, tuitest.StripANSI(f.model.View()), "The catalog is empty")
		assert.Empty(t, f.nav.calls)
	})

	t.Run("load error", func(t *testing.T) {
		f := &fakeSource{err: errors.New("disk on fire")}
		m := New(Options{Source: f, Selection: state.NewStore(), Navigator: &fakeNavigator{}})
		m.Update(m.Init()())

		assert.Contains(t, tuitest.StripANSI(m.View()), "disk on fire")
	})
}

func TestView(t *testing.T) {
	f := newFixture(t, sampleItems())

	view := tuitest.StripANSI(f.model.View())
	assert.Contains(t, view, "Anime Catalog")
	assert.Contains(t, view, "3 entries • Recent")
	assert.Contains(t, view, "8 • 2002 • Action • added 2 hours ago")
	assert.Contains(t, view, "R - 17+ • 8.75 • 1998")

	naruto := strings.Index(view, "Naruto")
	bebop := strings.Index(view, "Cowboy Bebop")
	monster := strings.Index(view, "Monster")
	assert.True(t, naruto < bebop && bebop < monster, "items keep the source order")
}
