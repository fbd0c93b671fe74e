package common

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/justchokingaround/aniview/internal/tui/styles"
)

// FuzzySearch is the "/" filter shared by list views
type FuzzySearch struct {
	input  textinput.Model
	active bool
	locked bool // filter applied but not editable, so action keys work
	query  string
}

// NewFuzzySearch creates an inactive filter
func NewFuzzySearch() *FuzzySearch {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Prompt = ""
	ti.CharLimit = 200
	ti.PromptStyle = styles.ListTitleSelectedStyle
	ti.TextStyle = styles.MetadataStyle
	ti.PlaceholderStyle = styles.HelpStyle

	return &FuzzySearch{input: ti}
}

// Activate starts editing an empty filter
func (f *FuzzySearch) Activate() tea.Cmd {
	f.active = true
	f.locked = false
	f.input.Focus()
	f.input.SetValue("")
	f.query = ""
	return textinput.Blink
}

// Deactivate clears the filter
func (f *FuzzySearch) Deactivate() {
	f.active = false
	f.locked = false
	f.input.Blur()
	f.input.SetValue("")
	f.query = ""
}

// Lock stops editing but keeps the filter applied
func (f *FuzzySearch) Lock() {
	if f.active {
		f.locked = true
		f.input.Blur()
	}
}

// Unlock resumes editing
func (f *FuzzySearch) Unlock() tea.Cmd {
	if !f.active {
		return nil
	}
	f.locked = false
	f.input.Focus()
	return textinput.Blink
}

// IsActive reports whether a filter is applied or being edited
func (f *FuzzySearch) IsActive() bool {
	return f.active
}

// IsEditing reports whether keystrokes go to the filter input
func (f *FuzzySearch) IsEditing() bool {
	return f.active && !f.locked
}

// Query returns the current filter text
func (f *FuzzySearch) Query() string {
	return f.query
}

// Update feeds msg to the input while editing
func (f *FuzzySearch) Update(msg tea.Msg) tea.Cmd {
	if !f.IsEditing() {
		return nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	f.query = f.input.Value()
	return cmd
}

// View renders the filter line, or nothing when inactive
func (f *FuzzySearch) View() string {
	if !f.active {
		return ""
	}

	label := styles.MetadataStyle.Render("Filter: ")
	bar := styles.ListTitleSelectedStyle.Render("┃")

	if f.locked {
		hint := styles.HelpStyle.Render(" (/ to edit • esc to clear)")
		return label + bar + " " + styles.ListTitleSelectedStyle.Render(f.query) + hint
	}
	return label + bar + " " + f.input.View() + styles.HelpStyle.Render(" (esc to lock)")
}

// SetWidth sizes the input to the view width
func (f *FuzzySearch) SetWidth(width int) {
	f.input.Width = max(width-20, 10)
}

// Filter returns the indices of candidates matching the query, best match
// first. Without a query every index is returned in order.
func (f *FuzzySearch) Filter(candidates []string) []int {
	if !f.active || f.query == "" {
		indices := make([]int, len(candidates))
		for i := range indices {
			indices[i] = i
		}
		return indices
	}

	matches := fuzzy.Find(f.query, candidates)
	indices := make([]int, len(matches))
	for i, match := range matches {
		indices[i] = match.Index
	}
	return indices
}

// SetQuery applies query as a locked filter
func (f *FuzzySearch) SetQuery(query string) {
	f.active = true
	f.input.SetValue(query)
	f.query = query
	f.Lock()
}
