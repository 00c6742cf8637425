// Package input provides the query box for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docwatch/internal/adapters/driving/tui/styles"
)

// maxQueryLength bounds the query box.
const maxQueryLength = 256

// SearchInput wraps a bubbles textinput with the query box styling.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewSearchInput creates a focused query box.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search titles and content..."
	ti.Prompt = "/ "
	ti.Focus()
	ti.CharLimit = maxQueryLength
	ti.Width = 50

	return &SearchInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init starts the cursor blinking.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards messages to the text input.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the query box.
func (s *SearchInput) View() string {
	box := s.styles.InputField
	if s.Focused() {
		box = s.styles.InputFocused
	}
	//nolint:misspell // lipgloss.Center is the library's spelling
	return lipgloss.JoinHorizontal(lipgloss.Center,
		s.styles.Title.Render("Search "),
		box.Render(s.textinput.View()),
	)
}

// Value returns the current query.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the query.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Focus gives the query box keyboard focus.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused reports whether the query box has focus.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth resizes the box, leaving room for the label and border.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	inner := width - 14
	if inner < 20 {
		inner = 20
	}
	s.textinput.Width = inner
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the query.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
}
