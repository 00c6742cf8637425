package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.Equal(t, lipgloss.Color("#E0A526"), theme.Primary)
	assert.NotEqual(t, theme.Primary, theme.Secondary)
	assert.NotEmpty(t, theme.Surface)
}

func TestNewStyles_NilTheme(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestNewStyles_UsesTheme(t *testing.T) {
	theme := DefaultTheme()
	theme.Primary = lipgloss.Color("#FF0000")

	s := NewStyles(theme)

	assert.Same(t, theme, s.Theme())
	assert.Equal(t, lipgloss.Color("#FF0000"), s.Title.GetForeground())
	assert.Equal(t, lipgloss.Color("#FF0000"), s.Selected.GetBackground())
	assert.Equal(t, lipgloss.Color("#FF0000"), s.InputFocused.GetBorderTopForeground())
	assert.Equal(t, theme.Border, s.InputField.GetBorderTopForeground())
}

func TestStyles_Render(t *testing.T) {
	s := DefaultStyles()

	assert.Contains(t, s.Title.Render("docwatch"), "docwatch")
	assert.Contains(t, s.Location.Render("src/lib.rs:12"), "src/lib.rs:12")
	assert.True(t, s.Link.GetUnderline())
	assert.True(t, s.Title.GetBold())
}
