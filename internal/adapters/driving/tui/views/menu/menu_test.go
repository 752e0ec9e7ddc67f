package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/messages"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Len(t, view.entries, 5)
	assert.Equal(t, 0, view.Cursor())
	assert.Nil(t, view.Init())
}

func TestView_Navigate(t *testing.T) {
	view := NewView(nil)

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Cursor())

	for range 10 {
		view.Update(runes("j"))
	}
	assert.Equal(t, 4, view.Cursor())

	for range 10 {
		view.Update(runes("k"))
	}
	assert.Equal(t, 0, view.Cursor())
}

func TestView_Enter(t *testing.T) {
	tests := []struct {
		cursor int
		want   messages.ViewType
	}{
		{0, messages.ViewStructure},
		{1, messages.ViewDesigns},
		{2, messages.ViewSettings},
		{3, messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			view := NewView(nil)
			view.cursor = tt.cursor

			_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
			require.NotNil(t, cmd)
			assert.Equal(t, messages.ViewChanged{View: tt.want}, cmd())
		})
	}
}

func TestView_Shortcut(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(runes("d"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewDesigns}, cmd())
	assert.Equal(t, 1, view.Cursor())

	_, cmd = view.Update(runes("x"))
	assert.Nil(t, cmd)
}

func TestView_Quit(t *testing.T) {
	view := NewView(nil)
	view.cursor = 4

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = NewView(nil).Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_View(t *testing.T) {
	view := NewView(nil)
	assert.Contains(t, view.View(), "Initialising")

	view.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := view.View()
	assert.Contains(t, out, "binderdash")
	assert.Contains(t, out, "[s] Structure")
	assert.Contains(t, out, "[d] Designs")
	assert.Contains(t, out, "filter scored designs")
	assert.Contains(t, out, "> ")

	view.SetDimensions(40, 20)
	assert.NotContains(t, view.View(), "filter scored designs")
}
