// Package menu provides the main navigation menu of the dashboard.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/styles"
)

// Entry is one menu line. A zero Target with Quit set ends the program.
type Entry struct {
	Key    string
	Label  string
	Hint   string
	Target messages.ViewType
	Quit   bool
}

func entries() []Entry {
	return []Entry{
		{Key: "s", Label: "Structure", Hint: "interface residues of a complex", Target: messages.ViewStructure},
		{Key: "d", Label: "Designs", Hint: "filter scored designs by metric cutoffs", Target: messages.ViewDesigns},
		{Key: "c", Label: "Settings", Hint: "default distance, index and cache", Target: messages.ViewSettings},
		{Key: "?", Label: "Help", Target: messages.ViewHelp},
		{Key: "q", Label: "Quit", Quit: true},
	}
}

// View is the main menu.
type View struct {
	styles  *styles.Styles
	keys    *keymap.KeyMap
	entries []Entry
	cursor  int
	width   int
	ready   bool
}

// NewView creates a menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		keys:    keymap.DefaultKeyMap(),
		entries: entries(),
	}
}

// Init implements tea.Model.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor or activates an entry, by Enter or by its key.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		key := msg.String()
		switch {
		case keymap.Matches(key, v.keys.Up):
			v.cursor = max(0, v.cursor-1)
		case keymap.Matches(key, v.keys.Down):
			v.cursor = min(len(v.entries)-1, v.cursor+1)
		case keymap.Matches(key, v.keys.Select):
			return v, v.activate(v.entries[v.cursor])
		default:
			for i, e := range v.entries {
				if e.Key == key {
					v.cursor = i
					return v, v.activate(e)
				}
			}
		}
	}
	return v, nil
}

func (v *View) activate(e Entry) tea.Cmd {
	if e.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: e.Target}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("binderdash"))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render("Binder Design Dashboard"))
	b.WriteString("\n\n")

	for i, e := range v.entries {
		line := fmt.Sprintf("[%s] %-10s", e.Key, e.Label)
		if i == v.cursor {
			b.WriteString("> " + v.styles.Subtitle.Render(line))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(line))
		}
		if e.Hint != "" && v.width >= 60 {
			b.WriteString(" " + v.styles.Muted.Render(e.Hint))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select"))
	return b.String()
}

// SetDimensions records the terminal width; hints are hidden when narrow.
func (v *View) SetDimensions(width, _ int) {
	v.width = width
	v.ready = true
}

// Cursor returns the highlighted entry index.
func (v *View) Cursor() int {
	return v.cursor
}
