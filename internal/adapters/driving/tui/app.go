package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/views/designs"
	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/views/structure"
	"github.com/custodia-labs/binderdash/internal/core/domain"
)

// App is the dashboard model following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView      *menu.View
	structureView *structure.View
	designsView   *designs.View
	settingsView  *settings.View

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the dashboard with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		menuView:      menu.NewView(s),
		structureView: structure.NewView(s, ports.Interface, ports.Session, ports.Settings),
		designsView:   designs.NewView(s, ports.Metrics, ports.Session),
		settingsView:  settings.NewView(s, ports.Settings),
		currentView:   messages.ViewMenu,
	}, nil
}

// WithContext sets the context for service calls made by the views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.structureView.WithContext(ctx)
	a.designsView.WithContext(ctx)
	return a
}

// Init implements tea.Model. A session opened from the command line starts
// on its view.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("binderdash")}

	switch {
	case a.hasStructure():
		cmds = append(cmds, changeView(messages.ViewStructure))
	case a.hasScores():
		cmds = append(cmds, changeView(messages.ViewDesigns))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewStructure:
			return a, a.structureView.Init()
		case messages.ViewDesigns:
			return a, a.designsView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.StructureOpened, messages.InterfaceComputed:
		a.structureView, cmd = a.structureView.Update(msg)
		return a, cmd

	case messages.ScoresOpened, messages.DesignsFiltered, messages.DesignsExported:
		a.designsView, cmd = a.designsView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.FileReloaded:
		if msg.Event.Kind == domain.InputStructure {
			a.structureView, cmd = a.structureView.Update(msg)
		} else {
			a.designsView, cmd = a.designsView.Update(msg)
		}
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.forward(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward hands msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewStructure:
		a.structureView, cmd = a.structureView.Update(msg)
	case messages.ViewDesigns:
		a.designsView, cmd = a.designsView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewStructure:
		return a.structureView.View()
	case messages.ViewDesigns:
		return a.designsView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Structure:
  ←/h, →/l    Move the distance slider
  ↑/k, ↓/j    Scroll the residue table
  o           Open a PDB file

Designs:
  ↑/k, ↓/j    Select a filter
  space       Toggle the filter
  ←/h, →/l    Move its cutoff
  tab         Switch between filters and table
  o           Open a score CSV
  e           Export the full stats of passing designs

Residues are reported when any atom lies closer than the distance to an
atom of the other chain. Designs with an empty value for a filtered metric
are dropped.

[esc] back to menu`
}

func (a *App) hasStructure() bool {
	_, ok := a.ports.Session.Structure()
	return ok
}

func (a *App) hasScores() bool {
	_, ok := a.ports.Session.Scores()
	return ok
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.structureView.SetDimensions(width, height)
	a.designsView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}
