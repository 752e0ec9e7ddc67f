// Package structure provides the interface view: a distance slider over
// the side-by-side target and binder residue columns of one complex.
package structure

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/components/slider"
	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driving"
)

const columnWidth = 12

// View shows the interface residues of the session structure.
type View struct {
	styles   *styles.Styles
	keys     *keymap.KeyMap
	iface    driving.InterfaceService
	session  driving.SessionService
	settings driving.SettingsService
	ctx      context.Context

	path     *input.PathInput
	distance *slider.Slider
	table    table.Model
	status   *status.Bar

	structure *domain.StructureInput
	set       domain.InterfaceResidueSet
	computed  bool

	width  int
	height int
	ready  bool
}

// NewView creates the structure view. settings may be nil.
func NewView(
	s *styles.Styles,
	iface driving.InterfaceService,
	session driving.SessionService,
	settings driving.SettingsService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	keys := keymap.DefaultKeyMap()

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Target (A)", Width: columnWidth},
			{Title: "Binder (B)", Width: columnWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	ts := table.DefaultStyles()
	ts.Header = s.TableHeader
	ts.Selected = s.TableSelected
	t.SetStyles(ts)

	return &View{
		styles:   s,
		keys:     keys,
		iface:    iface,
		session:  session,
		settings: settings,
		ctx:      context.Background(),
		path:     input.NewPathInput(s, "Structure", "path/to/complex.pdb"),
		distance: slider.New(s, "Distance", "Å",
			domain.MinDistanceThreshold, domain.MaxDistanceThreshold,
			domain.DistanceThresholdStep, domain.DefaultDistanceThreshold),
		table:  t,
		status: status.NewBar(s, keys.StructureHelp()),
		width:  80,
		height: 24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init picks up the configured distance and the session structure. With
// no structure loaded the path input takes focus.
func (v *View) Init() tea.Cmd {
	if v.settings != nil {
		if settings, err := v.settings.Get(); err == nil {
			v.distance.SetValue(settings.Interface.DistanceThreshold)
		}
	}

	if in, ok := v.session.Structure(); ok {
		v.structure = &in
		return v.compute()
	}
	return v.path.Focus()
}

// Update handles messages for the structure view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.StructureOpened:
		if msg.Err != nil {
			v.status.SetError(msg.Err)
			return v, nil
		}
		in := msg.Input
		v.structure = &in
		v.path.Blur()
		return v, v.compute()

	case messages.InterfaceComputed:
		// Drop results for a distance the slider has already left.
		if msg.Threshold != v.distance.Value() {
			return v, nil
		}
		if msg.Err != nil {
			v.status.SetError(msg.Err)
			return v, nil
		}
		v.setResult(msg.Set)
		return v, nil

	case messages.FileReloaded:
		if msg.Event.Kind != domain.InputStructure {
			return v, nil
		}
		if msg.Event.Err != nil {
			v.status.SetError(fmt.Errorf("reload %s: %w", msg.Event.Path, msg.Event.Err))
			return v, nil
		}
		if in, ok := v.session.Structure(); ok {
			v.structure = &in
			return v, v.compute()
		}
		return v, nil

	case messages.ErrorOccurred:
		v.status.SetError(msg.Err)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.path.Focused() {
		switch msg.Type {
		case tea.KeyEnter:
			path := v.path.Value()
			if path == "" {
				return v, nil
			}
			return v, v.open(path)
		case tea.KeyEsc:
			v.path.Blur()
			if v.structure == nil {
				return v, changeView(messages.ViewMenu)
			}
			return v, nil
		default:
			var cmd tea.Cmd
			v.path, cmd = v.path.Update(msg)
			return v, cmd
		}
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keys.Back):
		return v, changeView(messages.ViewMenu)
	case keymap.Matches(key, v.keys.Open):
		v.path.Reset()
		return v, v.path.Focus()
	case keymap.Matches(key, v.keys.Increase):
		if v.distance.Increase() {
			return v, v.compute()
		}
		return v, nil
	case keymap.Matches(key, v.keys.Decrease):
		if v.distance.Decrease() {
			return v, v.compute()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

// compute requests the interface at the current slider value.
func (v *View) compute() tea.Cmd {
	if v.structure == nil {
		return nil
	}
	ctx, iface := v.ctx, v.iface
	in, threshold := *v.structure, v.distance.Value()

	v.status.Set(status.StateWorking, "Computing interface...")
	return func() tea.Msg {
		set, err := iface.Find(ctx, in, threshold)
		return messages.InterfaceComputed{Threshold: threshold, Set: set, Err: err}
	}
}

func (v *View) open(path string) tea.Cmd {
	ctx, session := v.ctx, v.session
	v.status.Set(status.StateWorking, "Opening "+path)
	return func() tea.Msg {
		in, err := session.OpenStructure(ctx, path)
		return messages.StructureOpened{Input: in, Err: err}
	}
}

func (v *View) setResult(set domain.InterfaceResidueSet) {
	v.set = set
	v.computed = true

	var rows []table.Row
	for row := range v.iface.Table(set) {
		rows = append(rows, table.Row{cell(row.Target), cell(row.Binder)})
	}
	v.table.SetRows(rows)
	v.table.GotoTop()

	if set.Empty() {
		v.status.Set(status.StateReady, "No contacts at this distance")
		return
	}
	v.status.Set(status.StateReady, fmt.Sprintf("%d target, %d binder residues", len(set.Target), len(set.Binder)))
}

// View renders the structure view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Interface"))
	if v.structure != nil {
		b.WriteString("  " + v.styles.Subtitle.Render(domain.StructureName(v.structure.FileName)))
	}
	b.WriteString("\n\n")

	if v.path.Focused() || v.structure == nil {
		b.WriteString(v.path.View())
		b.WriteString("\n\n")
	}

	b.WriteString(v.distance.View())
	b.WriteString("\n\n")

	switch {
	case v.structure == nil:
		b.WriteString(v.styles.Muted.Render("Open a PDB file with chains A (target) and B (binder)."))
	case !v.computed:
		b.WriteString(v.styles.Muted.Render("Computing..."))
	case v.set.Empty():
		b.WriteString(v.styles.Warning.Render(
			fmt.Sprintf("No residues within %s of the other chain.", v.distance.Format())))
	default:
		b.WriteString(v.styles.Target.Render(fmt.Sprintf("%d target", len(v.set.Target))))
		b.WriteString(v.styles.Muted.Render(" / "))
		b.WriteString(v.styles.Binder.Render(fmt.Sprintf("%d binder", len(v.set.Binder))))
		b.WriteString(v.styles.Muted.Render(" residues"))
		b.WriteString("\n")
		b.WriteString(v.styles.Border.Render(v.table.View()))
	}

	b.WriteString("\n\n")
	b.WriteString(v.status.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.path.SetWidth(width)
	v.distance.SetWidth(max(10, width/3))
	v.status.SetWidth(width)
	// Title, slider, summary, borders and the status bar.
	v.table.SetHeight(max(3, height-12))
}

// Result returns the last computed interface and whether one exists.
func (v *View) Result() (domain.InterfaceResidueSet, bool) {
	return v.set, v.computed
}

// Distance returns the slider value.
func (v *View) Distance() float64 {
	return v.distance.Value()
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.status
}

// InputFocused reports whether the path input has focus.
func (v *View) InputFocused() bool {
	return v.path.Focused()
}

func cell(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}
