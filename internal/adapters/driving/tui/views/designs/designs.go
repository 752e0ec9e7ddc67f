// Package designs provides the design screening view: per-metric filter
// toggles with cutoff sliders over the loaded score table, and export of
// the surviving designs' full stats.
package designs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
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

// Pane identifies which half of the view receives navigation keys.
type Pane int

const (
	PaneFilters Pane = iota
	PaneTable
)

const (
	minColumnWidth = 6
	maxColumnWidth = 24
)

// filter is one row of the filter list.
type filter struct {
	group   string
	spec    domain.MetricFilterSpec
	params  domain.ThresholdParams
	cutoff  *slider.Slider
	enabled bool
}

// View filters the session score table.
type View struct {
	styles  *styles.Styles
	keys    *keymap.KeyMap
	metrics driving.MetricsService
	session driving.SessionService
	ctx     context.Context

	metricSet string
	filters   []*filter
	cursor    int
	pane      Pane

	openInput   *input.PathInput
	exportInput *input.PathInput
	table       table.Model
	status      *status.Bar

	scores *domain.ScoreTable
	result *driving.FilterResult
	seq    uint64

	width  int
	height int
	ready  bool
}

// NewView creates the designs view with one filter per catalog entry, all
// switched off at their default cutoff.
func NewView(s *styles.Styles, metrics driving.MetricsService, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	keys := keymap.DefaultKeyMap()

	v := &View{
		styles:      s,
		keys:        keys,
		metrics:     metrics,
		session:     session,
		ctx:         context.Background(),
		metricSet:   domain.MetricSetTop,
		openInput:   input.NewPathInput(s, "Scores", "path/to/final_design_stats.csv"),
		exportInput: input.NewPathInput(s, "Export to", domain.FilteredStatsFileName),
		table:       table.New(table.WithFocused(false), table.WithHeight(8)),
		status:      status.NewBar(s, keys.DesignsHelp()),
		width:       80,
		height:      24,
	}

	ts := table.DefaultStyles()
	ts.Header = s.TableHeader
	ts.Selected = s.TableSelected
	v.table.SetStyles(ts)

	for _, g := range metrics.Groups() {
		for _, spec := range g.Filters {
			params, err := metrics.Params(spec)
			if err != nil {
				continue
			}
			v.filters = append(v.filters, &filter{
				group:  g.Name,
				spec:   spec,
				params: params,
				cutoff: slider.New(s, "", spec.Unit, params.Min, params.Max, params.Step, params.Default),
			})
		}
	}
	return v
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init shows the session score table, or focuses the path input when none
// is loaded.
func (v *View) Init() tea.Cmd {
	if scores, ok := v.session.Scores(); ok {
		v.scores = scores
		return v.apply()
	}
	return v.openInput.Focus()
}

// Update handles messages for the designs view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ScoresOpened:
		if msg.Err != nil {
			v.status.SetError(msg.Err)
			return v, nil
		}
		v.scores = msg.Table
		v.openInput.Blur()
		return v, v.apply()

	case messages.DesignsFiltered:
		if msg.Seq != v.seq {
			return v, nil
		}
		if msg.Err != nil {
			v.status.SetError(msg.Err)
			return v, nil
		}
		v.setResult(msg.Result)
		return v, nil

	case messages.DesignsExported:
		if msg.Err != nil {
			v.status.SetError(msg.Err)
			return v, nil
		}
		v.status.Set(status.StateInfo, fmt.Sprintf("Wrote %d designs to %s", msg.Count, msg.Path))
		return v, nil

	case messages.FileReloaded:
		if msg.Event.Kind != domain.InputScores {
			return v, nil
		}
		if msg.Event.Err != nil {
			v.status.SetError(fmt.Errorf("reload %s: %w", msg.Event.Path, msg.Event.Err))
			return v, nil
		}
		if scores, ok := v.session.Scores(); ok {
			v.scores = scores
			return v, v.apply()
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
	switch {
	case v.openInput.Focused():
		return v.handleInput(msg, v.openInput, v.open)
	case v.exportInput.Focused():
		return v.handleInput(msg, v.exportInput, v.export)
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keys.Back):
		return v, changeView(messages.ViewMenu)
	case keymap.Matches(key, v.keys.Open):
		v.openInput.Reset()
		return v, v.openInput.Focus()
	case keymap.Matches(key, v.keys.Export):
		if v.result == nil {
			v.status.Set(status.StateError, "nothing to export")
			return v, nil
		}
		v.exportInput.SetValue(domain.FilteredStatsFileName)
		return v, v.exportInput.Focus()
	case keymap.Matches(key, v.keys.Focus):
		v.togglePane()
		return v, nil
	}

	if v.pane == PaneTable {
		var cmd tea.Cmd
		v.table, cmd = v.table.Update(msg)
		return v, cmd
	}
	return v.handleFilterKey(key)
}

func (v *View) handleInput(msg tea.KeyMsg, in *input.PathInput, submit func(string) tea.Cmd) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		path := in.Value()
		if path == "" {
			return v, nil
		}
		return v, submit(path)
	case tea.KeyEsc:
		in.Blur()
		if v.scores == nil {
			return v, changeView(messages.ViewMenu)
		}
		return v, nil
	default:
		_, cmd := in.Update(msg)
		return v, cmd
	}
}

func (v *View) handleFilterKey(key string) (*View, tea.Cmd) {
	if len(v.filters) == 0 {
		return v, nil
	}
	f := v.filters[v.cursor]

	switch {
	case keymap.Matches(key, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case keymap.Matches(key, v.keys.Down):
		if v.cursor < len(v.filters)-1 {
			v.cursor++
		}
	case keymap.Matches(key, v.keys.Toggle):
		f.enabled = !f.enabled
		return v, v.apply()
	case keymap.Matches(key, v.keys.Increase):
		if f.cutoff.Increase() && f.enabled {
			return v, v.apply()
		}
	case keymap.Matches(key, v.keys.Decrease):
		if f.cutoff.Decrease() && f.enabled {
			return v, v.apply()
		}
	}
	return v, nil
}

func (v *View) togglePane() {
	if v.pane == PaneFilters {
		v.pane = PaneTable
		v.table.Focus()
		return
	}
	v.pane = PaneFilters
	v.table.Blur()
}

// ActiveFilters resolves the enabled filters in list order.
func (v *View) ActiveFilters() ([]domain.ActiveFilter, error) {
	var active []domain.ActiveFilter
	for _, f := range v.filters {
		if !f.enabled {
			continue
		}
		cutoff := f.cutoff.Value()
		af, err := v.metrics.Activate(driving.FilterRequest{MetricKey: f.spec.MetricKey, Cutoff: &cutoff})
		if err != nil {
			return nil, err
		}
		active = append(active, af)
	}
	return active, nil
}

// apply requests a filter pass over the loaded scores.
func (v *View) apply() tea.Cmd {
	if v.scores == nil {
		return nil
	}
	active, err := v.ActiveFilters()
	if err != nil {
		v.status.SetError(err)
		return nil
	}

	v.seq++
	seq, full, set, metrics := v.seq, v.scores, v.metricSet, v.metrics
	v.status.Set(status.StateWorking, "Filtering...")
	return func() tea.Msg {
		result, err := metrics.Filter(full, set, active)
		return messages.DesignsFiltered{Seq: seq, Result: result, Err: err}
	}
}

func (v *View) open(path string) tea.Cmd {
	ctx, session := v.ctx, v.session
	v.status.Set(status.StateWorking, "Opening "+path)
	return func() tea.Msg {
		scores, err := session.OpenScores(ctx, path)
		return messages.ScoresOpened{Table: scores, Err: err}
	}
}

func (v *View) export(path string) tea.Cmd {
	v.exportInput.Blur()
	if v.result == nil {
		return nil
	}
	full, metrics := v.result.Full, v.metrics
	return func() tea.Msg {
		written, err := writeCSV(metrics, full, path)
		return messages.DesignsExported{Path: written, Count: full.Len(), Err: err}
	}
}

// writeCSV exports table to path, or to the default file name inside path
// when path is a directory.
func writeCSV(metrics driving.MetricsService, t *domain.ScoreTable, path string) (string, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, domain.FilteredStatsFileName)
	}

	f, err := os.Create(path)
	if err != nil {
		return path, fmt.Errorf("create %s: %w", path, err)
	}
	if err := metrics.Export(f, t); err != nil {
		f.Close()
		return path, err
	}
	return path, f.Close()
}

func (v *View) setResult(result *driving.FilterResult) {
	v.result = result
	t := result.Metrics

	// Clear rows first so the new columns never meet rows of the old shape.
	v.table.SetRows(nil)
	columns := make([]table.Column, len(t.Columns))
	for i, name := range t.Columns {
		width := max(minColumnWidth, len(name))
		for r := range t.Rows {
			width = max(width, len(t.Cell(r, i)))
		}
		columns[i] = table.Column{Title: name, Width: min(maxColumnWidth, width)}
	}
	v.table.SetColumns(columns)

	rows := make([]table.Row, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = table.Row(r)
	}
	v.table.SetRows(rows)
	v.table.GotoTop()

	v.status.Set(status.StateReady, fmt.Sprintf("%d of %d designs pass", t.Len(), v.scores.Len()))
}

// View renders the designs view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Designs"))
	if v.scores != nil {
		b.WriteString("  " + v.styles.Muted.Render(fmt.Sprintf("%d loaded", v.scores.Len())))
	}
	b.WriteString("\n\n")

	if v.openInput.Focused() || v.scores == nil {
		b.WriteString(v.openInput.View())
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderFilters())
	b.WriteString("\n")

	if v.result != nil {
		if applied := v.result.Applied; len(applied) > 0 {
			b.WriteString(v.styles.Muted.Render("Applied: " + strings.Join(applied, ", ")))
			b.WriteString("\n")
		}
		if v.result.Metrics.Len() == 0 {
			b.WriteString(v.styles.Warning.Render("No designs pass the active filters."))
		} else {
			b.WriteString(v.styles.Border.Render(v.table.View()))
		}
		b.WriteString("\n")
	}

	if v.exportInput.Focused() {
		b.WriteString(v.exportInput.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.status.View())
	return b.String()
}

func (v *View) renderFilters() string {
	var b strings.Builder
	group := ""
	for i, f := range v.filters {
		if f.group != group {
			group = f.group
			b.WriteString(v.styles.Subtitle.Render(groupTitle(group)))
			b.WriteString("\n")
		}

		cursor := "  "
		if i == v.cursor && v.pane == PaneFilters {
			cursor = "> "
		}
		box := "[ ]"
		label := v.styles.Muted.Render(f.spec.Label)
		if f.enabled {
			box = "[x]"
			label = v.styles.Normal.Render(f.spec.Label)
		}
		fmt.Fprintf(&b, "%s%s %-24s %s %s\n", cursor, box, label, f.params.Direction.Symbol(), f.cutoff.View())
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.openInput.SetWidth(width)
	v.exportInput.SetWidth(width)
	v.status.SetWidth(width)
	v.table.SetWidth(max(20, width-2))
	for _, f := range v.filters {
		f.cutoff.SetWidth(max(10, width/4))
	}
	// Filter list plus group headers, title, summary and status bar.
	v.table.SetHeight(max(3, height-len(v.filters)-12))
}

// Result returns the last filter result, nil before the first pass.
func (v *View) Result() *driving.FilterResult {
	return v.result
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.status
}

// Pane returns the pane receiving navigation keys.
func (v *View) Pane() Pane {
	return v.pane
}

func groupTitle(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}
