// Package settings provides the settings view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/components/slider"
	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionIndex
	SectionCache
)

// Overview rows.
const (
	itemDistance = iota
	itemIndex
	itemCache
	itemCount
)

const (
	keyDown  = "down"
	keyEnter = "enter"
)

var errNoService = errors.New("settings service not available")

// View edits the stored defaults.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error
	saved    bool

	section  Section
	selected int
	distance *slider.Slider

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		distance: slider.New(s, "", "Å",
			domain.MinDistanceThreshold, domain.MaxDistanceThreshold,
			domain.DistanceThresholdStep, domain.DefaultDistanceThreshold),
	}
}

// Init loads the current settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: errNoService}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.settings = msg.Settings
			v.distance.SetValue(msg.Settings.Interface.DistanceThreshold)
		}
		return v, nil

	case messages.SettingsSaved:
		v.err = msg.Err
		if msg.Err != nil {
			return v, nil
		}
		v.saved = true
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		v.selected = itemIndex
		if v.section == SectionCache {
			v.selected = itemCache
		}
		v.section = SectionOverview
		return v, nil
	}

	if v.settings == nil {
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionIndex:
		return v.handleChoiceKeys(msg, len(domain.AllIndexStrategies()), v.setIndex)
	case SectionCache:
		return v.handleChoiceKeys(msg, len(domain.AllCacheBackends()), v.setCache)
	}
	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < itemCount-1 {
			v.selected++
		}
	case "left", "h":
		if v.selected == itemDistance {
			v.distance.Decrease()
		}
	case "right", "l":
		if v.selected == itemDistance {
			v.distance.Increase()
		}
	case keyEnter:
		switch v.selected {
		case itemDistance:
			return v, v.setDistance(v.distance.Value())
		case itemIndex:
			v.section = SectionIndex
			v.selected = indexOf(domain.AllIndexStrategies(), v.settings.Interface.Index)
		case itemCache:
			v.section = SectionCache
			v.selected = indexOf(domain.AllCacheBackends(), v.settings.Cache.Backend)
		}
	}
	return v, nil
}

func (v *View) handleChoiceKeys(msg tea.KeyMsg, n int, choose func(int) tea.Cmd) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < n-1 {
			v.selected++
		}
	case keyEnter:
		cmd := choose(v.selected)
		v.section = SectionOverview
		return v, cmd
	}
	return v, nil
}

func (v *View) setDistance(d float64) tea.Cmd {
	return v.save(func(s driving.SettingsService) error {
		return s.SetDistance(d)
	})
}

func (v *View) setIndex(i int) tea.Cmd {
	v.selected = itemIndex
	strategy := domain.AllIndexStrategies()[i]
	return v.save(func(s driving.SettingsService) error {
		return s.SetIndex(strategy)
	})
}

func (v *View) setCache(i int) tea.Cmd {
	v.selected = itemCache
	backend := domain.AllCacheBackends()[i]
	dir := v.settings.Cache.Dir
	return v.save(func(s driving.SettingsService) error {
		return s.SetCache(backend, dir)
	})
}

func (v *View) save(apply func(driving.SettingsService) error) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: errNoService}
		}
		return messages.SettingsSaved{Err: apply(svc)}
	}
}

func indexOf[T comparable](items []T, item T) int {
	for i, it := range items {
		if it == item {
			return i
		}
	}
	return 0
}

// View renders the settings view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.settings == nil {
		if v.err != nil {
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		} else {
			b.WriteString(v.styles.Muted.Render("Loading settings..."))
		}
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionIndex:
		b.WriteString(v.renderChoices("Spatial index", descriptions(domain.AllIndexStrategies())))
	case SectionCache:
		b.WriteString(v.renderChoices("Cache backend", descriptions(domain.AllCacheBackends())))
	}

	b.WriteString("\n")
	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		b.WriteString("\n")
	case v.saved:
		b.WriteString(v.styles.Success.Render("Saved. Takes effect on next start."))
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Help.Render(v.renderHelp()))
	return b.String()
}

func (v *View) renderOverview() string {
	rows := []struct{ label, value string }{
		{"Distance", v.distance.View()},
		{"Spatial index", v.settings.Interface.Index.Description()},
		{"Cache backend", v.settings.Cache.Backend.Description()},
	}

	var b strings.Builder
	for i, r := range rows {
		cursor := "  "
		label := v.styles.Normal.Render(fmt.Sprintf("%-14s", r.label))
		if i == v.selected {
			cursor = "> "
			label = v.styles.Subtitle.Render(fmt.Sprintf("%-14s", r.label))
		}
		b.WriteString(cursor + label + " " + r.value + "\n")
	}

	path := v.settings.Thresholds.Path
	if path == "" {
		path = "built-in"
	}
	b.WriteString("\n" + v.styles.Muted.Render("Threshold table: "+path) + "\n")
	return b.String()
}

func (v *View) renderChoices(title string, labels []string) string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(title))
	b.WriteString("\n\n")
	for i, l := range labels {
		cursor := "  "
		if i == v.selected {
			cursor = "> "
			l = v.styles.Selected.Render(l)
		}
		b.WriteString(cursor + l + "\n")
	}
	return b.String()
}

func (v *View) renderHelp() string {
	if v.section == SectionOverview && v.selected == itemDistance {
		return "[←/→] Adjust  [Enter] Save  [j/k] Navigate  [Esc] Back"
	}
	return "[j/k] Navigate  [Enter] Select  [Esc] Back"
}

type described interface {
	Description() string
}

func descriptions[T described](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Description()
	}
	return out
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.distance.SetWidth(max(10, width/3))
}

// Reset returns to the overview.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.err = nil
	v.saved = false
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}
