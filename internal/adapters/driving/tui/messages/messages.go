// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewStructure shows the interface of the loaded complex.
	ViewStructure
	// ViewDesigns filters the loaded score table.
	ViewDesigns
	// ViewSettings edits the stored defaults.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewStructure:
		return "structure"
	case ViewDesigns:
		return "designs"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// StructureOpened carries a structure file read by the session.
type StructureOpened struct {
	Input domain.StructureInput
	Err   error
}

// InterfaceComputed carries the interface of the current structure at
// Threshold.
type InterfaceComputed struct {
	Threshold float64
	Set       domain.InterfaceResidueSet
	Err       error
}

// ScoresOpened carries a score table read by the session.
type ScoresOpened struct {
	Table *domain.ScoreTable
	Err   error
}

// DesignsFiltered carries the result of applying the active filters.
// Seq orders requests so only the latest result is shown.
type DesignsFiltered struct {
	Seq    uint64
	Result *driving.FilterResult
	Err    error
}

// DesignsExported signals the filtered full stats were written.
type DesignsExported struct {
	Path  string
	Count int
	Err   error
}

// FileReloaded is sent when a watched session file changed on disk.
type FileReloaded struct {
	Event domain.SessionEvent
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
