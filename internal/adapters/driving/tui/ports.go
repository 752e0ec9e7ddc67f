// Package tui provides the interactive terminal dashboard for binderdash.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/binderdash/internal/core/ports/driving"
)

// Ports aggregates the driving ports the dashboard calls into.
type Ports struct {
	// Interface detects interface residues.
	Interface driving.InterfaceService

	// Metrics filters design score tables.
	Metrics driving.MetricsService

	// Settings manages stored defaults. Optional.
	Settings driving.SettingsService

	// Session holds the opened structure and score files.
	Session driving.SessionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Interface == nil {
		return ErrMissingInterfaceService
	}
	if p.Metrics == nil {
		return ErrMissingMetricsService
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	return nil
}
