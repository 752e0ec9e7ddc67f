package mcp

import (
	"github.com/custodia-labs/binderdash/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Interface detects interface residues.
	Interface driving.InterfaceService

	// Metrics loads and filters design scores.
	Metrics driving.MetricsService

	// Settings supplies the default distance threshold. Optional.
	Settings driving.SettingsService

	// Version is reported to clients. Empty uses DefaultVersion.
	Version string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Interface == nil {
		return ErrMissingInterfaceService
	}
	if p.Metrics == nil {
		return ErrMissingMetricsService
	}
	return nil
}
