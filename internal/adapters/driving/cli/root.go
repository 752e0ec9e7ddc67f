// Package cli provides the cobra command tree for binderdash.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/binderdash/internal/core/ports/driving"
	"github.com/custodia-labs/binderdash/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services wired in by main.
var (
	interfaceService driving.InterfaceService
	metricsService   driving.MetricsService
	settingsService  driving.SettingsService
	sessionService   driving.SessionService
)

// Services holds the driving ports the commands call into.
type Services struct {
	Interface driving.InterfaceService
	Metrics   driving.MetricsService
	Settings  driving.SettingsService
	Session   driving.SessionService
}

var rootCmd = &cobra.Command{
	Use:   "binderdash",
	Short: "Explore protein binder designs",
	Long: `binderdash inspects binder/target complexes and screens scored designs.

It reports the residues at the interface between chain A (target) and
chain B (binder) of a PDB file, and filters a design score table by
per-metric cutoffs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print stage timings and cache activity to stderr")
}

// SetServices installs the services used by all commands.
func SetServices(s Services) {
	interfaceService = s.Interface
	metricsService = s.Metrics
	settingsService = s.Settings
	sessionService = s.Session
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
