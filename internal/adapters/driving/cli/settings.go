package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/binderdash/internal/core/domain"
)

var settingsCacheDir string

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the defaults stored in ~/.binderdash/config.toml.

Changes take effect the next time binderdash starts.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsDistanceCmd = &cobra.Command{
	Use:   "distance <angstrom>",
	Short: "Set the default interface distance",
	Long: fmt.Sprintf(`Set the default contact distance used by 'interface', the dashboard
and the MCP tools. Must lie within [%g, %g] Å.`, domain.MinDistanceThreshold, domain.MaxDistanceThreshold),
	Args: cobra.ExactArgs(1),
	RunE: runSettingsDistance,
}

var settingsIndexCmd = &cobra.Command{
	Use:   "index <grid|brute>",
	Short: "Set the spatial index strategy",
	Long: `Set how interface detection finds neighbouring atoms.

Available strategies:
  grid   - Uniform cell list (default, fast on large complexes)
  brute  - Compare every atom pair

Both produce identical results.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(domain.IndexGrid), string(domain.IndexBruteForce)},
	RunE:      runSettingsIndex,
}

var settingsCacheCmd = &cobra.Command{
	Use:   "cache <memory|sqlite>",
	Short: "Set where interface results are cached",
	Long: `Set the interface result cache.

Available backends:
  memory  - Keep results for the current run only (default)
  sqlite  - Keep results on disk across runs`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(domain.CacheMemory), string(domain.CacheSQLite)},
	RunE:      runSettingsCache,
}

var settingsThresholdsCmd = &cobra.Command{
	Use:   "thresholds [path]",
	Short: "Use a custom threshold table",
	Long: `Point binderdash at a JSON or TOML threshold table. Run without a path
to go back to the built-in table.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsThresholds,
}

func init() {
	settingsCacheCmd.Flags().StringVar(&settingsCacheDir, "dir", "", "directory for the SQLite cache (default ~/.binderdash/cache)")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsDistanceCmd)
	settingsCmd.AddCommand(settingsIndexCmd)
	settingsCmd.AddCommand(settingsCacheCmd)
	settingsCmd.AddCommand(settingsThresholdsCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Interface]")
	cmd.Printf("  Distance: %g Å\n", settings.Interface.DistanceThreshold)
	cmd.Printf("  Index: %s\n", settings.Interface.Index.Description())
	cmd.Println()

	cmd.Println("[Cache]")
	cmd.Printf("  Backend: %s\n", settings.Cache.Backend.Description())
	if settings.Cache.Backend == domain.CacheSQLite {
		dir := settings.Cache.Dir
		if dir == "" {
			dir = "~/.binderdash/cache"
		}
		cmd.Printf("  Directory: %s\n", dir)
	}
	cmd.Println()

	cmd.Println("[Thresholds]")
	path := settings.Thresholds.Path
	if path == "" {
		path = "(built-in)"
	}
	cmd.Printf("  Table: %s\n", path)

	return nil
}

func runSettingsDistance(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%w: distance %q is not a number", domain.ErrInvalidInput, args[0])
	}
	if err := settingsService.SetDistance(v); err != nil {
		return fmt.Errorf("failed to set distance: %w", err)
	}
	cmd.Printf("Set interface distance to: %g Å\n", v)
	return nil
}

func runSettingsIndex(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	strategy := domain.IndexStrategy(args[0])
	if err := settingsService.SetIndex(strategy); err != nil {
		return fmt.Errorf("failed to set index: %w", err)
	}
	cmd.Printf("Set index strategy to: %s\n", strategy.Description())
	return nil
}

func runSettingsCache(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	backend := domain.CacheBackend(args[0])
	if err := settingsService.SetCache(backend, settingsCacheDir); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	cmd.Printf("Set cache backend to: %s\n", backend.Description())
	return nil
}

func runSettingsThresholds(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	if err := settingsService.SetThresholdsPath(path); err != nil {
		return fmt.Errorf("failed to set thresholds path: %w", err)
	}
	if path == "" {
		cmd.Println("Using the built-in threshold table")
	} else {
		cmd.Printf("Using threshold table: %s\n", path)
	}
	return nil
}
