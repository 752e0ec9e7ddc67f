package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/binderdash/internal/core/domain"
)

var (
	interfaceDistance float64
	interfaceJSON     bool
)

var interfaceCmd = &cobra.Command{
	Use:   "interface <structure.pdb>",
	Short: "List interface residues of a binder complex",
	Long: `Reports residues of chain A (target) and chain B (binder) that have at
least one atom closer than the distance threshold to an atom of the other
chain. Waters, ligands and other HETATM residues are ignored.

The two columns are independent ascending lists shown side by side.`,
	Args: cobra.ExactArgs(1),
	RunE: runInterface,
}

func init() {
	interfaceCmd.Flags().Float64VarP(&interfaceDistance, "distance", "d", 0,
		"contact distance in Å (default from settings)")
	interfaceCmd.Flags().BoolVar(&interfaceJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(interfaceCmd)
}

type interfaceOutput struct {
	Structure string  `json:"structure"`
	Distance  float64 `json:"distance"`
	Target    []int   `json:"target"`
	Binder    []int   `json:"binder"`
}

func runInterface(cmd *cobra.Command, args []string) error {
	if interfaceService == nil || sessionService == nil {
		return errors.New("interface service not configured")
	}

	distance, err := resolveDistance(cmd.Flags().Changed("distance"), interfaceDistance)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	in, err := sessionService.OpenStructure(ctx, args[0])
	if err != nil {
		return err
	}

	set, err := interfaceService.Find(ctx, in, distance)
	if err != nil {
		return fmt.Errorf("interface detection failed: %w", err)
	}

	name := domain.StructureName(in.FileName)
	if interfaceJSON {
		return printJSON(cmd, interfaceOutput{
			Structure: name,
			Distance:  distance,
			Target:    set.Target.Sorted(),
			Binder:    set.Binder.Sorted(),
		})
	}

	cmd.Printf("%s: %d target and %d binder residues within %g Å\n",
		name, len(set.Target), len(set.Binder), distance)
	if set.Empty() {
		return nil
	}

	var rows [][]string
	for row := range interfaceService.Table(set) {
		rows = append(rows, []string{residueCell(row.Target), residueCell(row.Binder)})
	}
	printTable(cmd, []string{"Target (A)", "Binder (B)"}, rows)
	return nil
}

// resolveDistance returns flagValue when the flag was given, or the
// configured default otherwise. An explicit value is passed through
// unchecked so detection rejects non-positive thresholds.
func resolveDistance(set bool, flagValue float64) (float64, error) {
	if set {
		return flagValue, nil
	}
	if settingsService == nil {
		return domain.DefaultDistanceThreshold, nil
	}
	settings, err := settingsService.Get()
	if err != nil {
		return 0, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings.Interface.DistanceThreshold, nil
}

func residueCell(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}
