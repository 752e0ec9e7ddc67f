package cli

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"
)

var thresholdsCmd = &cobra.Command{
	Use:   "thresholds",
	Short: "Show the metric filters and their cutoff bounds",
	Long: `Lists every metric filter by group with its direction, allowed range,
default cutoff and step.

The table comes from the file named by 'binderdash settings thresholds',
or the built-in table when none is set.`,
	Args: cobra.NoArgs,
	RunE: runThresholds,
}

func init() {
	rootCmd.AddCommand(thresholdsCmd)
}

func runThresholds(cmd *cobra.Command, _ []string) error {
	if metricsService == nil {
		return errors.New("metrics service not configured")
	}

	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil && settings.Thresholds.Path != "" {
			cmd.Printf("Threshold table: %s\n", settings.Thresholds.Path)
		} else {
			cmd.Println("Threshold table: built-in")
		}
	}

	headers := []string{"Group", "Filter", "Metric", "Keep", "Min", "Max", "Default", "Step", "Unit"}
	var rows [][]string
	for _, g := range metricsService.Groups() {
		for _, spec := range g.Filters {
			p, err := metricsService.Params(spec)
			if err != nil {
				return err
			}
			rows = append(rows, []string{
				g.Name,
				spec.Label,
				spec.MetricKey,
				p.Direction.Symbol(),
				formatFloat(p.Min),
				formatFloat(p.Max),
				formatFloat(p.Default),
				formatFloat(p.Step),
				spec.Unit,
			})
		}
	}
	printTable(cmd, headers, rows)
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
