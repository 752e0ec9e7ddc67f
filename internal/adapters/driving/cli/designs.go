package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driving"
)

var (
	designsMetricSet string
	designsFilters   []string
	designsOut       string
	designsJSON      bool
)

var designsCmd = &cobra.Command{
	Use:   "designs",
	Short: "Inspect and filter design score tables",
}

var designsMetricsCmd = &cobra.Command{
	Use:   "metrics <scores.csv>",
	Short: "Show the key metrics of every design",
	Args:  cobra.ExactArgs(1),
	RunE:  runDesignsMetrics,
}

var designsFilterCmd = &cobra.Command{
	Use:   "filter <scores.csv>",
	Short: "Filter designs by metric cutoffs",
	Long: `Keeps the designs that pass every --filter. Each filter names a metric
column, optionally with a cutoff: --filter Average_dG or
--filter Average_pTM=0.6. Without a cutoff the configured default is used.
Whether a design must be at least or at most the cutoff is set per metric
in the threshold table (see 'binderdash thresholds').

Designs with an empty or non-numeric value for a filtered metric are
dropped.

Use --out to write the full rows of the surviving designs as CSV. If --out
is a directory the file is named ` + domain.FilteredStatsFileName + `.`,
	Args: cobra.ExactArgs(1),
	RunE: runDesignsFilter,
}

func init() {
	designsCmd.PersistentFlags().StringVar(&designsMetricSet, "metrics", domain.MetricSetTop, "metric set to display")
	designsCmd.PersistentFlags().BoolVar(&designsJSON, "json", false, "output results as JSON")
	designsFilterCmd.Flags().StringArrayVarP(&designsFilters, "filter", "f", nil, "metric[=cutoff] (repeatable)")
	designsFilterCmd.Flags().StringVarP(&designsOut, "out", "o", "", "write full stats of passing designs to this CSV file or directory")

	designsCmd.AddCommand(designsMetricsCmd)
	designsCmd.AddCommand(designsFilterCmd)
	rootCmd.AddCommand(designsCmd)
}

func runDesignsMetrics(cmd *cobra.Command, args []string) error {
	if metricsService == nil || sessionService == nil {
		return errors.New("metrics service not configured")
	}

	full, err := sessionService.OpenScores(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	metrics, err := metricsService.Metrics(full, designsMetricSet)
	if err != nil {
		return err
	}

	if designsJSON {
		return printJSON(cmd, tableRecords(metrics))
	}
	printTable(cmd, metrics.Columns, rowsOf(metrics))
	return nil
}

func runDesignsFilter(cmd *cobra.Command, args []string) error {
	if metricsService == nil || sessionService == nil {
		return errors.New("metrics service not configured")
	}

	filters, err := activateFilters(designsFilters)
	if err != nil {
		return err
	}

	full, err := sessionService.OpenScores(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	result, err := metricsService.Filter(full, designsMetricSet, filters)
	if err != nil {
		return fmt.Errorf("filtering failed: %w", err)
	}

	if designsOut != "" {
		path, err := exportFullStats(result.Full, designsOut)
		if err != nil {
			return err
		}
		cmd.Printf("Wrote %d designs to %s\n", result.Full.Len(), path)
	}

	if designsJSON {
		return printJSON(cmd, struct {
			Applied []string            `json:"applied"`
			Designs []map[string]string `json:"designs"`
		}{result.Applied, tableRecords(result.Metrics)})
	}

	if len(filters) > 0 {
		cmd.Println("Applied Filters:")
		for _, f := range filters {
			cmd.Printf("  %s\n", f.Describe())
		}
	}
	cmd.Printf("%d of %d designs pass\n", result.Metrics.Len(), full.Len())
	if result.Metrics.Len() > 0 {
		printTable(cmd, result.Metrics.Columns, rowsOf(result.Metrics))
	}
	return nil
}

// activateFilters parses "metric" and "metric=cutoff" arguments.
func activateFilters(specs []string) ([]domain.ActiveFilter, error) {
	filters := make([]domain.ActiveFilter, 0, len(specs))
	for _, s := range specs {
		req := driving.FilterRequest{MetricKey: s}
		if key, raw, ok := strings.Cut(s, "="); ok {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: cutoff %q for %s is not a number", domain.ErrInvalidInput, raw, key)
			}
			req = driving.FilterRequest{MetricKey: strings.TrimSpace(key), Cutoff: &v}
		}

		f, err := metricsService.Activate(req)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

func exportFullStats(table *domain.ScoreTable, out string) (string, error) {
	path := out
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		path = filepath.Join(out, domain.FilteredStatsFileName)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := metricsService.Export(f, table); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

func rowsOf(t *domain.ScoreTable) [][]string {
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r
	}
	return rows
}

func tableRecords(t *domain.ScoreTable) []map[string]string {
	records := make([]map[string]string, len(t.Rows))
	for i := range t.Rows {
		rec := make(map[string]string, len(t.Columns))
		for c, name := range t.Columns {
			rec[name] = t.Cell(i, c)
		}
		records[i] = rec
	}
	return records
}
