package services

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driven"
	"github.com/custodia-labs/binderdash/internal/core/ports/driving"
	"github.com/custodia-labs/binderdash/internal/logger"
)

// Ensure MetricsService implements the interface.
var _ driving.MetricsService = (*MetricsService)(nil)

// MetricsService reads design score tables and filters them by metric
// cutoffs.
type MetricsService struct {
	codec   driven.ScoreCodec
	catalog domain.ThresholdCatalog
	groups  []domain.FilterGroup
	sets    map[string][]string
}

// NewMetricsService loads the threshold table from source and checks that
// every filter in the catalog has bounds. The returned error wraps a
// *domain.ConfigError and should abort startup.
func NewMetricsService(codec driven.ScoreCodec, source driven.ThresholdSource) (*MetricsService, error) {
	catalog, err := source.Load()
	if err != nil {
		return nil, fmt.Errorf("load thresholds from %s: %w", source.Location(), err)
	}

	groups := domain.DefaultFilterGroups()
	if err := catalog.Validate(groups); err != nil {
		return nil, fmt.Errorf("validate thresholds from %s: %w", source.Location(), err)
	}
	logger.Debug("loaded thresholds from %s", source.Location())

	return &MetricsService{
		codec:   codec,
		catalog: catalog,
		groups:  groups,
		sets:    domain.MetricSets(),
	}, nil
}

// Load reads a score table and drops columns with no values.
func (s *MetricsService) Load(ctx context.Context, r io.Reader) (*domain.ScoreTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := s.codec.Read(r)
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}

	trimmed := table.DropEmptyColumns()
	logger.Debug("read %d designs, %d columns (%d empty dropped)",
		trimmed.Len(), len(trimmed.Columns), len(table.Columns)-len(trimmed.Columns))
	return trimmed, nil
}

// Metrics projects Rank, Design and the named metric set.
func (s *MetricsService) Metrics(table *domain.ScoreTable, metricSet string) (*domain.ScoreTable, error) {
	metrics, ok := s.sets[metricSet]
	if !ok {
		return nil, fmt.Errorf("%w: unknown metric set %q", domain.ErrInvalidInput, metricSet)
	}

	columns := make([]string, 0, len(metrics)+2)
	columns = append(columns, domain.ColumnRank, domain.ColumnDesign)
	columns = append(columns, metrics...)
	return table.Select(columns)
}

// Groups returns the filter catalog.
func (s *MetricsService) Groups() []domain.FilterGroup {
	return s.groups
}

// Params returns the bounds of spec.
func (s *MetricsService) Params(spec domain.MetricFilterSpec) (domain.ThresholdParams, error) {
	return s.catalog.Params(spec)
}

// Activate resolves a request against the catalog. A nil cutoff takes the
// configured default.
func (s *MetricsService) Activate(req driving.FilterRequest) (domain.ActiveFilter, error) {
	spec, ok := domain.FindFilter(s.groups, req.MetricKey)
	if !ok {
		return domain.ActiveFilter{}, fmt.Errorf("%w: no filter for metric %q", domain.ErrNotFound, req.MetricKey)
	}

	params, err := s.catalog.Params(spec)
	if err != nil {
		return domain.ActiveFilter{}, err
	}

	f := domain.ActiveFilter{Spec: spec, Params: params, Cutoff: params.Default}
	if req.Cutoff != nil {
		f.Cutoff = *req.Cutoff
	}
	if err := checkCutoff(f); err != nil {
		return domain.ActiveFilter{}, err
	}
	return f, nil
}

// Filter applies filters to the metric projection of full and collects the
// full rows of the surviving designs.
func (s *MetricsService) Filter(
	full *domain.ScoreTable,
	metricSet string,
	filters []domain.ActiveFilter,
) (*driving.FilterResult, error) {
	metrics, err := s.Metrics(full, metricSet)
	if err != nil {
		return nil, err
	}

	filtered, applied, err := ApplyFilters(metrics, filters)
	if err != nil {
		return nil, err
	}

	stats, err := FullStats(full, filtered)
	if err != nil {
		return nil, err
	}

	logger.Info("%d of %d designs pass %d filters", filtered.Len(), metrics.Len(), len(applied))
	return &driving.FilterResult{
		Metrics: filtered,
		Full:    stats,
		Applied: applied,
	}, nil
}

// Export writes table as CSV.
func (s *MetricsService) Export(w io.Writer, table *domain.ScoreTable) error {
	if err := s.codec.Write(w, table); err != nil {
		return fmt.Errorf("write scores: %w", err)
	}
	return nil
}

// ApplyFilter keeps the rows whose value passes f. Rows with a null value
// in the filtered column are dropped.
func ApplyFilter(table *domain.ScoreTable, f domain.ActiveFilter) (*domain.ScoreTable, error) {
	if err := checkCutoff(f); err != nil {
		return nil, err
	}

	col := table.ColumnIndex(f.Spec.MetricKey)
	if col < 0 {
		return nil, &domain.MissingColumnError{Columns: []string{f.Spec.MetricKey}}
	}

	return table.Where(func(i int) bool {
		v, ok := table.Float(i, col)
		return ok && f.Params.Direction.Keep(v, f.Cutoff)
	}), nil
}

// ApplyFilters folds ApplyFilter over filters and returns the labels of
// the filters applied, in order. With no filters the table is returned
// unchanged.
func ApplyFilters(table *domain.ScoreTable, filters []domain.ActiveFilter) (*domain.ScoreTable, []string, error) {
	applied := make([]string, 0, len(filters))
	for _, f := range filters {
		next, err := ApplyFilter(table, f)
		if err != nil {
			return nil, nil, fmt.Errorf("apply %s: %w", f.Spec.Label, err)
		}
		logger.Debug("%s: %d -> %d rows", f.Describe(), table.Len(), next.Len())
		table = next
		applied = append(applied, f.Spec.Label)
	}
	return table, applied, nil
}

// FullStats returns the rows of full whose Design appears in filtered,
// in full's order.
func FullStats(full, filtered *domain.ScoreTable) (*domain.ScoreTable, error) {
	col := full.ColumnIndex(domain.ColumnDesign)
	if col < 0 {
		return nil, &domain.MissingColumnError{Columns: []string{domain.ColumnDesign}}
	}

	keep := filtered.Designs()
	return full.Where(func(i int) bool {
		_, ok := keep[full.Cell(i, col)]
		return ok
	}), nil
}

func checkCutoff(f domain.ActiveFilter) error {
	if math.IsNaN(f.Cutoff) || !f.Params.InRange(f.Cutoff) {
		return fmt.Errorf("%w: %s cutoff %g outside [%g, %g]",
			domain.ErrInvalidInput, f.Spec.MetricKey, f.Cutoff, f.Params.Min, f.Params.Max)
	}
	if !f.Params.Direction.IsValid() {
		return &domain.ConfigError{Metric: f.Spec.ID(), Msg: fmt.Sprintf("unknown direction %q", f.Params.Direction)}
	}
	return nil
}
