package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/binderdash/internal/core/domain"
)

// FilterRequest switches on the filter for MetricKey with a cutoff.
// A nil Cutoff uses the configured default.
type FilterRequest struct {
	MetricKey string
	Cutoff    *float64
}

// FilterResult is the outcome of applying every active filter.
type FilterResult struct {
	// Metrics is the filtered metric projection.
	Metrics *domain.ScoreTable

	// Full holds the full rows of the designs that survived.
	Full *domain.ScoreTable

	// Applied are the labels of the filters applied, in order.
	Applied []string
}

// MetricsService loads design scores and filters them.
type MetricsService interface {
	// Load reads a score table and drops entirely empty columns.
	Load(ctx context.Context, r io.Reader) (*domain.ScoreTable, error)

	// Metrics projects Rank, Design and the metric columns of the named set.
	Metrics(table *domain.ScoreTable, metricSet string) (*domain.ScoreTable, error)

	// Groups returns the filter catalog.
	Groups() []domain.FilterGroup

	// Params returns the threshold bounds of a filter.
	Params(spec domain.MetricFilterSpec) (domain.ThresholdParams, error)

	// Activate resolves a request into an ActiveFilter.
	Activate(req FilterRequest) (domain.ActiveFilter, error)

	// Filter applies filters to the metric projection of full and looks
	// up the surviving designs' full rows.
	Filter(full *domain.ScoreTable, metricSet string, filters []domain.ActiveFilter) (*FilterResult, error)

	// Export writes a table as CSV.
	Export(w io.Writer, table *domain.ScoreTable) error
}
