package mcp

import (
	"context"
	"io"
	"iter"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/binderdash/internal/adapters/driven/pdb"
	"github.com/custodia-labs/binderdash/internal/adapters/driven/scores"
	"github.com/custodia-labs/binderdash/internal/adapters/driven/spatial"
	"github.com/custodia-labs/binderdash/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/binderdash/internal/adapters/driven/thresholds"
	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driving"
	"github.com/custodia-labs/binderdash/internal/core/services"
)

// newTestPorts wires real services over in-memory adapters.
func newTestPorts(t *testing.T) *Ports {
	t.Helper()
	cache := memory.NewCache()
	structures := services.NewStructureService(pdb.NewParser(), cache)
	metrics, err := services.NewMetricsService(scores.NewCSVCodec(), thresholds.NewSource(""))
	require.NoError(t, err)

	return &Ports{
		Interface: services.NewInterfaceService(structures, spatial.NewGrid(), cache),
		Metrics:   metrics,
		Settings:  services.NewSettingsService(memory.NewConfigStore()),
		Version:   "test",
	}
}

// mockInterfaceService records the threshold it was called with.
type mockInterfaceService struct {
	set       domain.InterfaceResidueSet
	err       error
	threshold float64
}

func (m *mockInterfaceService) Find(
	_ context.Context,
	_ domain.StructureInput,
	threshold float64,
) (domain.InterfaceResidueSet, error) {
	m.threshold = threshold
	return m.set, m.err
}

func (m *mockInterfaceService) Detect(_ *domain.Structure, threshold float64) (domain.InterfaceResidueSet, error) {
	m.threshold = threshold
	return m.set, m.err
}

func (m *mockInterfaceService) Table(set domain.InterfaceResidueSet) iter.Seq[domain.ResidueRow] {
	return services.BuildTable(set.Target, set.Binder)
}

// mockMetricsService fails every call with err.
type mockMetricsService struct {
	err error
}

func (m *mockMetricsService) Load(context.Context, io.Reader) (*domain.ScoreTable, error) {
	return nil, m.err
}

func (m *mockMetricsService) Metrics(*domain.ScoreTable, string) (*domain.ScoreTable, error) {
	return nil, m.err
}

func (m *mockMetricsService) Groups() []domain.FilterGroup {
	return domain.DefaultFilterGroups()
}

func (m *mockMetricsService) Params(domain.MetricFilterSpec) (domain.ThresholdParams, error) {
	return domain.ThresholdParams{}, m.err
}

func (m *mockMetricsService) Activate(driving.FilterRequest) (domain.ActiveFilter, error) {
	return domain.ActiveFilter{}, m.err
}

func (m *mockMetricsService) Filter(*domain.ScoreTable, string, []domain.ActiveFilter) (*driving.FilterResult, error) {
	return nil, m.err
}

func (m *mockMetricsService) Export(io.Writer, *domain.ScoreTable) error {
	return m.err
}
