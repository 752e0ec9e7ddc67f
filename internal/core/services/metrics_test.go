package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driving"
)

func ptr(v float64) *float64 {
	return &v
}

func filterOn(key string, direction domain.Direction, cutoff float64) domain.ActiveFilter {
	return domain.ActiveFilter{
		Spec:   domain.MetricFilterSpec{Label: "Filter " + key, MetricType: domain.MetricTypeRosetta, MetricKey: key},
		Params: domain.ThresholdParams{Min: -100, Max: 100, Default: 0, Step: 1, Direction: direction},
		Cutoff: cutoff,
	}
}

func designs(t *domain.ScoreTable) []string {
	col := t.ColumnIndex(domain.ColumnDesign)
	out := make([]string, 0, t.Len())
	for i := range t.Rows {
		out = append(out, t.Cell(i, col))
	}
	return out
}

// topMetricsTable returns a table with every top metric column plus an
// extra column, one row per design.
func topMetricsTable(rows map[string]map[string]string, order ...string) *domain.ScoreTable {
	columns := append([]string{domain.ColumnRank, domain.ColumnDesign}, domain.TopMetrics()...)
	columns = append(columns, "Sequence")

	table := &domain.ScoreTable{Columns: columns}
	for rank, design := range order {
		row := make(domain.ScoreRow, len(columns))
		row[0] = string(rune('1' + rank))
		row[1] = design
		for i, c := range columns[2:] {
			if v, ok := rows[design][c]; ok {
				row[i+2] = v
			} else {
				row[i+2] = "0"
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func newTestMetricsService(t *testing.T, codec *mockCodec) *MetricsService {
	t.Helper()
	svc, err := NewMetricsService(codec, &mockThresholdSource{catalog: testCatalog()})
	require.NoError(t, err)
	return svc
}

func TestApplyFilter_Directions(t *testing.T) {
	table := &domain.ScoreTable{
		Columns: []string{"Design", "X"},
		Rows:    []domain.ScoreRow{{"d1", "5"}, {"d2", "10"}},
	}

	atLeast, err := ApplyFilter(table, filterOn("X", domain.AtLeast, 7))
	require.NoError(t, err)
	assert.Equal(t, []string{"d2"}, designs(atLeast))

	atMost, err := ApplyFilter(table, filterOn("X", domain.AtMost, 7))
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, designs(atMost))
}

func TestApplyFilter_InclusiveCutoff(t *testing.T) {
	table := &domain.ScoreTable{
		Columns: []string{"Design", "X"},
		Rows:    []domain.ScoreRow{{"d1", "7"}},
	}

	for _, dir := range []domain.Direction{domain.AtLeast, domain.AtMost} {
		out, err := ApplyFilter(table, filterOn("X", dir, 7))
		require.NoError(t, err)
		assert.Equal(t, 1, out.Len(), dir.String())
	}
}

func TestApplyFilter_NullsFailClosed(t *testing.T) {
	table := &domain.ScoreTable{
		Columns: []string{"Design", "X"},
		Rows:    []domain.ScoreRow{{"d1", ""}, {"d2", "NaN"}, {"d3", "n/a"}, {"d4", "oops"}, {"d5", "8"}},
	}

	for _, dir := range []domain.Direction{domain.AtLeast, domain.AtMost} {
		out, err := ApplyFilter(table, filterOn("X", dir, 8))
		require.NoError(t, err)
		assert.Equal(t, []string{"d5"}, designs(out))
	}
}

func TestApplyFilter_Errors(t *testing.T) {
	table := &domain.ScoreTable{Columns: []string{"Design", "X"}, Rows: []domain.ScoreRow{{"d1", "1"}}}

	_, err := ApplyFilter(table, filterOn("Y", domain.AtLeast, 0))
	var mce *domain.MissingColumnError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, []string{"Y"}, mce.Columns)

	_, err = ApplyFilter(table, filterOn("X", domain.AtLeast, 101))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := filterOn("X", "sideways", 0)
	_, err = ApplyFilter(table, bad)
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestApplyFilters_OrderIndependent(t *testing.T) {
	table := &domain.ScoreTable{
		Columns: []string{"Design", "X", "Y"},
		Rows: []domain.ScoreRow{
			{"d1", "5", "1"},
			{"d2", "10", "9"},
			{"d3", "12", "2"},
			{"d4", "", "3"},
			{"d5", "8", "4"},
		},
	}
	fx := filterOn("X", domain.AtLeast, 7)
	fy := filterOn("Y", domain.AtMost, 5)

	forward, labels, err := ApplyFilters(table, []domain.ActiveFilter{fx, fy})
	require.NoError(t, err)
	reverse, reverseLabels, err := ApplyFilters(table, []domain.ActiveFilter{fy, fx})
	require.NoError(t, err)

	assert.ElementsMatch(t, designs(forward), designs(reverse))
	assert.Equal(t, []string{"d3", "d5"}, designs(forward))
	assert.Equal(t, []string{"Filter X", "Filter Y"}, labels)
	assert.Equal(t, []string{"Filter Y", "Filter X"}, reverseLabels)
}

func TestApplyFilters_None(t *testing.T) {
	table := &domain.ScoreTable{Columns: []string{"Design"}, Rows: []domain.ScoreRow{{"d1"}}}

	out, labels, err := ApplyFilters(table, nil)
	require.NoError(t, err)
	assert.Same(t, table, out)
	assert.Empty(t, labels)
}

func TestFullStats(t *testing.T) {
	full := &domain.ScoreTable{
		Columns: []string{"Design", "Sequence"},
		Rows:    []domain.ScoreRow{{"d1", "AAA"}, {"d2", "CCC"}, {"d3", "GGG"}},
	}
	filtered := &domain.ScoreTable{Columns: []string{"Design"}, Rows: []domain.ScoreRow{{"d3"}, {"d1"}}}

	out, err := FullStats(full, filtered)
	require.NoError(t, err)
	assert.Equal(t, []domain.ScoreRow{{"d1", "AAA"}, {"d3", "GGG"}}, out.Rows)

	_, err = FullStats(&domain.ScoreTable{Columns: []string{"Name"}}, filtered)
	assert.ErrorIs(t, err, domain.ErrMissingColumn)
}

func TestNewMetricsService_ConfigErrors(t *testing.T) {
	_, err := NewMetricsService(&mockCodec{}, &mockThresholdSource{err: &domain.ConfigError{Msg: "unreadable"}})
	assert.ErrorIs(t, err, domain.ErrConfig)

	catalog := testCatalog()
	delete(catalog[domain.MetricTypeAF2], "Average_pTM")
	_, err = NewMetricsService(&mockCodec{}, &mockThresholdSource{catalog: catalog})
	var ce *domain.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "af2_metrics.Average_pTM", ce.Metric)
}

func TestMetricsService_Load(t *testing.T) {
	codec := &mockCodec{table: &domain.ScoreTable{
		Columns: []string{"Design", "Empty", "X"},
		Rows:    []domain.ScoreRow{{"d1", "", "1"}, {"d2", " ", "2"}},
	}}
	svc := newTestMetricsService(t, codec)

	table, err := svc.Load(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, []string{"Design", "X"}, table.Columns)

	codec.readErr = &domain.ParseError{Line: 3, Msg: "wrong number of fields"}
	_, err = svc.Load(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestMetricsService_Metrics(t *testing.T) {
	svc := newTestMetricsService(t, &mockCodec{})
	full := topMetricsTable(nil, "d1")

	metrics, err := svc.Metrics(full, domain.MetricSetTop)
	require.NoError(t, err)
	assert.Len(t, metrics.Columns, 15)
	assert.Equal(t, domain.ColumnRank, metrics.Columns[0])
	assert.NotContains(t, metrics.Columns, "Sequence")

	_, err = svc.Metrics(full, "all_metrics")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	missing := &domain.ScoreTable{Columns: []string{"Rank", "Design", "Average_dG"}}
	_, err = svc.Metrics(missing, domain.MetricSetTop)
	var mce *domain.MissingColumnError
	require.ErrorAs(t, err, &mce)
	assert.Len(t, mce.Columns, 12)
}

func TestMetricsService_Activate(t *testing.T) {
	svc := newTestMetricsService(t, &mockCodec{})

	f, err := svc.Activate(driving.FilterRequest{MetricKey: "Average_dG"})
	require.NoError(t, err)
	assert.Equal(t, -10.0, f.Cutoff)
	assert.Equal(t, domain.AtMost, f.Params.Direction)
	assert.Equal(t, "Filter dG", f.Spec.Label)

	f, err = svc.Activate(driving.FilterRequest{MetricKey: "Average_dG", Cutoff: ptr(-20)})
	require.NoError(t, err)
	assert.Equal(t, -20.0, f.Cutoff)

	_, err = svc.Activate(driving.FilterRequest{MetricKey: "Average_dG", Cutoff: ptr(5)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Activate(driving.FilterRequest{MetricKey: "Unknown"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMetricsService_Filter(t *testing.T) {
	svc := newTestMetricsService(t, &mockCodec{})
	full := topMetricsTable(map[string]map[string]string{
		"d1": {"Average_dG": "-30", "Average_pTM": "80"},
		"d2": {"Average_dG": "-5", "Average_pTM": "90"},
		"d3": {"Average_dG": "-25", "Average_pTM": "40"},
	}, "d1", "d2", "d3")

	dg, err := svc.Activate(driving.FilterRequest{MetricKey: "Average_dG"})
	require.NoError(t, err)
	ptm, err := svc.Activate(driving.FilterRequest{MetricKey: "Average_pTM", Cutoff: ptr(50)})
	require.NoError(t, err)

	result, err := svc.Filter(full, domain.MetricSetTop, []domain.ActiveFilter{dg, ptm})
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, designs(result.Metrics))
	assert.Equal(t, []string{"d1"}, designs(result.Full))
	assert.Contains(t, result.Full.Columns, "Sequence")
	assert.Equal(t, []string{"Filter dG", "Filter pTM"}, result.Applied)
}

func TestMetricsService_Export(t *testing.T) {
	codec := &mockCodec{}
	svc := newTestMetricsService(t, codec)
	table := &domain.ScoreTable{Columns: []string{"Design"}}

	require.NoError(t, svc.Export(&bytes.Buffer{}, table))
	assert.Same(t, table, codec.written)

	codec.writeErr = errors.New("disk full")
	assert.Error(t, svc.Export(&bytes.Buffer{}, table))
}

func TestMetricsService_GroupsAndParams(t *testing.T) {
	svc := newTestMetricsService(t, &mockCodec{})

	groups := svc.Groups()
	require.Len(t, groups, 3)

	p, err := svc.Params(groups[0].Filters[2])
	require.NoError(t, err)
	assert.Equal(t, domain.AtMost, p.Direction)
}
