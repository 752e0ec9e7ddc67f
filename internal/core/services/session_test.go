package services

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/binderdash/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// scoredTable returns a table with every top metric set for each design.
func scoredTable(designs ...string) *domain.ScoreTable {
	columns := append([]string{domain.ColumnRank, domain.ColumnDesign}, domain.TopMetrics()...)
	table := &domain.ScoreTable{Columns: columns}
	for i, d := range designs {
		row := domain.ScoreRow{strconv.Itoa(i + 1), d}
		for range domain.TopMetrics() {
			row = append(row, "0.5")
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func TestSessionService_ID(t *testing.T) {
	a := NewSessionService(nil, nil)
	b := NewSessionService(nil, nil)

	_, err := uuid.Parse(a.ID())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSessionService_OpenStructure(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "PDL1_l80_s1.pdb", "ATOM")
	s := NewSessionService(nil, nil)

	_, ok := s.Structure()
	assert.False(t, ok)

	in, err := s.OpenStructure(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "PDL1_l80_s1.pdb", in.FileName)
	assert.Equal(t, []byte("ATOM"), in.Data)

	current, ok := s.Structure()
	require.True(t, ok)
	assert.Equal(t, in.Key(), current.Key())

	_, err = s.OpenStructure(context.Background(), filepath.Join(dir, "missing.pdb"))
	assert.Error(t, err)
}

func TestSessionService_OpenScores(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "final_design_stats.csv", "Design\nd1\n")
	codec := &mockCodec{table: scoredTable("d1")}
	s := NewSessionService(newTestMetricsService(t, codec), nil)

	table, err := s.OpenScores(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	current, ok := s.Scores()
	require.True(t, ok)
	assert.Same(t, table, current)

	codec.readErr = &domain.ParseError{Msg: "empty header"}
	_, err = s.OpenScores(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrParse)

	// The previous table survives a failed reload.
	current, _ = s.Scores()
	assert.Same(t, table, current)
}

func TestSessionService_OpenScoresMissingMetric(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "final_design_stats.csv", "Design\nd1\n")
	codec := &mockCodec{table: scoredTable("d1", "d2")}
	s := NewSessionService(newTestMetricsService(t, codec), nil)

	table, err := s.OpenScores(context.Background(), path)
	require.NoError(t, err)

	codec.table = &domain.ScoreTable{
		Columns: []string{domain.ColumnRank, domain.ColumnDesign, "Average_dG"},
		Rows:    []domain.ScoreRow{{"1", "d9", "-12"}},
	}
	_, err = s.OpenScores(context.Background(), path)
	require.ErrorIs(t, err, domain.ErrMissingColumn)
	var mce *domain.MissingColumnError
	require.ErrorAs(t, err, &mce)
	assert.Contains(t, mce.Columns, "Average_dSASA")
	assert.NotContains(t, mce.Columns, "Average_dG")

	current, ok := s.Scores()
	require.True(t, ok)
	assert.Same(t, table, current)
	assert.Equal(t, 2, current.Len())
}

func TestSessionService_Watch(t *testing.T) {
	dir := t.TempDir()
	structurePath := writeFile(t, dir, "a.pdb", "ATOM 1")
	scoresPath := writeFile(t, dir, "scores.csv", "Design\n")
	codec := &mockCodec{table: scoredTable("d1")}
	watcher := &mockWatcher{changes: []string{structurePath, filepath.Join(dir, "other.txt"), scoresPath}}
	s := NewSessionService(newTestMetricsService(t, codec), watcher)

	ctx := context.Background()
	_, err := s.OpenStructure(ctx, structurePath)
	require.NoError(t, err)
	_, err = s.OpenScores(ctx, scoresPath)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(structurePath, []byte("ATOM 2"), 0o600))

	var events []domain.SessionEvent
	require.NoError(t, s.Watch(ctx, func(ev domain.SessionEvent) {
		events = append(events, ev)
	}))

	assert.Equal(t, []string{structurePath, scoresPath}, watcher.watched)
	require.Len(t, events, 2)
	assert.Equal(t, domain.InputStructure, events[0].Kind)
	assert.NoError(t, events[0].Err)
	assert.Equal(t, domain.InputScores, events[1].Kind)

	in, _ := s.Structure()
	assert.Equal(t, []byte("ATOM 2"), in.Data)
}

func TestSessionService_WatchNothing(t *testing.T) {
	watcher := &mockWatcher{}
	s := NewSessionService(nil, watcher)

	require.NoError(t, s.Watch(context.Background(), nil))
	assert.Nil(t, watcher.watched)

	require.NoError(t, NewSessionService(nil, nil).Watch(context.Background(), nil))
}
