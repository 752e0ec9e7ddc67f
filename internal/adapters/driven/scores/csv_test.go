package scores

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/binderdash/internal/core/domain"
)

func TestCSVCodec_Read(t *testing.T) {
	input := "\ufeffRank,Design, Average_dG ,Notes\n" +
		"1,PDL1_l80_s1,-30.5,\n" +
		"2,PDL1_l80_s2,NaN,\"has, comma\"\n"

	table, err := NewCSVCodec().Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Rank", "Design", "Average_dG", "Notes"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "has, comma", table.Cell(1, 3))

	v, ok := table.Float(0, 2)
	require.True(t, ok)
	assert.Equal(t, -30.5, v)

	_, ok = table.Float(1, 2)
	assert.False(t, ok)
}

func TestCSVCodec_ReadHeaderOnly(t *testing.T) {
	table, err := NewCSVCodec().Read(strings.NewReader("Rank,Design\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestCSVCodec_ReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"empty", "", 0},
		{"blank header", "\n\n", 0},
		{"ragged row", "a,b\n1,2\n3\n", 3},
		{"bare quote", "a,b\n1,\"x\"y\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVCodec().Read(strings.NewReader(tt.input))

			var pe *domain.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestCSVCodec_ReadIOError(t *testing.T) {
	_, err := NewCSVCodec().Read(failingReader{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrParse)
}

func TestCSVCodec_RoundTrip(t *testing.T) {
	table := &domain.ScoreTable{
		Columns: []string{"Design", "Sequence"},
		Rows:    []domain.ScoreRow{{"d1", "MKV,L"}, {"d2", ""}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewCSVCodec().Write(&buf, table))
	assert.Equal(t, "Design,Sequence\nd1,\"MKV,L\"\nd2,\n", buf.String())

	back, err := NewCSVCodec().Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, table, back)
}
