package domain

import (
	"math"
	"strconv"
	"strings"
)

// FilteredStatsFileName is the suggested name for exported full stats.
const FilteredStatsFileName = "BindCraft_Filtered_Final_Design_Stats.csv"

// ScoreRow holds the raw cells of one design, aligned with ScoreTable.Columns.
type ScoreRow []string

// ScoreTable is a per-design score table. Cells are kept as read so that
// exported rows match the uploaded file.
type ScoreTable struct {
	Columns []string
	Rows    []ScoreRow
}

// Len returns the number of rows.
func (t *ScoreTable) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of name, or -1.
func (t *ScoreTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether name is a column.
func (t *ScoreTable) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the raw cell of row i in column col, or "" if absent.
func (t *ScoreTable) Cell(i, col int) string {
	if col < 0 || i < 0 || i >= len(t.Rows) || col >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][col]
}

// Float returns the numeric value of row i in column col.
// ok is false for null cells.
func (t *ScoreTable) Float(i, col int) (float64, bool) {
	return ParseMetric(t.Cell(i, col))
}

// Select projects the named columns in the given order.
// Absent columns are reported together in a MissingColumnError.
func (t *ScoreTable) Select(columns []string) (*ScoreTable, error) {
	idx := make([]int, len(columns))
	var missing []string
	for i, c := range columns {
		idx[i] = t.ColumnIndex(c)
		if idx[i] < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Columns: missing}
	}

	out := &ScoreTable{
		Columns: append([]string(nil), columns...),
		Rows:    make([]ScoreRow, len(t.Rows)),
	}
	for r := range t.Rows {
		row := make(ScoreRow, len(idx))
		for i, col := range idx {
			row[i] = t.Cell(r, col)
		}
		out.Rows[r] = row
	}
	return out, nil
}

// Where returns a new table with the rows for which keep returns true.
// Row slices are shared with t.
func (t *ScoreTable) Where(keep func(i int) bool) *ScoreTable {
	out := &ScoreTable{Columns: t.Columns, Rows: make([]ScoreRow, 0, len(t.Rows))}
	for i, row := range t.Rows {
		if keep(i) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// DropEmptyColumns removes columns whose cells are all blank.
func (t *ScoreTable) DropEmptyColumns() *ScoreTable {
	var keep []int
	for col := range t.Columns {
		for i := range t.Rows {
			if strings.TrimSpace(t.Cell(i, col)) != "" {
				keep = append(keep, col)
				break
			}
		}
	}
	if len(keep) == len(t.Columns) {
		return t
	}

	out := &ScoreTable{
		Columns: make([]string, len(keep)),
		Rows:    make([]ScoreRow, len(t.Rows)),
	}
	for i, col := range keep {
		out.Columns[i] = t.Columns[col]
	}
	for r := range t.Rows {
		row := make(ScoreRow, len(keep))
		for i, col := range keep {
			row[i] = t.Cell(r, col)
		}
		out.Rows[r] = row
	}
	return out
}

// Designs returns the set of values in the Design column.
func (t *ScoreTable) Designs() map[string]struct{} {
	col := t.ColumnIndex(ColumnDesign)
	out := make(map[string]struct{}, len(t.Rows))
	if col < 0 {
		return out
	}
	for i := range t.Rows {
		out[t.Cell(i, col)] = struct{}{}
	}
	return out
}

// ParseMetric parses a numeric cell. Blank, NA, NaN and unparsable cells
// are null and return ok=false.
func ParseMetric(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	switch strings.ToLower(s) {
	case "", "na", "n/a", "nan", "null", "none":
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
