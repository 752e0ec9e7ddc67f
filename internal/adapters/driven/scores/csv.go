// Package scores reads and writes design score tables as CSV.
package scores

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driven"
)

// Ensure CSVCodec implements the interface.
var _ driven.ScoreCodec = (*CSVCodec)(nil)

const bom = "\ufeff"

// CSVCodec reads and writes comma-separated score tables with a header row.
type CSVCodec struct{}

// NewCSVCodec creates a CSV codec.
func NewCSVCodec() *CSVCodec {
	return &CSVCodec{}
}

// Read parses a table. Every row must have as many fields as the header.
func (c *CSVCodec) Read(r io.Reader) (*domain.ScoreTable, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.ParseError{Msg: "empty score file"}
	}
	if err != nil {
		return nil, toParseError(err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}
	columns[0] = strings.TrimPrefix(columns[0], bom)
	if len(columns) == 1 && columns[0] == "" {
		return nil, &domain.ParseError{Line: 1, Msg: "empty header"}
	}

	table := &domain.ScoreTable{Columns: columns}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, toParseError(err)
		}
		table.Rows = append(table.Rows, domain.ScoreRow(rec))
	}
	return table, nil
}

// Write emits the header and all rows.
func (c *CSVCodec) Write(w io.Writer, table *domain.ScoreTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range table.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func toParseError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &domain.ParseError{Line: csvErr.Line, Msg: csvErr.Err.Error()}
	}
	return fmt.Errorf("read csv: %w", err)
}
