package driven

import (
	"io"

	"github.com/custodia-labs/binderdash/internal/core/domain"
)

// ScoreCodec reads and writes per-design score tables.
type ScoreCodec interface {
	// Read parses a table with a header row. Malformed input yields a
	// *domain.ParseError.
	Read(r io.Reader) (*domain.ScoreTable, error)

	// Write serialises a table with its header row.
	Write(w io.Writer, table *domain.ScoreTable) error
}
