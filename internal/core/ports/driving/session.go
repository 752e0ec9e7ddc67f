package driving

import (
	"context"

	"github.com/custodia-labs/binderdash/internal/core/domain"
)

// SessionService holds the inputs of one dashboard session: a single
// structure file and a single score table.
type SessionService interface {
	// ID identifies the session in logs.
	ID() string

	// OpenStructure reads a structure file and makes it current.
	OpenStructure(ctx context.Context, path string) (domain.StructureInput, error)

	// OpenScores reads a score file and makes it current.
	OpenScores(ctx context.Context, path string) (*domain.ScoreTable, error)

	// Structure returns the current structure input, if any.
	Structure() (domain.StructureInput, bool)

	// Scores returns the current score table, if any.
	Scores() (*domain.ScoreTable, bool)

	// Watch reloads opened files when they change on disk and reports each
	// reload to onReload. Blocks until ctx is done.
	Watch(ctx context.Context, onReload func(domain.SessionEvent)) error
}
