package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driven"
	"github.com/custodia-labs/binderdash/internal/core/ports/driving"
	"github.com/custodia-labs/binderdash/internal/logger"
)

// Ensure StructureService implements the interface.
var _ driving.StructureService = (*StructureService)(nil)

// StructureService parses structure files, memoising by content.
type StructureService struct {
	parser driven.StructureParser
	cache  driven.StructureCache
}

// NewStructureService creates a new structure service.
// cache may be nil to disable memoisation.
func NewStructureService(parser driven.StructureParser, cache driven.StructureCache) *StructureService {
	return &StructureService{
		parser: parser,
		cache:  cache,
	}
}

// Load parses in and names the result after in.FileName.
func (s *StructureService) Load(ctx context.Context, in domain.StructureInput) (*domain.Structure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := in.Key()
	parsed, ok := s.lookup(key)
	if !ok {
		var err error
		parsed, err = s.parser.Parse(in.Data)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", in.FileName, err)
		}
		if s.cache != nil {
			s.cache.PutStructure(key, parsed)
		}
		logger.Debug("parsed %s: %d chains (%s)", in.FileName, len(parsed.Chains), key.Short())
	}

	// The cached model is shared; only the display name differs per load.
	named := *parsed
	named.Name = domain.StructureName(in.FileName)
	return &named, nil
}

func (s *StructureService) lookup(key domain.ContentKey) (*domain.Structure, bool) {
	if s.cache == nil {
		return nil, false
	}
	st, ok := s.cache.GetStructure(key)
	if ok {
		logger.Debug("structure cache hit %s", key.Short())
	}
	return st, ok
}
