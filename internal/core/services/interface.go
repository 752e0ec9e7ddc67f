package services

import (
	"context"
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driven"
	"github.com/custodia-labs/binderdash/internal/core/ports/driving"
	"github.com/custodia-labs/binderdash/internal/logger"
)

// Ensure InterfaceService implements the interface.
var _ driving.InterfaceService = (*InterfaceService)(nil)

// InterfaceService finds residues in contact across the target/binder
// interface.
type InterfaceService struct {
	structures driving.StructureService
	builder    driven.IndexBuilder
	cache      driven.InterfaceCache
}

// NewInterfaceService creates a new interface service.
// cache may be nil to disable memoisation.
func NewInterfaceService(
	structures driving.StructureService,
	builder driven.IndexBuilder,
	cache driven.InterfaceCache,
) *InterfaceService {
	return &InterfaceService{
		structures: structures,
		builder:    builder,
		cache:      cache,
	}
}

// ValidateThreshold rejects distances that cannot bound a contact.
func ValidateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold <= 0 {
		return fmt.Errorf("%w: got %g", domain.ErrInvalidThreshold, threshold)
	}
	return nil
}

// Find loads in and detects its interface, consulting the cache first.
// Cache failures are logged and otherwise ignored.
func (s *InterfaceService) Find(
	ctx context.Context,
	in domain.StructureInput,
	threshold float64,
) (domain.InterfaceResidueSet, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return domain.InterfaceResidueSet{}, err
	}

	key := domain.InterfaceKey{Content: in.Key(), Threshold: threshold}
	if s.cache != nil {
		set, ok, err := s.cache.GetInterface(ctx, key)
		switch {
		case err != nil:
			logger.Warn("interface cache read %s: %v", key, err)
		case ok:
			logger.Debug("interface cache hit %s", key)
			return set, nil
		}
	}

	structure, err := s.structures.Load(ctx, in)
	if err != nil {
		return domain.InterfaceResidueSet{}, err
	}

	set, err := s.Detect(structure, threshold)
	if err != nil {
		return domain.InterfaceResidueSet{}, fmt.Errorf("detect %s: %w", in.FileName, err)
	}

	if s.cache != nil {
		if err := s.cache.PutInterface(ctx, key, set); err != nil {
			logger.Warn("interface cache write %s: %v", key, err)
		}
	}
	return set, nil
}

// Detect returns every chain A residue with an atom strictly closer than
// threshold to some chain B atom, and vice versa. Hetero residues on
// either chain are ignored.
func (s *InterfaceService) Detect(structure *domain.Structure, threshold float64) (domain.InterfaceResidueSet, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return domain.InterfaceResidueSet{}, err
	}

	target := structure.Target()
	if target == nil {
		return domain.InterfaceResidueSet{}, &domain.MissingChainError{Chain: domain.TargetChain}
	}
	binder := structure.Binder()
	if binder == nil {
		return domain.InterfaceResidueSet{}, &domain.MissingChainError{Chain: domain.BinderChain}
	}

	logger.Section("Interface Detection")
	defer logger.Timed("interface detection", time.Now())

	binderResidues := binder.StandardResidues()
	points := make([]domain.Coord, 0, binder.AtomCount())
	owner := make([]int, 0, cap(points))
	for ri, r := range binderResidues {
		for _, a := range r.Atoms {
			points = append(points, a.Coord)
			owner = append(owner, ri)
		}
	}
	index := s.builder.Build(points, threshold)
	logger.Debug("indexed %d binder atoms (%s)", index.Len(), s.builder.Strategy())

	result := domain.NewInterfaceResidueSet()

	// seen[ri] == stamp marks binder residue ri as already in contact with
	// the current target residue, so further atom hits are skipped.
	seen := make([]int, len(binderResidues))
	for ti, r := range target.StandardResidues() {
		stamp := ti + 1
		for _, a := range r.Atoms {
			for _, id := range index.Query(a.Coord, threshold) {
				ri := owner[id]
				if seen[ri] == stamp {
					continue
				}
				seen[ri] = stamp
				result.Target.Add(r.SeqNum)
				result.Binder.Add(binderResidues[ri].SeqNum)
			}
		}
	}

	logger.Info("interface at %g Å: %d target, %d binder residues",
		threshold, len(result.Target), len(result.Binder))
	return result, nil
}

// Table returns the aligned display rows for set.
func (s *InterfaceService) Table(set domain.InterfaceResidueSet) iter.Seq[domain.ResidueRow] {
	return BuildTable(set.Target, set.Binder)
}

// BuildTable sorts each side ascending and zips them positionally. The
// shorter side is padded with nil. Rows are produced lazily.
func BuildTable(target, binder domain.ResidueSet) iter.Seq[domain.ResidueRow] {
	t, b := target.Sorted(), binder.Sorted()
	return func(yield func(domain.ResidueRow) bool) {
		for i := range max(len(t), len(b)) {
			var row domain.ResidueRow
			if i < len(t) {
				row.Target = &t[i]
			}
			if i < len(b) {
				row.Binder = &b[i]
			}
			if !yield(row) {
				return
			}
		}
	}
}
