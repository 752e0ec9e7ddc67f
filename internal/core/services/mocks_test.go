package services

import (
	"context"
	"io"
	"sync"

	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockParser implements driven.StructureParser for testing.
type mockParser struct {
	structure *domain.Structure
	err       error
	calls     int
}

func (m *mockParser) Parse(_ []byte) (*domain.Structure, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.structure, nil
}

// mockInterfaceCache implements driven.InterfaceCache for testing.
type mockInterfaceCache struct {
	mu      sync.Mutex
	entries map[domain.InterfaceKey]domain.InterfaceResidueSet
	getErr  error
	putErr  error
	puts    int
}

func newMockInterfaceCache() *mockInterfaceCache {
	return &mockInterfaceCache{entries: make(map[domain.InterfaceKey]domain.InterfaceResidueSet)}
}

func (m *mockInterfaceCache) GetInterface(_ context.Context, key domain.InterfaceKey) (domain.InterfaceResidueSet, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return domain.InterfaceResidueSet{}, false, m.getErr
	}
	set, ok := m.entries[key]
	return set, ok, nil
}

func (m *mockInterfaceCache) PutInterface(_ context.Context, key domain.InterfaceKey, set domain.InterfaceResidueSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.entries[key] = set
	return nil
}

// mockCodec implements driven.ScoreCodec for testing.
type mockCodec struct {
	table    *domain.ScoreTable
	readErr  error
	writeErr error
	written  *domain.ScoreTable
}

func (m *mockCodec) Read(_ io.Reader) (*domain.ScoreTable, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.table, nil
}

func (m *mockCodec) Write(_ io.Writer, table *domain.ScoreTable) error {
	m.written = table
	return m.writeErr
}

// mockThresholdSource implements driven.ThresholdSource for testing.
type mockThresholdSource struct {
	catalog domain.ThresholdCatalog
	err     error
}

func (m *mockThresholdSource) Load() (domain.ThresholdCatalog, error) {
	return m.catalog, m.err
}

func (m *mockThresholdSource) Location() string {
	return "mock"
}

// mockWatcher implements driven.FileWatcher by reporting a fixed list of
// changed paths once.
type mockWatcher struct {
	changes []string
	watched []string
	err     error
}

func (m *mockWatcher) Watch(_ context.Context, paths []string, onChange func(string)) error {
	m.watched = paths
	for _, p := range m.changes {
		onChange(p)
	}
	return m.err
}

var (
	_ driven.StructureParser = (*mockParser)(nil)
	_ driven.InterfaceCache  = (*mockInterfaceCache)(nil)
	_ driven.ScoreCodec      = (*mockCodec)(nil)
	_ driven.ThresholdSource = (*mockThresholdSource)(nil)
	_ driven.FileWatcher     = (*mockWatcher)(nil)
)

// --- Structure builders ---

func atomAt(name string, x, y, z float64) domain.Atom {
	return domain.Atom{
		Name:     name,
		Element:  name[:1],
		Backbone: domain.IsBackboneAtomName(name),
		Coord:    domain.Coord{X: x, Y: y, Z: z},
	}
}

func residueOf(chain domain.ChainID, seq int, atoms ...domain.Atom) *domain.Residue {
	return &domain.Residue{Chain: chain, SeqNum: seq, Name: "ALA", Atoms: atoms}
}

func heteroOf(chain domain.ChainID, seq int, atoms ...domain.Atom) *domain.Residue {
	return &domain.Residue{Chain: chain, SeqNum: seq, Name: "HOH", Hetero: true, Atoms: atoms}
}

func chainOf(id domain.ChainID, residues ...*domain.Residue) *domain.Chain {
	return &domain.Chain{ID: id, Residues: residues}
}

func structureOf(chains ...*domain.Chain) *domain.Structure {
	return &domain.Structure{Name: "test", Chains: chains}
}

// testCatalog returns bounds for every default filter.
func testCatalog() domain.ThresholdCatalog {
	catalog := domain.ThresholdCatalog{}
	for _, spec := range domain.AllFilters(domain.DefaultFilterGroups()) {
		if catalog[spec.MetricType] == nil {
			catalog[spec.MetricType] = map[string]domain.ThresholdParams{}
		}
		catalog[spec.MetricType][spec.MetricKey] = domain.ThresholdParams{
			Min: -100, Max: 100, Default: 0, Step: 1, Direction: domain.AtLeast,
		}
	}
	catalog[domain.MetricTypeRosetta]["Average_dG"] = domain.ThresholdParams{
		Min: -100, Max: 0, Default: -10, Step: 1, Direction: domain.AtMost,
	}
	return catalog
}
