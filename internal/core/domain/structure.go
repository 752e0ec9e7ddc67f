package domain

import "math"

// ChainID is a single-character chain label.
type ChainID byte

// Chains of interest. Other chains are loaded but ignored by the core.
const (
	// TargetChain is the protein being bound.
	TargetChain ChainID = 'A'

	// BinderChain is the designed binder.
	BinderChain ChainID = 'B'
)

// String returns the chain label.
func (c ChainID) String() string {
	return string(rune(c))
}

// Role returns "target", "binder" or "other".
func (c ChainID) Role() string {
	switch c {
	case TargetChain:
		return "target"
	case BinderChain:
		return "binder"
	default:
		return "other"
	}
}

// BackboneAtomNames are skipped when styling interface side chains.
// They take no part in interface detection.
var BackboneAtomNames = []string{"N", "O"}

// IsBackboneAtomName reports whether name is in BackboneAtomNames.
func IsBackboneAtomName(name string) bool {
	for _, n := range BackboneAtomNames {
		if n == name {
			return true
		}
	}
	return false
}

// Coord is a point in Cartesian space, in Ångström.
type Coord struct {
	X, Y, Z float64
}

// Distance returns the Euclidean distance between two points.
func (c Coord) Distance(o Coord) float64 {
	dx := c.X - o.X
	dy := c.Y - o.Y
	dz := c.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Atom is a single ATOM or HETATM record.
type Atom struct {
	// Name is the atom name, e.g. "CA".
	Name string

	// Element is the element symbol, e.g. "C".
	Element string

	// Backbone is true for names in BackboneAtomNames.
	Backbone bool

	Coord
}

// Residue is a monomer within a chain.
type Residue struct {
	Chain ChainID

	// SeqNum is unique within a chain.
	SeqNum int

	// Name is the three letter residue name, e.g. "ALA" or "HOH".
	Name string

	// Hetero is true for HETATM residues (waters, ligands, modified
	// residues). Hetero residues are excluded from interface detection.
	Hetero bool

	Atoms []Atom
}

// Chain is a labelled polymer strand.
type Chain struct {
	ID       ChainID
	Residues []*Residue
}

// Residue returns the residue with the given sequence number, or nil.
func (c *Chain) Residue(seqNum int) *Residue {
	for _, r := range c.Residues {
		if r.SeqNum == seqNum {
			return r
		}
	}
	return nil
}

// StandardResidues returns the non-hetero residues in chain order.
func (c *Chain) StandardResidues() []*Residue {
	out := make([]*Residue, 0, len(c.Residues))
	for _, r := range c.Residues {
		if !r.Hetero {
			out = append(out, r)
		}
	}
	return out
}

// AtomCount returns the number of atoms across all residues.
func (c *Chain) AtomCount() int {
	n := 0
	for _, r := range c.Residues {
		n += len(r.Atoms)
	}
	return n
}

// Structure is the first model of a parsed structure file.
type Structure struct {
	// Name is a display name, usually derived from the file name.
	Name string

	// Chains are in order of first appearance.
	Chains []*Chain
}

// Chain returns the chain with the given label, or nil.
func (s *Structure) Chain(id ChainID) *Chain {
	for _, c := range s.Chains {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// HasChain reports whether the chain is present.
func (s *Structure) HasChain(id ChainID) bool {
	return s.Chain(id) != nil
}

// Target returns chain A or nil.
func (s *Structure) Target() *Chain {
	return s.Chain(TargetChain)
}

// Binder returns chain B or nil.
func (s *Structure) Binder() *Chain {
	return s.Chain(BinderChain)
}
