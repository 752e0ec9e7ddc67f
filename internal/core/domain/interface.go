package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// Interface distance slider bounds, in Ångström.
const (
	DefaultDistanceThreshold = 3.5
	MinDistanceThreshold     = 2.0
	MaxDistanceThreshold     = 10.0
	DistanceThresholdStep    = 0.5
)

// ResidueSet is a set of residue sequence numbers.
type ResidueSet map[int]struct{}

// NewResidueSet builds a set from sequence numbers.
func NewResidueSet(nums ...int) ResidueSet {
	s := make(ResidueSet, len(nums))
	for _, n := range nums {
		s[n] = struct{}{}
	}
	return s
}

// Add inserts a sequence number.
func (s ResidueSet) Add(n int) {
	s[n] = struct{}{}
}

// Contains reports membership.
func (s ResidueSet) Contains(n int) bool {
	_, ok := s[n]
	return ok
}

// Sorted returns the members in ascending order.
func (s ResidueSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// SubsetOf reports whether every member of s is in o.
func (s ResidueSet) SubsetOf(o ResidueSet) bool {
	for n := range s {
		if !o.Contains(n) {
			return false
		}
	}
	return true
}

// InterfaceResidueSet holds residues of chain A (target) and chain B
// (binder) with at least one atom within the distance threshold of an atom
// on the opposing chain.
type InterfaceResidueSet struct {
	Target ResidueSet
	Binder ResidueSet
}

// NewInterfaceResidueSet returns an empty result.
func NewInterfaceResidueSet() InterfaceResidueSet {
	return InterfaceResidueSet{
		Target: ResidueSet{},
		Binder: ResidueSet{},
	}
}

// Empty reports whether no contacts were found.
func (r InterfaceResidueSet) Empty() bool {
	return len(r.Target) == 0 && len(r.Binder) == 0
}

// SubsetOf reports whether both sides of r are contained in o.
func (r InterfaceResidueSet) SubsetOf(o InterfaceResidueSet) bool {
	return r.Target.SubsetOf(o.Target) && r.Binder.SubsetOf(o.Binder)
}

// Equal reports set equality on both sides.
func (r InterfaceResidueSet) Equal(o InterfaceResidueSet) bool {
	return len(r.Target) == len(o.Target) && len(r.Binder) == len(o.Binder) && r.SubsetOf(o)
}

// ResidueRow is one line of the interface table. Nil marks padding.
// Target and Binder on the same row are unrelated; the columns are
// independent sorted lists rendered side by side.
type ResidueRow struct {
	Target *int
	Binder *int
}

// StructureName derives a display name from a structure file name by
// joining its first two underscore-separated segments with a dash,
// e.g. "PDL1_l80_s123_mpnn1.pdb" becomes "PDL1-l80". Names with fewer
// than three segments keep their extension.
func StructureName(fileName string) string {
	base := filepath.Base(fileName)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	parts := strings.Split(base, "_")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, "-")
}

// Clone returns an independent copy.
func (r InterfaceResidueSet) Clone() InterfaceResidueSet {
	return InterfaceResidueSet{
		Target: NewResidueSet(r.Target.Sorted()...),
		Binder: NewResidueSet(r.Binder.Sorted()...),
	}
}
