// Package domain defines the core entities for binderdash.
//
// This package is the innermost layer of the hexagonal architecture.
// It has NO external dependencies and defines the fundamental types:
//
//   - Structure, Chain, Residue, Atom: the atomic model of a complex
//   - InterfaceResidueSet: contacting residues on the target and binder chains
//   - ScoreTable: per-design scoring metrics
//   - MetricFilterSpec, ThresholdParams: declarative filter configuration
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
