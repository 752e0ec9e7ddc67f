// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - StructureParser: Parses structure text into a domain.Structure
//   - IndexBuilder: Builds a SpatialIndex over atom coordinates
//   - ScoreCodec: Reads and writes per-design score tables
//   - ThresholdSource: Loads the metric threshold table
//   - StructureCache, InterfaceCache: Memoise parsing and detection
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - FileWatcher: Notifies when input files change on disk
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
