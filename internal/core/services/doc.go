// Package services implements the driving port interfaces.
// Services hold the interface detection and metric filtering logic and
// orchestrate calls to driven ports (adapters).
//
// Services depend only on ports; concrete parsers, indexes and caches are
// injected by the caller.
package services
