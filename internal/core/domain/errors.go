package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent analysis failures.
// These are distinct from infrastructure errors (I/O, database).
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrParse indicates a structure or score file could not be parsed.
	// Surfaced inline; the user may upload another file.
	ErrParse = errors.New("parse error")

	// ErrMissingChain indicates interface detection was requested on a
	// structure lacking the target or binder chain.
	ErrMissingChain = errors.New("missing chain")

	// ErrMissingColumn indicates an expected metric column is absent from a
	// score table.
	ErrMissingColumn = errors.New("missing column")

	// ErrConfig indicates the threshold configuration is absent, malformed,
	// or lacks an entry for a referenced metric. Fatal at startup.
	ErrConfig = errors.New("configuration error")

	// ErrInvalidThreshold indicates a non-positive distance threshold.
	ErrInvalidThreshold = errors.New("distance threshold must be positive")
)

// ParseError describes where a structure or score file failed to parse.
type ParseError struct {
	// Line is the 1-based line number, or 0 when the failure is not tied
	// to a single line.
	Line int

	// Msg describes the failure.
	Msg string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error: line %d: %s", e.Line, e.Msg)
	}
	return "parse error: " + e.Msg
}

// Unwrap lets errors.Is match ErrParse.
func (e *ParseError) Unwrap() error {
	return ErrParse
}

// MissingChainError names the absent chain.
type MissingChainError struct {
	Chain ChainID
}

func (e *MissingChainError) Error() string {
	return fmt.Sprintf("missing chain: structure has no chain %s (%s)", e.Chain, e.Chain.Role())
}

// Unwrap lets errors.Is match ErrMissingChain.
func (e *MissingChainError) Unwrap() error {
	return ErrMissingChain
}

// MissingColumnError lists expected columns absent from a score table.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return "missing column: " + strings.Join(e.Columns, ", ")
}

// Unwrap lets errors.Is match ErrMissingColumn.
func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}

// ConfigError describes an unusable threshold configuration.
type ConfigError struct {
	// Metric is "metric_type.metric_key", or empty for file-level problems.
	Metric string

	Msg string
}

func (e *ConfigError) Error() string {
	if e.Metric != "" {
		return fmt.Sprintf("configuration error: %s: %s", e.Metric, e.Msg)
	}
	return "configuration error: " + e.Msg
}

// Unwrap lets errors.Is match ErrConfig.
func (e *ConfigError) Unwrap() error {
	return ErrConfig
}
