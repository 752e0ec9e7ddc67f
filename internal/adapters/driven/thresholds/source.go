// Package thresholds loads the per-metric cutoff table from JSON or TOML.
package thresholds

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driven"
)

//go:embed default.json
var defaultTable []byte

// BuiltinLocation is reported by sources that use the embedded table.
const BuiltinLocation = "built-in"

// Ensure Source implements the interface.
var _ driven.ThresholdSource = (*Source)(nil)

// entry is one metric's bounds as written in a threshold file.
// Pointers distinguish absent fields from zero.
type entry struct {
	Min     *float64 `json:"min" toml:"min"`
	Max     *float64 `json:"max" toml:"max"`
	Thresh  *float64 `json:"thresh" toml:"thresh"`
	Step    *float64 `json:"step" toml:"step"`
	AtLeast *bool    `json:">=" toml:">="`
}

type table map[string]map[string]entry

// Source reads a threshold table from a file, or the embedded default.
type Source struct {
	path string
}

// NewSource creates a source for path. An empty path selects the
// embedded default table.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Location returns the file path or BuiltinLocation.
func (s *Source) Location() string {
	if s.path == "" {
		return BuiltinLocation
	}
	return s.path
}

// Load reads and decodes the table. The format follows the file
// extension: .toml for TOML, anything else JSON.
func (s *Source) Load() (domain.ThresholdCatalog, error) {
	if s.path == "" {
		return decode(defaultTable, json.Unmarshal)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &domain.ConfigError{Msg: err.Error()}
	}

	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".toml":
		return decode(data, toml.Unmarshal)
	default:
		return decode(data, json.Unmarshal)
	}
}

func decode(data []byte, unmarshal func([]byte, any) error) (domain.ThresholdCatalog, error) {
	var raw table
	if err := unmarshal(data, &raw); err != nil {
		return nil, &domain.ConfigError{Msg: fmt.Sprintf("decode threshold table: %v", err)}
	}
	if len(raw) == 0 {
		return nil, &domain.ConfigError{Msg: "threshold table is empty"}
	}

	catalog := make(domain.ThresholdCatalog, len(raw))
	for metricType, byKey := range raw {
		catalog[metricType] = make(map[string]domain.ThresholdParams, len(byKey))
		for key, e := range byKey {
			p, err := e.params()
			if err != nil {
				return nil, &domain.ConfigError{Metric: metricType + "." + key, Msg: err.Error()}
			}
			if err := p.Validate(); err != nil {
				return nil, &domain.ConfigError{Metric: metricType + "." + key, Msg: err.Error()}
			}
			catalog[metricType][key] = p
		}
	}
	return catalog, nil
}

func (e entry) params() (domain.ThresholdParams, error) {
	var missing []string
	for _, f := range []struct {
		name string
		set  bool
	}{
		{"min", e.Min != nil},
		{"max", e.Max != nil},
		{"thresh", e.Thresh != nil},
		{"step", e.Step != nil},
		{">=", e.AtLeast != nil},
	} {
		if !f.set {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return domain.ThresholdParams{}, fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}

	dir := domain.AtMost
	if *e.AtLeast {
		dir = domain.AtLeast
	}
	return domain.ThresholdParams{
		Min:       *e.Min,
		Max:       *e.Max,
		Default:   *e.Thresh,
		Step:      *e.Step,
		Direction: dir,
	}, nil
}
