package domain

import (
	"fmt"
	"math"
)

// Direction selects which side of a cutoff a row must fall on to be kept.
type Direction string

// Available directions.
const (
	// AtLeast keeps rows with value >= cutoff.
	AtLeast Direction = "at_least"

	// AtMost keeps rows with value <= cutoff.
	AtMost Direction = "at_most"
)

// IsValid returns true if the direction is recognised.
func (d Direction) IsValid() bool {
	return d == AtLeast || d == AtMost
}

// Keep reports whether value passes the cutoff in this direction.
func (d Direction) Keep(value, cutoff float64) bool {
	if d == AtLeast {
		return value >= cutoff
	}
	return value <= cutoff
}

// Symbol returns ">=" or "<=".
func (d Direction) Symbol() string {
	if d == AtLeast {
		return ">="
	}
	return "<="
}

// String returns the string representation.
func (d Direction) String() string {
	return string(d)
}

// Metric families.
const (
	MetricTypeRosetta = "rosetta_metrics"
	MetricTypeAF2     = "af2_metrics"
)

// MetricFilterSpec describes one orderable numeric column and how to label
// it. The comparison direction is resolved from ThresholdParams.
type MetricFilterSpec struct {
	Label      string
	MetricType string
	MetricKey  string
	Unit       string
}

// ID returns "metric_type.metric_key".
func (s MetricFilterSpec) ID() string {
	return s.MetricType + "." + s.MetricKey
}

// ThresholdParams bounds the user-adjustable cutoff for one metric.
type ThresholdParams struct {
	Min       float64
	Max       float64
	Default   float64
	Step      float64
	Direction Direction
}

// Validate checks internal consistency of the bounds.
func (p ThresholdParams) Validate() error {
	switch {
	case math.IsNaN(p.Min) || math.IsNaN(p.Max) || math.IsNaN(p.Default) || math.IsNaN(p.Step):
		return fmt.Errorf("bounds must be numbers")
	case p.Min > p.Max:
		return fmt.Errorf("min %g is greater than max %g", p.Min, p.Max)
	case p.Default < p.Min || p.Default > p.Max:
		return fmt.Errorf("default %g outside [%g, %g]", p.Default, p.Min, p.Max)
	case p.Step <= 0:
		return fmt.Errorf("step must be positive, got %g", p.Step)
	case !p.Direction.IsValid():
		return fmt.Errorf("unknown direction %q", p.Direction)
	}
	return nil
}

// InRange reports whether cutoff lies within [Min, Max].
func (p ThresholdParams) InRange(cutoff float64) bool {
	return cutoff >= p.Min && cutoff <= p.Max
}

// Clamp snaps v into [Min, Max].
func (p ThresholdParams) Clamp(v float64) float64 {
	return math.Max(p.Min, math.Min(p.Max, v))
}

// ThresholdCatalog maps metric type then metric key to its bounds.
type ThresholdCatalog map[string]map[string]ThresholdParams

// Lookup returns the bounds for a metric.
func (c ThresholdCatalog) Lookup(metricType, metricKey string) (ThresholdParams, bool) {
	byKey, ok := c[metricType]
	if !ok {
		return ThresholdParams{}, false
	}
	p, ok := byKey[metricKey]
	return p, ok
}

// Params returns the bounds for spec, or a ConfigError if none exist.
func (c ThresholdCatalog) Params(spec MetricFilterSpec) (ThresholdParams, error) {
	p, ok := c.Lookup(spec.MetricType, spec.MetricKey)
	if !ok {
		return ThresholdParams{}, &ConfigError{Metric: spec.ID(), Msg: "no threshold entry"}
	}
	return p, nil
}

// Validate checks every entry and that each referenced filter has bounds.
func (c ThresholdCatalog) Validate(groups []FilterGroup) error {
	for metricType, byKey := range c {
		for key, p := range byKey {
			if err := p.Validate(); err != nil {
				return &ConfigError{Metric: metricType + "." + key, Msg: err.Error()}
			}
		}
	}
	for _, g := range groups {
		for _, spec := range g.Filters {
			if _, err := c.Params(spec); err != nil {
				return err
			}
		}
	}
	return nil
}

// ActiveFilter is a filter the user switched on, with its chosen cutoff.
type ActiveFilter struct {
	Spec   MetricFilterSpec
	Params ThresholdParams
	Cutoff float64
}

// Describe renders e.g. "Filter dG (Average_dG <= 0)".
func (f ActiveFilter) Describe() string {
	return fmt.Sprintf("%s (%s %s %g)", f.Spec.Label, f.Spec.MetricKey, f.Params.Direction.Symbol(), f.Cutoff)
}

// FilterGroup is a named, ordered set of filters shown together.
type FilterGroup struct {
	Name    string
	Filters []MetricFilterSpec
}

// Columns that identify a design row.
const (
	ColumnRank   = "Rank"
	ColumnDesign = "Design"
)

// MetricSetTop is the name of the default metric projection.
const MetricSetTop = "top_metrics"

// TopMetrics are the metric columns shown in the designs table.
func TopMetrics() []string {
	return []string{
		"Average_dSASA",
		"Average_ShapeComplementarity",
		"Average_dG",
		"Average_i_pLDDT",
		"Average_i_pAE",
		"Average_Binder_pLDDT",
		"Average_pLDDT",
		"Average_pAE",
		"Average_pTM",
		"Average_Hotspot_RMSD",
		"Average_PackStat",
		"Average_Relaxed_Clashes",
		"Average_n_InterfaceHbonds",
	}
}

// MetricSets returns named metric projections.
func MetricSets() map[string][]string {
	return map[string][]string{
		MetricSetTop: TopMetrics(),
	}
}

// DefaultFilterGroups returns the filter catalog.
func DefaultFilterGroups() []FilterGroup {
	return []FilterGroup{
		{
			Name: "primary",
			Filters: []MetricFilterSpec{
				{Label: "Filter dSASA", MetricType: MetricTypeRosetta, MetricKey: "Average_dSASA", Unit: "Å²"},
				{Label: "Filter Shape Complementarity", MetricType: MetricTypeRosetta, MetricKey: "Average_ShapeComplementarity"},
				{Label: "Filter dG", MetricType: MetricTypeRosetta, MetricKey: "Average_dG", Unit: "kcal/mol"},
			},
		},
		{
			Name: "secondary",
			Filters: []MetricFilterSpec{
				{Label: "Filter i_pLDDT", MetricType: MetricTypeAF2, MetricKey: "Average_i_pLDDT"},
				{Label: "Filter i_pAE", MetricType: MetricTypeAF2, MetricKey: "Average_i_pAE"},
				{Label: "Filter Binder pLDDT", MetricType: MetricTypeAF2, MetricKey: "Average_Binder_pLDDT"},
				{Label: "Filter pLDDT", MetricType: MetricTypeAF2, MetricKey: "Average_pLDDT"},
				{Label: "Filter pAE", MetricType: MetricTypeAF2, MetricKey: "Average_pAE"},
				{Label: "Filter pTM", MetricType: MetricTypeAF2, MetricKey: "Average_pTM"},
			},
		},
		{
			Name: "tertiary",
			Filters: []MetricFilterSpec{
				{Label: "Filter Hotspot RMSD", MetricType: MetricTypeRosetta, MetricKey: "Average_Hotspot_RMSD", Unit: "Å"},
				{Label: "Filter PackStat", MetricType: MetricTypeRosetta, MetricKey: "Average_PackStat"},
				{Label: "Filter Relaxed Clashes", MetricType: MetricTypeRosetta, MetricKey: "Average_Relaxed_Clashes"},
				{Label: "Filter n Interface H-bonds", MetricType: MetricTypeRosetta, MetricKey: "Average_n_InterfaceHbonds"},
			},
		},
	}
}

// AllFilters flattens groups in display order.
func AllFilters(groups []FilterGroup) []MetricFilterSpec {
	var out []MetricFilterSpec
	for _, g := range groups {
		out = append(out, g.Filters...)
	}
	return out
}

// FindFilter returns the filter whose metric key matches.
func FindFilter(groups []FilterGroup, metricKey string) (MetricFilterSpec, bool) {
	for _, g := range groups {
		for _, f := range g.Filters {
			if f.MetricKey == metricKey {
				return f, true
			}
		}
	}
	return MetricFilterSpec{}, false
}
