package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driving"
)

// FindInterfaceInput is the input schema for the find_interface tool.
type FindInterfaceInput struct {
	Path     string  `json:"path" jsonschema:"path to a PDB file with the target on chain A and the binder on chain B"`
	Distance *float64 `json:"distance,omitempty" jsonschema:"contact distance in Angstrom (default from settings)"`
	Rows     bool    `json:"rows,omitempty" jsonschema:"also return the side-by-side residue table"`
}

// FindInterfaceOutput is the output schema for the find_interface tool.
type FindInterfaceOutput struct {
	Structure string       `json:"structure"`
	Distance  float64      `json:"distance"`
	Target    []int        `json:"target"`
	Binder    []int        `json:"binder"`
	Rows      []ResidueRow `json:"rows,omitempty"`
}

// ResidueRow is one line of the interface table. Null marks padding.
type ResidueRow struct {
	Target *int `json:"target"`
	Binder *int `json:"binder"`
}

// FilterInput selects one metric filter.
type FilterInput struct {
	Metric string   `json:"metric" jsonschema:"metric column, e.g. Average_dG"`
	Cutoff *float64 `json:"cutoff,omitempty" jsonschema:"cutoff value (default from the threshold table)"`
}

// FilterDesignsInput is the input schema for the filter_designs tool.
type FilterDesignsInput struct {
	Path      string        `json:"path" jsonschema:"path to a design score CSV"`
	Filters   []FilterInput `json:"filters,omitempty" jsonschema:"filters to apply; none returns every design"`
	MetricSet string        `json:"metric_set,omitempty" jsonschema:"metric projection (default top_metrics)"`
	Out       string        `json:"out,omitempty" jsonschema:"write full stats of passing designs to this CSV file or directory"`
}

// FilterDesignsOutput is the output schema for the filter_designs tool.
type FilterDesignsOutput struct {
	Applied []string            `json:"applied"`
	Passed  int                 `json:"passed"`
	Total   int                 `json:"total"`
	Designs []map[string]string `json:"designs"`
	Written string              `json:"written,omitempty"`
}

// ListFiltersInput is the (empty) input schema for the list_filters tool.
type ListFiltersInput struct{}

// ListFiltersOutput is the output schema for the list_filters tool.
type ListFiltersOutput struct {
	Filters []FilterInfo `json:"filters"`
}

// FilterInfo describes one available filter and its bounds.
type FilterInfo struct {
	Group   string  `json:"group"`
	Label   string  `json:"label"`
	Metric  string  `json:"metric"`
	Keep    string  `json:"keep"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Step    float64 `json:"step"`
	Unit    string  `json:"unit,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_interface",
		Description: "List residues of chain A and chain B with an atom closer than the distance threshold to the other chain",
	}, s.handleFindInterface)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "filter_designs",
		Description: "Filter binder designs in a score CSV by metric cutoffs",
	}, s.handleFilterDesigns)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_filters",
		Description: "List the metric filters with their direction, bounds and default cutoff",
	}, s.handleListFilters)
}

func (s *Server) handleFindInterface(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindInterfaceInput,
) (*mcp.CallToolResult, FindInterfaceOutput, error) {
	if input.Path == "" {
		return nil, FindInterfaceOutput{}, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	distance := s.defaultDistance()
	if input.Distance != nil {
		distance = *input.Distance
	}

	data, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, FindInterfaceOutput{}, fmt.Errorf("reading structure: %w", err)
	}
	in := domain.StructureInput{FileName: filepath.Base(input.Path), Data: data}

	set, err := s.ports.Interface.Find(ctx, in, distance)
	if err != nil {
		return nil, FindInterfaceOutput{}, err
	}

	output := FindInterfaceOutput{
		Structure: domain.StructureName(in.FileName),
		Distance:  distance,
		Target:    set.Target.Sorted(),
		Binder:    set.Binder.Sorted(),
	}
	if input.Rows {
		for row := range s.ports.Interface.Table(set) {
			output.Rows = append(output.Rows, ResidueRow{Target: row.Target, Binder: row.Binder})
		}
	}

	return nil, output, nil
}

func (s *Server) handleFilterDesigns(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FilterDesignsInput,
) (*mcp.CallToolResult, FilterDesignsOutput, error) {
	if input.Path == "" {
		return nil, FilterDesignsOutput{}, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	metricSet := input.MetricSet
	if metricSet == "" {
		metricSet = domain.MetricSetTop
	}

	filters := make([]domain.ActiveFilter, 0, len(input.Filters))
	for _, f := range input.Filters {
		active, err := s.ports.Metrics.Activate(driving.FilterRequest{MetricKey: f.Metric, Cutoff: f.Cutoff})
		if err != nil {
			return nil, FilterDesignsOutput{}, err
		}
		filters = append(filters, active)
	}

	full, err := s.loadScores(ctx, input.Path)
	if err != nil {
		return nil, FilterDesignsOutput{}, err
	}

	result, err := s.ports.Metrics.Filter(full, metricSet, filters)
	if err != nil {
		return nil, FilterDesignsOutput{}, err
	}

	output := FilterDesignsOutput{
		Applied: result.Applied,
		Passed:  result.Metrics.Len(),
		Total:   full.Len(),
		Designs: records(result.Metrics),
	}

	if input.Out != "" {
		path, err := s.export(result.Full, input.Out)
		if err != nil {
			return nil, FilterDesignsOutput{}, err
		}
		output.Written = path
	}

	return nil, output, nil
}

func (s *Server) handleListFilters(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListFiltersInput,
) (*mcp.CallToolResult, ListFiltersOutput, error) {
	filters, err := s.filterInfos()
	if err != nil {
		return nil, ListFiltersOutput{}, err
	}
	return nil, ListFiltersOutput{Filters: filters}, nil
}

func (s *Server) filterInfos() ([]FilterInfo, error) {
	var out []FilterInfo
	for _, g := range s.ports.Metrics.Groups() {
		for _, spec := range g.Filters {
			p, err := s.ports.Metrics.Params(spec)
			if err != nil {
				return nil, err
			}
			out = append(out, FilterInfo{
				Group:   g.Name,
				Label:   spec.Label,
				Metric:  spec.MetricKey,
				Keep:    p.Direction.String(),
				Min:     p.Min,
				Max:     p.Max,
				Default: p.Default,
				Step:    p.Step,
				Unit:    spec.Unit,
			})
		}
	}
	return out, nil
}

func (s *Server) defaultDistance() float64 {
	if s.ports.Settings != nil {
		if settings, err := s.ports.Settings.Get(); err == nil {
			return settings.Interface.DistanceThreshold
		}
	}
	return domain.DefaultDistanceThreshold
}

func (s *Server) loadScores(ctx context.Context, path string) (*domain.ScoreTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scores: %w", err)
	}
	defer f.Close()
	return s.ports.Metrics.Load(ctx, f)
}

// export writes table to out, or to the default file name inside out when
// out is a directory.
func (s *Server) export(table *domain.ScoreTable, out string) (string, error) {
	path := out
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		path = filepath.Join(out, domain.FilteredStatsFileName)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if err := s.ports.Metrics.Export(f, table); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

func records(t *domain.ScoreTable) []map[string]string {
	out := make([]map[string]string, len(t.Rows))
	for i := range t.Rows {
		rec := make(map[string]string, len(t.Columns))
		for c, name := range t.Columns {
			rec[name] = t.Cell(i, c)
		}
		out[i] = rec
	}
	return out
}
