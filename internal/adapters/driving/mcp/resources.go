package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const uriScheme = "binderdash://"

// registerResources registers the threshold catalog resources.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "filters",
		Name:        "filters",
		Description: "Metric filters with their direction, bounds and default cutoff",
		MIMEType:    "application/json",
	}, s.handleFiltersResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "filters/{metric}",
		Name:        "filter",
		Description: "Bounds of a single metric filter",
		MIMEType:    "application/json",
	}, s.handleFilterResource)
}

func (s *Server) handleFiltersResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	infos, err := s.filterInfos()
	if err != nil {
		return nil, fmt.Errorf("listing filters: %w", err)
	}
	return jsonResource(req.Params.URI, infos)
}

func (s *Server) handleFilterResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	metric := extractMetric(req.Params.URI)
	if metric == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	infos, err := s.filterInfos()
	if err != nil {
		return nil, fmt.Errorf("listing filters: %w", err)
	}
	for _, info := range infos {
		if info.Metric == metric {
			return jsonResource(req.Params.URI, info)
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractMetric extracts the metric key from binderdash://filters/{metric}.
func extractMetric(uri string) string {
	const prefix = uriScheme + "filters/"
	metric, ok := strings.CutPrefix(uri, prefix)
	if !ok || strings.Contains(metric, "/") {
		return ""
	}
	return metric
}
