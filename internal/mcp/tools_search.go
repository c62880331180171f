package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// =============================================================================
// SPEED & PRODUCTIVITY TOOLS
// One-shot rollups and refactoring helpers, plus tool discovery
// =============================================================================

func (s *Server) handleGetProjectStats(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return s.project.ProjectStats(ctx)
}

func (s *Server) handleGetReleaseReadiness(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return s.project.ReleaseReadiness(ctx)
}

func (s *Server) handleGetBuildSizeEstimate(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Limit int `json:"limit"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	return s.project.BuildSizeEstimate(p.Limit), nil
}

func (s *Server) handleFindScriptReferences(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		TypeName string `json:"type_name"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.TypeName) == "" {
		return nil, fmt.Errorf("type_name is required")
	}
	return s.project.FindScriptReferences(p.TypeName)
}

func (s *Server) handleSearchTools(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Query string `json:"query"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}

	groups, err := s.catalog.Search(p.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to search tools: %w", err)
	}
	return groups, nil
}
