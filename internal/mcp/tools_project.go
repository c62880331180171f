package mcp

import (
	"context"
	"encoding/json"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/unity"
)

// =============================================================================
// PROJECT & BUILD TOOLS
// =============================================================================

func (s *Server) handleGetChangelog(ctx context.Context, params json.RawMessage) (interface{}, error) {
	content, ok := s.project.Changelog()
	if !ok {
		return "(No CHANGELOG found)", nil
	}
	return content, nil
}

func (s *Server) handleListUnityHubProjects(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		HubPath string `json:"hub_path"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}

	hubFile := p.HubPath
	if hubFile == "" {
		hubFile = unity.DefaultHubProjectsFile()
	}
	return unity.UnityHubProjects(hubFile), nil
}
