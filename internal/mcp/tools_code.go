package mcp

import (
	"context"
	"encoding/json"
	"fmt"
)

// =============================================================================
// CODE & ASSEMBLY TOOLS
// =============================================================================

func (s *Server) handleGetAssemblyForPath(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Path string `json:"path"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if p.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return s.project.AssemblyForPath(p.Path), nil
}

func (s *Server) handleListScriptsByAssembly(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Assembly string `json:"assembly"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	return s.project.ScriptsByAssembly(p.Assembly), nil
}

func (s *Server) handleListAsmdefReferences(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Assembly string `json:"assembly"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}

	if p.Assembly == "" {
		return map[string]interface{}{
			"references": s.project.AsmdefReferences(),
		}, nil
	}
	return map[string]interface{}{
		"assembly":     p.Assembly,
		"referencedBy": s.project.AssemblyReferrers(p.Assembly),
	}, nil
}

func (s *Server) handleListScripts(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Folder string `json:"folder"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	return s.project.Scripts(p.Folder), nil
}

func (s *Server) handleFindScriptsByContent(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Pattern         string `json:"pattern"`
		NamespaceFilter string `json:"namespace_filter"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if p.Pattern == "" {
		return nil, fmt.Errorf("pattern is required")
	}

	scripts, err := s.project.FindScriptsByContent(p.Pattern, p.NamespaceFilter)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return scripts, nil
}

func (s *Server) handleGetScriptPublicAPI(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		ScriptPath string `json:"script_path"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if p.ScriptPath == "" {
		return nil, fmt.Errorf("script_path is required")
	}
	return s.project.ScriptPublicAPI(ctx, p.ScriptPath)
}
