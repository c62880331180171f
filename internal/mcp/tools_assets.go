package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/unity"
)

// =============================================================================
// ASSET, MATERIAL & REFERENCE TOOLS
// =============================================================================

type assetArgs struct {
	AssetPath string `json:"asset_path"`
}

func (a assetArgs) validate() error {
	if a.AssetPath == "" {
		return fmt.Errorf("asset_path is required")
	}
	return nil
}

func (s *Server) handleGetAssetFolderTree(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		MaxDepth int `json:"max_depth"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if p.MaxDepth <= 0 {
		p.MaxDepth = unity.DefaultFolderTreeDepth
	}
	return s.project.AssetFolderTree(p.MaxDepth), nil
}

func (s *Server) handleListAssetsByExtension(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Extension string `json:"extension"`
		Folder    string `json:"folder"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Extension) == "" {
		return nil, fmt.Errorf("extension is required")
	}
	return s.project.AssetsByExtension(p.Extension, p.Folder), nil
}

func (s *Server) handleFindReferences(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		AssetPathOrGUID string `json:"asset_path_or_guid"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.AssetPathOrGUID) == "" {
		return nil, fmt.Errorf("asset_path_or_guid is required")
	}
	return s.project.FindReferences(p.AssetPathOrGUID), nil
}

func (s *Server) handleListLargeAssets(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		MinSizeMB float64 `json:"min_size_mb"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	return s.project.LargeAssets(p.MinSizeMB), nil
}

func (s *Server) handleSearchAssetsByName(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Query) == "" {
		return nil, fmt.Errorf("query is required")
	}
	return s.project.SearchAssetsByName(p.Query, p.Limit), nil
}

func (s *Server) handleSearchProject(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Query string `json:"query"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	return s.project.SearchProject(p.Query)
}

func (s *Server) handleGetTextureMeta(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p assetArgs
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	meta, ok := s.project.TextureMeta(p.AssetPath)
	if !ok {
		return nil, nil
	}
	return meta, nil
}

func (s *Server) handleGetMetaForAsset(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p assetArgs
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	meta, ok := s.project.MetaForAsset(p.AssetPath)
	if !ok {
		return nil, nil
	}
	return meta, nil
}

func (s *Server) handleListMaterials(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Folder string `json:"folder"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	return s.project.Materials(p.Folder), nil
}

func (s *Server) handleListMaterialsUsingShader(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Shader string `json:"shader"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Shader) == "" {
		return nil, fmt.Errorf("shader is required")
	}
	return s.project.MaterialsUsingShader(p.Shader), nil
}

// =============================================================================
// ANIMATION, UI & INPUT TOOLS
// =============================================================================

type controllerArgs struct {
	ControllerPath string `json:"controller_path"`
}

func controllerPath(params json.RawMessage) (string, error) {
	var p controllerArgs
	if err := decode(params, &p); err != nil {
		return "", err
	}
	if p.ControllerPath == "" {
		return "", fmt.Errorf("controller_path is required")
	}
	return p.ControllerPath, nil
}

func (s *Server) handleGetAnimatorStates(ctx context.Context, params json.RawMessage) (interface{}, error) {
	path, err := controllerPath(params)
	if err != nil {
		return nil, err
	}
	return s.project.AnimatorStates(path), nil
}

func (s *Server) handleGetAnimatorTransitions(ctx context.Context, params json.RawMessage) (interface{}, error) {
	path, err := controllerPath(params)
	if err != nil {
		return nil, err
	}
	return s.project.AnimatorGraph(path), nil
}

func (s *Server) handleGetTMPSettingsPath(ctx context.Context, params json.RawMessage) (interface{}, error) {
	path, ok := s.project.TMPSettingsPath()
	if !ok {
		return nil, nil
	}
	return path, nil
}

func (s *Server) handleGetInputActionsSummary(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p assetArgs
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return s.project.InputActionsSummary(p.AssetPath), nil
}

func (s *Server) handleReadAgentDocs(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		IncludeRepoUnderstanding bool `json:"include_repo_understanding"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	return s.project.AgentDocs(p.IncludeRepoUnderstanding), nil
}
