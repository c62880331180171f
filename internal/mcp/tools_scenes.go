package mcp

import (
	"context"
	"encoding/json"
	"fmt"
)

// =============================================================================
// SCENE & PREFAB TOOLS
// =============================================================================

type sceneArgs struct {
	ScenePath string `json:"scene_path"`
}

func (a sceneArgs) validate() error {
	if a.ScenePath == "" {
		return fmt.Errorf("scene_path is required")
	}
	return nil
}

type prefabArgs struct {
	PrefabPath string `json:"prefab_path"`
}

func (a prefabArgs) validate() error {
	if a.PrefabPath == "" {
		return fmt.Errorf("prefab_path is required")
	}
	return nil
}

// sceneHandler adapts a reader that only needs scene_path.
func sceneHandler[T any](fn func(string) T) ToolHandler {
	return func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		var p sceneArgs
		if err := decode(params, &p); err != nil {
			return nil, err
		}
		if err := p.validate(); err != nil {
			return nil, err
		}
		return fn(p.ScenePath), nil
	}
}

// prefabHandler adapts a reader that only needs prefab_path.
func prefabHandler[T any](fn func(string) T) ToolHandler {
	return func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		var p prefabArgs
		if err := decode(params, &p); err != nil {
			return nil, err
		}
		if err := p.validate(); err != nil {
			return nil, err
		}
		return fn(p.PrefabPath), nil
	}
}

func (s *Server) handleGetSceneSummary(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return sceneHandler(s.project.SceneSummary)(ctx, params)
}

func (s *Server) handleGetSceneHierarchyFlat(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return sceneHandler(s.project.SceneHierarchyFlat)(ctx, params)
}

func (s *Server) handleGetLightingSceneInfo(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return sceneHandler(s.project.LightingSceneInfo)(ctx, params)
}

func (s *Server) handleGetSceneReferencedAssets(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return sceneHandler(s.project.SceneReferencedAssets)(ctx, params)
}

func (s *Server) handleGetSceneComponentsByType(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		sceneArgs
		ComponentType string `json:"component_type"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	if p.ComponentType == "" {
		return nil, fmt.Errorf("component_type is required")
	}
	return s.project.SceneComponentsByType(p.ScenePath, p.ComponentType), nil
}

func (s *Server) handleGetSceneObjectsByTag(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		sceneArgs
		Tag string `json:"tag"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	if p.Tag == "" {
		return nil, fmt.Errorf("tag is required")
	}
	return s.project.SceneObjectsByTag(p.ScenePath, p.Tag), nil
}

func (s *Server) handleGetAllComponentsByType(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		ComponentType string `json:"component_type"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if p.ComponentType == "" {
		return nil, fmt.Errorf("component_type is required")
	}
	return s.project.AllComponentsByType(p.ComponentType), nil
}

func (s *Server) handleListPrefabs(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		PathPrefix string `json:"path_prefix"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	return s.project.Prefabs(p.PathPrefix), nil
}

func (s *Server) handleListPrefabsWithComponent(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		ComponentType string `json:"component_type"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if p.ComponentType == "" {
		return nil, fmt.Errorf("component_type is required")
	}
	return s.project.PrefabsWithComponent(p.ComponentType), nil
}

func (s *Server) handleGetPrefabSummary(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return prefabHandler(s.project.PrefabSummary)(ctx, params)
}

func (s *Server) handleGetPrefabScriptGUIDs(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return prefabHandler(s.project.PrefabScriptGUIDs)(ctx, params)
}

func (s *Server) handleGetPrefabDependencies(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return prefabHandler(s.project.PrefabDependencies)(ctx, params)
}
