package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	stdlog "log"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/catalog"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/unity"
	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

// ServerName is reported to clients during initialization.
const ServerName = "unity-mcp-server"

// ErrUnknownTool is returned by Call for a name with no registered handler.
var ErrUnknownTool = errors.New("tool not found")

// Server is the MCP server
type Server struct {
	project *unity.Project
	catalog *catalog.Index
	tools   map[string]ToolHandler
	defs    []ToolInfo
	log     zerolog.Logger
	version string
}

// ToolHandler handles a tool call
type ToolHandler func(ctx context.Context, params json.RawMessage) (interface{}, error)

// ToolInfo describes a tool
type ToolInfo struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"-"`
	InputSchema InputSchema `json:"inputSchema"`
}

// InputSchema describes tool input
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes a property
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// NewServer creates a new MCP server for the project.
func NewServer(project *unity.Project, logger zerolog.Logger, version string) (*Server, error) {
	s := &Server{
		project: project,
		tools:   make(map[string]ToolHandler),
		defs:    toolDefinitions(),
		log:     logger,
		version: version,
	}

	s.registerTools()

	idx, err := newCatalog(s.defs)
	if err != nil {
		return nil, err
	}
	s.catalog = idx

	return s, nil
}

func newCatalog(defs []ToolInfo) (*catalog.Index, error) {
	entries := make([]types.ToolEntry, 0, len(defs))
	for _, d := range defs {
		entries = append(entries, types.ToolEntry{Name: d.Name, Description: d.Description, Category: d.Category})
	}
	idx, err := catalog.NewIndex(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to build tool catalog: %w", err)
	}
	return idx, nil
}

// SearchCatalog searches the tool catalog without opening a project.
func SearchCatalog(query string) ([]types.ToolGroup, error) {
	idx, err := newCatalog(toolDefinitions())
	if err != nil {
		return nil, err
	}
	defer idx.Close()
	return idx.Search(query)
}

// noArgs adapts a reader that takes no arguments.
func noArgs[T any](fn func() T) ToolHandler {
	return func(context.Context, json.RawMessage) (interface{}, error) {
		return fn(), nil
	}
}

func (s *Server) registerTools() {
	p := s.project

	// Project & build
	s.tools["get_project_info"] = noArgs(p.ProjectInfo)
	s.tools["list_build_scenes"] = noArgs(p.BuildScenes)
	s.tools["get_player_settings"] = noArgs(p.PlayerSettings)
	s.tools["list_packages"] = noArgs(p.Packages)
	s.tools["get_quality_settings"] = noArgs(p.QualitySettings)
	s.tools["get_scripting_defines"] = noArgs(p.ScriptingDefines)
	s.tools["get_physics_settings"] = noArgs(p.PhysicsSettings)
	s.tools["get_graphics_settings"] = noArgs(p.GraphicsSettings)
	s.tools["get_time_settings"] = noArgs(p.TimeSettings)
	s.tools["get_build_target_info"] = noArgs(p.BuildTargetInfo)
	s.tools["get_feature_set_inference"] = noArgs(p.FeatureSetInference)
	s.tools["get_project_version"] = noArgs(p.ProjectVersion)
	s.tools["get_changelog"] = s.handleGetChangelog
	s.tools["get_audio_settings"] = noArgs(p.AudioSettings)
	s.tools["get_navigation_settings"] = noArgs(p.NavigationSettings)
	s.tools["get_xr_settings"] = noArgs(p.XRSettings)
	s.tools["get_script_execution_order"] = noArgs(p.ScriptExecutionOrder)
	s.tools["get_version_control_settings"] = noArgs(p.VersionControlSettings)
	s.tools["get_layer_collision_matrix"] = noArgs(p.LayerCollisionMatrix)
	s.tools["get_cloud_services_config"] = noArgs(p.CloudServicesConfig)
	s.tools["get_package_dependency_graph"] = noArgs(p.PackageDependencyGraph)
	s.tools["list_package_samples"] = noArgs(p.PackageSamples)
	s.tools["list_unity_hub_projects"] = s.handleListUnityHubProjects

	// Code & assemblies
	s.tools["list_assemblies"] = noArgs(p.Assemblies)
	s.tools["get_assembly_for_path"] = s.handleGetAssemblyForPath
	s.tools["list_scripts_by_assembly"] = s.handleListScriptsByAssembly
	s.tools["list_asmdef_references"] = s.handleListAsmdefReferences
	s.tools["list_scripts"] = s.handleListScripts
	s.tools["find_scripts_by_content"] = s.handleFindScriptsByContent
	s.tools["get_assembly_dependency_graph"] = noArgs(p.AssemblyDependencyGraph)
	s.tools["list_editor_scripts"] = noArgs(p.EditorScripts)
	s.tools["list_visual_scripting_assets"] = noArgs(p.VisualScriptingAssets)
	s.tools["get_script_public_api"] = s.handleGetScriptPublicAPI

	// Scenes & prefabs
	s.tools["list_all_scenes"] = noArgs(p.AllScenes)
	s.tools["get_scene_summary"] = s.handleGetSceneSummary
	s.tools["get_scene_components_by_type"] = s.handleGetSceneComponentsByType
	s.tools["get_scene_objects_by_tag"] = s.handleGetSceneObjectsByTag
	s.tools["get_all_components_by_type"] = s.handleGetAllComponentsByType
	s.tools["get_scene_hierarchy_flat"] = s.handleGetSceneHierarchyFlat
	s.tools["get_lighting_scene_info"] = s.handleGetLightingSceneInfo
	s.tools["list_prefabs"] = s.handleListPrefabs
	s.tools["list_prefab_variants"] = noArgs(p.PrefabVariants)
	s.tools["list_prefabs_with_component"] = s.handleListPrefabsWithComponent
	s.tools["get_prefab_summary"] = s.handleGetPrefabSummary
	s.tools["get_prefab_script_guids"] = s.handleGetPrefabScriptGUIDs
	s.tools["list_subscenes"] = noArgs(p.Subscenes)

	// Assets & references
	s.tools["get_asset_folder_tree"] = s.handleGetAssetFolderTree
	s.tools["list_assets_by_extension"] = s.handleListAssetsByExtension
	s.tools["find_references"] = s.handleFindReferences
	s.tools["list_large_assets"] = s.handleListLargeAssets
	s.tools["list_video_clips"] = noArgs(p.VideoClips)
	s.tools["list_legacy_font_assets"] = noArgs(p.LegacyFontAssets)
	s.tools["list_render_textures"] = noArgs(p.RenderTextures)
	s.tools["list_terrain_data"] = noArgs(p.TerrainData)
	s.tools["list_lighting_settings_assets"] = noArgs(p.LightingSettingsAssets)
	s.tools["search_assets_by_name"] = s.handleSearchAssetsByName
	s.tools["get_texture_meta"] = s.handleGetTextureMeta
	s.tools["search_project"] = s.handleSearchProject
	s.tools["get_meta_for_asset"] = s.handleGetMetaForAsset
	s.tools["get_broken_asset_refs"] = noArgs(p.BrokenAssetRefs)
	s.tools["list_scriptable_objects"] = noArgs(p.ScriptableObjects)

	// Materials, shaders & rendering
	s.tools["list_materials"] = s.handleListMaterials
	s.tools["list_materials_using_shader"] = s.handleListMaterialsUsingShader
	s.tools["list_shaders"] = noArgs(p.Shaders)
	s.tools["list_shader_graphs"] = noArgs(p.ShaderGraphs)
	s.tools["list_vfx_graphs"] = noArgs(p.VFXGraphs)
	s.tools["list_render_pipelines"] = noArgs(p.RenderPipelines)

	// Animation
	s.tools["list_animator_controllers"] = noArgs(p.AnimatorControllers)
	s.tools["list_animation_clips"] = noArgs(p.AnimationClips)
	s.tools["get_animator_states"] = s.handleGetAnimatorStates
	s.tools["get_animator_transitions"] = s.handleGetAnimatorTransitions
	s.tools["list_timeline_playables"] = noArgs(p.TimelinePlayables)
	s.tools["list_avatar_masks"] = noArgs(p.AvatarMasks)
	s.tools["list_animator_override_controllers"] = noArgs(p.AnimatorOverrideControllers)

	// 2D, UI, input, tags, addressables, audio
	s.tools["list_sprite_atlases"] = noArgs(p.SpriteAtlases)
	s.tools["list_tilemap_assets"] = noArgs(p.TilemapAssets)
	s.tools["list_sprite_assets"] = noArgs(p.SpriteAssets)
	s.tools["list_tmp_fonts"] = noArgs(p.TMPFonts)
	s.tools["get_tmp_settings_path"] = s.handleGetTMPSettingsPath
	s.tools["list_ui_documents"] = noArgs(p.UIDocuments)
	s.tools["get_input_axes"] = noArgs(p.InputAxes)
	s.tools["list_input_action_assets"] = noArgs(p.InputActionAssets)
	s.tools["get_input_actions_summary"] = s.handleGetInputActionsSummary
	s.tools["get_tags_and_layers"] = noArgs(p.TagsAndLayers)
	s.tools["get_addressables_info"] = noArgs(p.AddressablesInfo)
	s.tools["get_localization_tables"] = noArgs(p.LocalizationTables)
	s.tools["list_audio_clips"] = noArgs(p.AudioClips)
	s.tools["list_audio_mixers"] = noArgs(p.AudioMixers)

	// Testing & docs
	s.tools["list_test_assemblies"] = noArgs(p.TestAssemblies)
	s.tools["get_repo_docs"] = noArgs(p.RepoDocs)
	s.tools["read_agent_docs"] = s.handleReadAgentDocs

	// CI & version control
	s.tools["list_ci_configs"] = noArgs(p.CIConfigs)
	s.tools["list_presets"] = noArgs(p.Presets)
	s.tools["get_git_lfs_tracked"] = noArgs(p.GitLFSTracked)
	s.tools["get_plastic_config"] = noArgs(p.PlasticConfig)

	// Integrations
	s.tools["get_playfab_config"] = noArgs(p.PlayFabConfig)
	s.tools["list_figma_related_assets"] = noArgs(p.FigmaRelatedAssets)
	s.tools["get_firebase_config"] = noArgs(p.FirebaseConfig)
	s.tools["get_steam_config"] = noArgs(p.SteamConfig)
	s.tools["get_discord_config"] = noArgs(p.DiscordConfig)
	s.tools["get_fmod_config"] = noArgs(p.FMODConfig)
	s.tools["get_wwise_config"] = noArgs(p.WwiseConfig)
	s.tools["list_substance_assets"] = noArgs(p.SubstanceAssets)
	s.tools["list_speedtree_assets"] = noArgs(p.SpeedTreeAssets)
	s.tools["list_lottie_assets"] = noArgs(p.LottieAssets)
	s.tools["get_analytics_or_crash_config"] = noArgs(p.AnalyticsOrCrashConfig)
	s.tools["get_ads_config"] = noArgs(p.AdsConfig)

	// Speed & productivity
	s.tools["get_project_stats"] = s.handleGetProjectStats
	s.tools["get_scene_referenced_assets"] = s.handleGetSceneReferencedAssets
	s.tools["detect_assembly_cycles"] = noArgs(p.AssemblyCycles)
	s.tools["find_script_references"] = s.handleFindScriptReferences
	s.tools["get_broken_script_refs"] = noArgs(p.BrokenScriptRefs)
	s.tools["get_prefab_dependencies"] = s.handleGetPrefabDependencies
	s.tools["get_release_readiness"] = s.handleGetReleaseReadiness
	s.tools["get_build_size_estimate"] = s.handleGetBuildSizeEstimate

	// Meta
	s.tools["search_tools"] = s.handleSearchTools
}

// Close releases the tool catalog.
func (s *Server) Close() error {
	return s.catalog.Close()
}

// Tools returns the tool definitions in catalog order.
func (s *Server) Tools() []ToolInfo {
	return s.defs
}

// SearchTools groups the tools matching query by category.
func (s *Server) SearchTools(query string) ([]types.ToolGroup, error) {
	return s.catalog.Search(query)
}

// Call runs a tool by name. Every call is logged with its own id.
func (s *Server) Call(ctx context.Context, name string, params json.RawMessage) (result interface{}, err error) {
	handler, ok := s.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	logger := s.log.With().Str("tool", name).Str("call_id", uuid.NewString()).Logger()
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("%s failed: %v", name, r)
		}
		if err != nil {
			logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("tool call failed")
			return
		}
		logger.Debug().Dur("duration", time.Since(start)).Msg("tool call")
	}()

	return handler(ctx, params)
}

// FormatResult renders a handler result as tool output text. Strings are
// returned as is, everything else as indented JSON.
func FormatResult(result interface{}) (string, error) {
	if text, ok := result.(string); ok {
		return text, nil
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(out), nil
}

// MCPServer registers every tool with an mcp-go server.
func (s *Server) MCPServer() (*server.MCPServer, error) {
	ms := server.NewMCPServer(
		ServerName,
		s.version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	for _, def := range s.defs {
		schema, err := json.Marshal(def.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("failed to encode schema for %s: %w", def.Name, err)
		}
		ms.AddTool(mcp.NewToolWithRawSchema(def.Name, def.Description, schema), s.bridge(def.Name))
	}
	return ms, nil
}

// bridge turns a registered handler into an mcp-go handler. Handler errors
// become error results rather than protocol failures.
func (s *Server) bridge(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: invalid arguments: %v", err)), nil
		}
		result, err := s.Call(ctx, name, args)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
		}
		text, err := FormatResult(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

// ServeStdio serves MCP over stdin/stdout until stdin closes.
func (s *Server) ServeStdio() error {
	ms, err := s.MCPServer()
	if err != nil {
		return err
	}
	s.log.Info().
		Str("project", s.project.Root).
		Int("tools", len(s.defs)).
		Msg("serving MCP over stdio")
	return server.ServeStdio(ms, server.WithErrorLogger(stdlog.New(s.log, "", 0)))
}

// decode unmarshals tool arguments. Empty arguments leave p untouched.
func decode(params json.RawMessage, p interface{}) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, p); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
