package mcp

// Tool categories, in catalog order.
const (
	catProject      = "Project & build"
	catCode         = "Code & assemblies"
	catScenes       = "Scenes & prefabs"
	catAssets       = "Assets & references"
	catMaterials    = "Materials & shaders"
	catRendering    = "Rendering"
	catAnimation    = "Animation"
	cat2D           = "2D & sprites"
	catUI           = "TextMeshPro & UI"
	catInput        = "Input"
	catTags         = "Tags & layers"
	catAddressables = "Addressables & localization"
	catAudio        = "Audio"
	catDocs         = "Testing & docs"
	catCI           = "CI & version control"
	catIntegrations = "Integrations"
	catSpeed        = "Speed & productivity"
	catMeta         = "Meta"
)

// Shared argument descriptions.
var (
	argFolder         = Property{Type: "string", Description: "Optional folder under Assets, e.g. Scripts/Runtime"}
	argScenePath      = Property{Type: "string", Description: "Scene path relative to the project, e.g. Assets/Scenes/Main.unity"}
	argPrefabPath     = Property{Type: "string", Description: "Prefab path relative to the project, e.g. Assets/Prefabs/Player.prefab"}
	argComponentType  = Property{Type: "string", Description: "Component type, e.g. Camera, Light, Animator, or a script class name"}
	argControllerPath = Property{Type: "string", Description: "Animator Controller path, e.g. Assets/Animations/Player.controller"}
	argAssetPath      = Property{Type: "string", Description: "Asset path relative to the project"}
	argLimit          = Property{Type: "integer", Description: "Max results"}
)

func tool(category, name, description string, props map[string]Property, required ...string) ToolInfo {
	if props == nil {
		props = map[string]Property{}
	}
	return ToolInfo{
		Name:        name,
		Description: description,
		Category:    category,
		InputSchema: InputSchema{Type: "object", Properties: props, Required: required},
	}
}

// toolDefinitions returns the schema definitions for every tool. The order
// is the catalog order used by search_tools.
func toolDefinitions() []ToolInfo {
	return []ToolInfo{
		// === PROJECT & BUILD ===
		tool(catProject, "get_project_info", "Path, Unity version, build scene count, player/product name", nil),
		tool(catProject, "list_build_scenes", "Scenes in EditorBuildSettings (build order)", nil),
		tool(catProject, "get_player_settings", "Product name, company, bundle ID, version", nil),
		tool(catProject, "list_packages", "Packages from manifest.json, with packages-lock.json when present", nil),
		tool(catProject, "get_quality_settings", "Quality levels", nil),
		tool(catProject, "get_scripting_defines", "Global and per-assembly defines", nil),
		tool(catProject, "get_physics_settings", "Physics / Physics2D settings", nil),
		tool(catProject, "get_graphics_settings", "Graphics settings (GraphicsSettings.asset)", nil),
		tool(catProject, "get_time_settings", "Time / fixed timestep (TimeManager.asset)", nil),
		tool(catProject, "get_build_target_info", "Active build target / platform", nil),
		tool(catProject, "get_feature_set_inference", "Infer Unity 6 feature sets from packages (2D, ECS, AR, etc.)", nil),
		tool(catProject, "get_project_version", "Bundle version", nil),
		tool(catProject, "get_changelog", "CHANGELOG contents", nil),
		tool(catProject, "get_audio_settings", "AudioManager.asset (global volume, reverb, DSP buffer)", nil),
		tool(catProject, "get_navigation_settings", "NavMesh/agent settings from ProjectSettings", nil),
		tool(catProject, "get_xr_settings", "XR/VR project settings", nil),
		tool(catProject, "get_script_execution_order", "Script execution order (MonoManager)", nil),
		tool(catProject, "get_version_control_settings", "Serialization mode, visible meta files", nil),
		tool(catProject, "get_layer_collision_matrix", "Layer collision matrix and layer names", nil),
		tool(catProject, "get_cloud_services_config", "Unity Cloud / Unity Connect config", nil),
		tool(catProject, "get_package_dependency_graph", "Package dependency graph (manifest + lock)", nil),
		tool(catProject, "list_package_samples", "Samples folders under Packages", nil),
		tool(catProject, "list_unity_hub_projects", "List Unity projects from Unity Hub (projects-v1.json)", map[string]Property{
			"hub_path": {Type: "string", Description: "Optional path to projects-v1.json; defaults to the Unity Hub config directory"},
		}),

		// === CODE & ASSEMBLIES ===
		tool(catCode, "list_assemblies", "Assembly definitions with references, platforms", nil),
		tool(catCode, "get_assembly_for_path", "Assembly that contains a given script or folder path", map[string]Property{
			"path": {Type: "string", Description: "Script or folder path, e.g. Assets/Scripts/Player.cs"},
		}, "path"),
		tool(catCode, "list_scripts_by_assembly", "C# script paths in a given assembly (by name or asmdef path)", map[string]Property{
			"assembly": {Type: "string", Description: "Optional assembly name or .asmdef path; all assemblies when omitted"},
		}),
		tool(catCode, "list_asmdef_references", "Assembly names that reference a given assembly (reverse deps)", map[string]Property{
			"assembly": {Type: "string", Description: "Assembly name; when omitted every assembly's references are listed"},
		}),
		tool(catCode, "list_scripts", "C# scripts (optional folder filter)", map[string]Property{
			"folder": argFolder,
		}),
		tool(catCode, "find_scripts_by_content", "By type/pattern (e.g. MonoBehaviour)", map[string]Property{
			"pattern":          {Type: "string", Description: "Regular expression to search for, e.g. MonoBehaviour or a type name"},
			"namespace_filter": {Type: "string", Description: "Optional namespace pattern, e.g. Game.*"},
		}, "pattern"),
		tool(catCode, "get_assembly_dependency_graph", "Nodes and edges", nil),
		tool(catCode, "list_editor_scripts", "Scripts in Editor folders", nil),
		tool(catCode, "list_visual_scripting_assets", "Bolt / Unity Visual Scripting .asset files", nil),
		tool(catCode, "get_script_public_api", "Parse C# script: class name, base type, public methods/fields", map[string]Property{
			"script_path": {Type: "string", Description: "Script path, e.g. Assets/Scripts/Player.cs"},
		}, "script_path"),

		// === SCENES & PREFABS ===
		tool(catScenes, "list_all_scenes", "All .unity files under Assets", nil),
		tool(catScenes, "get_scene_summary", "Root GameObjects, component count", map[string]Property{
			"scene_path": argScenePath,
		}, "scene_path"),
		tool(catScenes, "get_scene_components_by_type", "GameObjects in a scene with a component type (e.g. Camera, Light)", map[string]Property{
			"scene_path":     argScenePath,
			"component_type": argComponentType,
		}, "scene_path", "component_type"),
		tool(catScenes, "get_scene_objects_by_tag", "GameObjects in a scene with a given tag (e.g. Spawn)", map[string]Property{
			"scene_path": argScenePath,
			"tag":        {Type: "string", Description: "Tag name, e.g. Player"},
		}, "scene_path", "tag"),
		tool(catScenes, "get_all_components_by_type", "All Cameras/Lights/etc. across all scenes", map[string]Property{
			"component_type": argComponentType,
		}, "component_type"),
		tool(catScenes, "get_scene_hierarchy_flat", "Flat list of GameObjects in a scene (name and layer)", map[string]Property{
			"scene_path": argScenePath,
		}, "scene_path"),
		tool(catScenes, "get_lighting_scene_info", "Lighting assets and GI workflow mode for a scene", map[string]Property{
			"scene_path": argScenePath,
		}, "scene_path"),
		tool(catScenes, "list_prefabs", "Prefabs (optional path prefix)", map[string]Property{
			"path_prefix": {Type: "string", Description: "Optional folder under Assets, e.g. Prefabs/Characters"},
		}),
		tool(catScenes, "list_prefab_variants", "Prefabs that are variants of another prefab", nil),
		tool(catScenes, "list_prefabs_with_component", "Prefabs that contain a component type (e.g. Animator)", map[string]Property{
			"component_type": argComponentType,
		}, "component_type"),
		tool(catScenes, "get_prefab_summary", "Prefab summary: root name, component count, component types", map[string]Property{
			"prefab_path": argPrefabPath,
		}, "prefab_path"),
		tool(catScenes, "get_prefab_script_guids", "Script GUIDs used by a prefab", map[string]Property{
			"prefab_path": argPrefabPath,
		}, "prefab_path"),
		tool(catScenes, "list_subscenes", "ECS/DOTS .subscene assets", nil),

		// === ASSETS & REFERENCES ===
		tool(catAssets, "get_asset_folder_tree", "Folder tree under Assets", map[string]Property{
			"max_depth": {Type: "integer", Description: "Max folder depth, default 4"},
		}),
		tool(catAssets, "list_assets_by_extension", "By extension (e.g. .png, .fbx)", map[string]Property{
			"extension": {Type: "string", Description: "File extension, e.g. .png, .fbx, .mp3"},
			"folder":    argFolder,
		}, "extension"),
		tool(catAssets, "find_references", "Assets referencing a path or GUID", map[string]Property{
			"asset_path_or_guid": {Type: "string", Description: "Asset path relative to the project (e.g. Assets/My.asset) or 32-char GUID"},
		}, "asset_path_or_guid"),
		tool(catAssets, "list_large_assets", "Files over N MB (default 5)", map[string]Property{
			"min_size_mb": {Type: "number", Description: "Minimum size in MB, default 5"},
		}),
		tool(catAssets, "list_video_clips", "Video clip assets (.mp4, .mov, .webm, etc.)", nil),
		tool(catAssets, "list_legacy_font_assets", "Legacy fonts (.fontsettings, .ttf, .otf), not TMP", nil),
		tool(catAssets, "list_render_textures", "RenderTexture assets", nil),
		tool(catAssets, "list_terrain_data", "TerrainData and TerrainLayer assets", nil),
		tool(catAssets, "list_lighting_settings_assets", "Lighting-related .asset files", nil),
		tool(catAssets, "search_assets_by_name", "Search Assets by name pattern", map[string]Property{
			"query": {Type: "string", Description: "Case-insensitive substring of the file name"},
			"limit": argLimit,
		}, "query"),
		tool(catAssets, "get_texture_meta", "Texture .meta (maxSize, dimensions, spriteMode, PPU)", map[string]Property{
			"asset_path": argAssetPath,
		}, "asset_path"),
		tool(catAssets, "search_project", "Combined search: name pattern, script content pattern, and/or referrers of path", map[string]Property{
			"query": {Type: "string", Description: "Name fragment, content pattern, or asset path to find referrers of"},
		}, "query"),
		tool(catAssets, "get_meta_for_asset", "Read .meta for any asset path (guid, importer keys)", map[string]Property{
			"asset_path": argAssetPath,
		}, "asset_path"),
		tool(catAssets, "get_broken_asset_refs", "Prefabs/scenes/materials with any missing GUID reference", nil),
		tool(catAssets, "list_scriptable_objects", ".asset files that are ScriptableObject instances", nil),

		// === MATERIALS & SHADERS ===
		tool(catMaterials, "list_materials", "Materials (optional folder)", map[string]Property{
			"folder": argFolder,
		}),
		tool(catMaterials, "list_materials_using_shader", "Materials that use a given shader (GUID or path)", map[string]Property{
			"shader": {Type: "string", Description: "Shader asset path or GUID"},
		}, "shader"),
		tool(catMaterials, "list_shaders", ".shader in Assets and Packages", nil),
		tool(catMaterials, "list_shader_graphs", "Shader Graph assets", nil),
		tool(catMaterials, "list_vfx_graphs", "VFX Graph assets", nil),
		tool(catRendering, "list_render_pipelines", "URP/HDRP pipeline assets, volume profiles", nil),

		// === ANIMATION ===
		tool(catAnimation, "list_animator_controllers", ".controller assets", nil),
		tool(catAnimation, "list_animation_clips", ".anim assets", nil),
		tool(catAnimation, "get_animator_states", "State names from a controller", map[string]Property{
			"controller_path": argControllerPath,
		}, "controller_path"),
		tool(catAnimation, "get_animator_transitions", "State names and from/to transitions from a controller", map[string]Property{
			"controller_path": argControllerPath,
		}, "controller_path"),
		tool(catAnimation, "list_timeline_playables", "Timeline .playable assets", nil),
		tool(catAnimation, "list_avatar_masks", "Avatar Mask (.mask) assets", nil),
		tool(catAnimation, "list_animator_override_controllers", "AnimatorOverrideController assets", nil),

		// === 2D, UI, INPUT, TAGS ===
		tool(cat2D, "list_sprite_atlases", "Sprite Atlas assets", nil),
		tool(cat2D, "list_tilemap_assets", "Tilemap-related assets", nil),
		tool(cat2D, "list_sprite_assets", "Textures configured as sprites (spriteMode in .meta)", nil),
		tool(catUI, "list_tmp_fonts", "TMP/font assets", nil),
		tool(catUI, "get_tmp_settings_path", "TMP Settings asset path", nil),
		tool(catUI, "list_ui_documents", ".uxml and .uss (UI Toolkit)", nil),
		tool(catInput, "get_input_axes", "InputManager axes", nil),
		tool(catInput, "list_input_action_assets", "New Input System .inputactions", nil),
		tool(catInput, "get_input_actions_summary", "Action maps and actions from a file", map[string]Property{
			"asset_path": {Type: "string", Description: "Path to an .inputactions file"},
		}, "asset_path"),
		tool(catTags, "get_tags_and_layers", "Tags and layers from TagManager", nil),

		// === ADDRESSABLES, AUDIO, DOCS ===
		tool(catAddressables, "get_addressables_info", "Groups and config path", nil),
		tool(catAddressables, "get_localization_tables", "Localization table files", nil),
		tool(catAudio, "list_audio_clips", ".wav, .mp3, .ogg, .aiff", nil),
		tool(catAudio, "list_audio_mixers", "Audio Mixer assets", nil),
		tool(catDocs, "list_test_assemblies", "Test assembly definitions", nil),
		tool(catDocs, "get_repo_docs", "README, CONTRIBUTING, .cursorrules, etc.", nil),
		tool(catDocs, "read_agent_docs", ".agents/AGENT.md, optional REPO_UNDERSTANDING.md", map[string]Property{
			"include_repo_understanding": {Type: "boolean", Description: "If true, also return REPO_UNDERSTANDING.md"},
		}),

		// === CI & VERSION CONTROL ===
		tool(catCI, "list_ci_configs", ".github/workflows, Jenkinsfile, unity-cloud-build", nil),
		tool(catCI, "list_presets", ".preset assets", nil),
		tool(catCI, "get_git_lfs_tracked", "LFS patterns from .gitattributes", nil),
		tool(catCI, "get_plastic_config", "Plastic SCM config", nil),

		// === INTEGRATIONS ===
		tool(catIntegrations, "get_playfab_config", "Title ID, config paths", nil),
		tool(catIntegrations, "list_figma_related_assets", "Figma folder / named assets", nil),
		tool(catIntegrations, "get_firebase_config", "GoogleServices path, project ID", nil),
		tool(catIntegrations, "get_steam_config", "steam_appid.txt, Steamworks path", nil),
		tool(catIntegrations, "get_discord_config", "Discord SDK path", nil),
		tool(catIntegrations, "get_fmod_config", "Banks path, bank files", nil),
		tool(catIntegrations, "get_wwise_config", "Sound banks, project paths", nil),
		tool(catIntegrations, "list_substance_assets", ".sbsar, .sbs", nil),
		tool(catIntegrations, "list_speedtree_assets", ".spm, .stm", nil),
		tool(catIntegrations, "list_lottie_assets", "Lottie JSON assets", nil),
		tool(catIntegrations, "get_analytics_or_crash_config", "Sentry, Crashlytics, BugSnag, etc.", nil),
		tool(catIntegrations, "get_ads_config", "Unity Ads, AdMob, ironSource presence", nil),

		// === SPEED & PRODUCTIVITY ===
		tool(catSpeed, "get_project_stats", "One-shot stats: scripts, prefabs, scenes, materials, animations, assemblies, packages", nil),
		tool(catSpeed, "get_scene_referenced_assets", "Asset paths referenced by a scene (build size / impact)", map[string]Property{
			"scene_path": argScenePath,
		}, "scene_path"),
		tool(catSpeed, "detect_assembly_cycles", "Circular refs in assembly definitions (fix compile errors)", nil),
		tool(catSpeed, "find_script_references", "C# files that reference a type/class name (refactoring)", map[string]Property{
			"type_name": {Type: "string", Description: "Type, class or member name, matched as a whole word"},
		}, "type_name"),
		tool(catSpeed, "get_broken_script_refs", "Prefabs/scenes with missing script refs", nil),
		tool(catSpeed, "get_prefab_dependencies", "Asset paths referenced by a prefab (impact analysis)", map[string]Property{
			"prefab_path": argPrefabPath,
		}, "prefab_path"),
		tool(catSpeed, "get_release_readiness", "One-shot: version, build scenes, packages, broken refs, cycles, large assets", nil),
		tool(catSpeed, "get_build_size_estimate", "Build size estimate: total size and largest assets from build scenes", map[string]Property{
			"limit": {Type: "integer", Description: "Number of largest assets to list, default 20"},
		}),

		// === META ===
		tool(catMeta, "search_tools", "Find the most relevant tools by intent (e.g. find references, missing script). Call with no query to list all tools.", map[string]Property{
			"query": {Type: "string", Description: "Optional keywords matched against tool names, descriptions and categories"},
		}),
	}
}
