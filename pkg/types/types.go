package types

// =============================================================================
// REFERENCES
// =============================================================================

// BrokenRef is a reference from a serialized asset to a GUID that no asset
// in the project declares.
type BrokenRef struct {
	AssetPath   string `json:"assetPath"`
	MissingGUID string `json:"missingGuid"`
}

// ReferencedAssets splits the GUIDs found in one file into resolved asset
// paths and GUIDs with no matching .meta.
type ReferencedAssets struct {
	Resolved        []string `json:"resolved"`
	UnresolvedGUIDs []string `json:"unresolvedGuids"`
}

// ReferenceSearch is the result of find_references.
type ReferenceSearch struct {
	GUID       string   `json:"guid"`
	AssetPath  string   `json:"assetPath,omitempty"`
	References []string `json:"references"`
	Message    string   `json:"message,omitempty"`
}

// =============================================================================
// GRAPHS
// =============================================================================

// DependencyGraph is a directed graph of assembly names. Edges keep
// discovery order and may repeat.
type DependencyGraph struct {
	Nodes          []string    `json:"nodes"`
	Edges          [][2]string `json:"edges"`
	DuplicateNames []string    `json:"duplicateNames,omitempty"`
}

// PackageNode is one package in the package graph.
type PackageNode struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// PackageGraph is the dependency graph rooted at the synthetic "project" node.
type PackageGraph struct {
	Nodes []PackageNode `json:"nodes"`
	Edges [][2]string   `json:"edges"`
}

// AssemblyCycles lists the strongly connected components of the assembly
// graph that have more than one member.
type AssemblyCycles struct {
	Cycles    [][]string `json:"cycles"`
	HasCycles bool       `json:"hasCycles"`
}

// =============================================================================
// PROJECT & BUILD
// =============================================================================

// BuildScene is an entry of EditorBuildSettings in build order.
type BuildScene struct {
	Index   int    `json:"index"`
	Path    string `json:"path"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// ProjectInfo is the one-call project overview.
type ProjectInfo struct {
	ProjectRoot     string            `json:"projectRoot"`
	UnityVersion    string            `json:"unityVersion"`
	BuildSceneCount int               `json:"buildSceneCount"`
	BuildScenes     []BuildScene      `json:"buildScenes"`
	Player          map[string]string `json:"player"`
}

// PackageInfo is a direct dependency from Packages/manifest.json.
type PackageInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Type    string `json:"type"` // registry, local, git, embedded
}

// LockedPackage is an entry of Packages/packages-lock.json.
type LockedPackage struct {
	Version      string            `json:"version"`
	Depth        int               `json:"depth"`
	Source       string            `json:"source,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	URL          string            `json:"url,omitempty"`
}

// PackageList is the result of list_packages.
type PackageList struct {
	Dependencies []PackageInfo            `json:"dependencies"`
	Lock         map[string]LockedPackage `json:"lock,omitempty"`
}

// ScriptingDefines holds player-level and per-assembly define symbols.
type ScriptingDefines struct {
	Global      []string            `json:"global"`
	PerAssembly map[string][]string `json:"perAssembly"`
}

// PhysicsSettings holds the 3D and 2D physics managers.
type PhysicsSettings struct {
	Dynamics  map[string]string `json:"dynamics,omitempty"`
	Physics2D map[string]string `json:"physics2d,omitempty"`
}

// BuildTargetInfo names the active build platform.
type BuildTargetInfo struct {
	ActiveBuildTarget   string `json:"activeBuildTarget,omitempty"`
	ActiveBuildTargetID string `json:"activeBuildTargetId,omitempty"`
}

// FeatureSetInference lists feature sets guessed from installed packages.
type FeatureSetInference struct {
	Detected     []string `json:"detected"`
	PackageCount int      `json:"packageCount"`
}

// NavArea is a NavMesh area definition.
type NavArea struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Cost  string `json:"cost,omitempty"`
}

// NavigationSettings is read from NavMeshAreas.asset.
type NavigationSettings struct {
	Areas      []NavArea         `json:"areas"`
	AgentTypes []string          `json:"agentTypes"`
	Settings   map[string]string `json:"settings"`
}

// XRSettings summarises XR configuration.
type XRSettings struct {
	Settings     map[string]string `json:"settings"`
	LoaderAssets []string          `json:"loaderAssets"`
	Packages     []string          `json:"packages"`
}

// ExecutionOrder is a script with a non-default execution order.
type ExecutionOrder struct {
	Script string `json:"script"`
	Order  int    `json:"order"`
}

// VersionControlSettings is read from EditorSettings and VersionControlSettings.
type VersionControlSettings struct {
	SerializationMode string `json:"serializationMode,omitempty"`
	MetaFiles         string `json:"metaFiles,omitempty"`
	VersionControl    string `json:"versionControl,omitempty"`
}

// LayerCollisions lists the named layers a layer collides with.
type LayerCollisions struct {
	Layer        string   `json:"layer"`
	Index        int      `json:"index"`
	CollidesWith []string `json:"collidesWith"`
}

// LayerCollisionMatrix is decoded from DynamicsManager.asset.
type LayerCollisionMatrix struct {
	Layers []string          `json:"layers"`
	Matrix []LayerCollisions `json:"matrix"`
}

// CloudServicesConfig holds Unity Cloud project linkage.
type CloudServicesConfig struct {
	CloudProjectID  string            `json:"cloudProjectId,omitempty"`
	ProjectName     string            `json:"projectName,omitempty"`
	OrganizationID  string            `json:"organizationId,omitempty"`
	ConnectSettings map[string]string `json:"connectSettings"`
}

// PackageSample is a samples folder shipped with or imported from a package.
type PackageSample struct {
	Package string `json:"package"`
	Path    string `json:"path"`
}

// HubProject is a project registered in Unity Hub.
type HubProject struct {
	Title        string `json:"title"`
	Path         string `json:"path"`
	Version      string `json:"version,omitempty"`
	LastModified int64  `json:"lastModified,omitempty"`
}

// =============================================================================
// CODE & ASSEMBLIES
// =============================================================================

// VersionDefine is an entry of an assembly definition's versionDefines.
type VersionDefine struct {
	Name       string `json:"name"`
	Expression string `json:"expression,omitempty"`
	Define     string `json:"define"`
}

// AssemblyDefinition is a parsed .asmdef file.
type AssemblyDefinition struct {
	Path                    string          `json:"path"`
	Name                    string          `json:"name"`
	References              []string        `json:"references"`
	DefineConstraints       []string        `json:"defineConstraints,omitempty"`
	OptionalUnityReferences []string        `json:"optionalUnityReferences,omitempty"`
	IncludePlatforms        []string        `json:"includePlatforms,omitempty"`
	VersionDefines          []VersionDefine `json:"versionDefines,omitempty"`
}

// AssemblyOwner names the assembly that compiles a path.
type AssemblyOwner struct {
	Path       string `json:"path"`
	Assembly   string `json:"assembly"`
	AsmdefPath string `json:"asmdefPath,omitempty"`
	Implicit   bool   `json:"implicit"` // predefined Assembly-CSharp(-Editor)
}

// =============================================================================
// SCENES & PREFABS
// =============================================================================

// SceneSummary lists root GameObjects of a scene.
type SceneSummary struct {
	RootObjects     []string `json:"rootObjects"`
	GameObjectCount int      `json:"gameObjectCount"`
	ComponentCount  int      `json:"componentCount"`
}

// ComponentHit is a GameObject carrying a component of a requested type.
type ComponentHit struct {
	ScenePath      string `json:"scenePath,omitempty"`
	GameObjectName string `json:"gameObjectName"`
	ComponentType  string `json:"componentType"`
}

// TaggedObject is a GameObject with a given tag.
type TaggedObject struct {
	GameObjectName string `json:"gameObjectName"`
	Tag            string `json:"tag"`
}

// HierarchyEntry is a GameObject in a flat scene listing.
type HierarchyEntry struct {
	Name  string `json:"name"`
	Layer int    `json:"layer"`
}

// PrefabSummary describes the root and component makeup of a prefab.
type PrefabSummary struct {
	RootName       string   `json:"rootName"`
	ComponentCount int      `json:"componentCount"`
	ComponentTypes []string `json:"componentTypes"`
}

// LightingSceneInfo lists lighting assets used by a scene.
type LightingSceneInfo struct {
	ScenePath                string   `json:"scenePath"`
	ReferencedLightingAssets []string `json:"referencedLightingAssets"`
	GIWorkflowMode           *int     `json:"giWorkflowMode,omitempty"`
}

// =============================================================================
// ASSETS
// =============================================================================

// SizedAsset is a file with its size on disk.
type SizedAsset struct {
	Path   string  `json:"path"`
	SizeMB float64 `json:"sizeMb"`
	Size   string  `json:"size"`
}

// MetaInfo is the parsed .meta sidecar of an asset.
type MetaInfo struct {
	AssetPath string                 `json:"assetPath"`
	GUID      string                 `json:"guid"`
	Importer  string                 `json:"importer,omitempty"`
	Settings  map[string]interface{} `json:"settings"`
}

// TextureMeta holds the import settings that matter for textures.
type TextureMeta struct {
	AssetPath       string         `json:"assetPath"`
	GUID            string         `json:"guid,omitempty"`
	TextureType     int            `json:"textureType"`
	MaxTextureSize  int            `json:"maxTextureSize,omitempty"`
	SpriteMode      int            `json:"spriteMode"`
	PixelsPerUnit   float64        `json:"pixelsPerUnit,omitempty"`
	MipMaps         bool           `json:"mipMaps"`
	Readable        bool           `json:"readable"`
	PlatformMaxSize map[string]int `json:"platformMaxSize,omitempty"`
}

// ProjectSearch combines name, content and referrer searches.
type ProjectSearch struct {
	ByName    []string `json:"byName,omitempty"`
	ByContent []string `json:"byContent,omitempty"`
	Referrers []string `json:"referrers,omitempty"`
}

// ScriptableObjectAsset is a .asset instance of a ScriptableObject.
type ScriptableObjectAsset struct {
	Path       string `json:"path"`
	ScriptGUID string `json:"scriptGuid"`
	ScriptPath string `json:"scriptPath,omitempty"`
}

// Material is a material file with the GUID of its shader.
type Material struct {
	Path   string `json:"path"`
	Shader string `json:"shader,omitempty"`
}

// RenderPipelines lists pipeline assets and volume profiles.
type RenderPipelines struct {
	Pipelines      []string `json:"pipelines"`
	VolumeProfiles []string `json:"volumeProfiles"`
}

// =============================================================================
// ANIMATION, 2D, UI, INPUT
// =============================================================================

// AnimatorTransition connects two animator states. From is "Any State"
// for transitions that can fire from every state.
type AnimatorTransition struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// AnimatorGraph is the states and transitions of an animator controller.
type AnimatorGraph struct {
	States      []string             `json:"states"`
	Transitions []AnimatorTransition `json:"transitions"`
}

// SpriteAsset is a texture imported as a sprite.
type SpriteAsset struct {
	Path          string  `json:"path"`
	SpriteMode    int     `json:"spriteMode"`
	PixelsPerUnit float64 `json:"pixelsPerUnit,omitempty"`
}

// UIDocuments lists UI Toolkit layout and style files.
type UIDocuments struct {
	UXML []string `json:"uxml"`
	USS  []string `json:"uss"`
}

// InputAxis is an axis of the legacy InputManager.
type InputAxis struct {
	Name            string `json:"name"`
	DescriptiveName string `json:"descriptiveName,omitempty"`
	PositiveButton  string `json:"positiveButton,omitempty"`
}

// InputActionsSummary lists maps and actions of an .inputactions file.
type InputActionsSummary struct {
	Maps    []string `json:"maps"`
	Actions []string `json:"actions"`
}

// TagsAndLayers is read from TagManager.asset.
type TagsAndLayers struct {
	Tags          []string `json:"tags"`
	Layers        []string `json:"layers"`
	SortingLayers []string `json:"sortingLayers"`
}

// AddressablesInfo lists Addressables groups.
type AddressablesInfo struct {
	Groups     []string `json:"groups"`
	ConfigPath *string  `json:"configPath"`
}

// =============================================================================
// CI & INTEGRATIONS
// =============================================================================

// CIConfig is a continuous integration definition file.
type CIConfig struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`
}

// PlasticConfig describes a Plastic SCM workspace.
type PlasticConfig struct {
	PlasticDir    bool   `json:"plasticDir"`
	WorkspaceName string `json:"workspaceName,omitempty"`
}

// PlayFabConfig locates PlayFab settings.
type PlayFabConfig struct {
	TitleID     string   `json:"titleId,omitempty"`
	ConfigPaths []string `json:"configPaths"`
}

// FirebaseConfig locates Firebase service files.
type FirebaseConfig struct {
	GoogleServicesJSON string `json:"googleServicesJson,omitempty"`
	Plist              string `json:"plist,omitempty"`
	ProjectID          string `json:"projectId,omitempty"`
}

// SteamConfig locates Steamworks integration files.
type SteamConfig struct {
	SteamAppIDTxt  string `json:"steamAppIdTxt,omitempty"`
	AppID          string `json:"appId,omitempty"`
	SteamworksPath string `json:"steamworksPath,omitempty"`
}

// DiscordConfig locates the Discord SDK.
type DiscordConfig struct {
	SDKPath string `json:"sdkPath,omitempty"`
}

// FMODConfig lists FMOD banks.
type FMODConfig struct {
	BanksPath   string   `json:"banksPath,omitempty"`
	ProjectPath string   `json:"projectPath,omitempty"`
	BankFiles   []string `json:"bankFiles"`
}

// WwiseConfig lists Wwise projects and banks.
type WwiseConfig struct {
	SoundBanksPath string   `json:"soundBanksPath,omitempty"`
	ProjectPaths   []string `json:"projectPaths"`
}

// ServicePresence names SDKs detected from packages and assets.
type ServicePresence struct {
	Services []string `json:"services"`
}

// =============================================================================
// AGGREGATES
// =============================================================================

// ProjectStats counts the main asset kinds in one call.
type ProjectStats struct {
	Scripts             int `json:"scripts"`
	Prefabs             int `json:"prefabs"`
	Scenes              int `json:"scenes"`
	Materials           int `json:"materials"`
	AnimatorControllers int `json:"animatorControllers"`
	AnimationClips      int `json:"animationClips"`
	Assemblies          int `json:"assemblies"`
	Packages            int `json:"packages"`
}

// ReleaseReadiness is a pre-release checklist rollup.
type ReleaseReadiness struct {
	Version              string `json:"version"`
	BuildSceneCount      int    `json:"buildSceneCount"`
	PackageCount         int    `json:"packageCount"`
	BrokenScriptRefCount int    `json:"brokenScriptRefCount"`
	HasAssemblyCycles    bool   `json:"hasAssemblyCycles"`
	LargeAssetCount      int    `json:"largeAssetCount"`
}

// BuildSizeEstimate sums the assets pulled in by the build scenes.
type BuildSizeEstimate struct {
	SceneCount      int          `json:"sceneCount"`
	AssetCount      int          `json:"assetCount"`
	TotalBytes      int64        `json:"totalBytes"`
	TotalSize       string       `json:"totalSize"`
	Largest         []SizedAsset `json:"largest"`
	UnresolvedGUIDs int          `json:"unresolvedGuids"`
}

// =============================================================================
// TOOL CATALOG
// =============================================================================

// ToolEntry describes a tool for discovery.
type ToolEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// ToolGroup is a category of tools in search results.
type ToolGroup struct {
	Category string      `json:"category"`
	Tools    []ToolEntry `json:"tools"`
}
