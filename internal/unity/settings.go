package unity

import (
	"encoding/binary"
	"encoding/hex"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/depgraph"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/fsutil"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/unityyaml"
	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

const unknown = "unknown"

func (p *Project) settings(file string) (string, bool) {
	return p.read(fsutil.ProjectSettings, file)
}

func (p *Project) settingsKeyValues(file string) map[string]string {
	text, ok := p.settings(file)
	if !ok {
		return map[string]string{}
	}
	return unityyaml.KeyValues(text)
}

// UnityVersion returns the editor version the project was saved with.
func (p *Project) UnityVersion() string {
	text, ok := p.settings("ProjectVersion.txt")
	if !ok {
		return unknown
	}
	if v, ok := unityyaml.EditorVersion(text); ok {
		return v
	}
	return unknown
}

// BuildScenes lists EditorBuildSettings scenes in build order.
func (p *Project) BuildScenes() []types.BuildScene {
	out := make([]types.BuildScene, 0)
	text, ok := p.settings("EditorBuildSettings.asset")
	if !ok {
		return out
	}
	for i, s := range unityyaml.BuildScenes(text) {
		out = append(out, types.BuildScene{
			Index:   i,
			Path:    s.Path,
			Name:    baseName(s.Path),
			Enabled: s.Enabled,
		})
	}
	return out
}

// ProjectInfo bundles version, build scenes and player identity.
func (p *Project) ProjectInfo() types.ProjectInfo {
	scenes := p.BuildScenes()
	return types.ProjectInfo{
		ProjectRoot:     p.Root,
		UnityVersion:    p.UnityVersion(),
		BuildSceneCount: len(scenes),
		BuildScenes:     scenes,
		Player:          p.PlayerSettings(),
	}
}

func packageType(version string) string {
	switch {
	case strings.HasPrefix(version, "file:"):
		return "local"
	case strings.HasPrefix(version, "git") || strings.Contains(version, ".git"):
		return "git"
	default:
		return "registry"
	}
}

// Packages lists the manifest's direct dependencies, sorted by name, and
// the lockfile when present.
func (p *Project) Packages() types.PackageList {
	list := types.PackageList{Dependencies: make([]types.PackageInfo, 0)}
	manifest, ok := depgraph.ReadManifest(p.Root)
	if !ok {
		return list
	}
	names := make([]string, 0, len(manifest.Dependencies))
	for name := range manifest.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := manifest.Dependencies[name]
		list.Dependencies = append(list.Dependencies, types.PackageInfo{Name: name, Version: v, Type: packageType(v)})
	}
	if lock, ok := depgraph.ReadLockfile(p.Root); ok {
		list.Lock = lock.Dependencies
	}
	return list
}

// PackageDependencyGraph returns the manifest + lockfile graph.
func (p *Project) PackageDependencyGraph() types.PackageGraph {
	return depgraph.BuildPackageGraph(p.Root)
}

var playerKeys = []string{
	"productGUID", "companyName", "productName", "bundleVersion",
	"AndroidBundleVersionCode", "m_ProductName", "m_CompanyName", "m_ApplicationVersion",
}

// PlayerSettings picks product identity fields from ProjectSettings.asset.
// When none of them is present every scalar key is returned.
func (p *Project) PlayerSettings() map[string]string {
	text, ok := p.settings("ProjectSettings.asset")
	if !ok {
		return map[string]string{}
	}
	kv := unityyaml.KeyValues(text)
	out := make(map[string]string)
	for _, k := range playerKeys {
		if v, ok := kv[k]; ok {
			out[k] = v
		}
	}
	for platform, id := range unityyaml.MapBlock(text, "applicationIdentifier") {
		out["applicationIdentifier."+platform] = id
	}
	for platform, n := range unityyaml.MapBlock(text, "buildNumber") {
		out["buildNumber."+platform] = n
	}
	if len(out) == 0 {
		return kv
	}
	return out
}

// ProjectVersion returns the bundle version or "unknown".
func (p *Project) ProjectVersion() string {
	ps := p.PlayerSettings()
	if v := ps["bundleVersion"]; v != "" {
		return v
	}
	if v := ps["m_ApplicationVersion"]; v != "" {
		return v
	}
	return unknown
}

// QualitySettings returns one map per quality level.
func (p *Project) QualitySettings() []map[string]string {
	out := make([]map[string]string, 0)
	text, ok := p.settings("QualitySettings.asset")
	if !ok {
		return out
	}
	for _, item := range unityyaml.ListItems(text, "m_QualitySettings") {
		out = append(out, unityyaml.KeyValues(item))
	}
	if len(out) == 0 {
		out = append(out, unityyaml.KeyValues(text))
	}
	return out
}

// ScriptingDefines collects player define symbols across platforms and the
// define constraints and version defines of each assembly.
func (p *Project) ScriptingDefines() types.ScriptingDefines {
	result := types.ScriptingDefines{
		Global:      make([]string, 0),
		PerAssembly: make(map[string][]string),
	}
	if text, ok := p.settings("ProjectSettings.asset"); ok {
		seen := make(map[string]bool)
		for _, key := range []string{"scriptingDefineSymbols", "m_ScriptingDefineSymbols"} {
			block := unityyaml.MapBlock(text, key)
			platforms := make([]string, 0, len(block))
			for platform := range block {
				platforms = append(platforms, platform)
			}
			sort.Strings(platforms)
			for _, platform := range platforms {
				for _, sym := range strings.FieldsFunc(block[platform], func(r rune) bool { return r == ';' || r == ',' }) {
					sym = strings.TrimSpace(sym)
					if sym != "" && !seen[sym] {
						seen[sym] = true
						result.Global = append(result.Global, sym)
					}
				}
			}
		}
	}
	for _, m := range depgraph.LoadModules(p.Root) {
		defs := make([]string, 0)
		for _, c := range m.DefineConstraints {
			defs = append(defs, "constraint:"+c)
		}
		for _, v := range m.VersionDefines {
			defs = append(defs, v.Name+"="+v.Define)
		}
		if len(defs) > 0 {
			result.PerAssembly[m.Name] = defs
		}
	}
	return result
}

// Changelog returns the first changelog found at the project root.
func (p *Project) Changelog() (string, bool) {
	for _, name := range []string{"CHANGELOG.md", "CHANGELOG", "changelog.md"} {
		if text, ok := p.read(name); ok && text != "" {
			return text, true
		}
	}
	return "", false
}

// PhysicsSettings reads the 3D and 2D physics managers.
func (p *Project) PhysicsSettings() types.PhysicsSettings {
	var out types.PhysicsSettings
	if text, ok := p.settings("DynamicsManager.asset"); ok {
		out.Dynamics = unityyaml.KeyValues(text)
	}
	if text, ok := p.settings("Physics2DSettings.asset"); ok {
		out.Physics2D = unityyaml.KeyValues(text)
	}
	return out
}

// GraphicsSettings reads GraphicsSettings.asset.
func (p *Project) GraphicsSettings() map[string]string {
	return p.settingsKeyValues("GraphicsSettings.asset")
}

// TimeSettings reads TimeManager.asset.
func (p *Project) TimeSettings() map[string]string {
	return p.settingsKeyValues("TimeManager.asset")
}

// AudioSettings reads AudioManager.asset.
func (p *Project) AudioSettings() map[string]string {
	return p.settingsKeyValues("AudioManager.asset")
}

var buildTargetNames = map[string]string{
	"0": "Unknown", "1": "Standalone", "2": "iOS", "4": "Android", "5": "WebGL",
	"6": "Windows Store Apps", "9": "PS4", "10": "XboxOne", "13": "tvOS", "19": "Switch",
	"20": "Lumin", "21": "Stadia", "22": "CloudRendering", "23": "GameCoreScarlett",
	"24": "GameCoreXboxOne", "25": "PS5",
}

// BuildTargetInfo names the active build target.
func (p *Project) BuildTargetInfo() types.BuildTargetInfo {
	text, ok := p.settings("ProjectSettings.asset")
	if !ok {
		return types.BuildTargetInfo{}
	}
	id, ok := unityyaml.ActiveBuildTarget(text)
	if !ok {
		return types.BuildTargetInfo{}
	}
	name := buildTargetNames[id]
	if name == "" {
		name = id
	}
	return types.BuildTargetInfo{ActiveBuildTarget: name, ActiveBuildTargetID: id}
}

// FeatureSetInference guesses Unity feature sets from package names.
func (p *Project) FeatureSetInference() types.FeatureSetInference {
	deps := p.Packages().Dependencies
	names := make([]string, 0, len(deps))
	for _, d := range deps {
		names = append(names, strings.ToLower(d.Name))
	}
	has := func(match func(string) bool) bool {
		for _, n := range names {
			if match(n) {
				return true
			}
		}
		return false
	}
	contains := func(words ...string) func(string) bool {
		return func(n string) bool {
			for _, w := range words {
				if strings.Contains(n, w) {
					return true
				}
			}
			return false
		}
	}

	detected := make([]string, 0)
	add := func(ok bool, feature string) {
		if ok {
			detected = append(detected, feature)
		}
	}
	add(has(func(n string) bool {
		return strings.Contains(n, "2d") && (strings.Contains(n, "sprite") || strings.Contains(n, "tilemap"))
	}), "2D")
	add(has(contains("entities", "dots", "ecs")), "ECS")
	add(has(contains("animation", "timeline")), "3D Characters & Animation")
	add(has(contains("terrain", "world")), "3D World Building")
	add(has(contains(".ar", "xr.arfoundation", "arkit", "arcore", "augmented")), "AR")
	add(has(contains("visualscripting", "bolt")), "Visual Scripting")
	add(has(contains("cinemachine", "timeline")), "Gameplay & Storytelling")
	add(has(contains("mobile", "android", "ios")), "Mobile")
	add(has(contains("vr", "xr")), "VR")
	return types.FeatureSetInference{Detected: detected, PackageCount: len(deps)}
}

// NavigationSettings reads NavMesh areas and agent types.
func (p *Project) NavigationSettings() types.NavigationSettings {
	out := types.NavigationSettings{
		Areas:      make([]types.NavArea, 0),
		AgentTypes: make([]string, 0),
		Settings:   make(map[string]string),
	}
	text, ok := p.settings("NavMeshAreas.asset")
	if !ok {
		return out
	}
	for i, item := range unityyaml.ListItems(text, "areas") {
		kv := unityyaml.KeyValues(item)
		if kv["name"] == "" {
			continue
		}
		out.Areas = append(out.Areas, types.NavArea{Index: i, Name: kv["name"], Cost: kv["cost"]})
	}
	for _, name := range unityyaml.ListBlock(text, "m_SettingNames") {
		if name != "" {
			out.AgentTypes = append(out.AgentTypes, name)
		}
	}
	if settings := unityyaml.ListItems(text, "m_Settings"); len(settings) > 0 {
		out.Settings = unityyaml.KeyValues(settings[0])
	}
	return out
}

// XRSettings reads XR configuration, loader assets under Assets/XR and XR
// packages.
func (p *Project) XRSettings() types.XRSettings {
	out := types.XRSettings{
		Settings:     p.settingsKeyValues("XRSettings.asset"),
		LoaderAssets: fsutil.ListFiles(p.Root, path.Join(fsutil.Assets, "XR"), fsutil.ListOptions{Ext: ".asset"}),
		Packages:     make([]string, 0),
	}
	for _, d := range p.Packages().Dependencies {
		if strings.Contains(strings.ToLower(d.Name), ".xr") {
			out.Packages = append(out.Packages, d.Name)
		}
	}
	return out
}

// ScriptExecutionOrder lists scripts whose .meta sets a non-default
// executionOrder, lowest first.
func (p *Project) ScriptExecutionOrder() []types.ExecutionOrder {
	out := make([]types.ExecutionOrder, 0)
	_ = fsutil.Walk(p.Root, fsutil.Assets, func(rel string, d fs.DirEntry) error {
		if !strings.HasSuffix(d.Name(), ".cs.meta") {
			return nil
		}
		text, ok := fsutil.ReadText(p.Root, rel)
		if !ok {
			return nil
		}
		v, ok := unityyaml.Field(text, "executionOrder")
		if !ok {
			return nil
		}
		order, err := strconv.Atoi(v)
		if err != nil || order == 0 {
			return nil
		}
		out = append(out, types.ExecutionOrder{Script: strings.TrimSuffix(rel, ".meta"), Order: order})
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

var serializationModes = map[string]string{"0": "Mixed", "1": "Force Binary", "2": "Force Text"}

// VersionControlSettings reports asset serialization and meta file modes.
func (p *Project) VersionControlSettings() types.VersionControlSettings {
	editor := p.settingsKeyValues("EditorSettings.asset")
	vcs := p.settingsKeyValues("VersionControlSettings.asset")
	out := types.VersionControlSettings{
		MetaFiles:      editor["m_ExternalVersionControlSupport"],
		VersionControl: vcs["m_Mode"],
	}
	if mode, ok := editor["m_SerializationMode"]; ok {
		out.SerializationMode = serializationModes[mode]
		if out.SerializationMode == "" {
			out.SerializationMode = mode
		}
	}
	if out.MetaFiles == "" {
		out.MetaFiles = out.VersionControl
	}
	return out
}

// layerNames returns the 32 layer slots of TagManager.asset; unnamed slots
// are empty strings.
func (p *Project) layerNames() []string {
	names := make([]string, 32)
	text, ok := p.settings("TagManager.asset")
	if !ok {
		return names
	}
	if items := unityyaml.ListBlock(text, "layers"); len(items) > 0 {
		for i, name := range items {
			if i < len(names) {
				names[i] = name
			}
		}
		return names
	}
	for i := range names {
		if v, ok := unityyaml.Field(text, "m_Layer"+strconv.Itoa(i)); ok {
			names[i] = v
		}
	}
	return names
}

// LayerCollisionMatrix decodes m_LayerCollisionMatrix, a hex string of 32
// little-endian uint32 masks, into per-layer collision lists over the
// named layers.
func (p *Project) LayerCollisionMatrix() types.LayerCollisionMatrix {
	names := p.layerNames()
	out := types.LayerCollisionMatrix{Layers: make([]string, 0), Matrix: make([]types.LayerCollisions, 0)}
	for i, n := range names {
		if n != "" {
			out.Layers = append(out.Layers, strconv.Itoa(i)+": "+n)
		}
	}

	text, ok := p.settings("DynamicsManager.asset")
	if !ok {
		return out
	}
	raw, ok := unityyaml.Field(text, "m_LayerCollisionMatrix")
	if !ok {
		return out
	}
	data, err := hex.DecodeString(strings.TrimSpace(raw))
	if err != nil || len(data) < 32*4 {
		return out
	}
	for i := 0; i < 32; i++ {
		if names[i] == "" {
			continue
		}
		mask := binary.LittleEndian.Uint32(data[i*4 : i*4+4])
		row := types.LayerCollisions{Layer: names[i], Index: i, CollidesWith: make([]string, 0)}
		for j := 0; j < 32; j++ {
			if names[j] != "" && mask&(1<<uint(j)) != 0 {
				row.CollidesWith = append(row.CollidesWith, names[j])
			}
		}
		out.Matrix = append(out.Matrix, row)
	}
	return out
}

// CloudServicesConfig reads cloud project linkage and Unity Connect settings.
func (p *Project) CloudServicesConfig() types.CloudServicesConfig {
	ps := p.settingsKeyValues("ProjectSettings.asset")
	return types.CloudServicesConfig{
		CloudProjectID:  ps["cloudProjectId"],
		ProjectName:     ps["projectName"],
		OrganizationID:  ps["organizationId"],
		ConnectSettings: p.settingsKeyValues("UnityConnectSettings.asset"),
	}
}

// PackageSamples lists sample folders shipped inside embedded packages
// (Samples~ or Samples) and samples imported into Assets/Samples.
func (p *Project) PackageSamples() []types.PackageSample {
	out := make([]types.PackageSample, 0)
	for _, pkg := range fsutil.ListDir(p.Root, fsutil.Packages) {
		if !fsutil.IsDir(p.Root, fsutil.Packages, pkg) {
			continue
		}
		for _, samples := range []string{"Samples~", "Samples"} {
			dir := path.Join(fsutil.Packages, pkg, samples)
			for _, s := range fsutil.ListDir(p.Root, dir) {
				if fsutil.IsDir(p.Root, dir, s) {
					out = append(out, types.PackageSample{Package: pkg, Path: path.Join(dir, s)})
				}
			}
		}
	}
	imported := path.Join(fsutil.Assets, "Samples")
	for _, pkg := range fsutil.ListDir(p.Root, imported) {
		for _, version := range fsutil.ListDir(p.Root, imported, pkg) {
			dir := path.Join(imported, pkg, version)
			for _, s := range fsutil.ListDir(p.Root, dir) {
				if fsutil.IsDir(p.Root, dir, s) {
					out = append(out, types.PackageSample{Package: pkg, Path: path.Join(dir, s)})
				}
			}
		}
	}
	return out
}

type hubProjectsFile struct {
	Data map[string]struct {
		Title        string `json:"title"`
		Path         string `json:"path"`
		Version      string `json:"version"`
		LastModified int64  `json:"lastModified"`
	} `json:"data"`
}

// DefaultHubProjectsFile returns where Unity Hub keeps its project list on
// this machine.
func DefaultHubProjectsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "UnityHub", "projects-v1.json")
}

// UnityHubProjects lists projects registered in Unity Hub, most recently
// modified first. hubFile overrides the default location.
func UnityHubProjects(hubFile string) []types.HubProject {
	out := make([]types.HubProject, 0)
	if hubFile == "" {
		hubFile = DefaultHubProjectsFile()
	}
	if hubFile == "" {
		return out
	}
	f, ok := fsutil.ReadJSON[hubProjectsFile](filepath.Dir(hubFile), filepath.Base(hubFile))
	if !ok {
		return out
	}
	for key, entry := range f.Data {
		p := entry.Path
		if p == "" {
			p = key
		}
		title := entry.Title
		if title == "" {
			title = filepath.Base(p)
		}
		out = append(out, types.HubProject{Title: title, Path: p, Version: entry.Version, LastModified: entry.LastModified})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastModified != out[j].LastModified {
			return out[i].LastModified > out[j].LastModified
		}
		return out[i].Path < out[j].Path
	})
	return out
}
