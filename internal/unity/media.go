package unity

import (
	"path"
	"strconv"
	"strings"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/fsutil"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/unityyaml"
	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

// ============================================================================
// 2D & sprites
// ============================================================================

// SpriteAtlases lists sprite atlases (v1 and v2).
func (p *Project) SpriteAtlases() []string {
	return p.listExts(".spriteatlas", ".spriteatlasv2")
}

// TilemapAssets lists tile and tile palette assets.
func (p *Project) TilemapAssets() []string {
	return filterLower(p.listExt(".asset"), "tilemap", "tile")
}

const textureTypeSprite = 8

var textureExts = []string{".png", ".jpg", ".jpeg", ".psd", ".tga", ".tif", ".tiff", ".gif", ".bmp", ".exr", ".hdr"}

// SpriteAssets lists textures imported as sprites.
func (p *Project) SpriteAssets() []types.SpriteAsset {
	out := make([]types.SpriteAsset, 0)
	for _, rel := range p.listExts(textureExts...) {
		meta, ok := p.TextureMeta(rel)
		if !ok || (meta.TextureType != textureTypeSprite && meta.SpriteMode == 0) {
			continue
		}
		out = append(out, types.SpriteAsset{Path: rel, SpriteMode: meta.SpriteMode, PixelsPerUnit: meta.PixelsPerUnit})
	}
	return limit(out, 500)
}

// ============================================================================
// TextMeshPro & UI
// ============================================================================

// TMPFonts lists TextMeshPro font assets.
func (p *Project) TMPFonts() []string {
	return filterLower(p.listExt(".asset"), "tmp", "font")
}

var tmpSettingsPaths = []string{
	"Assets/Resources/TMP Settings.asset",
	"Assets/TextMesh Pro/Resources/TMP Settings.asset",
}

// TMPSettingsPath returns the location of TMP Settings.asset.
func (p *Project) TMPSettingsPath() (string, bool) {
	for _, rel := range tmpSettingsPaths {
		if fsutil.Exists(p.Root, rel) {
			return rel, true
		}
	}
	return "", false
}

// UIDocuments lists UI Toolkit layouts and style sheets.
func (p *Project) UIDocuments() types.UIDocuments {
	return types.UIDocuments{UXML: p.listExt(".uxml"), USS: p.listExt(".uss")}
}

// ============================================================================
// Input
// ============================================================================

// InputAxes lists the axes of the legacy InputManager.
func (p *Project) InputAxes() []types.InputAxis {
	out := make([]types.InputAxis, 0)
	text, ok := p.settings("InputManager.asset")
	if !ok {
		return out
	}
	for _, item := range unityyaml.ListItems(text, "m_Axes") {
		kv := unityyaml.KeyValues(item)
		if kv["m_Name"] == "" {
			continue
		}
		out = append(out, types.InputAxis{
			Name:            kv["m_Name"],
			DescriptiveName: kv["descriptiveName"],
			PositiveButton:  kv["positiveButton"],
		})
	}
	return out
}

// InputActionAssets lists Input System action files.
func (p *Project) InputActionAssets() []string {
	return p.listExt(".inputactions")
}

type inputActionsFile struct {
	Maps []struct {
		Name    string `json:"name"`
		Actions []struct {
			Name string `json:"name"`
		} `json:"actions"`
	} `json:"maps"`
}

// InputActionsSummary lists the maps and actions of an .inputactions file.
// Actions are reported as "Map/Action".
func (p *Project) InputActionsSummary(rel string) types.InputActionsSummary {
	out := types.InputActionsSummary{Maps: make([]string, 0), Actions: make([]string, 0)}
	f, ok := fsutil.ReadJSON[inputActionsFile](p.Root, rel)
	if !ok {
		return out
	}
	for _, m := range f.Maps {
		out.Maps = append(out.Maps, m.Name)
		for _, a := range m.Actions {
			out.Actions = append(out.Actions, m.Name+"/"+a.Name)
		}
	}
	return out
}

// ============================================================================
// Tags & layers
// ============================================================================

// TagsAndLayers reads custom tags, named layers ("index: name") and sorting
// layers from TagManager.asset.
func (p *Project) TagsAndLayers() types.TagsAndLayers {
	out := types.TagsAndLayers{Tags: make([]string, 0), Layers: make([]string, 0), SortingLayers: make([]string, 0)}
	text, ok := p.settings("TagManager.asset")
	if !ok {
		return out
	}
	tags := unityyaml.ListBlock(text, "tags")
	if len(tags) == 0 {
		tags = unityyaml.ListBlock(text, "m_Tags")
	}
	for _, t := range tags {
		if t != "" {
			out.Tags = append(out.Tags, t)
		}
	}
	for i, name := range p.layerNames() {
		if name != "" {
			out.Layers = append(out.Layers, strconv.Itoa(i)+": "+name)
		}
	}
	for _, item := range unityyaml.ListItems(text, "m_SortingLayers") {
		if name := unityyaml.KeyValues(item)["name"]; name != "" {
			out.SortingLayers = append(out.SortingLayers, name)
		}
	}
	return out
}

// ============================================================================
// Audio
// ============================================================================

// AudioClips lists audio files.
func (p *Project) AudioClips() []string {
	return p.listExts(".wav", ".mp3", ".ogg", ".aiff", ".aif", ".flac", ".mod", ".it", ".s3m", ".xm")
}

// AudioMixers lists audio mixer assets.
func (p *Project) AudioMixers() []string {
	return p.listExt(".mixer")
}

// ============================================================================
// Addressables & localization
// ============================================================================

var addressablesData = path.Join(fsutil.Assets, "AddressableAssetsData")

// AddressablesInfo lists Addressables groups and the settings asset.
func (p *Project) AddressablesInfo() types.AddressablesInfo {
	out := types.AddressablesInfo{Groups: make([]string, 0)}
	if settings := path.Join(addressablesData, "AddressableAssetSettings.asset"); fsutil.Exists(p.Root, settings) {
		out.ConfigPath = &settings
	}
	groups := path.Join(addressablesData, "AssetGroups")
	dir := addressablesData
	if fsutil.IsDir(p.Root, groups) {
		dir = groups
	}
	for _, name := range fsutil.ListDir(p.Root, dir) {
		if strings.HasSuffix(name, ".asset") && name != "AddressableAssetSettings.asset" {
			out.Groups = append(out.Groups, strings.TrimSuffix(name, ".asset"))
		}
	}
	return out
}

// LocalizationTables lists string and asset table files under
// Assets/Localization.
func (p *Project) LocalizationTables() []string {
	return fsutil.ListFilesExt(p.Root, path.Join(fsutil.Assets, "Localization"), ".asset", ".csv", ".json")
}

// ============================================================================
// Testing & docs
// ============================================================================

// TestAssemblies lists assembly definitions that look like test assemblies:
// a "test" path or a reference to the test runner.
func (p *Project) TestAssemblies() []types.AssemblyDefinition {
	out := make([]types.AssemblyDefinition, 0)
	for _, m := range p.Assemblies() {
		isTest := strings.Contains(strings.ToLower(m.Path), "test")
		for _, ref := range m.References {
			if strings.Contains(ref, "TestRunner") {
				isTest = true
			}
		}
		for _, ref := range m.OptionalUnityReferences {
			if ref == "TestAssemblies" {
				isTest = true
			}
		}
		if isTest {
			out = append(out, m.AssemblyDefinition)
		}
	}
	return out
}

var repoDocFiles = []string{"README.md", "CONTRIBUTING.md", ".cursorrules", "CODING_STANDARDS.md", "STYLE.md"}

// RepoDocs returns the contents of well-known documentation files at the
// project root, keyed by file name.
func (p *Project) RepoDocs() map[string]string {
	out := make(map[string]string)
	for _, name := range repoDocFiles {
		if text, ok := p.read(name); ok && text != "" {
			out[name] = text
		}
	}
	return out
}

// AgentDocs returns .agents/AGENT.md, optionally followed by
// REPO_UNDERSTANDING.md.
func (p *Project) AgentDocs(includeRepoUnderstanding bool) string {
	content, ok := p.read(".agents", "AGENT.md")
	if !ok {
		content = "(No .agents/AGENT.md found)"
	}
	if includeRepoUnderstanding {
		if rep, ok := p.read("REPO_UNDERSTANDING.md"); ok && rep != "" {
			content += "\n\n---\n\n# REPO_UNDERSTANDING.md\n\n" + rep
		}
	}
	return content
}
