package unity

import (
	"fmt"
	"io/fs"
	"math"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/assetref"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/fsutil"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/unityyaml"
	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

// Defaults for caller-tunable scans.
const (
	DefaultFolderTreeDepth = 4
	DefaultLargeAssetMB    = 5.0
	folderTreeChildLimit   = 200
)

// AssetFolderTree maps each folder under Assets, down to maxDepth, to its
// children. Sub-folders carry a trailing slash.
func (p *Project) AssetFolderTree(maxDepth int) map[string][]string {
	if maxDepth <= 0 {
		maxDepth = DefaultFolderTreeDepth
	}
	out := make(map[string][]string)
	if !fsutil.IsDir(p.Root, fsutil.Assets) {
		return out
	}
	var walk func(dir string, depth int)
	walk = func(dir string, depth int) {
		children := make([]string, 0)
		for _, name := range fsutil.ListDir(p.Root, dir) {
			if strings.HasPrefix(name, ".") {
				continue
			}
			rel := path.Join(dir, name)
			if fsutil.IsDir(p.Root, rel) {
				children = append(children, rel+"/")
				if depth < maxDepth {
					walk(rel, depth+1)
				}
				continue
			}
			children = append(children, name)
		}
		out[dir] = limit(children, folderTreeChildLimit)
	}
	walk(fsutil.Assets, 0)
	return out
}

func normaliseExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// AssetsByExtension lists files with ext under Assets or folder.
func (p *Project) AssetsByExtension(ext, folder string) []string {
	dir := fsutil.Assets
	if strings.TrimSpace(folder) != "" {
		dir = assetsFolder(folder)
	}
	return fsutil.ListFiles(p.Root, dir, fsutil.ListOptions{Ext: normaliseExt(ext)})
}

// FindReferences resolves pathOrGUID and lists the serialized assets that
// mention its GUID.
func (p *Project) FindReferences(pathOrGUID string) types.ReferenceSearch {
	guid, assetPath, ok := assetref.Resolve(p.Root, pathOrGUID)
	if !ok {
		return types.ReferenceSearch{
			References: []string{},
			Message:    fmt.Sprintf("no asset or GUID found for %q", pathOrGUID),
		}
	}
	return types.ReferenceSearch{
		GUID:       guid,
		AssetPath:  assetPath,
		References: assetref.FindReferencingFiles(p.Root, guid),
	}
}

func sizedAsset(rel string, size int64) types.SizedAsset {
	mb := float64(size) / 1024 / 1024
	return types.SizedAsset{
		Path:   rel,
		SizeMB: math.Round(mb*100) / 100,
		Size:   humanize.IBytes(uint64(size)),
	}
}

// LargeAssets lists files under Assets of at least minSizeMB, largest first.
func (p *Project) LargeAssets(minSizeMB float64) []types.SizedAsset {
	if minSizeMB <= 0 {
		minSizeMB = DefaultLargeAssetMB
	}
	threshold := int64(minSizeMB * 1024 * 1024)
	type hit struct {
		rel  string
		size int64
	}
	hits := make([]hit, 0)
	_ = fsutil.Walk(p.Root, fsutil.Assets, func(rel string, d fs.DirEntry) error {
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() >= threshold {
			hits = append(hits, hit{rel, info.Size()})
		}
		return nil
	})
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].size > hits[j].size })
	out := make([]types.SizedAsset, 0, len(hits))
	for _, h := range hits {
		out = append(out, sizedAsset(h.rel, h.size))
	}
	return out
}

func (p *Project) listExts(exts ...string) []string {
	return fsutil.ListFilesExt(p.Root, fsutil.Assets, exts...)
}

// VideoClips lists video files.
func (p *Project) VideoClips() []string {
	return p.listExts(".mp4", ".mov", ".webm", ".avi", ".m4v", ".mpg", ".mpeg", ".ogv", ".wmv", ".asf", ".dv", ".vp8")
}

// LegacyFontAssets lists font files imported through the legacy font importer.
func (p *Project) LegacyFontAssets() []string {
	return p.listExts(".ttf", ".otf", ".fon", ".fnt", ".fontsettings")
}

// serializedClass reports whether the first document of a .asset file has
// classID.
func (p *Project) serializedClass(rel string, classID int) bool {
	text, ok := p.read(rel)
	if !ok {
		return false
	}
	docs := unityyaml.SplitDocuments(text)
	return len(docs) > 0 && docs[0].ClassID == classID
}

const (
	classRenderTexture = 84
	classTerrainData   = 156
	classLightingData  = 1120
	classLightingSet   = 850595691
)

// RenderTextures lists render texture assets.
func (p *Project) RenderTextures() []string {
	out := p.listExts(".rendertexture")
	for _, rel := range p.listExt(".asset") {
		if p.serializedClass(rel, classRenderTexture) {
			out = append(out, rel)
		}
	}
	sort.Strings(out)
	return out
}

// TerrainData lists terrain data and terrain layer assets.
func (p *Project) TerrainData() []string {
	out := p.listExts(".terrainlayer")
	for _, rel := range p.listExt(".asset") {
		if p.serializedClass(rel, classTerrainData) {
			out = append(out, rel)
		}
	}
	sort.Strings(out)
	return out
}

// LightingSettingsAssets lists lighting settings and baked lighting data.
func (p *Project) LightingSettingsAssets() []string {
	out := p.listExts(".lighting")
	for _, rel := range p.listExt(".asset") {
		if p.serializedClass(rel, classLightingSet) || p.serializedClass(rel, classLightingData) {
			out = append(out, rel)
		}
	}
	sort.Strings(out)
	return out
}

// SearchAssetsByName lists assets (no .meta) whose file name contains query,
// case-insensitive.
func (p *Project) SearchAssetsByName(query string, n int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]string, 0)
	if q == "" {
		return out
	}
	for _, rel := range fsutil.ListFiles(p.Root, fsutil.Assets, fsutil.ListOptions{ExcludeMeta: true}) {
		if strings.Contains(strings.ToLower(path.Base(rel)), q) {
			out = append(out, rel)
		}
	}
	if n <= 0 {
		n = 200
	}
	return limit(out, n)
}

var searchableExts = []string{".cs", ".shader", ".uxml", ".uss", ".json", ".asmdef", ".inputactions", ".txt", ".md"}

// SearchProject runs a name search and a case-insensitive content search
// over text sources, and lists referrers when query resolves to an asset.
func (p *Project) SearchProject(query string) (types.ProjectSearch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return types.ProjectSearch{}, fmt.Errorf("query is required")
	}
	out := types.ProjectSearch{ByName: p.SearchAssetsByName(query, 100)}

	re, err := p.compile(`(?i)` + regexp.QuoteMeta(query))
	if err != nil {
		return out, err
	}
	byContent := make([]string, 0)
	for _, rel := range fsutil.ListFilesExt(p.Root, fsutil.Assets, searchableExts...) {
		if text, ok := p.read(rel); ok && re.MatchString(text) {
			byContent = append(byContent, rel)
		}
	}
	out.ByContent = limit(byContent, 100)

	if guid, _, ok := assetref.Resolve(p.Root, query); ok {
		out.Referrers = assetref.FindReferencingFiles(p.Root, guid)
	}
	return out, nil
}

// metaDoc is the generic shape of a .meta file: guid, then a single
// importer section keyed by importer name.
type metaDoc map[string]interface{}

// metaDoc decodes a .meta file. The GUID is taken from the raw text since
// a YAML decoder may read an all-digit GUID as a number.
func (p *Project) metaDoc(assetPath string) (metaDoc, string, bool) {
	text, ok := p.read(assetPath + ".meta")
	if !ok {
		return nil, "", false
	}
	var doc metaDoc
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil || doc == nil {
		return nil, "", false
	}
	for k, v := range doc {
		doc[k] = stringKeys(v)
	}
	guid, _ := unityyaml.MetaGUID(text)
	return doc, guid, true
}

// stringKeys rewrites nested maps decoded with non-string keys, such as
// the fileID keys of fileIDToRecycleName, into JSON-encodable maps.
func stringKeys(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	case map[string]interface{}:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case []interface{}:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	}
	return v
}

func (d metaDoc) importer() (string, map[string]interface{}) {
	for k, v := range d {
		if strings.HasSuffix(k, "Importer") {
			settings, _ := v.(map[string]interface{})
			return k, settings
		}
	}
	return "", nil
}

// MetaForAsset parses the .meta of an asset: GUID, importer name and its
// settings.
func (p *Project) MetaForAsset(assetPath string) (*types.MetaInfo, bool) {
	assetPath = strings.TrimSuffix(assetPath, ".meta")
	doc, guid, ok := p.metaDoc(assetPath)
	if !ok {
		return nil, false
	}
	info := &types.MetaInfo{AssetPath: assetPath, GUID: guid, Settings: map[string]interface{}{}}
	name, settings := doc.importer()
	info.Importer = name
	if settings != nil {
		info.Settings = settings
	}
	return info, true
}

func intField(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func floatField(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case int:
		return float64(v)
	case float64:
		return v
	}
	return 0
}

func subMap(m map[string]interface{}, key string) map[string]interface{} {
	sub, _ := m[key].(map[string]interface{})
	return sub
}

// TextureMeta reads the TextureImporter settings of a texture.
func (p *Project) TextureMeta(assetPath string) (*types.TextureMeta, bool) {
	info, ok := p.MetaForAsset(assetPath)
	if !ok || info.Importer != "TextureImporter" {
		return nil, false
	}
	s := info.Settings
	out := &types.TextureMeta{
		AssetPath:      info.AssetPath,
		GUID:           info.GUID,
		TextureType:    intField(s, "textureType"),
		MaxTextureSize: intField(s, "maxTextureSize"),
		SpriteMode:     intField(s, "spriteMode"),
		PixelsPerUnit:  floatField(s, "spritePixelsToUnits"),
		MipMaps:        intField(subMap(s, "mipmaps"), "enableMipMap") == 1,
		Readable:       intField(s, "isReadable") == 1,
	}
	if platforms, ok := s["platformSettings"].([]interface{}); ok {
		out.PlatformMaxSize = make(map[string]int)
		for _, item := range platforms {
			ps, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			target, _ := ps["buildTarget"].(string)
			if target != "" {
				out.PlatformMaxSize[target] = intField(ps, "maxTextureSize")
			}
		}
	}
	return out, true
}

// ScriptableObjects lists .asset files whose root object is a
// MonoBehaviour with a script, resolving the script path when known.
func (p *Project) ScriptableObjects() []types.ScriptableObjectAsset {
	out := make([]types.ScriptableObjectAsset, 0)
	var idx *assetref.Index
	for _, rel := range p.listExt(".asset") {
		text, ok := p.read(rel)
		if !ok {
			continue
		}
		docs := unityyaml.SplitDocuments(text)
		if len(docs) == 0 || docs[0].Type != monoBehaviour {
			continue
		}
		guids := unityyaml.ScriptGUIDs(docs[0].Body)
		if len(guids) == 0 {
			continue
		}
		if idx == nil {
			idx = assetref.BuildIndex(p.Root)
		}
		so := types.ScriptableObjectAsset{Path: rel, ScriptGUID: guids[0]}
		so.ScriptPath, _ = idx.Path(guids[0])
		out = append(out, so)
	}
	return out
}

// BrokenAssetRefs lists GUIDs in prefabs, scenes and materials that no
// asset declares.
func (p *Project) BrokenAssetRefs() []types.BrokenRef {
	return assetref.BrokenAssetRefs(p.Root)
}

// BrokenScriptRefs lists MonoBehaviours whose script no longer exists.
func (p *Project) BrokenScriptRefs() []types.BrokenRef {
	return assetref.BrokenScriptRefs(p.Root)
}
