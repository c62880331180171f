package assetref

import (
	"io/fs"
	"path"
	"strings"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/fsutil"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/unityyaml"
	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

// ScriptGUIDs returns the GUIDs of every C# source asset under Assets.
func ScriptGUIDs(root string) map[string]bool {
	out := make(map[string]bool)
	_ = fsutil.Walk(root, fsutil.Assets, func(rel string, d fs.DirEntry) error {
		if !strings.HasSuffix(d.Name(), metaSuffix) {
			return nil
		}
		asset := strings.TrimSuffix(rel, metaSuffix)
		if strings.ToLower(path.Ext(asset)) != ".cs" {
			return nil
		}
		text, ok := fsutil.ReadText(root, rel)
		if !ok {
			return nil
		}
		if g, ok := unityyaml.MetaGUID(text); ok {
			out[g] = true
		}
		return nil
	})
	return out
}

// BrokenScriptRefs reports every m_Script reference in a prefab or scene
// whose GUID does not belong to a script under Assets. Each occurrence is
// reported separately.
func BrokenScriptRefs(root string) []types.BrokenRef {
	known := ScriptGUIDs(root)
	out := make([]types.BrokenRef, 0)
	for _, rel := range fsutil.ListFilesExt(root, fsutil.Assets, ".prefab", ".unity") {
		text, ok := fsutil.ReadText(root, rel)
		if !ok {
			continue
		}
		for _, g := range unityyaml.ScriptGUIDs(text) {
			if !known[g] {
				out = append(out, types.BrokenRef{AssetPath: rel, MissingGUID: g})
			}
		}
	}
	return out
}

// BrokenAssetRefs reports GUIDs referenced from prefabs, scenes and
// materials that no .meta under Assets or Packages declares. Built-in
// resources are ignored. Each missing GUID is reported once per file.
func BrokenAssetRefs(root string) []types.BrokenRef {
	idx := BuildIndex(root, fsutil.Assets, fsutil.Packages)
	out := make([]types.BrokenRef, 0)
	for _, rel := range fsutil.ListFilesExt(root, fsutil.Assets, ".prefab", ".unity", ".mat") {
		text, ok := fsutil.ReadText(root, rel)
		if !ok {
			continue
		}
		for _, g := range unityyaml.GUIDRefs(text) {
			if strings.HasPrefix(g, unityyaml.BuiltinGUIDPrefix) || idx.Has(g) {
				continue
			}
			out = append(out, types.BrokenRef{AssetPath: rel, MissingGUID: g})
		}
	}
	return out
}

// ReferencedAssets resolves every GUID mentioned in the file at assetPath.
// GUIDs with no asset under Assets land in UnresolvedGUIDs; the file's own
// path is never listed as a dependency of itself.
func ReferencedAssets(root, assetPath string) types.ReferencedAssets {
	result := types.ReferencedAssets{
		Resolved:        make([]string, 0),
		UnresolvedGUIDs: make([]string, 0),
	}
	text, ok := fsutil.ReadText(root, assetPath)
	if !ok {
		return result
	}
	guids := unityyaml.GUIDRefs(text)
	if len(guids) == 0 {
		return result
	}

	idx := BuildIndex(root)
	seen := make(map[string]bool)
	for _, g := range guids {
		p, ok := idx.Path(g)
		if !ok {
			result.UnresolvedGUIDs = append(result.UnresolvedGUIDs, g)
			continue
		}
		if p == assetPath || seen[p] {
			continue
		}
		seen[p] = true
		result.Resolved = append(result.Resolved, p)
	}
	return result
}
