// Package assetref resolves asset identities and the references between
// assets.
//
// Every asset in a Unity project has a sibling "<asset>.meta" file that
// carries a 32-hex GUID. Serialized assets refer to each other by embedding
// that GUID in their text, so the reference graph is implicit and has to be
// recovered by scanning. Nothing here is cached: each call walks the disk.
package assetref

import (
	"io/fs"
	"strings"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/fsutil"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/unityyaml"
)

const metaSuffix = ".meta"

// ReferenceExtensions are the serialized asset kinds searched for GUID
// occurrences. Files of any other kind are never reported as referrers.
var ReferenceExtensions = []string{
	".unity", ".prefab", ".asset", ".mat", ".controller", ".anim", ".mixer", ".overrideController",
}

// IsGUID reports whether s is a GUID rather than an asset path.
func IsGUID(s string) bool {
	return unityyaml.IsGUID(s)
}

// GUIDOf returns the GUID recorded in the .meta file of assetPath.
func GUIDOf(root, assetPath string) (string, bool) {
	metaPath := assetPath
	if !strings.HasSuffix(metaPath, metaSuffix) {
		metaPath += metaSuffix
	}
	text, ok := fsutil.ReadText(root, metaPath)
	if !ok {
		return "", false
	}
	return unityyaml.MetaGUID(text)
}

// PathOfGUID finds the asset under Assets whose .meta declares guid. The
// first match in lexical walk order wins when GUIDs collide.
func PathOfGUID(root, guid string) (string, bool) {
	var found string
	_ = fsutil.Walk(root, fsutil.Assets, func(rel string, d fs.DirEntry) error {
		if !strings.HasSuffix(d.Name(), metaSuffix) {
			return nil
		}
		text, ok := fsutil.ReadText(root, rel)
		if !ok {
			return nil
		}
		if g, ok := unityyaml.MetaGUID(text); ok && g == guid {
			found = strings.TrimSuffix(rel, metaSuffix)
			return fsutil.ErrStop
		}
		return nil
	})
	return found, found != ""
}

// Resolve accepts either a GUID or an asset path and returns both. ok is
// false when the input is a path without a readable .meta.
func Resolve(root, pathOrGUID string) (guid, assetPath string, ok bool) {
	input := strings.TrimSpace(pathOrGUID)
	if IsGUID(input) {
		guid = strings.ToLower(input)
		assetPath, _ = PathOfGUID(root, guid)
		return guid, assetPath, true
	}
	guid, ok = GUIDOf(root, input)
	return guid, input, ok
}

// FindReferencingFiles returns every serialized asset under Assets whose
// text contains guid. Only files with a ReferenceExtensions suffix are
// inspected; the match is a plain substring test.
func FindReferencingFiles(root, guid string) []string {
	out := make([]string, 0)
	if guid == "" {
		return out
	}
	_ = fsutil.Walk(root, fsutil.Assets, func(rel string, d fs.DirEntry) error {
		if !hasReferenceExtension(d.Name()) {
			return nil
		}
		text, ok := fsutil.ReadText(root, rel)
		if ok && strings.Contains(text, guid) {
			out = append(out, rel)
		}
		return nil
	})
	return out
}

func hasReferenceExtension(name string) bool {
	for _, ext := range ReferenceExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// ============================================================================
// GUID index
// ============================================================================

// Index maps GUIDs to asset paths for one request. Build it when a single
// call needs to resolve many GUIDs; it is never kept across calls.
type Index struct {
	byGUID map[string]string
}

// BuildIndex walks the given top-level folders (Assets when none are given)
// and records every .meta GUID. The first path seen for a GUID wins.
func BuildIndex(root string, dirs ...string) *Index {
	if len(dirs) == 0 {
		dirs = []string{fsutil.Assets}
	}
	idx := &Index{byGUID: make(map[string]string)}
	for _, dir := range dirs {
		_ = fsutil.Walk(root, dir, func(rel string, d fs.DirEntry) error {
			if !strings.HasSuffix(d.Name(), metaSuffix) {
				return nil
			}
			text, ok := fsutil.ReadText(root, rel)
			if !ok {
				return nil
			}
			if g, ok := unityyaml.MetaGUID(text); ok {
				if _, exists := idx.byGUID[g]; !exists {
					idx.byGUID[g] = strings.TrimSuffix(rel, metaSuffix)
				}
			}
			return nil
		})
	}
	return idx
}

// Path returns the asset path registered for guid.
func (idx *Index) Path(guid string) (string, bool) {
	p, ok := idx.byGUID[guid]
	return p, ok
}

// Has reports whether guid is known.
func (idx *Index) Has(guid string) bool {
	_, ok := idx.byGUID[guid]
	return ok
}

// Len returns the number of indexed GUIDs.
func (idx *Index) Len() int {
	return len(idx.byGUID)
}
