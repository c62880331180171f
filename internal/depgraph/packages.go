package depgraph

import (
	"encoding/json"
	"regexp"
	"sort"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/fsutil"
	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

// ProjectNode is the synthetic root of the package graph.
const ProjectNode = "project"

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeName maps a package name to its node id. Characters outside
// [A-Za-z0-9._-] become underscores so ids are safe in graph tooling.
func SanitizeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}

// Manifest is Packages/manifest.json.
type Manifest struct {
	Dependencies map[string]string `json:"dependencies"`
}

// Lockfile is Packages/packages-lock.json.
type Lockfile struct {
	Dependencies map[string]types.LockedPackage `json:"dependencies"`
}

// ReadManifest loads the package manifest.
func ReadManifest(root string) (*Manifest, bool) {
	return fsutil.ReadJSON[Manifest](root, fsutil.Packages, "manifest.json")
}

// ReadLockfile loads the resolved package lock. Entries that do not decode
// as a locked package are dropped; the rest of the lock is kept.
func ReadLockfile(root string) (*Lockfile, bool) {
	raw, ok := fsutil.ReadJSON[struct {
		Dependencies map[string]json.RawMessage `json:"dependencies"`
	}](root, fsutil.Packages, "packages-lock.json")
	if !ok {
		return nil, false
	}
	lock := &Lockfile{Dependencies: make(map[string]types.LockedPackage, len(raw.Dependencies))}
	for name, entry := range raw.Dependencies {
		var pkg types.LockedPackage
		if err := json.Unmarshal(entry, &pkg); err != nil {
			continue
		}
		lock.Dependencies[name] = pkg
	}
	return lock, true
}

type packageGraphBuilder struct {
	graph types.PackageGraph
	index map[string]int
}

func (b *packageGraphBuilder) node(id string) *types.PackageNode {
	if i, ok := b.index[id]; ok {
		return &b.graph.Nodes[i]
	}
	b.index[id] = len(b.graph.Nodes)
	b.graph.Nodes = append(b.graph.Nodes, types.PackageNode{Name: id})
	return &b.graph.Nodes[len(b.graph.Nodes)-1]
}

func (b *packageGraphBuilder) edge(from, to string) {
	b.graph.Edges = append(b.graph.Edges, [2]string{from, to})
}

// BuildPackageGraph combines the manifest and the lockfile into one graph.
// Direct dependencies hang off the "project" node with their declared
// version; locked packages take their resolved version and gain an edge per
// transitive dependency. A package reached only transitively keeps the
// version first requested for it. Either file may be missing.
func BuildPackageGraph(root string) types.PackageGraph {
	b := &packageGraphBuilder{
		graph: types.PackageGraph{
			Nodes: make([]types.PackageNode, 0),
			Edges: make([][2]string, 0),
		},
		index: make(map[string]int),
	}
	b.node(ProjectNode)

	if manifest, ok := ReadManifest(root); ok {
		for _, name := range sortedKeys(manifest.Dependencies) {
			id := SanitizeName(name)
			b.node(id).Version = manifest.Dependencies[name]
			b.edge(ProjectNode, id)
		}
	}

	if lock, ok := ReadLockfile(root); ok {
		for _, name := range sortedKeys(lock.Dependencies) {
			pkg := lock.Dependencies[name]
			id := SanitizeName(name)
			if pkg.Version != "" {
				b.node(id).Version = pkg.Version
			} else {
				b.node(id)
			}
			for _, dep := range sortedKeys(pkg.Dependencies) {
				depID := SanitizeName(dep)
				n := b.node(depID)
				if n.Version == "" {
					n.Version = pkg.Dependencies[dep]
				}
				b.edge(id, depID)
			}
		}
	}

	return b.graph
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
