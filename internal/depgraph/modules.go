// Package depgraph builds dependency graphs from assembly definitions and
// package manifests, and finds cycles in them.
package depgraph

import (
	"strings"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/assetref"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/fsutil"
	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

const guidRefPrefix = "GUID:"

// Module is an assembly definition plus the GUID of its .asmdef asset,
// which other definitions may use to reference it.
type Module struct {
	types.AssemblyDefinition
	GUID string `json:"guid,omitempty"`
}

type asmdefFile struct {
	Name                    string                `json:"name"`
	References              []string              `json:"references"`
	DefineConstraints       []string              `json:"defineConstraints"`
	OptionalUnityReferences []string              `json:"optionalUnityReferences"`
	IncludePlatforms        []string              `json:"includePlatforms"`
	VersionDefines          []types.VersionDefine `json:"versionDefines"`
}

// LoadModules parses every .asmdef under Assets. Files that are not valid
// JSON or have no name are skipped without affecting the rest.
func LoadModules(root string) []Module {
	out := make([]Module, 0)
	for _, rel := range fsutil.ListFiles(root, fsutil.Assets, fsutil.ListOptions{Ext: ".asmdef"}) {
		def, ok := fsutil.ReadJSON[asmdefFile](root, rel)
		if !ok || strings.TrimSpace(def.Name) == "" {
			continue
		}
		refs := def.References
		if refs == nil {
			refs = make([]string, 0)
		}
		guid, _ := assetref.GUIDOf(root, rel)
		out = append(out, Module{
			AssemblyDefinition: types.AssemblyDefinition{
				Path:                    rel,
				Name:                    def.Name,
				References:              refs,
				DefineConstraints:       def.DefineConstraints,
				OptionalUnityReferences: def.OptionalUnityReferences,
				IncludePlatforms:        def.IncludePlatforms,
				VersionDefines:          def.VersionDefines,
			},
			GUID: guid,
		})
	}
	return out
}

// ReferenceResolver maps "GUID:<hex>" references to module names.
type ReferenceResolver map[string]string

// NewReferenceResolver indexes modules by the GUID of their .asmdef.
func NewReferenceResolver(modules []Module) ReferenceResolver {
	r := make(ReferenceResolver, len(modules))
	for _, m := range modules {
		if m.GUID != "" {
			if _, exists := r[m.GUID]; !exists {
				r[m.GUID] = m.Name
			}
		}
	}
	return r
}

// Resolve returns the module name for ref. Name references and GUID
// references to unknown assets are returned unchanged.
func (r ReferenceResolver) Resolve(ref string) string {
	if !strings.HasPrefix(ref, guidRefPrefix) {
		return ref
	}
	guid := strings.ToLower(strings.TrimPrefix(ref, guidRefPrefix))
	if name, ok := r[guid]; ok {
		return name
	}
	return ref
}

// BuildModuleGraph creates one node per module name and one edge per
// reference, in discovery order. Modules sharing a name collapse into a
// single node carrying the edges of all of them; the shared names are
// reported in DuplicateNames.
func BuildModuleGraph(modules []Module) types.DependencyGraph {
	resolver := NewReferenceResolver(modules)
	g := types.DependencyGraph{
		Nodes: make([]string, 0, len(modules)),
		Edges: make([][2]string, 0),
	}
	seen := make(map[string]bool, len(modules))
	duplicate := make(map[string]bool)
	for _, m := range modules {
		if seen[m.Name] {
			if !duplicate[m.Name] {
				duplicate[m.Name] = true
				g.DuplicateNames = append(g.DuplicateNames, m.Name)
			}
			continue
		}
		seen[m.Name] = true
		g.Nodes = append(g.Nodes, m.Name)
	}
	for _, m := range modules {
		for _, ref := range m.References {
			g.Edges = append(g.Edges, [2]string{m.Name, resolver.Resolve(ref)})
		}
	}
	return g
}
