package unity

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/csharp"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/depgraph"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/fsutil"
	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

// Predefined assemblies Unity compiles scripts into when no .asmdef owns them.
const (
	AssemblyCSharp       = "Assembly-CSharp"
	AssemblyCSharpEditor = "Assembly-CSharp-Editor"
)

// Assemblies lists every assembly definition under Assets.
func (p *Project) Assemblies() []depgraph.Module {
	return depgraph.LoadModules(p.Root)
}

// AssemblyDependencyGraph returns the assembly reference graph.
func (p *Project) AssemblyDependencyGraph() types.DependencyGraph {
	return depgraph.BuildModuleGraph(p.Assemblies())
}

// AssemblyCycles reports reference cycles between assemblies.
func (p *Project) AssemblyCycles() types.AssemblyCycles {
	cycles := depgraph.DetectAssemblyCycles(p.Root)
	return types.AssemblyCycles{Cycles: cycles, HasCycles: len(cycles) > 0}
}

func isEditorPath(p string) bool {
	return strings.HasPrefix(p, "Assets/Editor/") || strings.Contains(p, "/Editor/")
}

// assemblyFor picks the module whose .asmdef directory is the longest
// prefix of rel.
func assemblyFor(modules []depgraph.Module, rel string) (depgraph.Module, bool) {
	var best depgraph.Module
	bestLen := -1
	for _, m := range modules {
		dir := path.Dir(m.Path) + "/"
		if strings.HasPrefix(rel, dir) && len(dir) > bestLen {
			best, bestLen = m, len(dir)
		}
	}
	return best, bestLen >= 0
}

// AssemblyForPath names the assembly that compiles the script at rel.
func (p *Project) AssemblyForPath(rel string) types.AssemblyOwner {
	rel = strings.TrimPrefix(strings.ReplaceAll(rel, "\\", "/"), "./")
	if m, ok := assemblyFor(p.Assemblies(), rel); ok {
		return types.AssemblyOwner{Path: rel, Assembly: m.Name, AsmdefPath: m.Path}
	}
	owner := types.AssemblyOwner{Path: rel, Assembly: AssemblyCSharp, Implicit: true}
	if isEditorPath(rel) {
		owner.Assembly = AssemblyCSharpEditor
	}
	return owner
}

// ScriptsByAssembly groups every script under Assets by owning assembly.
// When name is set only that assembly is returned; name may also be the
// path of its .asmdef.
func (p *Project) ScriptsByAssembly(name string) map[string][]string {
	modules := p.Assemblies()
	if strings.HasSuffix(name, ".asmdef") {
		for _, m := range modules {
			if m.Path == name {
				name = m.Name
				break
			}
		}
	}
	out := make(map[string][]string)
	for _, script := range p.Scripts("") {
		owner := AssemblyCSharp
		if m, ok := assemblyFor(modules, script); ok {
			owner = m.Name
		} else if isEditorPath(script) {
			owner = AssemblyCSharpEditor
		}
		if name != "" && owner != name {
			continue
		}
		out[owner] = append(out[owner], script)
	}
	return out
}

// AsmdefReferences maps each assembly to its references, with GUID
// references resolved to names where the target is in the project.
func (p *Project) AsmdefReferences() map[string][]string {
	modules := p.Assemblies()
	resolver := depgraph.NewReferenceResolver(modules)
	out := make(map[string][]string, len(modules))
	for _, m := range modules {
		refs := make([]string, 0, len(m.References))
		for _, ref := range m.References {
			refs = append(refs, resolver.Resolve(ref))
		}
		if existing, ok := out[m.Name]; ok {
			refs = append(existing, refs...)
		}
		out[m.Name] = refs
	}
	return out
}

// AssemblyReferrers lists the assemblies that reference name, sorted.
func (p *Project) AssemblyReferrers(name string) []string {
	out := make([]string, 0)
	for from, refs := range p.AsmdefReferences() {
		for _, ref := range refs {
			if ref == name {
				out = append(out, from)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// Scripts lists .cs files under Assets, optionally inside folder.
func (p *Project) Scripts(folder string) []string {
	return underFolder(p.listExt(".cs"), folder)
}

// FindScriptsByContent returns scripts whose text matches pattern
// (case-insensitive). namespace, when set, is a second pattern the script
// must also match; "*" acts as a wildcard.
func (p *Project) FindScriptsByContent(pattern, namespace string) ([]string, error) {
	re, err := p.compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	var ns *regexp.Regexp
	if namespace != "" {
		ns, err = p.compile("(?i)" + strings.ReplaceAll(namespace, "*", ".*"))
		if err != nil {
			return nil, err
		}
	}
	out := make([]string, 0)
	for _, rel := range p.Scripts("") {
		text, ok := p.read(rel)
		if !ok || !re.MatchString(text) {
			continue
		}
		if ns != nil && !ns.MatchString(text) {
			continue
		}
		out = append(out, rel)
	}
	return out, nil
}

// FindScriptReferences returns scripts that mention a type or member name.
// The symbol is a literal, case-insensitive substring.
func (p *Project) FindScriptReferences(symbol string) ([]string, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	return p.FindScriptsByContent(regexp.QuoteMeta(strings.TrimSpace(symbol)), "")
}

// EditorScripts lists scripts that only compile for the editor.
func (p *Project) EditorScripts() []string {
	out := make([]string, 0)
	for _, s := range p.Scripts("") {
		if isEditorPath(s) {
			out = append(out, s)
		}
	}
	return out
}

var visualScriptingDirs = []string{
	"Assets/Ludiq", "Assets/Unity.VisualScripting", "Packages/com.unity.visualscripting",
}

// VisualScriptingAssets lists script graphs and Bolt/Visual Scripting data.
func (p *Project) VisualScriptingAssets() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	add := func(paths []string) {
		for _, rel := range paths {
			if !seen[rel] {
				seen[rel] = true
				out = append(out, rel)
			}
		}
	}
	for _, dir := range visualScriptingDirs {
		add(fsutil.ListFiles(p.Root, dir, fsutil.ListOptions{Ext: ".asset"}))
	}
	add(fsutil.ListFilesMatching(p.Root, fsutil.Assets, func(name string) bool {
		lower := strings.ToLower(name)
		return strings.HasSuffix(lower, ".scriptgraph.asset") || strings.HasSuffix(lower, ".stategraph.asset")
	}))
	sort.Strings(out)
	return limit(out, 100)
}

// ScriptPublicAPI parses a C# script and returns its public surface.
func (p *Project) ScriptPublicAPI(ctx context.Context, rel string) (*csharp.ScriptAPI, error) {
	text, ok := p.read(rel)
	if !ok {
		return &csharp.ScriptAPI{Path: rel, Types: []csharp.TypeAPI{}}, nil
	}
	api, err := p.scripts.Parse(ctx, rel, []byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", rel, err)
	}
	return api, nil
}
