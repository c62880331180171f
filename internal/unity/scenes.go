package unity

import (
	"strconv"
	"strings"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/assetref"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/fsutil"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/unityyaml"
	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

// Unity class ids used when walking scene and prefab documents.
const (
	classGameObject    = 1
	classTransform     = 4
	classRectTransform = 224
	classPrefab        = 1001
)

const monoBehaviour = "MonoBehaviour"

// sceneGraph is a parsed scene or prefab: GameObjects by fileID and the
// components that hang off them.
type sceneGraph struct {
	docs        []unityyaml.Document
	gameObjects map[string]unityyaml.Document
	order       []string // GameObject fileIDs in file order
	components  []unityyaml.Document
}

func parseSceneGraph(text string) *sceneGraph {
	g := &sceneGraph{
		docs:        unityyaml.SplitDocuments(text),
		gameObjects: make(map[string]unityyaml.Document),
	}
	for _, d := range g.docs {
		if d.Stripped {
			continue
		}
		if d.ClassID == classGameObject {
			g.gameObjects[d.FileID] = d
			g.order = append(g.order, d.FileID)
			continue
		}
		if _, ok := d.Ref("m_GameObject"); ok {
			g.components = append(g.components, d)
		}
	}
	return g
}

// owner returns the name of the GameObject a component is attached to.
func (g *sceneGraph) owner(component unityyaml.Document) (string, bool) {
	id, ok := component.Ref("m_GameObject")
	if !ok {
		return "", false
	}
	goDoc, ok := g.gameObjects[id]
	if !ok {
		return "", false
	}
	return goDoc.Name(), true
}

// roots returns GameObjects whose transform has no parent, in file order.
func (g *sceneGraph) roots() []string {
	rootIDs := make(map[string]bool)
	for _, c := range g.components {
		if c.ClassID != classTransform && c.ClassID != classRectTransform {
			continue
		}
		if father, ok := c.Ref("m_Father"); ok && father == "0" {
			if id, ok := c.Ref("m_GameObject"); ok {
				rootIDs[id] = true
			}
		}
	}
	out := make([]string, 0)
	for _, id := range g.order {
		if rootIDs[id] {
			out = append(out, g.gameObjects[id].Name())
		}
	}
	return out
}

func (p *Project) sceneGraph(rel string) (*sceneGraph, bool) {
	text, ok := p.read(rel)
	if !ok {
		return nil, false
	}
	return parseSceneGraph(text), true
}

// componentMatcher reports whether a component document is of the named
// type. MonoBehaviours match by the file name of their script.
type componentMatcher struct {
	typ   string
	index *assetref.Index
}

func newComponentMatcher(typ string) *componentMatcher {
	return &componentMatcher{typ: strings.TrimSpace(typ)}
}

func (m *componentMatcher) match(root string, d unityyaml.Document) bool {
	if d.Type == m.typ {
		return true
	}
	if d.Type != monoBehaviour || m.typ == monoBehaviour {
		return false
	}
	v, ok := d.Field("m_Script")
	if !ok {
		return false
	}
	guids := unityyaml.GUIDRefs(v)
	if len(guids) == 0 {
		return false
	}
	if m.index == nil {
		m.index = assetref.BuildIndex(root)
	}
	script, ok := m.index.Path(guids[0])
	return ok && baseName(script) == m.typ
}

// AllScenes lists every .unity file under Assets.
func (p *Project) AllScenes() []string {
	return p.listExt(".unity")
}

// SceneSummary lists the root GameObjects of a scene with object and
// component counts.
func (p *Project) SceneSummary(rel string) types.SceneSummary {
	g, ok := p.sceneGraph(rel)
	if !ok {
		return types.SceneSummary{RootObjects: []string{}}
	}
	return types.SceneSummary{
		RootObjects:     limit(g.roots(), 100),
		GameObjectCount: len(g.gameObjects),
		ComponentCount:  len(g.components),
	}
}

func (p *Project) componentsInScene(rel string, m *componentMatcher) []types.ComponentHit {
	out := make([]types.ComponentHit, 0)
	g, ok := p.sceneGraph(rel)
	if !ok {
		return out
	}
	for _, c := range g.components {
		if !m.match(p.Root, c) {
			continue
		}
		name, ok := g.owner(c)
		if !ok {
			continue
		}
		out = append(out, types.ComponentHit{GameObjectName: name, ComponentType: m.typ})
	}
	return out
}

// SceneComponentsByType lists GameObjects in a scene carrying a component
// of the given type, e.g. Camera, Light or a MonoBehaviour script name.
func (p *Project) SceneComponentsByType(rel, componentType string) []types.ComponentHit {
	return limit(p.componentsInScene(rel, newComponentMatcher(componentType)), 100)
}

// AllComponentsByType searches every scene for a component type.
func (p *Project) AllComponentsByType(componentType string) []types.ComponentHit {
	m := newComponentMatcher(componentType)
	out := make([]types.ComponentHit, 0)
	for _, scene := range p.AllScenes() {
		for _, hit := range p.componentsInScene(scene, m) {
			hit.ScenePath = scene
			out = append(out, hit)
		}
	}
	return limit(out, 300)
}

func gameObjectTag(d unityyaml.Document) string {
	if v, ok := d.Field("m_TagString"); ok {
		return v
	}
	v, _ := d.Field("m_Tag")
	return v
}

// SceneObjectsByTag lists GameObjects in a scene with the given tag.
func (p *Project) SceneObjectsByTag(rel, tag string) []types.TaggedObject {
	out := make([]types.TaggedObject, 0)
	g, ok := p.sceneGraph(rel)
	if !ok {
		return out
	}
	tag = strings.TrimSpace(tag)
	for _, id := range g.order {
		d := g.gameObjects[id]
		if gameObjectTag(d) == tag {
			out = append(out, types.TaggedObject{GameObjectName: d.Name(), Tag: tag})
		}
	}
	return limit(out, 200)
}

// SceneHierarchyFlat lists every GameObject of a scene with its layer.
func (p *Project) SceneHierarchyFlat(rel string) []types.HierarchyEntry {
	out := make([]types.HierarchyEntry, 0)
	g, ok := p.sceneGraph(rel)
	if !ok {
		return out
	}
	for _, id := range g.order {
		d := g.gameObjects[id]
		v, _ := d.Field("m_Layer")
		layer, _ := strconv.Atoi(v)
		out = append(out, types.HierarchyEntry{Name: d.Name(), Layer: layer})
	}
	return limit(out, 500)
}

var lightingWords = []string{"light", "lighting", "lightmap", "reflection"}

// LightingSceneInfo lists lighting assets a scene references and its GI
// workflow mode when serialized.
func (p *Project) LightingSceneInfo(rel string) types.LightingSceneInfo {
	info := types.LightingSceneInfo{
		ScenePath:                rel,
		ReferencedLightingAssets: filterLower(p.SceneReferencedAssets(rel).Resolved, lightingWords...),
	}
	if text, ok := p.read(rel); ok {
		if v, ok := unityyaml.Field(text, "m_GIWorkflowMode"); ok {
			if mode, err := strconv.Atoi(v); err == nil {
				info.GIWorkflowMode = &mode
			}
		}
	}
	return info
}

// SceneReferencedAssets resolves every GUID a scene mentions.
func (p *Project) SceneReferencedAssets(rel string) types.ReferencedAssets {
	return assetref.ReferencedAssets(p.Root, rel)
}

// Prefabs lists .prefab files, optionally inside folder.
func (p *Project) Prefabs(folder string) []string {
	return underFolder(p.listExt(".prefab"), folder)
}

// isPrefabVariant recognises both the legacy (m_ParentPrefab) and the
// nested-prefab (PrefabInstance at the root) variant layouts.
func isPrefabVariant(text string) bool {
	if strings.Contains(text, "m_ParentPrefab:") && strings.Contains(text, "m_Modification") {
		return true
	}
	for _, d := range unityyaml.SplitDocuments(text) {
		if d.ClassID != classPrefab || d.Type != "PrefabInstance" {
			continue
		}
		if parent, ok := d.Ref("m_TransformParent"); ok && parent == "0" {
			return true
		}
	}
	return false
}

// PrefabVariants lists prefabs that derive from another prefab.
func (p *Project) PrefabVariants() []string {
	out := make([]string, 0)
	for _, rel := range p.Prefabs("") {
		if text, ok := p.read(rel); ok && isPrefabVariant(text) {
			out = append(out, rel)
		}
	}
	return out
}

// PrefabsWithComponent lists prefabs that contain a component type.
func (p *Project) PrefabsWithComponent(componentType string) []string {
	m := newComponentMatcher(componentType)
	out := make([]string, 0)
	for _, rel := range p.Prefabs("") {
		g, ok := p.sceneGraph(rel)
		if !ok {
			continue
		}
		for _, c := range g.components {
			if m.match(p.Root, c) {
				out = append(out, rel)
				break
			}
		}
	}
	return out
}

// PrefabSummary describes a prefab's root and the component types it uses.
// It returns nil when the prefab cannot be read.
func (p *Project) PrefabSummary(rel string) *types.PrefabSummary {
	g, ok := p.sceneGraph(rel)
	if !ok {
		return nil
	}
	summary := &types.PrefabSummary{
		RootName:       "?",
		ComponentCount: len(g.components),
		ComponentTypes: make([]string, 0),
	}
	if roots := g.roots(); len(roots) > 0 {
		summary.RootName = roots[0]
	} else if len(g.order) > 0 {
		summary.RootName = g.gameObjects[g.order[0]].Name()
	}
	seen := make(map[string]bool)
	for _, d := range g.docs {
		if d.Type != "" && !seen[d.Type] {
			seen[d.Type] = true
			summary.ComponentTypes = append(summary.ComponentTypes, d.Type)
		}
	}
	summary.ComponentTypes = limit(summary.ComponentTypes, 50)
	return summary
}

// PrefabScriptGUIDs returns the distinct script GUIDs a prefab's
// MonoBehaviours point at.
func (p *Project) PrefabScriptGUIDs(rel string) []string {
	out := make([]string, 0)
	text, ok := p.read(rel)
	if !ok {
		return out
	}
	seen := make(map[string]bool)
	for _, g := range unityyaml.ScriptGUIDs(text) {
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

// PrefabDependencies resolves the assets a prefab references.
func (p *Project) PrefabDependencies(rel string) []string {
	return assetref.ReferencedAssets(p.Root, rel).Resolved
}

// Subscenes lists DOTS subscene files.
func (p *Project) Subscenes() []string {
	return fsutil.ListFiles(p.Root, fsutil.Assets, fsutil.ListOptions{Ext: ".subscene"})
}
