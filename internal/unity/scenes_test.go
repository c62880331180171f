package unity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

const mainPath = "Assets/Scenes/Main.unity"

func TestSceneSummary(t *testing.T) {
	p := newProject(t, setupProject(t))

	assert.Equal(t, []string{mainPath}, p.AllScenes())

	s := p.SceneSummary(mainPath)
	assert.Equal(t, []string{"Main Camera", "Player"}, s.RootObjects)
	assert.Equal(t, 3, s.GameObjectCount)
	assert.Equal(t, 6, s.ComponentCount)
}

func TestSceneComponentsByType(t *testing.T) {
	p := newProject(t, setupProject(t))

	assert.Equal(t, []types.ComponentHit{{GameObjectName: "Main Camera", ComponentType: "Camera"}},
		p.SceneComponentsByType(mainPath, "Camera"))

	// scripts match by file name
	assert.Equal(t, []types.ComponentHit{{GameObjectName: "Player", ComponentType: "Player"}},
		p.SceneComponentsByType(mainPath, "Player"))

	assert.Empty(t, p.SceneComponentsByType(mainPath, "Light"))
	assert.Len(t, p.SceneComponentsByType(mainPath, "MonoBehaviour"), 2)

	all := p.AllComponentsByType(" Camera ")
	require.Len(t, all, 1)
	assert.Equal(t, mainPath, all[0].ScenePath)
}

func TestSceneObjectsByTagAndHierarchy(t *testing.T) {
	p := newProject(t, setupProject(t))

	assert.Equal(t, []types.TaggedObject{{GameObjectName: "Player", Tag: "Player"}}, p.SceneObjectsByTag(mainPath, "Player"))
	assert.Empty(t, p.SceneObjectsByTag(mainPath, "Respawn"))

	assert.Equal(t, []types.HierarchyEntry{
		{Name: "Main Camera", Layer: 0},
		{Name: "Player", Layer: 8},
		{Name: "Weapon", Layer: 0},
	}, p.SceneHierarchyFlat(mainPath))
}

func TestLightingSceneInfo(t *testing.T) {
	p := newProject(t, setupProject(t))

	info := p.LightingSceneInfo(mainPath)
	require.NotNil(t, info.GIWorkflowMode)
	assert.Equal(t, 1, *info.GIWorkflowMode)
	assert.Empty(t, info.ReferencedLightingAssets)

	assert.Nil(t, p.LightingSceneInfo("Assets/None.unity").GIWorkflowMode)
}

func TestSceneReferencedAssets(t *testing.T) {
	p := newProject(t, setupProject(t))

	refs := p.SceneReferencedAssets(mainPath)
	assert.Equal(t, []string{"Assets/Scripts/Player.cs", "Assets/Art/Wall.mat"}, refs.Resolved)
	assert.Equal(t, []string{guidMissing}, refs.UnresolvedGUIDs)
}

func TestPrefabs(t *testing.T) {
	p := newProject(t, setupProject(t))

	assert.Equal(t, []string{"Assets/Prefabs/Hero.prefab", "Assets/Prefabs/HeroVariant.prefab"}, p.Prefabs("Prefabs"))
	assert.Equal(t, []string{"Assets/Prefabs/HeroVariant.prefab"}, p.PrefabVariants())
	assert.Equal(t, []string{"Assets/Prefabs/Hero.prefab"}, p.PrefabsWithComponent("Animator"))
	assert.Equal(t, []string{"Assets/Prefabs/Hero.prefab"}, p.PrefabsWithComponent("Enemy"))
	assert.Empty(t, p.PrefabsWithComponent("Rigidbody"))
}

func TestPrefabSummary(t *testing.T) {
	p := newProject(t, setupProject(t))

	s := p.PrefabSummary("Assets/Prefabs/Hero.prefab")
	require.NotNil(t, s)
	assert.Equal(t, "Hero", s.RootName)
	assert.Equal(t, 3, s.ComponentCount)
	assert.Equal(t, []string{"GameObject", "Transform", "Animator", "MonoBehaviour"}, s.ComponentTypes)

	assert.Equal(t, []string{guidEnemy}, p.PrefabScriptGUIDs("Assets/Prefabs/Hero.prefab"))
	assert.Equal(t, []string{"Assets/Scripts/Enemy.cs", "Assets/Art/Hero.png"}, p.PrefabDependencies("Assets/Prefabs/Hero.prefab"))
}

func TestIsPrefabVariant(t *testing.T) {
	legacy := "--- !u!1001 &1\nPrefab:\n  m_Modification:\n    m_Modifications: []\n  m_ParentPrefab: {fileID: 100100000, guid: " + guidHero + ", type: 2}\n"
	assert.True(t, isPrefabVariant(legacy))
	assert.True(t, isPrefabVariant(heroVariant))
	assert.False(t, isPrefabVariant(heroPrefab))

	nested := "--- !u!1001 &5\nPrefabInstance:\n  m_Modification:\n    m_TransformParent: {fileID: 2}\n"
	assert.False(t, isPrefabVariant(nested), "a nested instance under a parent is not a variant")
}

func TestAnimatorGraph(t *testing.T) {
	p := newProject(t, setupProject(t))

	g := p.AnimatorGraph("Assets/Anim/Hero.controller")
	assert.Equal(t, []string{"Idle", "Run", "Die"}, g.States)
	assert.Equal(t, []types.AnimatorTransition{
		{From: "Any State", To: "Die"},
		{From: "Idle", To: "Run"},
	}, g.Transitions)

	assert.Equal(t, g.States, p.AnimatorStates("Assets/Anim/Hero.controller"))
	assert.Equal(t, []string{"Assets/Anim/Hero.controller"}, p.AnimatorControllers())
}
