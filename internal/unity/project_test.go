package unity

import (
	"os"
	"path/filepath"
	"regexp/syntax"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	guidPlayer   = "a0000000000000000000000000000001"
	guidEnemy    = "a0000000000000000000000000000002"
	guidTex      = "a0000000000000000000000000000003"
	guidShader   = "a0000000000000000000000000000004"
	guidMain     = "a0000000000000000000000000000005"
	guidMat      = "a0000000000000000000000000000006"
	guidHero     = "a0000000000000000000000000000007"
	guidCoreAsm  = "a0000000000000000000000000000008"
	guidMissing  = "deadbeefdeadbeefdeadbeefdeadbeef"
	guidDataSO   = "a0000000000000000000000000000009"
	guidSettings = "a000000000000000000000000000000a"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func meta(guid string) string {
	return "fileFormatVersion: 2\nguid: " + guid + "\n"
}

const mainScene = `%YAML 1.1
%TAG !u! tag:unity3d.com,2011:
--- !u!104 &2
RenderSettings:
  m_Fog: 0
--- !u!157 &3
LightmapSettings:
  m_GIWorkflowMode: 1
--- !u!1 &100
GameObject:
  m_Component:
  - component: {fileID: 101}
  - component: {fileID: 102}
  m_Layer: 0
  m_Name: Main Camera
  m_TagString: MainCamera
--- !u!4 &101
Transform:
  m_GameObject: {fileID: 100}
  m_Father: {fileID: 0}
--- !u!20 &102
Camera:
  m_GameObject: {fileID: 100}
--- !u!1 &200
GameObject:
  m_Component:
  - component: {fileID: 201}
  - component: {fileID: 202}
  m_Layer: 8
  m_Name: Player
  m_TagString: Player
--- !u!4 &201
Transform:
  m_GameObject: {fileID: 200}
  m_Father: {fileID: 0}
--- !u!114 &202
MonoBehaviour:
  m_GameObject: {fileID: 200}
  m_Script: {fileID: 11500000, guid: ` + guidPlayer + `, type: 3}
  skin: {fileID: 2100000, guid: ` + guidMat + `, type: 2}
--- !u!1 &300
GameObject:
  m_Component:
  - component: {fileID: 301}
  m_Layer: 0
  m_Name: Weapon
  m_TagString: Untagged
--- !u!4 &301
Transform:
  m_GameObject: {fileID: 300}
  m_Father: {fileID: 201}
--- !u!114 &302
MonoBehaviour:
  m_GameObject: {fileID: 300}
  m_Script: {fileID: 11500000, guid: ` + guidMissing + `, type: 3}
`

const heroPrefab = `%YAML 1.1
--- !u!1 &1
GameObject:
  m_Component:
  - component: {fileID: 2}
  m_Name: Hero
--- !u!4 &2
Transform:
  m_GameObject: {fileID: 1}
  m_Father: {fileID: 0}
--- !u!95 &3
Animator:
  m_GameObject: {fileID: 1}
--- !u!114 &4
MonoBehaviour:
  m_GameObject: {fileID: 1}
  m_Script: {fileID: 11500000, guid: ` + guidEnemy + `, type: 3}
  portrait: {fileID: 2800000, guid: ` + guidTex + `, type: 3}
`

const heroVariant = `%YAML 1.1
--- !u!1001 &1
PrefabInstance:
  m_ObjectHideFlags: 0
  serializedVersion: 2
  m_Modification:
    m_TransformParent: {fileID: 0}
  m_SourcePrefab: {fileID: 100100000, guid: ` + guidHero + `, type: 3}
`

const controller = `%YAML 1.1
--- !u!1107 &10
AnimatorStateMachine:
  m_Name: Base Layer
  m_AnyStateTransitions:
  - {fileID: 40}
--- !u!1102 &20
AnimatorState:
  m_Name: Idle
  m_Transitions:
  - {fileID: 30}
--- !u!1102 &21
AnimatorState:
  m_Name: Run
  m_Transitions: []
--- !u!1102 &22
AnimatorState:
  m_Name: Die
  m_Transitions: []
--- !u!1101 &30
AnimatorStateTransition:
  m_DstState: {fileID: 21}
--- !u!1101 &40
AnimatorStateTransition:
  m_DstState: {fileID: 22}
`

// setupProject builds a small but complete project:
//
//	Assets/Scripts/Player.cs, Enemy.cs          (Game.Core asmdef)
//	Assets/Scripts/Editor/Tools.cs              (Game.Editor asmdef, references Game.Core by GUID)
//	Assets/Misc/Loose.cs, Assets/Editor/Menu.cs (predefined assemblies)
//	Assets/Scenes/Main.unity                    (build scene, missing script on Weapon)
//	Assets/Prefabs/Hero.prefab, HeroVariant.prefab
//	Assets/Art/Hero.png (sprite), Wall.mat, Lit.shader, Big.bin
func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, root, "ProjectSettings/ProjectVersion.txt", "m_EditorVersion: 2022.3.10f1\n")
	writeFile(t, root, "ProjectSettings/EditorBuildSettings.asset", `EditorBuildSettings:
  m_Scenes:
  - enabled: 1
    path: Assets/Scenes/Main.unity
    guid: `+guidMain+`
  - enabled: 0
    path: Assets/Scenes/Debug.unity
    guid: 00000000000000000000000000000000
`)
	writeFile(t, root, "ProjectSettings/ProjectSettings.asset", `%YAML 1.1
--- !u!129 &1
PlayerSettings:
  companyName: Acme
  productName: Space Game
  bundleVersion: 1.2.0
  m_ActiveBuildTarget: 13
  applicationIdentifier:
    Android: com.acme.game
  scriptingDefineSymbols:
    Android: FOO;BAR
    Standalone: FOO
  cloudProjectId: cloud-123
`)
	writeFile(t, root, "ProjectSettings/TagManager.asset", `TagManager:
  tags:
  - Spawn
  layers:
  - Default
  - TransparentFX
  -
  -
  -
  - UI
  -
  -
  - Player
  m_SortingLayers:
  - name: Default
    uniqueID: 0
`)
	writeFile(t, root, "ProjectSettings/EditorSettings.asset", "EditorSettings:\n  m_SerializationMode: 2\n  m_ExternalVersionControlSupport: Visible Meta Files\n")
	writeFile(t, root, "ProjectSettings/InputManager.asset", `InputManager:
  m_Axes:
  - serializedVersion: 3
    m_Name: Horizontal
    descriptiveName:
    positiveButton: right
  - serializedVersion: 3
    m_Name: Jump
    positiveButton: space
`)
	writeFile(t, root, "Packages/manifest.json", `{"dependencies": {
  "com.unity.timeline": "1.7.5",
  "com.acme.tools": "file:../tools",
  "com.unity.xr.management": "4.4.0"
}}`)

	writeFile(t, root, "Assets/Scripts/Game.Core.asmdef", `{"name": "Game.Core", "references": []}`)
	writeFile(t, root, "Assets/Scripts/Game.Core.asmdef.meta", meta(guidCoreAsm))
	writeFile(t, root, "Assets/Scripts/Player.cs", "namespace Game.Core { public class Player : MonoBehaviour { Enemy target; } }")
	writeFile(t, root, "Assets/Scripts/Player.cs.meta", meta(guidPlayer)+"MonoImporter:\n  executionOrder: -100\n")
	writeFile(t, root, "Assets/Scripts/Enemy.cs", "namespace Game.Core { public class Enemy : MonoBehaviour {} }")
	writeFile(t, root, "Assets/Scripts/Enemy.cs.meta", meta(guidEnemy)+"MonoImporter:\n  executionOrder: 0\n")
	writeFile(t, root, "Assets/Scripts/Editor/Game.Editor.asmdef", `{"name": "Game.Editor", "references": ["GUID:`+guidCoreAsm+`"]}`)
	writeFile(t, root, "Assets/Scripts/Editor/Tools.cs", "namespace Game.Editor { class Tools {} }")
	writeFile(t, root, "Assets/Misc/Loose.cs", "class Loose {}")
	writeFile(t, root, "Assets/Editor/Menu.cs", "class Menu {}")

	writeFile(t, root, "Assets/Scenes/Main.unity", mainScene)
	writeFile(t, root, "Assets/Scenes/Main.unity.meta", meta(guidMain))
	writeFile(t, root, "Assets/Prefabs/Hero.prefab", heroPrefab)
	writeFile(t, root, "Assets/Prefabs/Hero.prefab.meta", meta(guidHero))
	writeFile(t, root, "Assets/Prefabs/HeroVariant.prefab", heroVariant)
	writeFile(t, root, "Assets/Anim/Hero.controller", controller)

	writeFile(t, root, "Assets/Art/Hero.png", "png-bytes")
	writeFile(t, root, "Assets/Art/Hero.png.meta", meta(guidTex)+`TextureImporter:
  mipmaps:
    enableMipMap: 0
  isReadable: 1
  maxTextureSize: 2048
  textureType: 8
  spriteMode: 1
  spritePixelsToUnits: 32
  platformSettings:
  - serializedVersion: 3
    buildTarget: Android
    maxTextureSize: 1024
`)
	writeFile(t, root, "Assets/Art/Lit.shader", "Shader \"Custom/Lit\" {}")
	writeFile(t, root, "Assets/Art/Lit.shader.meta", meta(guidShader))
	writeFile(t, root, "Assets/Art/Wall.mat", `--- !u!21 &2100000
Material:
  m_Shader: {fileID: 4800000, guid: `+guidShader+`, type: 3}
  _MainTex: {fileID: 2800000, guid: `+guidTex+`, type: 3}
`)
	writeFile(t, root, "Assets/Art/Wall.mat.meta", meta(guidMat))
	writeFile(t, root, "Assets/Data/Settings.asset", `--- !u!114 &11400000
MonoBehaviour:
  m_Script: {fileID: 11500000, guid: `+guidDataSO+`, type: 3}
  m_Name: Settings
`)
	writeFile(t, root, "Assets/Data/Settings.asset.meta", meta(guidSettings))
	writeFile(t, root, "Assets/Scripts/GameData.cs", "public class GameData : ScriptableObject {}")
	writeFile(t, root, "Assets/Scripts/GameData.cs.meta", meta(guidDataSO))

	writeFile(t, root, "Assets/Input/Controls.inputactions", `{"maps": [
  {"name": "Gameplay", "actions": [{"name": "Move"}, {"name": "Fire"}]},
  {"name": "UI", "actions": [{"name": "Click"}]}
]}`)
	writeFile(t, root, ".github/workflows/build.yml", "name: Build Game\non: push\n")
	writeFile(t, root, "Jenkinsfile", "pipeline {}")
	writeFile(t, root, ".gitattributes", "*.psd filter=lfs diff=lfs merge=lfs -text\n# comment\n*.cs text\n")
	writeFile(t, root, "steam_appid.txt", "480\n")
	writeFile(t, root, "README.md", "# Space Game\n")
	writeFile(t, root, ".agents/AGENT.md", "agent notes")
	writeFile(t, root, "REPO_UNDERSTANDING.md", "repo notes")
	return root
}

func newProject(t *testing.T, root string) *Project {
	t.Helper()
	p, err := New(root)
	require.NoError(t, err)
	return p
}

func TestCompileCachesPatterns(t *testing.T) {
	p := newProject(t, t.TempDir())

	re1, err := p.compile("Mono.*")
	require.NoError(t, err)
	re2, err := p.compile("Mono.*")
	require.NoError(t, err)
	assert.Same(t, re1, re2)

	_, err = p.compile("([")
	require.Error(t, err)
	var syntaxErr *syntax.Error
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestFolderHelpers(t *testing.T) {
	assert.Equal(t, "Assets/Prefabs/UI", assetsFolder("Prefabs/UI/"))
	assert.Equal(t, "Assets/Prefabs", assetsFolder("Assets/Prefabs"))
	assert.Equal(t, "Assets", assetsFolder("Assets"))

	paths := []string{"Assets/Prefabs/A.prefab", "Assets/PrefabsOld/B.prefab", "Assets/C.prefab"}
	assert.Equal(t, []string{"Assets/Prefabs/A.prefab"}, underFolder(paths, "Prefabs"))
	assert.Equal(t, paths, underFolder(paths, ""))

	assert.Equal(t, []int{1, 2}, limit([]int{1, 2, 3}, 2))
	assert.Equal(t, []int{1, 2, 3}, limit([]int{1, 2, 3}, 0))
}

func TestEmptyProject(t *testing.T) {
	p := newProject(t, t.TempDir())

	assert.Equal(t, "unknown", p.UnityVersion())
	assert.Empty(t, p.BuildScenes())
	assert.NotNil(t, p.BuildScenes())
	assert.Empty(t, p.Packages().Dependencies)
	assert.Empty(t, p.Scripts(""))
	assert.Empty(t, p.AllScenes())
	assert.Empty(t, p.SceneSummary("Assets/None.unity").RootObjects)
	assert.Nil(t, p.PrefabSummary("Assets/None.prefab"))
	assert.Empty(t, p.AssetFolderTree(0))
	assert.Empty(t, p.TagsAndLayers().Tags)
	assert.Empty(t, p.CIConfigs())
	assert.Equal(t, "(No .agents/AGENT.md found)", p.AgentDocs(true))
	assert.Empty(t, p.AssemblyDependencyGraph().Nodes)
	assert.False(t, p.AssemblyCycles().HasCycles)
}
