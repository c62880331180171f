package unityyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneFixture = `%YAML 1.1
%TAG !u! tag:unity3d.com,2011:
--- !u!1 &100
GameObject:
  m_ObjectHideFlags: 0
  serializedVersion: 6
  m_Component:
  - component: {fileID: 101}
  - component: {fileID: 102}
  m_Layer: 5
  m_Name: Main Camera
  m_TagString: MainCamera
--- !u!4 &101
Transform:
  m_GameObject: {fileID: 100}
  m_Father: {fileID: 0}
--- !u!20 &102
Camera:
  m_GameObject: {fileID: 100}
--- !u!114 &103
MonoBehaviour:
  m_GameObject: {fileID: 100}
  m_Script: {fileID: 11500000, guid: aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa, type: 3}
--- !u!4 &104 stripped
Transform:
  m_CorrespondingSourceObject: {fileID: 400000, guid: bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb, type: 3}
`

func TestMetaGUID(t *testing.T) {
	tests := []struct {
		name string
		meta string
		want string
		ok   bool
	}{
		{"standard", "fileFormatVersion: 2\nguid: 0123456789abcdef0123456789abcdef\n", "0123456789abcdef0123456789abcdef", true},
		{"indented is not top level", "  guid: 0123456789abcdef0123456789abcdef\n", "", false},
		{"uppercase rejected", "guid: 0123456789ABCDEF0123456789ABCDEF\n", "", false},
		{"short", "guid: abc\n", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MetaGUID(tt.meta)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGUIDRefsAndScripts(t *testing.T) {
	refs := GUIDRefs(sceneFixture + sceneFixture)
	assert.Equal(t, []string{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"}, refs)

	scripts := ScriptGUIDs(sceneFixture + sceneFixture)
	assert.Len(t, scripts, 2, "every occurrence is reported")
	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", scripts[0])

	assert.Empty(t, ScriptGUIDs("m_Script: {fileID: 0}"))
}

func TestShaderGUID(t *testing.T) {
	mat := "Material:\n  m_Shader: {fileID: 4800000, guid: cccccccccccccccccccccccccccccccc, type: 3}\n"
	got, ok := ShaderGUID(mat)
	require.True(t, ok)
	assert.Equal(t, "cccccccccccccccccccccccccccccccc", got)

	_, ok = ShaderGUID("Material:\n  m_Shader: {fileID: 0}\n")
	assert.False(t, ok)
}

func TestSplitDocuments(t *testing.T) {
	docs := SplitDocuments(sceneFixture)
	require.Len(t, docs, 5)

	assert.Equal(t, 1, docs[0].ClassID)
	assert.Equal(t, "100", docs[0].FileID)
	assert.Equal(t, "GameObject", docs[0].Type)
	assert.Equal(t, "Main Camera", docs[0].Name())

	layer, ok := docs[0].Field("m_Layer")
	assert.True(t, ok)
	assert.Equal(t, "5", layer)

	assert.Equal(t, []string{"101", "102"}, docs[0].RefList("m_Component"))

	father, ok := docs[1].Ref("m_Father")
	assert.True(t, ok)
	assert.Equal(t, "0", father)

	assert.Equal(t, "Camera", docs[2].Type)
	assert.False(t, docs[3].Stripped)
	assert.True(t, docs[4].Stripped)

	assert.Empty(t, SplitDocuments("not a unity file"))
}

func TestKeyValues(t *testing.T) {
	text := `%YAML 1.1
--- !u!129 &1
PlayerSettings:
  productGUID: 1234
  companyName: Acme
  productName: Space Game
  m_SplashScreenLogos: []
  m_Icons: {fileID: 0}
  - serializedVersion: 2
  companyName: Shadowed
`
	kv := KeyValues(text)
	assert.Equal(t, "Acme", kv["companyName"], "first occurrence wins")
	assert.Equal(t, "Space Game", kv["productName"])
	assert.Equal(t, "1234", kv["productGUID"])
	assert.NotContains(t, kv, "m_SplashScreenLogos")
	assert.NotContains(t, kv, "m_Icons")
	assert.NotContains(t, kv, "PlayerSettings")
}

func TestListBlock(t *testing.T) {
	text := `TagManager:
  serializedVersion: 2
  tags:
  - Spawn
  - Enemy
  layers:
  - Default
  - TransparentFX
  -
  - Water
  m_SortingLayers:
  - name: Default
    uniqueID: 0
  - name: Foreground
    uniqueID: 1
`
	assert.Equal(t, []string{"Spawn", "Enemy"}, ListBlock(text, "tags"))
	assert.Equal(t, []string{"Default", "TransparentFX", "", "Water"}, ListBlock(text, "layers"))
	assert.Equal(t, []string{"name: Default", "name: Foreground"}, ListBlock(text, "m_SortingLayers"))
	assert.Empty(t, ListBlock(text, "missing"))
	assert.Empty(t, ListBlock("m_Transitions: []\n", "m_Transitions"))
}

func TestListItems(t *testing.T) {
	text := `QualitySettings:
  m_CurrentQuality: 1
  m_QualitySettings:
  - serializedVersion: 2
    name: Low
    pixelLightCount: 0
  - serializedVersion: 2
    name: High
    pixelLightCount: 2
  m_PerPlatformDefaultQuality:
    Android: 0
`
	items := ListItems(text, "m_QualitySettings")
	require.Len(t, items, 2)
	assert.Equal(t, "serializedVersion: 2\nname: Low\npixelLightCount: 0", items[0])
	assert.Equal(t, "High", KeyValues(items[1])["name"])

	deeper := "steps:\n    - one\n    - two\nnext: 1\n"
	assert.Equal(t, []string{"one", "two"}, ListBlock(deeper, "steps"))
}

func TestMapBlock(t *testing.T) {
	text := `PlayerSettings:
  applicationIdentifier:
    Android: com.acme.game
    Standalone: com.acme.desktop
  buildNumber:
    iPhone: 42
  scriptingDefineSymbols: {}
`
	assert.Equal(t, map[string]string{
		"Android":    "com.acme.game",
		"Standalone": "com.acme.desktop",
	}, MapBlock(text, "applicationIdentifier"))
	assert.Equal(t, map[string]string{"iPhone": "42"}, MapBlock(text, "buildNumber"))
	assert.Empty(t, MapBlock(text, "scriptingDefineSymbols"))
}

func TestBuildScenes(t *testing.T) {
	text := `EditorBuildSettings:
  m_ObjectHideFlags: 0
  serializedVersion: 2
  m_Scenes:
  - enabled: 1
    path: Assets/Scenes/Boot.unity
    guid: 11111111111111111111111111111111
  - enabled: 0
    path: Assets/Scenes/Debug Room.unity
    guid: 22222222222222222222222222222222
  - enabled: 1
    path: Packages/com.x/Sample.unity
`
	got := BuildScenes(text)
	assert.Equal(t, []BuildSceneEntry{
		{Path: "Assets/Scenes/Boot.unity", Enabled: true},
		{Path: "Assets/Scenes/Debug Room.unity", Enabled: false},
	}, got)
}

func TestEditorVersionAndTarget(t *testing.T) {
	v, ok := EditorVersion("m_EditorVersion: 2022.3.10f1\nm_EditorVersionWithRevision: 2022.3.10f1 (ff3792e53c62)\n")
	assert.True(t, ok)
	assert.Equal(t, "2022.3.10f1", v)

	_, ok = EditorVersion("")
	assert.False(t, ok)

	id, ok := ActiveBuildTarget("  m_ActiveBuildTarget: 13\n")
	assert.True(t, ok)
	assert.Equal(t, "13", id)
}

func TestIsGUID(t *testing.T) {
	assert.True(t, IsGUID("0123456789abcdef0123456789abcdef"))
	assert.True(t, IsGUID("0123456789ABCDEF0123456789ABCDEF"))
	assert.False(t, IsGUID("Assets/Foo.png"))
	assert.False(t, IsGUID("0123456789abcdef"))
}
