package unity

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

func TestAssetFolderTree(t *testing.T) {
	p := newProject(t, setupProject(t))

	tree := p.AssetFolderTree(1)
	assert.Contains(t, tree["Assets"], "Assets/Scenes/")
	assert.Contains(t, tree["Assets/Art"], "Hero.png")
	assert.Contains(t, tree["Assets/Scripts"], "Assets/Scripts/Editor/")
	assert.NotContains(t, tree, "Assets/Scripts/Editor")
}

func TestAssetsByExtension(t *testing.T) {
	p := newProject(t, setupProject(t))

	assert.Equal(t, []string{"Assets/Art/Hero.png"}, p.AssetsByExtension("PNG", "Art"))
	assert.Equal(t, []string{"Assets/Art/Wall.mat"}, p.AssetsByExtension(".mat", ""))
	assert.Empty(t, p.AssetsByExtension(".png", "Scenes"))
}

func TestFindReferences(t *testing.T) {
	p := newProject(t, setupProject(t))

	byPath := p.FindReferences("Assets/Art/Hero.png")
	assert.Equal(t, guidTex, byPath.GUID)
	assert.Equal(t, []string{"Assets/Art/Wall.mat", "Assets/Prefabs/Hero.prefab"}, byPath.References)

	byGUID := p.FindReferences(strings.ToUpper(guidTex))
	assert.Equal(t, byPath.References, byGUID.References)

	none := p.FindReferences("Assets/Nope.png")
	assert.Empty(t, none.GUID)
	assert.Empty(t, none.References)
	assert.NotEmpty(t, none.Message)
}

func TestLargeAssets(t *testing.T) {
	root := setupProject(t)
	writeFile(t, root, "Assets/Art/Big.bin", strings.Repeat("x", 3*1024*1024/2))
	p := newProject(t, root)

	large := p.LargeAssets(1)
	require.Len(t, large, 1)
	assert.Equal(t, types.SizedAsset{Path: "Assets/Art/Big.bin", SizeMB: 1.5, Size: "1.5 MiB"}, large[0])

	assert.Empty(t, p.LargeAssets(0), "default threshold is 5 MB")
}

func TestMetaForAsset(t *testing.T) {
	p := newProject(t, setupProject(t))

	info, ok := p.MetaForAsset("Assets/Art/Hero.png.meta")
	require.True(t, ok)
	assert.Equal(t, "Assets/Art/Hero.png", info.AssetPath)
	assert.Equal(t, guidTex, info.GUID)
	assert.Equal(t, "TextureImporter", info.Importer)
	assert.Equal(t, 2048, info.Settings["maxTextureSize"])

	_, ok = p.MetaForAsset("Assets/Nope.png")
	assert.False(t, ok)
}

func TestMetaForAssetIntegerKeys(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Assets/Models/Ship.fbx", "fbx")
	writeFile(t, root, "Assets/Models/Ship.fbx.meta", `fileFormatVersion: 2
guid: `+guidHero+`
ModelImporter:
  serializedVersion: 19301
  fileIDToRecycleName:
    100000: //RootNode
    400000: //RootNode
    2100000: Hull
  externalObjects: {}
  materials:
    materialImportMode: 1
  animations:
    clipAnimations:
    - name: Idle
      curves:
        12: x
`)
	p := newProject(t, root)

	info, ok := p.MetaForAsset("Assets/Models/Ship.fbx")
	require.True(t, ok)
	assert.Equal(t, "ModelImporter", info.Importer)
	assert.Equal(t, map[string]interface{}{
		"100000":  "//RootNode",
		"400000":  "//RootNode",
		"2100000": "Hull",
	}, info.Settings["fileIDToRecycleName"])

	out, err := json.Marshal(info)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"2100000":"Hull"`)
	assert.Contains(t, string(out), `"12":"x"`)
}

func TestTextureMeta(t *testing.T) {
	p := newProject(t, setupProject(t))

	tex, ok := p.TextureMeta("Assets/Art/Hero.png")
	require.True(t, ok)
	assert.Equal(t, &types.TextureMeta{
		AssetPath:       "Assets/Art/Hero.png",
		GUID:            guidTex,
		TextureType:     8,
		MaxTextureSize:  2048,
		SpriteMode:      1,
		PixelsPerUnit:   32,
		MipMaps:         false,
		Readable:        true,
		PlatformMaxSize: map[string]int{"Android": 1024},
	}, tex)

	_, ok = p.TextureMeta("Assets/Scripts/Player.cs")
	assert.False(t, ok, "not a texture importer")

	assert.Equal(t, []types.SpriteAsset{{Path: "Assets/Art/Hero.png", SpriteMode: 1, PixelsPerUnit: 32}}, p.SpriteAssets())
}

func TestSearch(t *testing.T) {
	p := newProject(t, setupProject(t))

	assert.Equal(t, []string{
		"Assets/Anim/Hero.controller",
		"Assets/Art/Hero.png",
		"Assets/Prefabs/Hero.prefab",
		"Assets/Prefabs/HeroVariant.prefab",
	}, p.SearchAssetsByName("hero", 0))
	assert.Len(t, p.SearchAssetsByName("hero", 2), 2)
	assert.Empty(t, p.SearchAssetsByName(" ", 0))

	res, err := p.SearchProject("enemy")
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/Scripts/Enemy.cs"}, res.ByName)
	assert.Equal(t, []string{"Assets/Scripts/Enemy.cs", "Assets/Scripts/Player.cs"}, res.ByContent)
	assert.Empty(t, res.Referrers)

	res, err = p.SearchProject("Assets/Scripts/Player.cs")
	require.NoError(t, err)
	assert.Empty(t, res.ByName)
	assert.Equal(t, []string{"Assets/Scenes/Main.unity"}, res.Referrers)

	_, err = p.SearchProject("")
	assert.Error(t, err)
}

func TestScriptableObjects(t *testing.T) {
	p := newProject(t, setupProject(t))

	assert.Equal(t, []types.ScriptableObjectAsset{{
		Path:       "Assets/Data/Settings.asset",
		ScriptGUID: guidDataSO,
		ScriptPath: "Assets/Scripts/GameData.cs",
	}}, p.ScriptableObjects())
}

func TestBrokenRefs(t *testing.T) {
	p := newProject(t, setupProject(t))

	want := []types.BrokenRef{{AssetPath: mainPath, MissingGUID: guidMissing}}
	assert.Equal(t, want, p.BrokenScriptRefs())
	assert.Equal(t, want, p.BrokenAssetRefs())
}

func TestMaterials(t *testing.T) {
	p := newProject(t, setupProject(t))

	assert.Equal(t, []types.Material{{Path: "Assets/Art/Wall.mat", Shader: guidShader}}, p.Materials(""))
	assert.Equal(t, []string{"Assets/Art/Wall.mat"}, p.MaterialsUsingShader("Assets/Art/Lit.shader"))
	assert.Equal(t, []string{"Assets/Art/Wall.mat"}, p.MaterialsUsingShader(guidShader))
	assert.Empty(t, p.MaterialsUsingShader("Assets/Art/Missing.shader"))
	assert.Equal(t, []string{"Assets/Art/Lit.shader"}, p.Shaders())
}

func TestRenderAndLightingAssets(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Assets/RT/Minimap.renderTexture", "--- !u!84 &8400000\nRenderTexture:\n  m_Name: Minimap\n")
	writeFile(t, root, "Assets/RT/Old.asset", "--- !u!84 &8400000\nRenderTexture:\n  m_Name: Old\n")
	writeFile(t, root, "Assets/World/Terrain.asset", "--- !u!156 &15600000\nTerrainData:\n  m_Name: Terrain\n")
	writeFile(t, root, "Assets/World/Grass.terrainlayer", "x")
	writeFile(t, root, "Assets/Light/Day.lighting", "x")
	p := newProject(t, root)

	assert.Equal(t, []string{"Assets/RT/Minimap.renderTexture", "Assets/RT/Old.asset"}, p.RenderTextures())
	assert.Equal(t, []string{"Assets/World/Grass.terrainlayer", "Assets/World/Terrain.asset"}, p.TerrainData())
	assert.Equal(t, []string{"Assets/Light/Day.lighting"}, p.LightingSettingsAssets())
}
