package unity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

func TestAssemblyGraph(t *testing.T) {
	p := newProject(t, setupProject(t))

	g := p.AssemblyDependencyGraph()
	assert.Equal(t, []string{"Game.Editor", "Game.Core"}, g.Nodes)
	assert.Equal(t, [][2]string{{"Game.Editor", "Game.Core"}}, g.Edges)

	assert.Equal(t, map[string][]string{
		"Game.Editor": {"Game.Core"},
		"Game.Core":   {},
	}, p.AsmdefReferences())

	assert.Equal(t, []string{"Game.Editor"}, p.AssemblyReferrers("Game.Core"))
	assert.Empty(t, p.AssemblyReferrers("Game.Editor"))
}

func TestAssemblyForPath(t *testing.T) {
	p := newProject(t, setupProject(t))

	tests := []struct {
		path string
		want types.AssemblyOwner
	}{
		{
			"Assets/Scripts/Editor/Tools.cs",
			types.AssemblyOwner{Path: "Assets/Scripts/Editor/Tools.cs", Assembly: "Game.Editor", AsmdefPath: "Assets/Scripts/Editor/Game.Editor.asmdef"},
		},
		{
			"Assets/Scripts/Player.cs",
			types.AssemblyOwner{Path: "Assets/Scripts/Player.cs", Assembly: "Game.Core", AsmdefPath: "Assets/Scripts/Game.Core.asmdef"},
		},
		{
			"Assets/Misc/Loose.cs",
			types.AssemblyOwner{Path: "Assets/Misc/Loose.cs", Assembly: AssemblyCSharp, Implicit: true},
		},
		{
			"Assets/Editor/Menu.cs",
			types.AssemblyOwner{Path: "Assets/Editor/Menu.cs", Assembly: AssemblyCSharpEditor, Implicit: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, p.AssemblyForPath(tt.path))
		})
	}
}

func TestScriptsByAssembly(t *testing.T) {
	p := newProject(t, setupProject(t))

	all := p.ScriptsByAssembly("")
	assert.Equal(t, []string{"Assets/Scripts/Enemy.cs", "Assets/Scripts/GameData.cs", "Assets/Scripts/Player.cs"}, all["Game.Core"])
	assert.Equal(t, []string{"Assets/Scripts/Editor/Tools.cs"}, all["Game.Editor"])
	assert.Equal(t, []string{"Assets/Misc/Loose.cs"}, all[AssemblyCSharp])
	assert.Equal(t, []string{"Assets/Editor/Menu.cs"}, all[AssemblyCSharpEditor])

	only := p.ScriptsByAssembly("Game.Editor")
	assert.Len(t, only, 1)
	assert.Equal(t, only, p.ScriptsByAssembly("Assets/Scripts/Editor/Game.Editor.asmdef"))
}

func TestScriptListings(t *testing.T) {
	p := newProject(t, setupProject(t))

	assert.Len(t, p.Scripts(""), 6)
	assert.Equal(t, []string{"Assets/Misc/Loose.cs"}, p.Scripts("Misc"))
	assert.Equal(t, []string{"Assets/Editor/Menu.cs", "Assets/Scripts/Editor/Tools.cs"}, p.EditorScripts())
}

func TestFindScriptsByContent(t *testing.T) {
	p := newProject(t, setupProject(t))

	got, err := p.FindScriptsByContent("monobehaviour", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/Scripts/Enemy.cs", "Assets/Scripts/Player.cs"}, got)

	got, err = p.FindScriptsByContent("MonoBehaviour", "Game.*")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = p.FindScriptsByContent("MonoBehaviour", "Other")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = p.FindScriptsByContent("(", "")
	assert.Error(t, err)
}

func TestFindScriptReferences(t *testing.T) {
	p := newProject(t, setupProject(t))

	got, err := p.FindScriptReferences("Enemy")
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/Scripts/Enemy.cs", "Assets/Scripts/Player.cs"}, got)

	got, err = p.FindScriptReferences("Game.Editor")
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/Scripts/Editor/Tools.cs"}, got, "dots are literal")

	_, err = p.FindScriptReferences("  ")
	assert.Error(t, err)
}

func TestFindScriptReferencesLiteral(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Assets/Scripts/Inventory.cs", "class Inventory { List<int> slots = new List<int> (); }")
	writeFile(t, root, "Assets/Scripts/PlayerController.cs", "class PlayerController {}")
	writeFile(t, root, "Assets/Scripts/Vector.cs", "struct Vec { public static Vec operator+ (Vec a, Vec b) => a; }")
	p := newProject(t, root)

	tests := []struct {
		symbol string
		want   []string
	}{
		{"List<int>", []string{"Assets/Scripts/Inventory.cs"}},
		{"Player", []string{"Assets/Scripts/PlayerController.cs"}},
		{"operator+", []string{"Assets/Scripts/Vector.cs"}},
		{"playercontroller", []string{"Assets/Scripts/PlayerController.cs"}},
		{"Vec", []string{"Assets/Scripts/Vector.cs"}},
		{"Enemy", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			got, err := p.FindScriptReferences(tt.symbol)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScriptPublicAPI(t *testing.T) {
	p := newProject(t, setupProject(t))

	api, err := p.ScriptPublicAPI(context.Background(), "Assets/Scripts/Enemy.cs")
	require.NoError(t, err)
	assert.Equal(t, "Game.Core", api.Namespace)
	require.Len(t, api.Types, 1)
	assert.Equal(t, "Enemy", api.Types[0].Name)

	missing, err := p.ScriptPublicAPI(context.Background(), "Assets/Nope.cs")
	require.NoError(t, err)
	assert.Empty(t, missing.Types)
}

func TestVisualScriptingAssets(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Assets/Graphs/Enemy AI.scriptgraph.asset", "x")
	writeFile(t, root, "Assets/Ludiq/Project.asset", "x")
	writeFile(t, root, "Assets/Other.asset", "x")
	p := newProject(t, root)

	assert.Equal(t, []string{"Assets/Graphs/Enemy AI.scriptgraph.asset", "Assets/Ludiq/Project.asset"}, p.VisualScriptingAssets())
}
