package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestToolsCommand(t *testing.T) {
	out, err := execute(t, "tools", "cycles")
	require.NoError(t, err)
	assert.Contains(t, out, "detect_assembly_cycles")
	assert.Contains(t, out, "Speed & productivity")
	assert.NotContains(t, out, "list_scripts")

	out, err = execute(t, "tools", "no-such-tool-anywhere")
	require.NoError(t, err)
	assert.Contains(t, out, "No tools found.")
}

func TestCallCommand(t *testing.T) {
	t.Setenv("UNITY_MCP_LOG_LEVEL", "error")
	root := t.TempDir()
	script := filepath.Join(root, "Assets", "Scripts", "Player.cs")
	require.NoError(t, os.MkdirAll(filepath.Dir(script), 0755))
	require.NoError(t, os.WriteFile(script, []byte("public class Player {}\n"), 0644))

	out, err := execute(t, "call", "list_scripts", `{"folder":"Scripts"}`, "--project", root)
	require.NoError(t, err)
	assert.JSONEq(t, `["Assets/Scripts/Player.cs"]`, out)

	_, err = execute(t, "call", "list_scripts", `{not json`, "--project", root)
	assert.ErrorContains(t, err, "JSON object")

	_, err = execute(t, "call", "no_such_tool", "--project", root)
	assert.ErrorContains(t, err, "tool not found")
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.4.0", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersionInfo("dev", "unknown", "unknown") })

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "unity-mcp-server 1.4.0 (commit: abc123, built: 2026-01-01)\n", out)
}
