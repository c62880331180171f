package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func TestReadText(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Assets/a.txt", "hello")
	writeFile(t, root, "Assets/bin.dat", string([]byte{0xff, 0xfe, 0x00}))

	text, ok := ReadText(root, "Assets", "a.txt")
	assert.True(t, ok)
	assert.Equal(t, "hello", text)

	_, ok = ReadText(root, "Assets/missing.txt")
	assert.False(t, ok)

	_, ok = ReadText(root, "Assets/bin.dat")
	assert.False(t, ok, "invalid UTF-8 is treated as absent")
}

func TestReadJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good.json", `{"name":"x"}`)
	writeFile(t, root, "bad.json", `{"name":`)
	writeFile(t, root, "empty.json", "  ")

	type doc struct {
		Name string `json:"name"`
	}

	v, ok := ReadJSON[doc](root, "good.json")
	require.True(t, ok)
	assert.Equal(t, "x", v.Name)

	for _, name := range []string{"bad.json", "empty.json", "missing.json"} {
		_, ok := ReadJSON[doc](root, name)
		assert.False(t, ok, name)
	}
}

func TestPathsStayUnderRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "Project")
	writeFile(t, root, "Assets/a.txt", "inside")
	writeFile(t, parent, "secret.txt", "outside")

	p, ok := Abs(root, "Assets/../Assets/a.txt")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "Assets", "a.txt"), p)

	_, ok = Abs(root, "../secret.txt")
	assert.False(t, ok)
	_, ok = Abs(root, "Assets/../../secret.txt")
	assert.False(t, ok)

	_, ok = ReadText(root, "../secret.txt")
	assert.False(t, ok)
	assert.False(t, Exists(root, "..", "secret.txt"))
	assert.Equal(t, int64(-1), FileSize(root, "../secret.txt"))
	assert.Nil(t, ListDir(root, ".."))
	assert.Empty(t, ListFiles(root, "..", ListOptions{}))
}

func TestListFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Assets/b/Two.cs", "")
	writeFile(t, root, "Assets/a/One.CS", "")
	writeFile(t, root, "Assets/a/One.CS.meta", "")
	writeFile(t, root, "Assets/.hidden/Skip.cs", "")
	for _, dir := range DefaultIgnoreDirs {
		writeFile(t, root, "Assets/"+dir+"/Skip.cs", "")
	}
	writeFile(t, root, "Assets/readme.md", "")

	got := ListFiles(root, "Assets", ListOptions{Ext: ".cs"})
	assert.Equal(t, []string{"Assets/a/One.CS", "Assets/b/Two.cs"}, got)

	all := ListFiles(root, "Assets", ListOptions{ExcludeMeta: true})
	assert.Equal(t, []string{"Assets/a/One.CS", "Assets/b/Two.cs", "Assets/readme.md"}, all)

	assert.Empty(t, ListFiles(root, "Missing", ListOptions{}))
	assert.NotNil(t, ListFiles(root, "Missing", ListOptions{}))
}

func TestWalkStop(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Assets/a.txt", "")
	writeFile(t, root, "Assets/b.txt", "")

	var seen []string
	err := Walk(root, "Assets", func(rel string, _ os.DirEntry) error {
		seen = append(seen, rel)
		return ErrStop
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Assets/a.txt"}, seen)
}

func TestStatHelpers(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Assets/x.bin", "12345")

	assert.True(t, Exists(root, "Assets"))
	assert.True(t, IsDir(root, "Assets"))
	assert.False(t, IsDir(root, "Assets/x.bin"))
	assert.Equal(t, int64(5), FileSize(root, "Assets/x.bin"))
	assert.Equal(t, int64(-1), FileSize(root, "Assets/none"))
	assert.Equal(t, []string{"x.bin"}, ListDir(root, "Assets"))
	assert.Nil(t, ListDir(root, "nope"))
}
