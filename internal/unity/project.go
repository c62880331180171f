// Package unity implements the read-only inspection operations over a
// Unity project directory. Each exported method of Project backs one tool.
//
// Methods never fail on missing or malformed project files: absent inputs
// produce empty results. Errors are returned only for invalid caller
// arguments such as a bad regular expression.
package unity

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/csharp"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/fsutil"
)

const patternCacheSize = 128

// Project is a Unity project rooted at Root.
type Project struct {
	Root string

	// compiled caller-supplied patterns, keyed by source text
	patterns *lru.Cache[string, *regexp.Regexp]
	scripts  *csharp.Parser
}

// New opens the project at root. The directory is not inspected until a
// method is called.
func New(root string) (*Project, error) {
	cache, err := lru.New[string, *regexp.Regexp](patternCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create pattern cache: %w", err)
	}
	return &Project{
		Root:     root,
		patterns: cache,
		scripts:  csharp.NewParser(),
	}, nil
}

// compile returns a compiled regular expression for a caller pattern.
func (p *Project) compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := p.patterns.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	p.patterns.Add(pattern, re)
	return re, nil
}

// read returns file content or "" when absent.
func (p *Project) read(segments ...string) (string, bool) {
	return fsutil.ReadText(p.Root, segments...)
}

func (p *Project) listExt(ext string) []string {
	return fsutil.ListFiles(p.Root, fsutil.Assets, fsutil.ListOptions{Ext: ext})
}

// assetsFolder normalises a caller folder ("Prefabs/UI", "Assets/Prefabs/UI/")
// to a project-relative path under Assets.
func assetsFolder(folder string) string {
	folder = strings.Trim(strings.ReplaceAll(folder, "\\", "/"), "/")
	if folder == fsutil.Assets || strings.HasPrefix(folder, fsutil.Assets+"/") {
		return folder
	}
	return path.Join(fsutil.Assets, folder)
}

// underFolder keeps the paths inside folder. An empty folder keeps all.
func underFolder(paths []string, folder string) []string {
	if strings.TrimSpace(folder) == "" {
		return paths
	}
	prefix := assetsFolder(folder) + "/"
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	return out
}

// filterLower keeps paths whose lower-cased form contains any of words.
func filterLower(paths []string, words ...string) []string {
	out := make([]string, 0)
	for _, p := range paths {
		lower := strings.ToLower(p)
		for _, w := range words {
			if strings.Contains(lower, w) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func baseName(p string) string {
	return strings.TrimSuffix(path.Base(p), path.Ext(p))
}
