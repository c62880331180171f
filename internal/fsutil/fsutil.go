// Package fsutil holds the filesystem primitives every reader builds on.
//
// All functions treat a failing filesystem operation as "absent": a missing
// file, an unreadable directory or a permission error yields an empty value
// and never an error. Paths handed in and out are forward-slash, relative to
// the project root.
package fsutil

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// Well-known top-level folders of a Unity project.
const (
	Assets          = "Assets"
	ProjectSettings = "ProjectSettings"
	Packages        = "Packages"
)

// DefaultIgnoreDirs are directory names never descended into.
// Hidden directories (leading dot) are skipped as well.
var DefaultIgnoreDirs = []string{
	"node_modules", "Library", "Temp", "Logs",
}

// ErrStop can be returned from a WalkFunc to end traversal early.
var ErrStop = errors.New("stop walk")

// WalkFunc is called for every regular file. rel is the forward-slash path
// relative to the project root.
type WalkFunc func(rel string, d fs.DirEntry) error

// ListOptions filters ListFiles output.
type ListOptions struct {
	Ext         string // lower-case extension including the dot, e.g. ".cs"
	ExcludeMeta bool
}

// Abs joins root and the forward-slash relative segments into an OS path.
// ok is false when the result escapes root, e.g. through "..".
func Abs(root string, segments ...string) (string, bool) {
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, root)
	for _, s := range segments {
		parts = append(parts, filepath.FromSlash(s))
	}
	p := filepath.Join(parts...)
	rel, err := filepath.Rel(filepath.Clean(root), p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return p, true
}

func stat(root string, segments ...string) (os.FileInfo, bool) {
	p, ok := Abs(root, segments...)
	if !ok {
		return nil, false
	}
	info, err := os.Stat(p)
	return info, err == nil
}

// ReadText returns the UTF-8 content of a file. ok is false when the file
// is missing, unreadable or not valid UTF-8.
func ReadText(root string, segments ...string) (string, bool) {
	p, ok := Abs(root, segments...)
	if !ok {
		return "", false
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

// ReadJSON decodes a JSON file into T. ok is false on a missing file, an
// empty file or malformed JSON.
func ReadJSON[T any](root string, segments ...string) (*T, bool) {
	text, ok := ReadText(root, segments...)
	if !ok || strings.TrimSpace(text) == "" {
		return nil, false
	}
	var v T
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, false
	}
	return &v, true
}

// Exists reports whether anything exists at the path.
func Exists(root string, segments ...string) bool {
	_, ok := stat(root, segments...)
	return ok
}

// IsDir reports whether the path is a directory.
func IsDir(root string, segments ...string) bool {
	info, ok := stat(root, segments...)
	return ok && info.IsDir()
}

// FileSize returns the size in bytes, or -1 when the file cannot be stat'ed.
func FileSize(root string, segments ...string) int64 {
	info, ok := stat(root, segments...)
	if !ok || info.IsDir() {
		return -1
	}
	return info.Size()
}

// ListDir returns the sorted entry names of a directory.
func ListDir(root string, segments ...string) []string {
	p, ok := Abs(root, segments...)
	if !ok {
		return nil
	}
	entries, err := os.ReadDir(p)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// Skip reports whether a directory with this name is excluded from walks.
func Skip(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, ignore := range DefaultIgnoreDirs {
		if name == ignore {
			return true
		}
	}
	return false
}

// Walk visits every regular file under root/dir in lexical order. Errors on
// individual entries are skipped. Returning ErrStop (or any error) from fn
// ends the walk; ErrStop is not reported back.
func Walk(root, dir string, fn WalkFunc) error {
	base, ok := Abs(root, dir)
	if !ok {
		return nil
	}
	info, err := os.Stat(base)
	if err != nil || !info.IsDir() {
		return nil
	}

	err = filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && p != base {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != base && Skip(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		return fn(filepath.ToSlash(rel), d)
	})
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

// ListFiles returns every file under root/dir matching opts, sorted.
func ListFiles(root, dir string, opts ListOptions) []string {
	out := make([]string, 0)
	_ = Walk(root, dir, func(rel string, d fs.DirEntry) error {
		name := d.Name()
		if opts.ExcludeMeta && strings.HasSuffix(name, ".meta") {
			return nil
		}
		if opts.Ext != "" && strings.ToLower(path.Ext(name)) != opts.Ext {
			return nil
		}
		out = append(out, rel)
		return nil
	})
	sort.Strings(out)
	return out
}

// ListFilesExt returns files under root/dir whose extension is any of exts.
func ListFilesExt(root, dir string, exts ...string) []string {
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[strings.ToLower(e)] = true
	}
	out := make([]string, 0)
	_ = Walk(root, dir, func(rel string, d fs.DirEntry) error {
		if set[strings.ToLower(path.Ext(d.Name()))] {
			out = append(out, rel)
		}
		return nil
	})
	sort.Strings(out)
	return out
}

// ListFilesMatching returns files under root/dir whose base name satisfies match.
func ListFilesMatching(root, dir string, match func(name string) bool) []string {
	out := make([]string, 0)
	_ = Walk(root, dir, func(rel string, d fs.DirEntry) error {
		if match(d.Name()) {
			out = append(out, rel)
		}
		return nil
	})
	sort.Strings(out)
	return out
}
