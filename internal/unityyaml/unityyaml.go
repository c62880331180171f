// Package unityyaml extracts fields from Unity's YAML-like serialization
// format with line and pattern matching.
//
// Unity writes a YAML 1.1 dialect with custom tags ("--- !u!1 &12345") that
// generic YAML decoders reject, so every function here is best effort: it
// may under-match unusual layouts but never fails. Each pattern lives behind
// its own function so it can be fixture-tested in isolation.
package unityyaml

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	metaGUIDRe      = regexp.MustCompile(`(?m)^guid:\s*([a-f0-9]{32})`)
	guidRefRe       = regexp.MustCompile(`guid:\s*([a-f0-9]{32})`)
	scriptRefRe     = regexp.MustCompile(`m_Script:\s*\{\s*fileID:\s*-?\d+,\s*guid:\s*([a-f0-9]{32})`)
	shaderRefRe     = regexp.MustCompile(`m_Shader:\s*\{\s*fileID:\s*-?\d+,\s*guid:\s*([a-f0-9]{32})`)
	docHeaderRe     = regexp.MustCompile(`(?m)^--- !u!(\d+) &(-?\d+)([^\n]*)$`)
	fileIDRe        = regexp.MustCompile(`\{\s*fileID:\s*(-?\d+)`)
	editorVersionRe = regexp.MustCompile(`m_EditorVersion:\s*(.+)`)
	activeTargetRe  = regexp.MustCompile(`m_ActiveBuildTarget:\s*(\d+)`)
	assetGUIDRe     = regexp.MustCompile(`^[a-fA-F0-9]{32}$`)
)

// BuiltinGUIDPrefix marks GUIDs of resources shipped inside the editor
// (default materials, built-in shaders). They never have a .meta on disk.
const BuiltinGUIDPrefix = "0000000000000000"

// IsGUID reports whether s looks like an asset GUID.
func IsGUID(s string) bool {
	return assetGUIDRe.MatchString(s)
}

// MetaGUID returns the asset GUID declared by the content of a .meta file.
func MetaGUID(meta string) (string, bool) {
	m := metaGUIDRe.FindStringSubmatch(meta)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// GUIDRefs returns every distinct GUID referenced in text, in first-seen order.
func GUIDRefs(text string) []string {
	out := make([]string, 0)
	seen := make(map[string]bool)
	for _, m := range guidRefRe.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}

// ScriptGUIDs returns the GUID of every m_Script reference, one per
// occurrence.
func ScriptGUIDs(text string) []string {
	out := make([]string, 0)
	for _, m := range scriptRefRe.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}

// ShaderGUID returns the shader GUID a material points at.
func ShaderGUID(text string) (string, bool) {
	m := shaderRefRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// EditorVersion reads m_EditorVersion from ProjectVersion.txt content.
func EditorVersion(text string) (string, bool) {
	m := editorVersionRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// ActiveBuildTarget reads the numeric m_ActiveBuildTarget id.
func ActiveBuildTarget(text string) (string, bool) {
	m := activeTargetRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// FileIDRef extracts the fileID from an inline reference such as
// "{fileID: 400000}" or "{fileID: 11400000, guid: ..., type: 2}".
func FileIDRef(value string) (string, bool) {
	m := fileIDRe.FindStringSubmatch(value)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ============================================================================
// Documents
// ============================================================================

// Document is one "--- !u!<class> &<fileID>" section of a serialized file.
type Document struct {
	ClassID  int
	FileID   string
	Type     string // first top-level key, e.g. GameObject, MonoBehaviour
	Stripped bool
	Body     string
}

// SplitDocuments cuts a serialized asset into its documents. Content before
// the first header (the %YAML and %TAG directives) is dropped.
func SplitDocuments(text string) []Document {
	locs := docHeaderRe.FindAllStringSubmatchIndex(text, -1)
	docs := make([]Document, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		classID, _ := strconv.Atoi(text[loc[2]:loc[3]])
		body := text[loc[1]:end]
		docs = append(docs, Document{
			ClassID:  classID,
			FileID:   text[loc[4]:loc[5]],
			Type:     firstKey(body),
			Stripped: strings.Contains(text[loc[6]:loc[7]], "stripped"),
			Body:     body,
		})
	}
	return docs
}

func firstKey(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}
		if idx := strings.Index(line, ":"); idx > 0 {
			return line[:idx]
		}
	}
	return ""
}

// Field returns the first value of key in the document body.
func (d Document) Field(key string) (string, bool) {
	return Field(d.Body, key)
}

// Name returns m_Name, or "" when the document has none.
func (d Document) Name() string {
	v, _ := d.Field("m_Name")
	return v
}

// Ref returns the fileID referenced by key, e.g. m_GameObject or m_Father.
func (d Document) Ref(key string) (string, bool) {
	v, ok := d.Field(key)
	if !ok {
		return "", false
	}
	return FileIDRef(v)
}

// RefList returns the fileIDs of a block list such as m_Transitions or
// m_Component.
func (d Document) RefList(key string) []string {
	out := make([]string, 0)
	for _, item := range ListBlock(d.Body, key) {
		if id, ok := FileIDRef(item); ok {
			out = append(out, id)
		}
	}
	return out
}

// ============================================================================
// Key/value scanning
// ============================================================================

// Field returns the trimmed value of the first "key: value" line in text,
// at any indentation.
func Field(text, key string) (string, bool) {
	prefix := key + ":"
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		trimmed = strings.TrimPrefix(trimmed, "- ")
		if !strings.HasPrefix(trimmed, prefix) {
			continue
		}
		return strings.TrimSpace(strings.TrimRight(trimmed[len(prefix):], "\r")), true
	}
	return "", false
}

// KeyValues collects every scalar "key: value" pair in text. Keys are word
// characters only; values that open an inline map or list are skipped, and
// the first occurrence of a key wins.
func KeyValues(text string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		idx := strings.Index(trimmed, ":")
		if idx <= 0 || !isWord(trimmed[:idx]) {
			continue
		}
		value := strings.TrimSpace(trimmed[idx+1:])
		if value == "" || strings.HasPrefix(value, "{") || strings.HasPrefix(value, "[") {
			continue
		}
		if _, exists := out[trimmed[:idx]]; !exists {
			out[trimmed[:idx]] = value
		}
	}
	return out
}

// ListBlock returns the first line of each item of the block sequence
// introduced by "key:".
func ListBlock(text, key string) []string {
	items := ListItems(text, key)
	out := make([]string, 0, len(items))
	for _, item := range items {
		first, _, _ := strings.Cut(item, "\n")
		out = append(out, first)
	}
	return out
}

// ListItems returns the items of the block sequence introduced by "key:".
// Unity writes sequence items at the same indentation as their key; an item
// runs from its "- " line through every deeper-indented line after it.
// Continuation lines are kept with their indentation removed.
func ListItems(text, key string) []string {
	lines, indent, ok := blockAfter(text, key)
	out := make([]string, 0)
	if !ok {
		return out
	}
	var current []string
	flush := func() {
		if current != nil {
			out = append(out, strings.Join(current, "\n"))
		}
	}
	itemIndent := -1
	for _, next := range lines {
		body := strings.TrimLeft(next, " ")
		nextIndent := len(next) - len(body)
		if body == "" {
			continue
		}
		if itemIndent == -1 {
			if nextIndent < indent || !strings.HasPrefix(body, "-") {
				break
			}
			itemIndent = nextIndent
		}
		if nextIndent < itemIndent {
			break
		}
		if nextIndent == itemIndent {
			if !strings.HasPrefix(body, "-") {
				break
			}
			flush()
			current = []string{strings.TrimSpace(strings.TrimPrefix(body, "-"))}
			continue
		}
		if current != nil {
			current = append(current, strings.TrimSpace(body))
		}
	}
	flush()
	return out
}

// MapBlock returns the scalar "k: v" pairs nested one level below "key:",
// e.g. the per-platform entries of applicationIdentifier.
func MapBlock(text, key string) map[string]string {
	lines, indent, ok := blockAfter(text, key)
	out := make(map[string]string)
	if !ok {
		return out
	}
	child := -1
	for _, next := range lines {
		body := strings.TrimLeft(next, " ")
		nextIndent := len(next) - len(body)
		if body == "" {
			continue
		}
		if nextIndent <= indent {
			break
		}
		if child == -1 {
			child = nextIndent
		}
		if nextIndent != child {
			continue
		}
		k, v, found := strings.Cut(body, ":")
		if !found {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

// blockAfter finds the first line that is exactly "key:" and returns the
// lines after it along with the key's indentation.
func blockAfter(text, key string) ([]string, int, bool) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if strings.TrimRight(trimmed, " ") != key+":" {
			continue
		}
		return lines[i+1:], len(line) - len(trimmed), true
	}
	return nil, 0, false
}

func isWord(s string) bool {
	for _, r := range s {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return s != ""
}

// ============================================================================
// Build settings
// ============================================================================

// BuildSceneEntry is one entry of EditorBuildSettings.m_Scenes.
type BuildSceneEntry struct {
	Path    string
	Enabled bool
}

// BuildScenes lists scene entries of EditorBuildSettings.asset in order.
// Only paths under Assets ending in .unity are reported.
func BuildScenes(text string) []BuildSceneEntry {
	out := make([]BuildSceneEntry, 0)
	enabled := true
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		switch {
		case strings.HasPrefix(trimmed, "enabled:"):
			enabled = strings.TrimSpace(strings.TrimPrefix(trimmed, "enabled:")) != "0"
		case strings.HasPrefix(trimmed, "path: Assets/") && strings.HasSuffix(trimmed, ".unity"):
			out = append(out, BuildSceneEntry{Path: strings.TrimPrefix(trimmed, "path: "), Enabled: enabled})
			enabled = true
		}
	}
	return out
}
