// Package csharp extracts the public surface of C# scripts using the
// tree-sitter C# grammar.
package csharp

import (
	"context"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
)

// ScriptAPI is the public surface of one script file.
type ScriptAPI struct {
	Path      string    `json:"path"`
	Namespace string    `json:"namespace,omitempty"`
	Types     []TypeAPI `json:"types"`
}

// TypeAPI is a class, struct, interface, enum or record.
type TypeAPI struct {
	Name       string      `json:"name"`
	Kind       string      `json:"kind"`
	Namespace  string      `json:"namespace,omitempty"`
	BaseTypes  []string    `json:"baseTypes,omitempty"`
	Methods    []MethodAPI `json:"methods"`
	Fields     []MemberAPI `json:"fields"`
	Properties []MemberAPI `json:"properties"`
}

// MethodAPI is a public method signature.
type MethodAPI struct {
	Name       string `json:"name"`
	ReturnType string `json:"returnType"`
	Parameters string `json:"parameters"`
	Static     bool   `json:"static,omitempty"`
}

// MemberAPI is a field or property. Serialized marks private fields
// exposed to the inspector with [SerializeField].
type MemberAPI struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Serialized bool   `json:"serialized,omitempty"`
}

var typeKinds = map[string]string{
	"class_declaration":     "class",
	"struct_declaration":    "struct",
	"interface_declaration": "interface",
	"enum_declaration":      "enum",
	"record_declaration":    "record",
}

// Parser wraps a tree-sitter parser configured for C#. It is safe for
// concurrent use.
type Parser struct {
	mu     sync.Mutex
	parser *sitter.Parser
}

// NewParser creates a C# parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(csharp.GetLanguage())
	return &Parser{parser: p}
}

// Parse extracts the public API from C# source.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*ScriptAPI, error) {
	p.mu.Lock()
	tree, err := p.parser.ParseCtx(ctx, nil, content)
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	api := &ScriptAPI{Path: path, Types: make([]TypeAPI, 0)}
	w := &walker{content: content, api: api}
	w.visit(tree.RootNode(), "", "")
	return api, nil
}

type walker struct {
	content []byte
	api     *ScriptAPI
}

func (w *walker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(w.content)
}

func (w *walker) visit(node *sitter.Node, namespace, outer string) {
	switch node.Type() {
	case "namespace_declaration", "file_scoped_namespace_declaration":
		ns := w.text(node.ChildByFieldName("name"))
		if namespace != "" {
			ns = namespace + "." + ns
		}
		if w.api.Namespace == "" {
			w.api.Namespace = ns
		}
		namespace = ns
	default:
		if kind, ok := typeKinds[node.Type()]; ok {
			w.visitType(node, kind, namespace, outer)
			return
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		w.visit(node.NamedChild(i), namespace, outer)
	}
}

func (w *walker) visitType(node *sitter.Node, kind, namespace, outer string) {
	name := w.text(node.ChildByFieldName("name"))
	if outer != "" {
		name = outer + "." + name
	}
	t := TypeAPI{
		Name:       name,
		Kind:       kind,
		Namespace:  namespace,
		Methods:    make([]MethodAPI, 0),
		Fields:     make([]MemberAPI, 0),
		Properties: make([]MemberAPI, 0),
	}

	var body *sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "base_list":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				t.BaseTypes = append(t.BaseTypes, w.text(child.NamedChild(j)))
			}
		case "declaration_list", "enum_member_declaration_list":
			body = child
		}
	}
	if body == nil {
		body = node.ChildByFieldName("body")
	}

	interfaceMember := kind == "interface"
	var nested []*sitter.Node
	if body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			member := body.NamedChild(i)
			if _, isType := typeKinds[member.Type()]; isType {
				nested = append(nested, member)
				continue
			}
			w.visitMember(&t, member, interfaceMember)
		}
	}
	w.api.Types = append(w.api.Types, t)

	for _, n := range nested {
		if isPublic(w.modifiers(n)) {
			w.visitType(n, typeKinds[n.Type()], namespace, name)
		}
	}
}

func (w *walker) visitMember(t *TypeAPI, member *sitter.Node, implicitPublic bool) {
	mods := w.modifiers(member)
	public := implicitPublic || isPublic(mods)

	switch member.Type() {
	case "method_declaration":
		if !public {
			return
		}
		ret := member.ChildByFieldName("type")
		if ret == nil {
			ret = member.ChildByFieldName("returns")
		}
		t.Methods = append(t.Methods, MethodAPI{
			Name:       w.text(member.ChildByFieldName("name")),
			ReturnType: w.text(ret),
			Parameters: w.text(member.ChildByFieldName("parameters")),
			Static:     hasModifier(mods, "static"),
		})

	case "property_declaration":
		if !public {
			return
		}
		t.Properties = append(t.Properties, MemberAPI{
			Name: w.text(member.ChildByFieldName("name")),
			Type: w.text(member.ChildByFieldName("type")),
		})

	case "field_declaration":
		serialized := !public && w.hasAttribute(member, "SerializeField")
		if !public && !serialized {
			return
		}
		for i := 0; i < int(member.NamedChildCount()); i++ {
			decl := member.NamedChild(i)
			if decl.Type() != "variable_declaration" {
				continue
			}
			typ := w.text(decl.ChildByFieldName("type"))
			for j := 0; j < int(decl.NamedChildCount()); j++ {
				v := decl.NamedChild(j)
				if v.Type() != "variable_declarator" {
					continue
				}
				nameNode := v.ChildByFieldName("name")
				if nameNode == nil && v.NamedChildCount() > 0 {
					nameNode = v.NamedChild(0)
				}
				t.Fields = append(t.Fields, MemberAPI{Name: w.text(nameNode), Type: typ, Serialized: serialized})
			}
		}

	case "enum_member_declaration":
		t.Fields = append(t.Fields, MemberAPI{Name: w.text(member.ChildByFieldName("name")), Type: t.Name})
	}
}

func (w *walker) modifiers(node *sitter.Node) []string {
	var mods []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "modifier" {
			mods = append(mods, strings.TrimSpace(w.text(child)))
		}
	}
	return mods
}

func (w *walker) hasAttribute(node *sitter.Node, name string) bool {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "attribute_list" && strings.Contains(w.text(child), name) {
			return true
		}
	}
	return false
}

func isPublic(mods []string) bool {
	return hasModifier(mods, "public")
}

func hasModifier(mods []string, want string) bool {
	for _, m := range mods {
		if m == want {
			return true
		}
	}
	return false
}
