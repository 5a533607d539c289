package converters

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/aretw0/lenient/pkg/core"
)

// JavaScript returns the converters between canonical JavaScript and the
// semicolon-free lenient dialect.
//
// Both directions parse with tree-sitter and only touch statement
// terminators, so everything else in the source is preserved byte for byte.
func JavaScript() core.ConverterSet {
	return core.ConverterSet{
		Language:         core.LanguageJS,
		ToLenient:        jsToLenient,
		ToCanonical:      lenientToJS,
		LenientToLenient: jsToLenient,
	}
}

// terminated lists the node types whose grammar ends in an optional or
// automatic semicolon.
var terminated = map[string]bool{
	"expression_statement":    true,
	"lexical_declaration":     true,
	"variable_declaration":    true,
	"return_statement":        true,
	"throw_statement":         true,
	"break_statement":         true,
	"continue_statement":      true,
	"debugger_statement":      true,
	"do_statement":            true,
	"import_statement":        true,
	"export_statement":        true,
	"field_definition":        true,
	"public_field_definition": true,
}

var classMembers = map[string]bool{
	"field_definition":        true,
	"public_field_definition": true,
}

// loopHeaders own statements whose semicolons are separators, not terminators.
var loopHeaders = map[string]bool{
	"for_statement":    true,
	"for_in_statement": true,
}

// hazards are the characters that continue an expression across a newline
// when the preceding semicolon is dropped.
const hazards = "([`+-/*"

type edit struct {
	at     uint32
	remove bool
}

func jsToLenient(text string) (string, error) {
	src := []byte(text)
	root, closeTree, err := parseJS(src)
	if err != nil {
		return "", err
	}
	defer closeTree()

	var edits []edit
	walkStatements(root, "", func(stmt *sitter.Node) {
		semi := terminator(stmt)
		if semi == nil {
			return
		}
		end := semi.EndByte()
		if !lineEndsAfter(src, end) || hazardFollows(src, end) {
			return
		}
		edits = append(edits, edit{at: semi.StartByte(), remove: true})
	})
	return apply(src, edits), nil
}

func lenientToJS(text string) (string, error) {
	src := []byte(text)
	root, closeTree, err := parseJS(src)
	if err != nil {
		return "", err
	}
	defer closeTree()

	var edits []edit
	walkStatements(root, "", func(stmt *sitter.Node) {
		if terminator(stmt) != nil {
			return
		}
		if stmt.Type() == "export_statement" && stmt.ChildByFieldName("declaration") != nil {
			return
		}
		edits = append(edits, edit{at: stmt.EndByte()})
	})
	return apply(src, edits), nil
}

func parseJS(src []byte) (*sitter.Node, func(), error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, nil, &core.ParseError{Language: core.LanguageJS, Message: err.Error(), Err: err}
	}
	root := tree.RootNode()
	if root.HasError() {
		defer tree.Close()
		return nil, nil, syntaxError(root, src)
	}
	return root, tree.Close, nil
}

// walkStatements visits every terminated statement outside loop headers.
func walkStatements(n *sitter.Node, parentType string, visit func(*sitter.Node)) {
	typ := n.Type()
	if terminated[typ] && !loopHeaders[parentType] {
		visit(n)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkStatements(n.Child(i), typ, visit)
	}
}

// terminator returns the semicolon token ending stmt, if any. Class fields
// keep their semicolon in the enclosing class body.
func terminator(stmt *sitter.Node) *sitter.Node {
	var semi *sitter.Node
	if classMembers[stmt.Type()] {
		semi = stmt.NextSibling()
	} else if count := int(stmt.ChildCount()); count > 0 {
		semi = stmt.Child(count - 1)
	}
	if semi == nil || semi.Type() != ";" || semi.IsNamed() || semi.IsMissing() {
		return nil
	}
	return semi
}

// lineEndsAfter reports whether only blanks or a line comment follow pos
// on its line.
func lineEndsAfter(src []byte, pos uint32) bool {
	rest := src[pos:]
	if i := strings.IndexByte(string(rest), '\n'); i >= 0 {
		rest = rest[:i]
	}
	trimmed := strings.TrimSpace(string(rest))
	return trimmed == "" || strings.HasPrefix(trimmed, "//")
}

// hazardFollows reports whether the next significant character after pos
// would glue the following line onto the current statement.
func hazardFollows(src []byte, pos uint32) bool {
	rest := string(src[pos:])
	for {
		rest = strings.TrimLeft(rest, " \t\r\n")
		switch {
		case strings.HasPrefix(rest, "//"):
			i := strings.IndexByte(rest, '\n')
			if i < 0 {
				return false
			}
			rest = rest[i:]
		case strings.HasPrefix(rest, "/*"):
			i := strings.Index(rest, "*/")
			if i < 0 {
				return false
			}
			rest = rest[i+2:]
		case rest == "":
			return false
		default:
			return strings.IndexByte(hazards, rest[0]) >= 0
		}
	}
}

func apply(src []byte, edits []edit) string {
	if len(edits) == 0 {
		return string(src)
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].at < edits[j].at })

	var b strings.Builder
	b.Grow(len(src) + len(edits))
	var last uint32
	for _, e := range edits {
		b.Write(src[last:e.at])
		if e.remove {
			last = e.at + 1
			continue
		}
		b.WriteByte(';')
		last = e.at
	}
	b.Write(src[last:])
	return b.String()
}

// syntaxError reports the first ERROR or MISSING node, depth first.
func syntaxError(root *sitter.Node, src []byte) error {
	node := firstError(root, 0)
	if node == nil {
		return &core.ParseError{Language: core.LanguageJS, Message: "syntax error"}
	}

	point := node.StartPoint()
	msg := "syntax error"
	if node.IsMissing() {
		msg = fmt.Sprintf("missing %s", node.Type())
	} else if start, end := node.StartByte(), node.EndByte(); end > start && end-start < 50 && int(end) <= len(src) {
		msg = fmt.Sprintf("unexpected %q", string(src[start:end]))
	}
	return &core.ParseError{
		Language: core.LanguageJS,
		Message:  msg,
		Line:     int(point.Row) + 1,
		Column:   int(point.Column) + 1,
	}
}

func firstError(n *sitter.Node, depth int) *sitter.Node {
	if depth > 1000 {
		return nil
	}
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if !child.HasError() && !child.IsMissing() {
			continue
		}
		if found := firstError(child, depth+1); found != nil {
			return found
		}
	}
	return nil
}
