// Package cst is the CST parser facade (C2): a stateless-looking object
// bound to one language kind, wrapping the tree-sitter grammar backend.
package cst

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/skim/catalog"
	"github.com/oxhq/skim/skimerr"
)

// Parser is bound to a single catalog.Kind and parses source text into a
// Tree. Creating a Parser for a data-backed kind fails with ConfigError,
// matching the internal-consistency contract in spec §4.2.
type Parser struct {
	kind     catalog.Kind
	language *sitter.Language
}

// NewParser constructs a Parser bound to kind.
func NewParser(kind catalog.Kind) (*Parser, error) {
	lang, ok := catalog.Language(kind)
	if !ok {
		return nil, skimerr.NewConfigError("cannot construct a CST parser for non-CST language %q", catalog.DisplayName(kind))
	}
	return &Parser{kind: kind, language: lang}, nil
}

// Kind returns the language kind this parser is bound to.
func (p *Parser) Kind() catalog.Kind { return p.kind }

// Tree is an opaque, immutable syntax tree over a source string.
type Tree struct {
	sitterTree *sitter.Tree
	source     []byte
}

// Root returns the tree's root node.
func (t *Tree) Root() *Node {
	return &Node{inner: t.sitterTree.RootNode(), source: t.source}
}

// Close releases the tree's native resources. Safe to call on a nil Tree.
func (t *Tree) Close() {
	if t != nil && t.sitterTree != nil {
		t.sitterTree.Close()
	}
}

// Node is a byte-indexed CST node exposing only what the transforms need:
// its kind string, children in source order, and its byte span.
type Node struct {
	inner  *sitter.Node
	source []byte
}

// Kind returns the node's grammar kind, e.g. "function_declaration".
func (n *Node) Kind() string { return n.inner.Type() }

// Start returns the node's half-open span start, in bytes.
func (n *Node) Start() int { return int(n.inner.StartByte()) }

// End returns the node's half-open span end, in bytes.
func (n *Node) End() int { return int(n.inner.EndByte()) }

// Text returns the substring of the source spanned by the node.
func (n *Node) Text() string { return string(n.source[n.Start():n.End()]) }

// ChildCount returns the number of direct children, named and anonymous.
func (n *Node) ChildCount() int { return int(n.inner.ChildCount()) }

// Child returns the i-th direct child in source order.
func (n *Node) Child(i int) *Node {
	c := n.inner.Child(i)
	if c == nil {
		return nil
	}
	return &Node{inner: c, source: n.source}
}

// Children returns all direct children in source order.
func (n *Node) Children() []*Node {
	count := n.ChildCount()
	out := make([]*Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, n.Child(i))
	}
	return out
}

// Parse parses source with the grammar bound to p. The grammar is
// error-tolerant: malformed input yields a best-effort tree containing
// error nodes rather than failing, per spec §4.2 — callers MUST NOT
// special-case error nodes. Parse fails with ParseError only when the
// backend itself declines to produce any tree at all.
func (p *Parser) Parse(ctx context.Context, source []byte) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(p.language)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, skimerr.NewParseError("failed to parse %s source: %v", catalog.DisplayName(p.kind), err)
	}
	if tree == nil {
		return nil, skimerr.NewParseError("parser returned no tree for %s source", catalog.DisplayName(p.kind))
	}
	return &Tree{sitterTree: tree, source: source}, nil
}
