// Package transform implements the structure, signatures, and type
// transforms (C3, C4, C5): the per-mode CST traversals that compute the
// reduced textual rendering of a parsed source.
package transform

import (
	"github.com/oxhq/skim/catalog"
	"github.com/oxhq/skim/cst"
	"github.com/oxhq/skim/internal/mdheadings"
	"github.com/oxhq/skim/internal/splice"
	"github.com/oxhq/skim/skimerr"
)

const (
	maxDepth            = 500
	maxASTNodes         = 100_000
	maxReplacementCount = 100_000
	maxTypeDefs         = 10_000

	bodyPlaceholder = " { /* ... */ }"
)

// Structure walls (C3 CST path): collects a replacement for every
// callable's body span and splices them into the source. Document
// languages are handled separately by StructureDocument.
func Structure(source string, tree *cst.Tree, kinds catalog.NodeKinds) (string, error) {
	edits, err := collectBodyReplacements(tree.Root(), kinds)
	if err != nil {
		return "", err
	}
	return splice.Apply(source, edits)
}

// StructureDocument is the document path of C3: headings at level 1-3.
func StructureDocument(tree *cst.Tree) (string, error) {
	return mdheadings.Extract(tree, 1, 3)
}

func collectBodyReplacements(root *cst.Node, kinds catalog.NodeKinds) ([]splice.Edit, error) {
	var edits []splice.Edit
	nodeCount := 0

	var walk func(node *cst.Node, depth int) error
	walk = func(node *cst.Node, depth int) error {
		if depth > maxDepth {
			return skimerr.NewParseError("Maximum AST depth exceeded: %d (possible malicious input with deeply nested functions)", maxDepth)
		}
		nodeCount++
		if nodeCount > maxASTNodes {
			return skimerr.NewParseError("Too many AST nodes: %d (max: %d). Possible malicious input.", nodeCount, maxASTNodes)
		}

		if isCallable(node.Kind(), kinds) {
			if body := findBodyChild(node, kinds.BodyKinds); body != nil {
				edits = append(edits, splice.Edit{Start: body.Start(), End: body.End(), Replacement: bodyPlaceholder})
				if len(edits) > maxReplacementCount {
					return skimerr.NewParseError("Too many replacements: %d (max: %d). Possible malicious input.", len(edits), maxReplacementCount)
				}
			}
		}

		// The depth-first walk continues into the node's children after
		// recording the replacement: the outer body's range subsumes any
		// inner bodies, so C8's overlap rule discards the inner edits.
		for i := 0; i < node.ChildCount(); i++ {
			if err := walk(node.Child(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root, 0); err != nil {
		return nil, err
	}
	return edits, nil
}

// isCallable reports whether kind names a function, method, arrow
// function, or function expression for the given language. Empty strings
// in kinds never match.
func isCallable(kind string, kinds catalog.NodeKinds) bool {
	return (kinds.Function != "" && kind == kinds.Function) ||
		(kinds.Method != "" && kind == kinds.Method) ||
		(kinds.ArrowFunction != "" && kind == kinds.ArrowFunction) ||
		(kinds.FunctionExpression != "" && kind == kinds.FunctionExpression)
}

// findBodyChild returns the first direct child whose kind is in bodyKinds.
func findBodyChild(node *cst.Node, bodyKinds []string) *cst.Node {
	for i := 0; i < node.ChildCount(); i++ {
		child := node.Child(i)
		for _, bk := range bodyKinds {
			if child.Kind() == bk {
				return child
			}
		}
	}
	return nil
}
