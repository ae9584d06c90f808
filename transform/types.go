package transform

import (
	"strings"

	"github.com/oxhq/skim/catalog"
	"github.com/oxhq/skim/cst"
	"github.com/oxhq/skim/internal/mdheadings"
	"github.com/oxhq/skim/skimerr"
)

// Types is the CST path of C5: the span of each top-level type declaration
// (class bodies truncated away), joined by a blank line.
func Types(tree *cst.Tree, kinds catalog.NodeKinds) (string, error) {
	var defs []string
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

		if isTypeNode(node.Kind(), kinds) {
			if def := extractTypeDefinition(node, kinds); def != "" {
				defs = append(defs, def)
				if len(defs) > maxTypeDefs {
					return skimerr.NewParseError("Too many type definitions: %d (max: %d). Possible malicious input.", len(defs), maxTypeDefs)
				}
			}
			// Do not recurse into a matched type node's subtree: avoids
			// nesting duplicates (e.g. methods inside a class body).
			return nil
		}

		for i := 0; i < node.ChildCount(); i++ {
			if err := walk(node.Child(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(tree.Root(), 0); err != nil {
		return "", err
	}
	return strings.Join(defs, "\n\n"), nil
}

// isTypeNode reports whether kind names a type alias, interface, enum,
// class, or struct declaration for the given language.
func isTypeNode(kind string, kinds catalog.NodeKinds) bool {
	return (kinds.TypeAlias != "" && kind == kinds.TypeAlias) ||
		(kinds.Interface != "" && kind == kinds.Interface) ||
		(kinds.Enum != "" && kind == kinds.Enum) ||
		(kinds.Class != "" && kind == kinds.Class) ||
		(kinds.Struct != "" && kind == kinds.Struct)
}

func extractTypeDefinition(node *cst.Node, kinds catalog.NodeKinds) string {
	end := node.End()
	if kinds.Class != "" && node.Kind() == kinds.Class {
		if body := findBodyChild(node, kinds.ClassBodyKinds); body != nil {
			end = body.Start()
		}
	}
	start := node.Start()
	if end < start || end > node.Start()+len(node.Text()) {
		end = node.End()
	}
	span := node.Text()
	if truncated := end - start; truncated >= 0 && truncated <= len(span) {
		span = span[:truncated]
	}
	return strings.TrimSpace(span)
}

// TypesDocument is the document path of C5: all headings, level 1-6.
func TypesDocument(tree *cst.Tree) (string, error) {
	return mdheadings.Extract(tree, 1, 6)
}
