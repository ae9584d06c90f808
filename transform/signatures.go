package transform

import (
	"strings"

	"github.com/oxhq/skim/catalog"
	"github.com/oxhq/skim/cst"
	"github.com/oxhq/skim/internal/mdheadings"
	"github.com/oxhq/skim/skimerr"
)

// signatureBodyKinds extends the structure transform's body kinds with the
// generic "body" kind some grammars use for lambda/closure bodies.
func signatureBodyKinds(kinds catalog.NodeKinds) []string {
	return append(append([]string{}, kinds.BodyKinds...), "body")
}

// Signatures is the CST path of C4: for each callable, the textual prefix
// up to (but not including) its body, one per output line in source order.
func Signatures(tree *cst.Tree, kinds catalog.NodeKinds) (string, error) {
	bodyKinds := signatureBodyKinds(kinds)
	var lines []string
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
			sig := extractSignature(node, bodyKinds)
			if sig != "" {
				lines = append(lines, sig)
			}
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
	return strings.Join(lines, "\n"), nil
}

func extractSignature(node *cst.Node, bodyKinds []string) string {
	full := node.Text()
	if body := findBodyChild(node, bodyKinds); body != nil {
		prefixLen := body.Start() - node.Start()
		if prefixLen >= 0 && prefixLen <= len(full) {
			return strings.TrimSpace(full[:prefixLen])
		}
	}
	return strings.TrimSpace(full)
}

// SignaturesDocument is the document path of C4: all headings, level 1-6.
func SignaturesDocument(tree *cst.Tree) (string, error) {
	return mdheadings.Extract(tree, 1, 6)
}
