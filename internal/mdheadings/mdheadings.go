// Package mdheadings implements the markdown document path shared by the
// structure, signatures, and type transforms: an iterative, depth-bounded
// walk that collects headings within an inclusive level range.
package mdheadings

import (
	"strings"

	"github.com/oxhq/skim/cst"
	"github.com/oxhq/skim/skimerr"
)

const (
	maxDepth        = 500
	maxHeadingCount = 10_000
)

type stackEntry struct {
	depth int
	node  *cst.Node
}

// Extract walks tree depth-first via an explicit work-stack (never native
// recursion, so the depth bound is enforced without relying on the Go call
// stack) and returns the source text of every heading whose level falls
// within [minLevel, maxLevel], joined with newlines.
func Extract(tree *cst.Tree, minLevel, maxLevel int) (string, error) {
	var headings []string

	stack := []stackEntry{{depth: 0, node: tree.Root()}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.depth > maxDepth {
			return "", skimerr.NewParseError("Maximum AST depth exceeded: %d (possible malicious input with deeply nested functions)", maxDepth)
		}

		switch top.node.Kind() {
		case "atx_heading":
			level := atxLevel(top.node)
			if level >= minLevel && level <= maxLevel {
				headings = append(headings, top.node.Text())
				if len(headings) > maxHeadingCount {
					return "", skimerr.NewParseError("Too many headings (max: %d). Possible malicious input.", maxHeadingCount)
				}
			}
			continue // Don't descend into a matched heading's own children.
		case "setext_heading":
			level := setextLevel(top.node)
			if level >= minLevel && level <= maxLevel {
				headings = append(headings, top.node.Text())
				if len(headings) > maxHeadingCount {
					return "", skimerr.NewParseError("Too many headings (max: %d). Possible malicious input.", maxHeadingCount)
				}
			}
			continue
		}

		for i := top.node.ChildCount() - 1; i >= 0; i-- {
			stack = append(stack, stackEntry{depth: top.depth + 1, node: top.node.Child(i)})
		}
	}

	return strings.Join(headings, "\n"), nil
}

// atxLevel decodes the level from the child whose kind begins with "atx_h"
// and ends with "_marker" (e.g. "atx_h2_marker" → 2). Falls back to 1 if no
// such child is found, per spec §4.3.
func atxLevel(node *cst.Node) int {
	for i := 0; i < node.ChildCount(); i++ {
		kind := node.Child(i).Kind()
		if strings.HasPrefix(kind, "atx_h") && strings.HasSuffix(kind, "_marker") {
			for _, r := range kind {
				if r >= '0' && r <= '9' {
					return int(r - '0')
				}
			}
		}
	}
	return 1
}

// setextLevel inspects children for setext_h1_underline/setext_h2_underline
// and assigns level 1 or 2 respectively. A heading with no recognizable
// underline child defaults to level 1 (see spec §9 open question).
func setextLevel(node *cst.Node) int {
	for i := 0; i < node.ChildCount(); i++ {
		switch node.Child(i).Kind() {
		case "setext_h1_underline":
			return 1
		case "setext_h2_underline":
			return 2
		}
	}
	return 1
}
