// Package yamlskel implements the YAML key extractor (C7): it splits a
// multi-document YAML stream at document markers, parses each document,
// and renders a nested indented key skeleton with document separators
// preserved.
package yamlskel

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oxhq/skim/skimerr"
)

const (
	maxDepth = 500
	maxKeys  = 10_000
)

// Extract splits source into YAML documents and renders their combined key
// skeleton, joined by "\n---\n" between documents.
func Extract(source string) (string, error) {
	docs := splitDocuments(source)

	if len(docs) == 1 {
		keyCount := 0
		return transformSingleDocument(docs[0], &keyCount)
	}

	var rendered []string
	keyCount := 0
	for _, doc := range docs {
		if strings.TrimSpace(doc) == "" {
			continue
		}
		out, err := transformSingleDocument(doc, &keyCount)
		if err != nil {
			return "", err
		}
		rendered = append(rendered, out)
	}

	nonEmpty := rendered[:0]
	for _, r := range rendered {
		if r != "" {
			nonEmpty = append(nonEmpty, r)
		}
	}
	if len(nonEmpty) == 0 {
		return "", nil
	}
	return strings.Join(nonEmpty, "\n---\n"), nil
}

// splitDocuments implements the line-by-line splitting algorithm of
// spec §4.7: "---" closes the current non-empty buffer and starts a new
// one, "..." closes the current buffer and leaves "out of document" state,
// any other non-empty line implicitly begins a document if none is active.
func splitDocuments(source string) []string {
	var docs []string
	var buf strings.Builder
	inDocument := false

	flush := func() {
		if buf.Len() > 0 {
			docs = append(docs, buf.String())
			buf.Reset()
		}
	}

	lines := strings.Split(source, "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch trimmed {
		case "---":
			flush()
			inDocument = true
			continue
		case "...":
			flush()
			inDocument = false
			continue
		}

		if trimmed == "" && !inDocument && buf.Len() == 0 {
			continue
		}

		if !inDocument && buf.Len() == 0 {
			inDocument = true
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	flush()

	if len(docs) == 0 {
		return []string{source}
	}
	return docs
}

func transformSingleDocument(doc string, keyCount *int) (string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(doc), &root); err != nil {
		return "", skimerr.NewParseError("Invalid YAML: %s", err.Error())
	}
	if len(root.Content) == 0 {
		return "", nil
	}
	return extractStructure(root.Content[0], 0, keyCount)
}

func extractStructure(node *yaml.Node, depth int, keyCount *int) (string, error) {
	switch node.Kind {
	case yaml.MappingNode:
		return extractMappingStructure(node, depth, keyCount)
	case yaml.SequenceNode:
		return extractSequenceStructure(node, depth, keyCount)
	default:
		return "", nil
	}
}

func extractMappingStructure(node *yaml.Node, depth int, keyCount *int) (string, error) {
	if depth > maxDepth {
		return "", skimerr.NewParseError("Maximum AST depth exceeded: %d (possible malicious input with deeply nested functions)", maxDepth)
	}
	if len(node.Content) == 0 {
		return "{}", nil
	}

	indent := strings.Repeat("  ", depth)
	var b strings.Builder

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode || keyNode.Tag != "!!str" {
			continue // Non-string keys are skipped, per spec §4.7.
		}

		*keyCount++
		if *keyCount > maxKeys {
			return "", skimerr.NewParseError("Too many YAML keys: %d (max: %d). Possible malicious input.", *keyCount, maxKeys)
		}

		suffix, err := formatValue(valueNode, depth, keyCount)
		if err != nil {
			return "", err
		}
		b.WriteString(indent)
		b.WriteString(keyNode.Value)
		b.WriteString(suffix)
		b.WriteString("\n")
	}

	out := b.String()
	out = strings.TrimSuffix(out, "\n")
	return out, nil
}

func formatValue(node *yaml.Node, depth int, keyCount *int) (string, error) {
	switch node.Kind {
	case yaml.MappingNode:
		nested, err := extractMappingStructure(node, depth+1, keyCount)
		if err != nil {
			return "", err
		}
		if nested == "" || nested == "{}" {
			return "", nil
		}
		return ":\n" + nested, nil
	case yaml.SequenceNode:
		return formatSequenceValue(node, depth, keyCount)
	default:
		return "", nil
	}
}

func formatSequenceValue(node *yaml.Node, depth int, keyCount *int) (string, error) {
	if len(node.Content) == 0 {
		return "", nil
	}
	first := node.Content[0]
	if first.Kind != yaml.MappingNode {
		return "", nil
	}
	nested, err := extractMappingStructure(first, depth+1, keyCount)
	if err != nil {
		return "", err
	}
	if nested == "" {
		return "", nil
	}
	return ":\n" + nested, nil
}

// extractSequenceStructure is the root-level sequence rendering: an empty
// sequence renders as "[]"; a sequence whose first element is a mapping
// renders that mapping's skeleton; any other sequence renders empty.
func extractSequenceStructure(node *yaml.Node, depth int, keyCount *int) (string, error) {
	if len(node.Content) == 0 {
		return "[]", nil
	}
	first := node.Content[0]
	if first.Kind == yaml.MappingNode {
		return extractMappingStructure(first, depth, keyCount)
	}
	return "", nil
}
