// Package jsonskel implements the JSON key extractor (C6): it parses
// source as a single JSON value and renders a nested key-only skeleton,
// discarding every leaf value.
package jsonskel

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/oxhq/skim/skimerr"
)

const (
	maxDepth = 500
	maxKeys  = 10_000
)

// Extract parses source as JSON and renders its key skeleton.
func Extract(source string) (string, error) {
	var value any
	dec := json.NewDecoder(strings.NewReader(source))
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		return "", skimerr.NewParseError("Invalid JSON: %s", err.Error())
	}

	keyCount := 0
	out, err := extractStructure(value, 0, &keyCount)
	if err != nil {
		return "", err
	}
	return out, nil
}

func extractStructure(value any, depth int, keyCount *int) (string, error) {
	switch v := value.(type) {
	case map[string]any:
		return extractObjectStructure(v, depth, keyCount)
	case []any:
		return extractArrayStructure(v, depth, keyCount)
	default:
		return "", nil
	}
}

func extractObjectStructure(obj map[string]any, depth int, keyCount *int) (string, error) {
	if depth > maxDepth {
		return "", skimerr.NewParseError("Maximum AST depth exceeded: %d (possible malicious input with deeply nested functions)", maxDepth)
	}
	if len(obj) == 0 {
		return "{}", nil
	}

	keys := orderedKeys(obj)
	indent := strings.Repeat("  ", depth+1)
	closeIndent := strings.Repeat("  ", depth)

	var lines []string
	for _, key := range keys {
		*keyCount++
		if *keyCount > maxKeys {
			return "", skimerr.NewParseError("Too many JSON keys: %d (max: %d). Possible malicious input.", *keyCount, maxKeys)
		}
		suffix, err := formatValue(obj[key], depth, keyCount)
		if err != nil {
			return "", err
		}
		lines = append(lines, indent+key+suffix)
	}

	return "{\n" + strings.Join(lines, ",\n") + "\n" + closeIndent + "}", nil
}

func formatValue(value any, depth int, keyCount *int) (string, error) {
	switch v := value.(type) {
	case map[string]any:
		nested, err := extractObjectStructure(v, depth+1, keyCount)
		if err != nil {
			return "", err
		}
		return ": " + nested, nil
	case []any:
		return formatArrayValue(v, depth, keyCount)
	default:
		return "", nil
	}
}

// formatArrayValue implements the asymmetric value-suffix rule for arrays
// (see spec §9 open question): an array whose first element is an object
// renders that object's skeleton as a suffix; every other array shape
// (empty, mixed, all-primitive) yields no suffix at all.
func formatArrayValue(arr []any, depth int, keyCount *int) (string, error) {
	if len(arr) == 0 {
		return "", nil
	}
	if obj, ok := arr[0].(map[string]any); ok {
		nested, err := extractObjectStructure(obj, depth+1, keyCount)
		if err != nil {
			return "", err
		}
		return ": " + nested, nil
	}
	return "", nil
}

// extractArrayStructure is the root-level array rendering: an empty array,
// or an array whose first element isn't an object, renders as "[]"; an
// array of objects renders its first element's skeleton.
func extractArrayStructure(arr []any, depth int, keyCount *int) (string, error) {
	if len(arr) == 0 {
		return "[]", nil
	}
	if obj, ok := arr[0].(map[string]any); ok {
		return extractObjectStructure(obj, depth, keyCount)
	}
	return "[]", nil
}

// orderedKeys returns obj's keys in a deterministic (sorted) order. The
// reference renderer does not promise source key order from a parser that
// discards it; sorting keeps output deterministic across runs (invariant
// 6, §8), matching how Go's own encoding/json loses map key order.
func orderedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
