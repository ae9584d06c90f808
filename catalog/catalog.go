// Package catalog is the language catalog (C1): it enumerates the source
// kinds skim understands, maps file extensions to a kind, classifies each
// kind's backend, and holds the per-kind CST node-kind strings the
// transform package consults.
package catalog

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	tsmarkdown "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Kind is a closed tagged enumeration of source languages.
type Kind int

const (
	Unknown Kind = iota
	TypeScript
	JavaScript
	Python
	Rust
	Go
	Java
	Markdown
	JSON
	YAML
)

// Backend classifies how a kind is parsed.
type Backend int

const (
	BackendCST Backend = iota
	BackendJSON
	BackendYAML
)

// NodeKinds records, for one CST language, the node-kind strings that
// denote callables, their body blocks, and top-level type declarations.
// Empty strings mean the concept does not exist for the language; an
// empty string never matches a node's kind.
type NodeKinds struct {
	Function           string
	Method             string
	ArrowFunction       string
	FunctionExpression  string
	BodyKinds           []string

	TypeAlias string
	Interface string
	Enum      string
	Class     string
	Struct    string

	ClassBodyKinds []string
}

// info is the internal catalog record for one kind.
type info struct {
	displayName string
	extensions  []string
	backend     Backend
	language    func() *sitter.Language // nil for data backends
	nodeKinds   NodeKinds
}

var registry = map[Kind]info{
	TypeScript: {
		displayName: "typescript",
		extensions:  []string{"ts", "tsx"},
		backend:     BackendCST,
		language:    func() *sitter.Language { return typescript.GetLanguage() },
		nodeKinds: NodeKinds{
			Function:           "function_declaration",
			Method:              "method_definition",
			ArrowFunction:       "arrow_function",
			FunctionExpression:  "function_expression",
			BodyKinds:           []string{"statement_block", "block", "compound_statement"},
			TypeAlias:           "type_alias_declaration",
			Interface:           "interface_declaration",
			Enum:                "enum_declaration",
			Class:               "class_declaration",
			ClassBodyKinds:      []string{"class_body", "declaration_list", "block"},
		},
	},
	JavaScript: {
		displayName: "javascript",
		extensions:  []string{"js", "jsx"},
		backend:     BackendCST,
		language:    func() *sitter.Language { return javascript.GetLanguage() },
		nodeKinds: NodeKinds{
			Function:           "function_declaration",
			Method:              "method_definition",
			ArrowFunction:       "arrow_function",
			FunctionExpression:  "function_expression",
			BodyKinds:           []string{"statement_block", "block", "compound_statement"},
			Class:               "class_declaration",
			ClassBodyKinds:      []string{"class_body", "declaration_list", "block"},
		},
	},
	Python: {
		displayName: "python",
		extensions:  []string{"py", "pyi"},
		backend:     BackendCST,
		language:    func() *sitter.Language { return python.GetLanguage() },
		nodeKinds: NodeKinds{
			Function:       "function_definition",
			Method:         "function_definition",
			BodyKinds:      []string{"block", "statement_block", "compound_statement"},
			TypeAlias:      "type_alias_statement",
			Class:          "class_definition",
			ClassBodyKinds: []string{"block", "class_body", "declaration_list"},
		},
	},
	Rust: {
		displayName: "rust",
		extensions:  []string{"rs"},
		backend:     BackendCST,
		language:    func() *sitter.Language { return rust.GetLanguage() },
		nodeKinds: NodeKinds{
			Function:  "function_item",
			Method:    "function_item",
			BodyKinds: []string{"block", "compound_statement", "statement_block"},
			TypeAlias: "type_item",
			Interface: "trait_item",
			Enum:      "enum_item",
			Struct:    "struct_item",
		},
	},
	Go: {
		displayName: "go",
		extensions:  []string{"go"},
		backend:     BackendCST,
		language:    func() *sitter.Language { return golang.GetLanguage() },
		nodeKinds: NodeKinds{
			Function:  "function_declaration",
			Method:    "method_declaration",
			BodyKinds: []string{"block", "statement_block", "compound_statement"},
			TypeAlias: "type_declaration",
			Interface: "interface_type",
			Struct:    "struct_type",
		},
	},
	Java: {
		displayName: "java",
		extensions:  []string{"java"},
		backend:     BackendCST,
		language:    func() *sitter.Language { return java.GetLanguage() },
		nodeKinds: NodeKinds{
			Function:       "method_declaration",
			Method:         "method_declaration",
			BodyKinds:      []string{"block", "statement_block", "compound_statement"},
			Interface:      "interface_declaration",
			Enum:           "enum_declaration",
			Class:          "class_declaration",
			ClassBodyKinds: []string{"class_body", "declaration_list", "block"},
		},
	},
	Markdown: {
		displayName: "markdown",
		extensions:  []string{"md", "markdown"},
		backend:     BackendCST,
		language:    func() *sitter.Language { return tsmarkdown.GetLanguage() },
		// Markdown has no callable or type-declaration node kinds; it is
		// walked by the mdheadings package instead of transform's CST path.
	},
	JSON: {
		displayName: "json",
		extensions:  []string{"json"},
		backend:     BackendJSON,
	},
	YAML: {
		displayName: "yaml",
		extensions:  []string{"yaml", "yml"},
		backend:     BackendYAML,
	},
}

var extensionIndex = buildExtensionIndex()

func buildExtensionIndex() map[string]Kind {
	idx := make(map[string]Kind)
	for kind, inf := range registry {
		for _, ext := range inf.extensions {
			idx[ext] = kind
		}
	}
	return idx
}

// FromExtension maps a lowercase, dot-less extension to a Kind.
func FromExtension(ext string) (Kind, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	kind, ok := extensionIndex[ext]
	return kind, ok
}

// FromPath derives a Kind from a file path. It refuses any path containing
// a literal parent-directory component ("..") as a defense against path
// traversal in multi-file drivers and the result cache; absolute paths are
// accepted.
func FromPath(path string) (Kind, bool) {
	for _, part := range strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool { return r == '/' }) {
		if part == ".." {
			return Unknown, false
		}
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return FromExtension(ext)
}

// DisplayName returns the stable display name for kind.
func DisplayName(kind Kind) string {
	return registry[kind].displayName
}

// BackendOf classifies kind's parsing backend.
func BackendOf(kind Kind) Backend {
	return registry[kind].backend
}

// IsDocument reports whether kind is the markdown document language: it is
// CST-backed but has no callable/type node kinds and is walked by the
// heading extractor instead of the structure/signatures/types transforms.
func IsDocument(kind Kind) bool {
	return kind == Markdown
}

// Language returns the tree-sitter grammar handle for a CST-backed kind.
// ok is false for data-backed kinds or Unknown.
func Language(kind Kind) (*sitter.Language, bool) {
	inf, known := registry[kind]
	if !known || inf.language == nil {
		return nil, false
	}
	return inf.language(), true
}

// NodeKindsOf returns the per-language node-kind table for kind.
func NodeKindsOf(kind Kind) NodeKinds {
	return registry[kind].nodeKinds
}
