// Package skim is a language-aware source-code skimmer: given source text
// and a declared language, it produces a reduced textual rendering that
// preserves public shape (declarations, type definitions, signatures,
// headings, configuration key skeletons) while discarding bodies, values,
// and prose. This file is the dispatcher (C9), the package's public entry
// point.
package skim

import (
	"context"
	"time"

	"github.com/oxhq/skim/catalog"
	"github.com/oxhq/skim/cst"
	"github.com/oxhq/skim/jsonskel"
	"github.com/oxhq/skim/skimerr"
	"github.com/oxhq/skim/tokens"
	"github.com/oxhq/skim/transform"
	"github.com/oxhq/skim/yamlskel"
)

// Mode selects how aggressively a CST-backed source is reduced.
type Mode int

const (
	Structure Mode = iota
	Signatures
	Types
	Full
)

// Kind re-exports the language catalog's kind enumeration.
type Kind = catalog.Kind

const (
	TypeScript = catalog.TypeScript
	JavaScript = catalog.JavaScript
	Python     = catalog.Python
	Rust       = catalog.Rust
	Go         = catalog.Go
	Java       = catalog.Java
	Markdown   = catalog.Markdown
	JSON       = catalog.JSON
	YAML       = catalog.YAML
)

// Config carries the transform mode and a comment-preservation flag. The
// reference transforms are comment-neutral: preserve_comments is honored
// only by implementations that extend the replacement set to non-structural
// comment spans (see spec §9); it has no effect here.
type Config struct {
	Mode             Mode
	PreserveComments bool
}

// Parser is bound to one language kind and parses source into a Tree, for
// advanced callers who want to reuse a parsed tree across multiple modes.
type Parser = cst.Parser

// NewParser constructs a Parser bound to kind.
func NewParser(kind catalog.Kind) (*Parser, error) {
	return cst.NewParser(kind)
}

// Transform is the primary entry point: reduce source according to mode
// for the declared language.
func Transform(source string, language catalog.Kind, mode Mode) (string, error) {
	if mode == Full {
		return source, nil
	}

	switch catalog.BackendOf(language) {
	case catalog.BackendJSON:
		return jsonskel.Extract(source)
	case catalog.BackendYAML:
		return yamlskel.Extract(source)
	default:
		return transformCST(source, language, mode)
	}
}

// TransformAuto derives the language from path's extension before
// transforming. Returns UnsupportedLanguageError when path resolves to no
// known kind.
func TransformAuto(source, path string, mode Mode) (string, error) {
	kind, ok := catalog.FromPath(path)
	if !ok {
		return "", skimerr.NewUnsupportedLanguage(path)
	}
	return Transform(source, kind, mode)
}

// DetailedResult is transform_detailed's return value.
type DetailedResult struct {
	Content           string
	DurationMS        float64
	OriginalTokens    int
	TransformedTokens int
	HasTokenCounts    bool
}

// TransformDetailed transforms source and times the call; if tokenizer is
// non-nil it also reports before/after token counts. tokenizer is nil-safe.
func TransformDetailed(source string, language catalog.Kind, mode Mode, tokenizer tokens.Tokenizer) (DetailedResult, error) {
	start := time.Now()
	content, err := Transform(source, language, mode)
	duration := time.Since(start)
	if err != nil {
		return DetailedResult{}, err
	}

	result := DetailedResult{
		Content:    content,
		DurationMS: float64(duration.Microseconds()) / 1000.0,
	}
	if tokenizer != nil {
		result.HasTokenCounts = true
		result.OriginalTokens = tokenizer.Count(source)
		result.TransformedTokens = tokenizer.Count(content)
	}
	return result, nil
}

func transformCST(source string, language catalog.Kind, mode Mode) (string, error) {
	parser, err := cst.NewParser(language)
	if err != nil {
		return "", err
	}
	tree, err := parser.Parse(context.Background(), []byte(source))
	if err != nil {
		return "", err
	}
	defer tree.Close()

	if catalog.IsDocument(language) {
		switch mode {
		case Structure:
			return transform.StructureDocument(tree)
		case Signatures:
			return transform.SignaturesDocument(tree)
		case Types:
			return transform.TypesDocument(tree)
		}
	}

	kinds := catalog.NodeKindsOf(language)
	switch mode {
	case Structure:
		return transform.Structure(source, tree, kinds)
	case Signatures:
		return transform.Signatures(tree, kinds)
	case Types:
		return transform.Types(tree, kinds)
	default:
		return source, nil
	}
}
