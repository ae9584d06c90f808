package transform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxhq/skim/catalog"
	"github.com/oxhq/skim/cst"
)

func parseGo(t *testing.T, source string) *cst.Tree {
	t.Helper()
	return parseAs(t, catalog.Go, source)
}

func parseAs(t *testing.T, kind catalog.Kind, source string) *cst.Tree {
	t.Helper()
	p, err := cst.NewParser(kind)
	require.NoError(t, err)
	tree, err := p.Parse(context.Background(), []byte(source))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

func TestStructureReplacesFunctionBodies(t *testing.T) {
	source := "package main\n\nfunc add(a, b int) int {\n\treturn a + b\n}\n"
	tree := parseGo(t, source)

	out, err := Structure(source, tree, catalog.NodeKindsOf(catalog.Go))
	require.NoError(t, err)
	require.Contains(t, out, "func add(a, b int) int")
	require.Contains(t, out, bodyPlaceholder)
	require.NotContains(t, out, "return a + b")
}

func TestStructureSkipsNestedBodyOfOuterFunction(t *testing.T) {
	source := "package main\n\nfunc outer() {\n\tfunc() {\n\t\treturn\n\t}()\n}\n"
	tree := parseGo(t, source)

	out, err := Structure(source, tree, catalog.NodeKindsOf(catalog.Go))
	require.NoError(t, err)
	require.NotContains(t, out, "return")
	require.Contains(t, out, bodyPlaceholder)
}

func TestSignaturesOneLinePerCallable(t *testing.T) {
	source := "package main\n\nfunc one() {}\n\nfunc two(x int) string {\n\treturn \"\"\n}\n"
	tree := parseGo(t, source)

	out, err := Signatures(tree, catalog.NodeKindsOf(catalog.Go))
	require.NoError(t, err)
	require.Contains(t, out, "func one()")
	require.Contains(t, out, "func two(x int) string")
	require.NotContains(t, out, "return")
}

func TestTypesExtractsStructWithoutMethodBodies(t *testing.T) {
	source := "package main\n\ntype Point struct {\n\tX int\n\tY int\n}\n\nfunc (p Point) String() string {\n\treturn \"\"\n}\n"
	tree := parseGo(t, source)

	out, err := Types(tree, catalog.NodeKindsOf(catalog.Go))
	require.NoError(t, err)
	require.Contains(t, out, "type Point struct")
	require.Contains(t, out, "X int")
	require.NotContains(t, out, "return")
}

// TestStructureTypeScriptReplacesFunctionBody covers spec §8's S1: a
// TypeScript function's body is replaced, its signature retained.
func TestStructureTypeScriptReplacesFunctionBody(t *testing.T) {
	source := "function add(a: number, b: number): number {\n  return a + b;\n}\n"
	tree := parseAs(t, catalog.TypeScript, source)

	out, err := Structure(source, tree, catalog.NodeKindsOf(catalog.TypeScript))
	require.NoError(t, err)
	require.Contains(t, out, "function add(a: number, b: number): number")
	require.Contains(t, out, bodyPlaceholder)
	require.NotContains(t, out, "return a + b")
}

// TestSignaturesPythonOneLinePerFunction covers spec §8's S2: Python
// function signatures are extracted one per line, bodies discarded.
func TestSignaturesPythonOneLinePerFunction(t *testing.T) {
	source := "def add(a, b):\n    return a + b\n\n\ndef greet(name):\n    print(name)\n"
	tree := parseAs(t, catalog.Python, source)

	out, err := Signatures(tree, catalog.NodeKindsOf(catalog.Python))
	require.NoError(t, err)
	require.Contains(t, out, "def add(a, b):")
	require.Contains(t, out, "def greet(name):")
	require.NotContains(t, out, "return a + b")
	require.NotContains(t, out, "print(name)")
}

// TestTypesRustExtractsStructDefinition covers spec §8's S3: a Rust
// struct's field list is retained as a type definition.
func TestTypesRustExtractsStructDefinition(t *testing.T) {
	source := "struct Point {\n    x: i32,\n    y: i32,\n}\n\nfn distance(p: Point) -> f64 {\n    0.0\n}\n"
	tree := parseAs(t, catalog.Rust, source)

	out, err := Types(tree, catalog.NodeKindsOf(catalog.Rust))
	require.NoError(t, err)
	require.Contains(t, out, "struct Point")
	require.Contains(t, out, "x: i32")
	require.NotContains(t, out, "distance")
}

func TestIsCallableEmptyKindsNeverMatch(t *testing.T) {
	require.False(t, isCallable("function_declaration", catalog.NodeKinds{}))
}

func TestIsTypeNodeEmptyKindsNeverMatch(t *testing.T) {
	require.False(t, isTypeNode("struct_type", catalog.NodeKinds{}))
}
