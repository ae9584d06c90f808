package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromExtension(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want Kind
		ok   bool
	}{
		{name: "go lowercase", ext: "go", want: Go, ok: true},
		{name: "dotted extension", ext: ".py", want: Python, ok: true},
		{name: "uppercase extension", ext: "TS", want: TypeScript, ok: true},
		{name: "yaml short form", ext: "yml", want: YAML, ok: true},
		{name: "unknown extension", ext: "exe", want: Unknown, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromExtension(tt.ext)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFromPathRejectsParentTraversal(t *testing.T) {
	_, ok := FromPath("../etc/passwd.go")
	assert.False(t, ok)

	_, ok = FromPath("a/../../b.go")
	assert.False(t, ok)
}

func TestFromPathAcceptsOrdinaryPaths(t *testing.T) {
	kind, ok := FromPath("internal/pkg/file.rs")
	require.True(t, ok)
	assert.Equal(t, Rust, kind)
}

func TestDisplayNameAndBackend(t *testing.T) {
	assert.Equal(t, "go", DisplayName(Go))
	assert.Equal(t, "json", DisplayName(JSON))

	assert.Equal(t, BackendCST, BackendOf(Markdown))
	assert.Equal(t, BackendJSON, BackendOf(JSON))
	assert.Equal(t, BackendYAML, BackendOf(YAML))
}

func TestIsDocument(t *testing.T) {
	assert.True(t, IsDocument(Markdown))
	assert.False(t, IsDocument(Go))
	assert.False(t, IsDocument(JSON))
}

func TestLanguageOnlyForCSTKinds(t *testing.T) {
	_, ok := Language(Go)
	assert.True(t, ok)

	_, ok = Language(JSON)
	assert.False(t, ok)

	_, ok = Language(YAML)
	assert.False(t, ok)
}

func TestNodeKindsOfGo(t *testing.T) {
	nk := NodeKindsOf(Go)
	assert.Equal(t, "function_declaration", nk.Function)
	assert.Equal(t, "method_declaration", nk.Method)
	assert.Contains(t, nk.BodyKinds, "block")
}

func TestNodeKindsOfTypeScript(t *testing.T) {
	nk := NodeKindsOf(TypeScript)
	assert.Equal(t, "function_declaration", nk.Function)
	assert.Equal(t, "interface_declaration", nk.Interface)
	assert.Equal(t, "class_declaration", nk.Class)
}

func TestNodeKindsOfPython(t *testing.T) {
	nk := NodeKindsOf(Python)
	assert.Equal(t, "function_definition", nk.Function)
	assert.Equal(t, "class_definition", nk.Class)
}

func TestNodeKindsOfRust(t *testing.T) {
	nk := NodeKindsOf(Rust)
	assert.Equal(t, "function_item", nk.Function)
	assert.Equal(t, "struct_item", nk.Struct)
	assert.Equal(t, "trait_item", nk.Interface)
}

func TestLanguageForTypeScriptPythonRust(t *testing.T) {
	for _, kind := range []Kind{TypeScript, Python, Rust} {
		_, ok := Language(kind)
		assert.True(t, ok)
	}
}

func TestNodeKindsOfMarkdownIsEmpty(t *testing.T) {
	nk := NodeKindsOf(Markdown)
	assert.Empty(t, nk.Function)
	assert.Empty(t, nk.Class)
}
