package skimerr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUnsupportedLanguage(t *testing.T) {
	err := NewUnsupportedLanguage("notes.txt")
	require.EqualError(t, err, "Unsupported language for file: notes.txt")
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("cannot construct a CST parser for non-CST language %q", "json")
	require.EqualError(t, err, `cannot construct a CST parser for non-CST language "json"`)
}

func TestNewParseError(t *testing.T) {
	err := NewParseError("Maximum AST depth exceeded: %d", 500)
	require.EqualError(t, err, "Maximum AST depth exceeded: 500")
}

func TestIsParseError(t *testing.T) {
	require.True(t, IsParseError(NewParseError("boom")))
	require.False(t, IsParseError(NewConfigError("boom")))
	require.False(t, IsParseError(NewUnsupportedLanguage("x")))
}
