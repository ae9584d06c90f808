package yamlskel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractNestedMapping(t *testing.T) {
	source := "name: alice\naddress:\n  city: nyc\n  zip: \"10001\"\n"
	out, err := Extract(source)
	require.NoError(t, err)
	require.Contains(t, out, "name")
	require.Contains(t, out, "address:")
	require.Contains(t, out, "city")
	require.NotContains(t, out, "alice")
	require.NotContains(t, out, "nyc")
}

func TestExtractMultiDocumentStream(t *testing.T) {
	source := "a: 1\n---\nb: 2\n"
	out, err := Extract(source)
	require.NoError(t, err)
	require.Contains(t, out, "a")
	require.Contains(t, out, "b")
	require.Contains(t, out, "---")
}

func TestExtractEmptyMapping(t *testing.T) {
	out, err := Extract("{}\n")
	require.NoError(t, err)
	require.Equal(t, "{}", out)
}

func TestExtractSequenceOfMappingsUsesFirstElement(t *testing.T) {
	source := "- id: 1\n  name: first\n- id: 2\n  name: second\n"
	out, err := Extract(source)
	require.NoError(t, err)
	require.Contains(t, out, "id")
	require.Contains(t, out, "name")
}

func TestExtractSequenceOfScalarsRendersEmpty(t *testing.T) {
	out, err := Extract("- 1\n- 2\n- 3\n")
	require.NoError(t, err)
	require.Equal(t, "", out)
}

func TestExtractSkipsNonStringKeys(t *testing.T) {
	source := "1: numeric key\nname: keep\n"
	out, err := Extract(source)
	require.NoError(t, err)
	require.Contains(t, out, "name")
	require.NotContains(t, out, "numeric key")
}

func TestExtractInvalidYAML(t *testing.T) {
	_, err := Extract("key: [unclosed\n")
	require.Error(t, err)
}
