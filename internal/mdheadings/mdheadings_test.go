package mdheadings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxhq/skim/catalog"
	"github.com/oxhq/skim/cst"
)

func parseMarkdown(t *testing.T, source string) *cst.Tree {
	t.Helper()
	p, err := cst.NewParser(catalog.Markdown)
	require.NoError(t, err)
	tree, err := p.Parse(context.Background(), []byte(source))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

func TestExtractAtxHeadingsWithinRange(t *testing.T) {
	source := "# Title\n\nsome text\n\n## Section\n\n### Sub\n\n#### Too deep\n"
	tree := parseMarkdown(t, source)

	out, err := Extract(tree, 1, 3)
	require.NoError(t, err)
	require.Contains(t, out, "# Title")
	require.Contains(t, out, "## Section")
	require.Contains(t, out, "### Sub")
	require.NotContains(t, out, "#### Too deep")
}

func TestExtractFullRangeIncludesAllLevels(t *testing.T) {
	source := "# Title\n\n###### Deep heading\n"
	tree := parseMarkdown(t, source)

	out, err := Extract(tree, 1, 6)
	require.NoError(t, err)
	require.Contains(t, out, "# Title")
	require.Contains(t, out, "###### Deep heading")
}

func TestExtractSetextHeadingLevels(t *testing.T) {
	source := "Title\n=====\n\nSubtitle\n--------\n"
	tree := parseMarkdown(t, source)

	out, err := Extract(tree, 1, 2)
	require.NoError(t, err)
	require.Contains(t, out, "Title")
	require.Contains(t, out, "Subtitle")
}
