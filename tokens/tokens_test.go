package tokens

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeuristicCountEmpty(t *testing.T) {
	require.Equal(t, 0, Heuristic{}.Count("   \n\t"))
}

func TestHeuristicCountWords(t *testing.T) {
	require.Equal(t, 3, Heuristic{}.Count("hello world again"))
}

func TestHeuristicCountPunctuationSeparately(t *testing.T) {
	count := Heuristic{}.Count("foo(bar)")
	require.Equal(t, 4, count) // foo, (, bar, )
}

func TestStatsReductionPercentage(t *testing.T) {
	s := Stats{Original: 100, Transformed: 25}
	require.InDelta(t, 75.0, s.ReductionPercentage(), 0.001)
	require.Equal(t, 75, s.TokensSaved())
}

func TestStatsReductionPercentageZeroOriginal(t *testing.T) {
	s := Stats{Original: 0, Transformed: 0}
	require.Equal(t, 0.0, s.ReductionPercentage())
}
