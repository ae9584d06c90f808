// Package tokens defines the small interface transform_detailed uses for
// its optional token-count statistics, plus one concrete heuristic
// implementation — skim's core never depends on a specific tokenizer
// library (spec §1 treats it as an external collaborator).
package tokens

import "strings"

// Tokenizer counts the number of tokens in text. Implementations are free
// to wrap a real BPE tokenizer; Count must be pure and side-effect-free.
type Tokenizer interface {
	Count(text string) int
}

// Heuristic is a conservative whitespace/punctuation splitter approximating
// a subword tokenizer's order of magnitude without the dependency weight of
// a full BPE implementation (see original_source/crates/rskim/src/tokens.rs,
// which backs the same statistic with tiktoken-rs).
type Heuristic struct{}

// Count implements Tokenizer.
func (Heuristic) Count(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	count := 0
	inToken := false
	for _, r := range text {
		switch {
		case isSpace(r):
			inToken = false
		case isWordRune(r):
			if !inToken {
				count++
				inToken = true
			}
		default:
			// Punctuation/symbols count as their own token each.
			count++
			inToken = false
		}
	}
	return count
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

// Stats reports the reduction achieved by a transform, mirroring
// original_source's TokenStats.
type Stats struct {
	Original    int
	Transformed int
}

// ReductionPercentage returns the percentage of tokens eliminated.
func (s Stats) ReductionPercentage() float64 {
	if s.Original == 0 {
		return 0
	}
	return float64(s.Original-s.Transformed) / float64(s.Original) * 100
}

// TokensSaved returns the absolute token count eliminated.
func (s Stats) TokensSaved() int {
	return s.Original - s.Transformed
}
