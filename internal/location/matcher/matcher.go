// Package matcher scores similarity between normalized location names and
// turns the scores into an accept/reject decision. Three signals feed the
// decision: Levenshtein edit similarity, Double Metaphone phonetic overlap,
// and trigram-set Jaccard similarity.
package matcher

import (
	"strings"

	"github.com/antzucaro/matchr"

	"propsearch/internal/location/normalizer"
)

const (
	// DefaultEditSimilarityThreshold accepts near-identical spellings.
	DefaultEditSimilarityThreshold = 0.8
	// DefaultTrigramThreshold gates phonetic matches on substring overlap.
	DefaultTrigramThreshold = 0.6
)

// Option is a functional option for configuring a [Matcher].
type Option func(*Matcher)

// WithEditSimilarityThreshold overrides the edit-similarity acceptance bound.
func WithEditSimilarityThreshold(threshold float64) Option {
	return func(m *Matcher) { m.editThreshold = threshold }
}

// WithTrigramThreshold overrides the trigram Jaccard bound used alongside
// phonetic matches.
func WithTrigramThreshold(threshold float64) Option {
	return func(m *Matcher) { m.trigramThreshold = threshold }
}

// Matcher compares normalized names. Read-only after construction, so safe
// for concurrent use.
type Matcher struct {
	editThreshold    float64
	trigramThreshold float64
}

// New builds a Matcher with the default 0.8/0.6 thresholds unless overridden.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		editThreshold:    DefaultEditSimilarityThreshold,
		trigramThreshold: DefaultTrigramThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Score holds the three similarity signals for a pair of normalized names.
type Score struct {
	EditSimilarity    float64
	PhoneticMatch     bool
	TrigramSimilarity float64
}

// Score computes all signals for a pair of normalized names.
func (m *Matcher) Score(a, b string) Score {
	return Score{
		EditSimilarity:    editSimilarity(a, b),
		PhoneticMatch:     phoneticMatch(a, b),
		TrigramSimilarity: trigramSimilarity(a, b),
	}
}

// IsMatch applies the acceptance rule: high edit similarity alone is enough;
// otherwise a phonetic match must be corroborated by trigram overlap.
func (m *Matcher) IsMatch(s Score) bool {
	if s.EditSimilarity >= m.editThreshold {
		return true
	}
	return s.PhoneticMatch && s.TrigramSimilarity >= m.trigramThreshold
}

// Match is shorthand for IsMatch(Score(a, b)).
func (m *Matcher) Match(a, b string) bool {
	return m.IsMatch(m.Score(a, b))
}

// PhoneticCode returns the primary Double Metaphone code of the first token,
// used as the coarse phonetic index key for stored name entries.
func PhoneticCode(s string) string {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return ""
	}
	primary, _ := matchr.DoubleMetaphone(tokens[0])
	return primary
}

// editSimilarity is 1 - levenshtein/maxlen over runes. Two empty strings
// score 0 so they never match by accident.
func editSimilarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	maxLen := max(la, lb)
	if maxLen == 0 {
		return 0
	}
	distance := matchr.Levenshtein(a, b)
	return 1 - float64(distance)/float64(maxLen)
}

// phoneticMatch compares Double Metaphone codes token-wise: any shared
// primary or secondary code between the two names counts as a match. Per-word
// codes keep multi-token names ("sangotedo ajah") matchable against their
// head token.
func phoneticMatch(a, b string) bool {
	codesA := tokenCodes(a)
	if len(codesA) == 0 {
		return false
	}
	for code := range tokenCodes(b) {
		if _, ok := codesA[code]; ok {
			return true
		}
	}
	return false
}

func tokenCodes(s string) map[string]struct{} {
	codes := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		primary, secondary := matchr.DoubleMetaphone(tok)
		if primary != "" {
			codes[primary] = struct{}{}
		}
		if secondary != "" {
			codes[secondary] = struct{}{}
		}
	}
	return codes
}

// trigramSimilarity is the Jaccard overlap of the two shingle sets.
func trigramSimilarity(a, b string) float64 {
	gramsA := normalizer.Trigrams(a)
	gramsB := normalizer.Trigrams(b)
	if len(gramsA) == 0 || len(gramsB) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(gramsA))
	for _, g := range gramsA {
		setA[g] = struct{}{}
	}
	setB := make(map[string]struct{}, len(gramsB))
	for _, g := range gramsB {
		setB[g] = struct{}{}
	}

	intersection := 0
	for g := range setA {
		if _, ok := setB[g]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}
