// Package normalizer canonicalizes free-text location names so that spelling
// and formatting variations of the same place collapse to one form. The same
// pipeline runs on bucket creation and on every search query.
package normalizer

import (
	"strings"
)

// Config drives the normalization pipeline. Both tables are data, not code,
// so the package stays domain-agnostic; the defaults carry the Lagos-centric
// deployment values.
type Config struct {
	// Stoplist tokens are geographically redundant suffixes dropped when they
	// appear as whole tokens ("Sangotedo Lagos" -> "sangotedo").
	Stoplist []string
	// Replacements maps whole tokens to their standardized form.
	Replacements map[string]string
}

// DefaultConfig returns the production stoplist and replacement table.
func DefaultConfig() Config {
	return Config{
		Stoplist: []string{"lagos", "nigeria", "ng", "lga", "state", "area"},
		Replacements: map[string]string{
			"str": "street",
			"st":  "street",
			"rd":  "road",
			"ave": "avenue",
		},
	}
}

// Normalizer applies the deterministic name pipeline. Safe for concurrent use;
// read-only after construction.
type Normalizer struct {
	stoplist     map[string]struct{}
	replacements map[string]string
}

// New builds a Normalizer from cfg. Stoplist entries are matched lowercase.
func New(cfg Config) *Normalizer {
	stop := make(map[string]struct{}, len(cfg.Stoplist))
	for _, s := range cfg.Stoplist {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			stop[s] = struct{}{}
		}
	}
	repl := make(map[string]string, len(cfg.Replacements))
	for from, to := range cfg.Replacements {
		repl[strings.ToLower(from)] = strings.ToLower(to)
	}
	return &Normalizer{stoplist: stop, replacements: repl}
}

// Normalize canonicalizes a raw location name. Pipeline order matters:
// lowercase, strip to [a-z0-9 ] with punctuation acting as a token boundary,
// drop stoplist tokens, collapse whitespace, then apply the replacement table.
// The result is empty only when the input was empty or entirely stripped;
// callers must treat an empty result as an unresolvable name. Idempotent.
func (n *Normalizer) Normalize(raw string) string {
	lowered := strings.ToLower(raw)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			// Commas, punctuation and non-ASCII all become token boundaries.
			b.WriteByte(' ')
		}
	}

	tokens := strings.Fields(b.String())
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, stopped := n.stoplist[tok]; stopped {
			continue
		}
		if replaced, ok := n.replacements[tok]; ok {
			tok = replaced
		}
		out = append(out, tok)
	}
	return strings.Join(out, " ")
}

// Trigrams returns the 3-character shingles of the space-stripped string.
// Strings shorter than three characters are right-padded so one and two
// character names still produce a shingle. Empty input yields nil.
func Trigrams(s string) []string {
	compact := strings.ReplaceAll(strings.ToLower(s), " ", "")
	if compact == "" {
		return nil
	}
	for len(compact) < 3 {
		compact += "_"
	}
	grams := make([]string, 0, len(compact)-2)
	for i := 0; i+3 <= len(compact); i++ {
		grams = append(grams, compact[i:i+3])
	}
	return grams
}
