// Package normalize maps free-text company names from a profile's work
// history onto canonical keyword sets using fuzzy matching against the
// company vocabulary.
package normalize

import (
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/tyler/people-match/internal/types"
	"github.com/tyler/people-match/internal/vocab"
)

// defaultCandidates is how many best-scoring vocabulary entries feed the
// keyword frequency vote per company name.
const defaultCandidates = 5

// duplicateThreshold is the minimum token frequency across the fuzzy
// candidate set for a keyword to survive the vote.
const duplicateThreshold = 2

// Scorer computes an order-independent, case-insensitive token-set similarity
// between two strings on a 0-100 scale. Abstracted so the normalizer is not
// coupled to one fuzzy-matching implementation.
type Scorer interface {
	TokenSetRatio(a, b string) int
}

// FuzzyScorer is the default Scorer backed by the fuzzywuzzy token-set ratio.
type FuzzyScorer struct{}

// TokenSetRatio returns the token-set similarity of a and b (0-100).
func (FuzzyScorer) TokenSetRatio(a, b string) int {
	return fuzzy.TokenSetRatio(a, b)
}

// Normalizer rewrites the company field of each experience entry into a small
// set of lowercase keyword tokens drawn from the vocabulary.
type Normalizer struct {
	vocab      *vocab.Vocabulary
	scorer     Scorer
	candidates int
}

// New creates a Normalizer over the given vocabulary. A nil scorer selects
// the default fuzzywuzzy token-set ratio.
func New(v *vocab.Vocabulary, scorer Scorer) *Normalizer {
	if scorer == nil {
		scorer = FuzzyScorer{}
	}
	return &Normalizer{
		vocab:      v,
		scorer:     scorer,
		candidates: defaultCandidates,
	}
}

// Normalize returns a deep copy of the profile with every experience entry's
// company name resolved to its keyword set. The input profile is untouched.
// Entries that already carry keywords are left as they are, which makes
// normalization idempotent.
func (n *Normalizer) Normalize(p types.Profile) types.Profile {
	out := p.Clone()

	for i := range out.Experience {
		exp := &out.Experience[i]
		if len(exp.Keywords) > 0 {
			continue
		}
		if strings.TrimSpace(exp.Company) == "" {
			continue
		}
		exp.Keywords = n.KeywordsFor(exp.Company)
	}

	return out
}

// KeywordsFor resolves a single free-text company name to its keyword set.
//
// The best-scoring vocabulary entries are split into tokens and counted;
// tokens seen at least twice across the candidate set win. When no token
// repeats, the full token split of the single best entry is kept instead —
// a don't-return-empty guard, not a quality signal.
func (n *Normalizer) KeywordsFor(company string) []string {
	best := n.extract(company, n.candidates)
	if len(best) == 0 {
		return nil
	}

	var flattened []string
	for _, entry := range best {
		flattened = append(flattened, vocab.Tokens(entry)...)
	}

	counts := make(map[string]int, len(flattened))
	for _, tok := range flattened {
		counts[tok]++
	}

	// Keep first-appearance order of the flattened token list so the result
	// is deterministic; the set itself is order-irrelevant downstream.
	var results []string
	seen := make(map[string]bool, len(flattened))
	for _, tok := range flattened {
		if counts[tok] >= duplicateThreshold && !seen[tok] {
			results = append(results, tok)
			seen[tok] = true
		}
	}

	if len(results) == 0 {
		results = vocab.Tokens(best[0])
	}

	return results
}

// extract returns the limit best-scoring vocabulary entries for the query,
// highest first. Ties keep vocabulary file order.
func (n *Normalizer) extract(query string, limit int) []string {
	type scored struct {
		entry string
		score int
	}

	entries := n.vocab.Entries()
	candidates := make([]scored, 0, len(entries))
	for _, entry := range entries {
		candidates = append(candidates, scored{
			entry: entry,
			score: n.scorer.TokenSetRatio(strings.ToLower(query), entry),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit > len(candidates) {
		limit = len(candidates)
	}
	out := make([]string, 0, limit)
	for _, c := range candidates[:limit] {
		out = append(out, c.entry)
	}
	return out
}
