// Package pattern builds the ordered keyword-group pattern that encodes a
// candidate's required career trajectory. The same sequence renders to a
// store-native regex string for the Postgres query boundary and compiles to a
// native matcher for tests, so pattern semantics are defined in one place.
package pattern

import (
	"regexp"
	"strings"

	"github.com/tyler/people-match/internal/types"
)

// Step is one required career step: a set of keywords that must all occur
// within a single stretch of the serialized company-history string.
type Step struct {
	Keywords []string
}

// Sequence is an ordered list of career steps. Step i must be found
// positionally before step i+1 in the history string, with arbitrary text
// allowed between and around steps.
type Sequence []Step

// FromExperience builds a Sequence from a normalized experience list. The
// list is reverse-chronological as given; its order drives pattern order.
// Entries without keywords contribute no step.
func FromExperience(exps []types.Experience) Sequence {
	seq := make(Sequence, 0, len(exps))
	for _, exp := range exps {
		if len(exp.Keywords) == 0 {
			continue
		}
		seq = append(seq, Step{Keywords: exp.Keywords})
	}
	return seq
}

// Empty reports whether the sequence constrains nothing. Callers must treat
// the resulting pattern as "no constraint", not as "impossible".
func (s Sequence) Empty() bool {
	return len(s) == 0
}

// Keywords returns every keyword across every step, in step order. Used for
// the per-keyword containment pre-filter that narrows candidates before the
// more expensive ordered-pattern evaluation.
func (s Sequence) Keywords() []string {
	var out []string
	for _, step := range s {
		out = append(out, step.Keywords...)
	}
	return out
}

// Regex renders the sequence as a case-insensitive regex string suitable for
// the Postgres ~* operator. Keywords within a step are joined with ".*" in
// slice order; each step is wrapped in ".*" on both sides; consecutive steps
// are separated by a ".*" gap so they must match left to right.
func (s Sequence) Regex() string {
	var parts []string
	parts = append(parts, "(?i)")

	for _, step := range s {
		if len(step.Keywords) == 0 {
			continue
		}
		escaped := make([]string, len(step.Keywords))
		for i, kw := range step.Keywords {
			escaped[i] = regexp.QuoteMeta(kw)
		}
		inner := strings.Join(escaped, ".*")
		parts = append(parts, ".*"+inner+".*")
	}

	return strings.Join(parts, "")
}

// Matcher compiles the sequence into a native Go matcher. The Regex output
// uses only syntax shared by RE2 and Postgres ARE, so both targets agree on
// what matches.
func (s Sequence) Matcher() (*regexp.Regexp, error) {
	return regexp.Compile(s.Regex())
}
