// Package scoring computes the hybrid relevance score for match candidates
// and produces the ranked, truncated result list.
package scoring

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/tyler/people-match/internal/types"
)

// Jaccard returns the Jaccard similarity (intersection over union) of two
// string sets, case-insensitive. Two empty sets score 0 by definition.
func Jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for item := range setA {
		if setB[item] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			set[item] = true
		}
	}
	return set
}

// TitleSimilarity returns a symmetric 0-1 similarity between two job titles.
// Either side empty scores 0.
func TitleSimilarity(a, b string) float64 {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return 0
	}
	return float64(fuzzy.TokenSortRatio(strings.ToLower(a), strings.ToLower(b))) / 100.0
}

// LatestTitle extracts the most recent title from a reverse-chronological
// experience list: the first non-empty title wins.
func LatestTitle(exps []types.Experience) string {
	for _, exp := range exps {
		if strings.TrimSpace(exp.Title) != "" {
			return exp.Title
		}
	}
	return ""
}

// Completeness measures how many of the candidate's profile fields are
// populated, normalized to 0-1.
func Completeness(p types.Profile) float64 {
	fields := []bool{
		strings.TrimSpace(p.Summary) != "",
		len(p.Skills) > 0,
		len(p.Experience) > 0,
		len(p.Education) > 0,
		len(p.Locations) > 0,
		len(p.Languages) > 0,
		len(p.Interests) > 0,
		len(p.SocialLinks) > 0,
	}

	populated := 0
	for _, ok := range fields {
		if ok {
			populated++
		}
	}
	return float64(populated) / float64(len(fields))
}

// SharedSchool returns 1.0 when the query and candidate education lists share
// an institution (case-insensitive substring either way), else 0.
func SharedSchool(query, candidate []types.Education) float64 {
	for _, q := range query {
		qInst := strings.ToLower(strings.TrimSpace(q.Institution))
		if qInst == "" {
			continue
		}
		for _, c := range candidate {
			cInst := strings.ToLower(strings.TrimSpace(c.Institution))
			if cInst == "" {
				continue
			}
			if strings.Contains(cInst, qInst) || strings.Contains(qInst, cInst) {
				return 1.0
			}
		}
	}
	return 0
}

// DegreeFieldSimilarity compares the first non-empty degree field of each
// education list with a token-set similarity, 0-1.
func DegreeFieldSimilarity(query, candidate []types.Education) float64 {
	qField := firstField(query)
	cField := firstField(candidate)
	if qField == "" || cField == "" {
		return 0
	}
	return float64(fuzzy.TokenSetRatio(strings.ToLower(qField), strings.ToLower(cField))) / 100.0
}

func firstField(edu []types.Education) string {
	for _, e := range edu {
		if strings.TrimSpace(e.Field) != "" {
			return e.Field
		}
	}
	return ""
}
