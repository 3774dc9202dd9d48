package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/tyler/people-match/internal/types"
)

// Weights for the hybrid composite score. Fixed by design; a future semantic
// signal is an additive extension point, not a retrofit into these.
const (
	vectorWeight       = 0.40
	skillWeight        = 0.20
	titleWeight        = 0.10
	locationWeight     = 0.10
	companyWeight      = 0.05
	completenessWeight = 0.05
	schoolWeight       = 0.05
	degreeWeight       = 0.05
)

// DefaultVectorScore is the baseline relevance signal attached to candidates
// that arrive without an upstream vector-search score.
const DefaultVectorScore = 0.7

// MaxMatches caps the ranked result list. The query layer applies the same
// numeric cap at retrieval; both caps are kept deliberately.
const MaxMatches = 30

// Merge combines a vector-search result set with the SQL result set, keyed by
// user identity. On conflict the SQL-sourced record is authoritative and
// replaces the vector record in place; unseen SQL records append in retrieval
// order.
func Merge(vector, sql []types.Candidate) []types.Candidate {
	combined := make([]types.Candidate, 0, len(vector)+len(sql))
	index := make(map[string]int, len(vector))

	for _, c := range vector {
		index[c.UserID] = len(combined)
		combined = append(combined, c)
	}
	for _, c := range sql {
		if i, ok := index[c.UserID]; ok {
			combined[i] = c
			continue
		}
		index[c.UserID] = len(combined)
		combined = append(combined, c)
	}

	return combined
}

// Rank computes the hybrid score for every candidate, sorts descending and
// truncates to the top MaxMatches. Ties keep their input order. A candidate
// with missing optional fields scores 0 on the affected signals; one
// malformed candidate never prevents scoring of the rest.
func Rank(query types.Profile, candidates []types.Candidate, biasCompany string) []types.Candidate {
	querySkills := query.Skills
	queryLocation := firstLocation(query.Locations)
	queryTitle := LatestTitle(query.Experience)

	ranked := make([]types.Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		candidate.HybridScore = round4(hybridScore(query, querySkills, queryLocation, queryTitle, candidate, biasCompany))
		ranked = append(ranked, candidate)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].HybridScore > ranked[j].HybridScore
	})

	if len(ranked) > MaxMatches {
		ranked = ranked[:MaxMatches]
	}
	return ranked
}

func hybridScore(query types.Profile, querySkills []string, queryLocation, queryTitle string, candidate types.Candidate, biasCompany string) float64 {
	vectorScore := candidate.SimilarityScore
	if vectorScore == 0 {
		vectorScore = DefaultVectorScore
	}

	skillScore := Jaccard(querySkills, candidate.Skills)
	titleScore := TitleSimilarity(queryTitle, LatestTitle(candidate.Experience))

	locationBonus := 0.0
	if queryLocation != "" && queryLocation == firstLocation(candidate.Locations) {
		locationBonus = 1.0
	}

	companyBonus := 0.0
	if biasCompany != "" {
		bias := strings.ToLower(biasCompany)
		for _, job := range candidate.Experience {
			if strings.Contains(strings.ToLower(job.Company), bias) {
				companyBonus = 1.0
				break
			}
		}
	}

	return vectorWeight*vectorScore +
		skillWeight*skillScore +
		titleWeight*titleScore +
		locationWeight*locationBonus +
		companyWeight*companyBonus +
		completenessWeight*Completeness(candidate.Profile) +
		schoolWeight*SharedSchool(query.Education, candidate.Education) +
		degreeWeight*DegreeFieldSimilarity(query.Education, candidate.Education)
}

// Location equality is exact and case-sensitive as stored.
func firstLocation(locations []string) string {
	if len(locations) == 0 {
		return ""
	}
	return locations[0]
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
