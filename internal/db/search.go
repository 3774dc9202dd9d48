package db

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tyler/people-match/internal/pattern"
	"github.com/tyler/people-match/internal/types"
)

// -----------------------------------------------------------------------------
// Profile Search (query planner)
// -----------------------------------------------------------------------------

// maxSearchResults is the hard result-set ceiling, applied at the query
// level, not just at presentation.
const maxSearchResults = 30

// titleSimilarityThreshold is the minimum pg_trgm similarity between the
// query title and any candidate experience title.
const titleSimilarityThreshold = 0.5

// searchTimeout bounds the store query; ordered-pattern matching cost scales
// with the candidate table size.
const searchTimeout = 10 * time.Second

// SearchProfiles composes and runs the candidate search query for an
// already-normalized query profile.
//
// Filters stack as follows: every step keyword must appear as a substring of
// company_history (cheap ILIKE pre-filter narrowing the search space), the
// ordered sequential pattern must match the history, at least one candidate
// experience title must be trigram-similar to the query's first title, and at
// least one candidate education institution must contain the query's first
// institution.
func (db *DB) SearchProfiles(ctx context.Context, p types.Profile) ([]types.Candidate, error) {
	query, args := buildSearchQuery(p)

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("profile search query failed: %w", err)
	}
	defer rows.Close()

	var candidates []types.Candidate
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			// One malformed row must not abort the whole batch.
			continue
		}
		candidates = append(candidates, types.Candidate{Profile: profile})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("profile search failed reading rows: %w", err)
	}

	return candidates, nil
}

// buildSearchQuery renders the search SQL and its arguments. Split out so the
// composed filters are testable without a live store.
func buildSearchQuery(p types.Profile) (string, []any) {
	var (
		sb   strings.Builder
		args []any
	)

	sb.WriteString(`SELECT ` + profileColumns + ` FROM profiles WHERE 1=1`)

	seq := pattern.FromExperience(p.Experience)

	// Containment pre-filter: necessary but not sufficient.
	for _, keyword := range seq.Keywords() {
		args = append(args, "%"+keyword+"%")
		sb.WriteString(` AND company_history ILIKE $` + strconv.Itoa(len(args)))
	}

	// Ordering is enforced by the sequential pattern.
	if !seq.Empty() {
		args = append(args, seq.Regex())
		sb.WriteString(` AND company_history ~* $` + strconv.Itoa(len(args)))
	}

	if title := firstExperienceTitle(p); title != "" {
		args = append(args, title)
		sb.WriteString(fmt.Sprintf(
			` AND EXISTS (SELECT 1 FROM jsonb_array_elements(experience) AS exp_element`+
				` WHERE similarity(exp_element->>'title', $%d) >= %g)`,
			len(args), titleSimilarityThreshold))
	}

	if institution := firstInstitution(p); institution != "" {
		args = append(args, "%"+institution+"%")
		sb.WriteString(` AND EXISTS (SELECT 1 FROM jsonb_array_elements(education) AS edu_element` +
			` WHERE edu_element->>'institution' ILIKE $` + strconv.Itoa(len(args)) + `)`)
	}

	sb.WriteString(` LIMIT ` + strconv.Itoa(maxSearchResults))

	return sb.String(), args
}

func firstExperienceTitle(p types.Profile) string {
	if len(p.Experience) == 0 {
		return ""
	}
	return strings.TrimSpace(p.Experience[0].Title)
}

func firstInstitution(p types.Profile) string {
	if len(p.Education) == 0 {
		return ""
	}
	return strings.TrimSpace(p.Education[0].Institution)
}
