// Package types provides type definitions for structured data used throughout the people-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Experience represents one entry in a profile's work history.
// The list is assumed reverse-chronological: index 0 is the most recent role.
type Experience struct {
	// Company is the free-text company name as scraped or entered.
	Company string `json:"company,omitempty"`
	// Keywords is the normalized, order-irrelevant keyword set derived from
	// Company by the fuzzy normalizer. Empty until normalization runs.
	Keywords []string `json:"company_keywords,omitempty"`
	// CompanyName is the display name used when this entry is the active one.
	CompanyName string `json:"company_name,omitempty"`
	Title       string `json:"title,omitempty"`
	// ActiveExperience is 1 when this is the candidate's current position.
	ActiveExperience int `json:"active_experience,omitempty"`
}

// Education represents one entry in a profile's education history.
type Education struct {
	Institution string `json:"institution,omitempty"`
	Field       string `json:"field,omitempty"`
}

// Profile is a candidate or query record. Missing optional fields are the
// zero value throughout; nothing in the matching pipeline may panic on them.
type Profile struct {
	UserID    string `json:"user_id,omitempty"`
	FullName  string `json:"full_name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`

	Experience []Experience `json:"experience,omitempty"`
	Education  []Education  `json:"education,omitempty"`

	Skills    []string `json:"skills,omitempty"`
	Interests []string `json:"interests,omitempty"`
	Hobbies   []string `json:"hobbies,omitempty"`
	Languages []string `json:"languages,omitempty"`
	Locations []string `json:"locations,omitempty"`
	Cities    []string `json:"cities,omitempty"`

	Summary     string            `json:"summary,omitempty"`
	SocialLinks map[string]string `json:"social_links,omitempty"`

	// CompanyHistory is the serialized, comma-separated concatenation of the
	// profile's job entries. Stored rows carry it for pattern matching; query
	// profiles leave it empty.
	CompanyHistory string `json:"company_history,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

// Candidate is a stored profile plus the signals derived during matching.
type Candidate struct {
	Profile

	// SimilarityScore is the baseline relevance signal attached before hybrid
	// scoring. When no vector search supplied one it defaults to a fixed
	// baseline (see scoring.DefaultVectorScore).
	SimilarityScore float64 `json:"similarity_score"`
	// HybridScore is only meaningful after scoring.
	HybridScore float64 `json:"hybrid_score"`
}

// Clone returns a deep copy of the profile. The normalizer mutates its copy
// in place, so shared slices and maps must not leak back to the caller.
func (p Profile) Clone() Profile {
	out := p

	if p.Experience != nil {
		out.Experience = make([]Experience, len(p.Experience))
		for i, exp := range p.Experience {
			out.Experience[i] = exp
			if exp.Keywords != nil {
				out.Experience[i].Keywords = append([]string(nil), exp.Keywords...)
			}
		}
	}
	if p.Education != nil {
		out.Education = append([]Education(nil), p.Education...)
	}

	out.Skills = cloneStrings(p.Skills)
	out.Interests = cloneStrings(p.Interests)
	out.Hobbies = cloneStrings(p.Hobbies)
	out.Languages = cloneStrings(p.Languages)
	out.Locations = cloneStrings(p.Locations)
	out.Cities = cloneStrings(p.Cities)

	if p.SocialLinks != nil {
		out.SocialLinks = make(map[string]string, len(p.SocialLinks))
		for k, v := range p.SocialLinks {
			out.SocialLinks[k] = v
		}
	}
	if p.Metadata != nil {
		out.Metadata = make(map[string]any, len(p.Metadata))
		for k, v := range p.Metadata {
			out.Metadata[k] = v
		}
	}

	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
