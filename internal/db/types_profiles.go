package db

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tyler/people-match/internal/types"
)

// profileColumns is the column list shared by every profile SELECT.
const profileColumns = `user_id, full_name, first_name, last_name,
	company_history, experience, education,
	skills, interests, hobbies, languages, locations, cities,
	summary, social_links, profile_metadata`

// scanProfile decodes one profile row. Malformed jsonb in a single row is
// surfaced as an error for that row only; callers decide whether to skip it.
func scanProfile(row interface{ Scan(dest ...any) error }) (types.Profile, error) {
	var (
		p              types.Profile
		experienceJSON []byte
		educationJSON  []byte
		socialJSON     []byte
		metadataJSON   []byte
	)

	err := row.Scan(
		&p.UserID, &p.FullName, &p.FirstName, &p.LastName,
		&p.CompanyHistory, &experienceJSON, &educationJSON,
		&p.Skills, &p.Interests, &p.Hobbies, &p.Languages, &p.Locations, &p.Cities,
		&p.Summary, &socialJSON, &metadataJSON,
	)
	if err != nil {
		return types.Profile{}, err
	}

	if len(experienceJSON) > 0 {
		if err := json.Unmarshal(experienceJSON, &p.Experience); err != nil {
			return types.Profile{}, fmt.Errorf("failed to decode experience: %w", err)
		}
	}
	if len(educationJSON) > 0 {
		if err := json.Unmarshal(educationJSON, &p.Education); err != nil {
			return types.Profile{}, fmt.Errorf("failed to decode education: %w", err)
		}
	}
	if len(socialJSON) > 0 {
		if err := json.Unmarshal(socialJSON, &p.SocialLinks); err != nil {
			return types.Profile{}, fmt.Errorf("failed to decode social links: %w", err)
		}
	}
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &p.Metadata); err != nil {
			return types.Profile{}, fmt.Errorf("failed to decode metadata: %w", err)
		}
	}

	return p, nil
}

// CompanyHistory serializes a profile's job entries into the comma-separated
// history string the pattern matcher runs against. An explicit history on the
// profile wins over the derived one.
func CompanyHistory(p types.Profile) string {
	if p.CompanyHistory != "" {
		return p.CompanyHistory
	}

	var entries []string
	for _, exp := range p.Experience {
		if strings.TrimSpace(exp.Company) == "" {
			continue
		}
		entries = append(entries, exp.Company)
	}
	return strings.Join(entries, ", ")
}
