package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tyler/people-match/internal/types"
)

// -----------------------------------------------------------------------------
// Profile Methods
// -----------------------------------------------------------------------------

// UpsertProfile inserts or updates a profile record keyed on user_id. The id
// and user_id columns are never overwritten on conflict; updated_at always
// advances.
func (db *DB) UpsertProfile(ctx context.Context, p types.Profile) error {
	if p.UserID == "" {
		return fmt.Errorf("profile user_id cannot be empty")
	}

	experienceJSON, err := json.Marshal(orEmptySliceExp(p.Experience))
	if err != nil {
		return fmt.Errorf("failed to marshal experience: %w", err)
	}
	educationJSON, err := json.Marshal(orEmptySliceEdu(p.Education))
	if err != nil {
		return fmt.Errorf("failed to marshal education: %w", err)
	}
	socialJSON, err := json.Marshal(orEmptyMap(p.SocialLinks))
	if err != nil {
		return fmt.Errorf("failed to marshal social links: %w", err)
	}
	metadataJSON, err := json.Marshal(orEmptyAnyMap(p.Metadata))
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (
			user_id, full_name, first_name, last_name,
			company_history, experience, education,
			skills, interests, hobbies, languages, locations, cities,
			summary, social_links, profile_metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			company_history = EXCLUDED.company_history,
			experience = EXCLUDED.experience,
			education = EXCLUDED.education,
			skills = EXCLUDED.skills,
			interests = EXCLUDED.interests,
			hobbies = EXCLUDED.hobbies,
			languages = EXCLUDED.languages,
			locations = EXCLUDED.locations,
			cities = EXCLUDED.cities,
			summary = EXCLUDED.summary,
			social_links = EXCLUDED.social_links,
			profile_metadata = EXCLUDED.profile_metadata,
			updated_at = NOW()`,
		p.UserID, p.FullName, p.FirstName, p.LastName,
		CompanyHistory(p), experienceJSON, educationJSON,
		orEmptyStrings(p.Skills), orEmptyStrings(p.Interests), orEmptyStrings(p.Hobbies),
		orEmptyStrings(p.Languages), orEmptyStrings(p.Locations), orEmptyStrings(p.Cities),
		p.Summary, socialJSON, metadataJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile %s: %w", p.UserID, err)
	}
	return nil
}

// GetProfileByUserID retrieves a stored profile, or nil when absent.
func (db *DB) GetProfileByUserID(ctx context.Context, userID string) (*types.Profile, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`,
		userID,
	)

	p, err := scanProfile(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", userID, err)
	}
	return &p, nil
}

func orEmptyStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptySliceExp(s []types.Experience) []types.Experience {
	if s == nil {
		return []types.Experience{}
	}
	return s
}

func orEmptySliceEdu(s []types.Education) []types.Education {
	if s == nil {
		return []types.Education{}
	}
	return s
}

func orEmptyMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func orEmptyAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
