package types

import (
	"github.com/go-playground/validator/v10"
)

// MatchRequest is the inbound payload for a candidate matching request.
type MatchRequest struct {
	// Profile is the ideal-candidate profile to match against the population.
	Profile Profile `json:"profile" validate:"required"`
	// Query is an optional free-text search string. Scoring ignores it; it is
	// passed to the optional LLM enhancer for explanation context and reserved
	// as a future semantic-search signal.
	Query string `json:"query,omitempty"`
	// CompanyID optionally biases scoring toward candidates whose work history
	// mentions this company.
	CompanyID string `json:"company_id,omitempty"`
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ProjectedExperience is the UI-safe view of one work-history entry.
type ProjectedExperience struct {
	Company string `json:"company"`
	Title   string `json:"title"`
}

// ProjectedEducation is the UI-safe view of one education entry.
type ProjectedEducation struct {
	Institution string `json:"institution"`
	Field       string `json:"field"`
}

// MatchView is the fixed, UI-safe field subset returned for the query profile
// and every ranked candidate. Nothing outside these fields may leave the core.
type MatchView struct {
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserID    string `json:"user_id"`
	// CompanyID is the candidate's currently-active company, or "unknown".
	CompanyID  string                `json:"company_id"`
	Experience []ProjectedExperience `json:"experience"`
	Summary    string                `json:"summary"`
	Education  []ProjectedEducation  `json:"education"`
	Skills     []string              `json:"skills"`
	Interests  []string              `json:"interests"`
	Hobbies    []string              `json:"hobbies"`
	Languages  []string              `json:"languages"`
	Locations  []string              `json:"locations"`
	Cities     []string              `json:"cities"`

	HybridScore float64 `json:"hybrid_score"`
	LinkedIn    *string `json:"linkedin"`

	// FitSummary is filled in by the optional LLM enhancement step. Empty when
	// enhancement is disabled or fails for this match.
	FitSummary string `json:"fit_summary,omitempty"`
}

// MatchResponse is the outbound payload for a matching request.
type MatchResponse struct {
	Profile      MatchView   `json:"profile"`
	Matches      []MatchView `json:"matches"`
	TotalMatches int         `json:"total_matches"`
	Message      string      `json:"message"`
}

// UpsertProfileRequest is the inbound payload for creating or updating a
// stored profile, keyed on user_id.
type UpsertProfileRequest struct {
	Profile
}

// Validate validates the UpsertProfileRequest using the validator.
func (r *UpsertProfileRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.UserID == "" {
		return &FieldRequiredError{Field: "user_id"}
	}
	return nil
}

// FieldRequiredError indicates a required field was missing from a request.
type FieldRequiredError struct {
	Field string
}

func (e *FieldRequiredError) Error() string {
	return "required field missing: " + e.Field
}
