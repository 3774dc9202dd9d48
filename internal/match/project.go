package match

import (
	"github.com/tyler/people-match/internal/types"
)

// unknownCompany is the company_id reported when no experience entry is
// flagged as the candidate's active position.
const unknownCompany = "unknown"

// Project strips a candidate down to the fixed UI-safe field subset. Raw
// similarity internals, unnormalized company text and metadata never leave
// the core.
func Project(c types.Candidate) types.MatchView {
	view := projectProfile(c.Profile)
	view.HybridScore = c.HybridScore
	return view
}

// ProjectProfile projects the query profile itself; its hybrid score is
// always zero since it is never scored.
func ProjectProfile(p types.Profile) types.MatchView {
	return projectProfile(p)
}

func projectProfile(p types.Profile) types.MatchView {
	currentCompany := unknownCompany
	for _, exp := range p.Experience {
		if exp.ActiveExperience == 1 && exp.CompanyName != "" {
			currentCompany = exp.CompanyName
			break
		}
	}

	experience := make([]types.ProjectedExperience, 0, len(p.Experience))
	for _, exp := range p.Experience {
		experience = append(experience, types.ProjectedExperience{
			Company: exp.Company,
			Title:   exp.Title,
		})
	}

	education := make([]types.ProjectedEducation, 0, len(p.Education))
	for _, edu := range p.Education {
		education = append(education, types.ProjectedEducation{
			Institution: edu.Institution,
			Field:       edu.Field,
		})
	}

	var linkedin *string
	if p.SocialLinks != nil {
		if url, ok := p.SocialLinks["linkedin"]; ok && url != "" {
			linkedin = &url
		}
	}

	return types.MatchView{
		FullName:   p.FullName,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		UserID:     p.UserID,
		CompanyID:  currentCompany,
		Experience: experience,
		Summary:    p.Summary,
		Education:  education,
		Skills:     orEmpty(p.Skills),
		Interests:  orEmpty(p.Interests),
		Hobbies:    orEmpty(p.Hobbies),
		Languages:  orEmpty(p.Languages),
		Locations:  orEmpty(p.Locations),
		Cities:     orEmpty(p.Cities),
		LinkedIn:   linkedin,
	}
}

// orEmpty keeps list fields as [] rather than null in the JSON payload.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
