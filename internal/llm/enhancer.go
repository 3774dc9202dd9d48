package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tyler/people-match/internal/types"
)

// maxConcurrentEnhancements bounds parallel model calls per request.
const maxConcurrentEnhancements = 4

// maxSummaryLength caps the candidate summary included in the prompt.
const maxSummaryLength = 600

// Enhancer decorates projected matches with shortened summaries and a short
// explanation of why the candidate fits the query profile. It never changes
// scores or ordering, and a per-match failure leaves that match unchanged.
type Enhancer struct {
	client Client
	log    *zap.Logger
}

// NewEnhancer creates an Enhancer over an LLM client.
func NewEnhancer(client Client, log *zap.Logger) *Enhancer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Enhancer{client: client, log: log}
}

type enhancement struct {
	Summary string `json:"summary"`
	Fit     string `json:"fit_explanation"`
}

// EnhanceMatches runs the enhancement prompt for each match with bounded
// concurrency. Failed matches keep their original view.
func (e *Enhancer) EnhanceMatches(ctx context.Context, profile types.MatchView, matches []types.MatchView, query string) []types.MatchView {
	out := make([]types.MatchView, len(matches))
	copy(out, matches)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEnhancements)

	for i := range out {
		g.Go(func() error {
			enhanced, err := e.enhanceOne(ctx, profile, out[i], query)
			if err != nil {
				e.log.Warn("match enhancement failed",
					zap.String("user_id", out[i].UserID),
					zap.Error(err))
				return nil // degrade to the unenhanced view
			}
			out[i].Summary = enhanced.Summary
			out[i].FitSummary = enhanced.Fit
			return nil
		})
	}

	// Workers only ever return nil; the group is used for bounding and
	// context propagation.
	_ = g.Wait()

	return out
}

func (e *Enhancer) enhanceOne(ctx context.Context, profile, match types.MatchView, query string) (*enhancement, error) {
	raw, err := e.client.GenerateJSON(ctx, buildEnhancementPrompt(profile, match, query))
	if err != nil {
		return nil, err
	}

	var enh enhancement
	if err := json.Unmarshal([]byte(raw), &enh); err != nil {
		return nil, fmt.Errorf("failed to parse enhancement JSON: %w", err)
	}
	if enh.Summary == "" {
		enh.Summary = match.Summary
	}
	return &enh, nil
}

func buildEnhancementPrompt(profile, match types.MatchView, query string) string {
	var sb strings.Builder

	sb.WriteString("You are summarizing a candidate for a recruiter.\n\n")
	sb.WriteString("Searcher's ideal candidate:\n")
	writeViewSummary(&sb, profile)
	if query != "" {
		sb.WriteString("Search query: " + query + "\n")
	}
	sb.WriteString("\nCandidate:\n")
	writeViewSummary(&sb, match)

	sb.WriteString("\nRespond with JSON: {\"summary\": \"<candidate summary in at most two sentences>\", ")
	sb.WriteString("\"fit_explanation\": \"<one sentence on why this candidate fits>\"}\n")

	return sb.String()
}

func writeViewSummary(sb *strings.Builder, view types.MatchView) {
	if view.FullName != "" {
		sb.WriteString("Name: " + view.FullName + "\n")
	}
	if view.CompanyID != "" && view.CompanyID != "unknown" {
		sb.WriteString("Current company: " + view.CompanyID + "\n")
	}
	for _, exp := range view.Experience {
		sb.WriteString(fmt.Sprintf("- %s at %s\n", exp.Title, exp.Company))
	}
	if len(view.Skills) > 0 {
		sb.WriteString("Skills: " + strings.Join(view.Skills, ", ") + "\n")
	}
	if view.Summary != "" {
		summary := view.Summary
		if len(summary) > maxSummaryLength {
			summary = summary[:maxSummaryLength]
		}
		sb.WriteString("Summary: " + summary + "\n")
	}
}
