// Package match orchestrates the profile-matching pipeline: normalize the
// query profile, plan and run the store query, merge candidate sources, score
// and rank, then project the result to its UI-safe shape.
package match

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tyler/people-match/internal/normalize"
	"github.com/tyler/people-match/internal/scoring"
	"github.com/tyler/people-match/internal/types"
)

// Store is the profile-store boundary the engine queries. The store receives
// an already-normalized profile and applies the containment, ordered-pattern
// and similarity predicates itself.
type Store interface {
	SearchProfiles(ctx context.Context, p types.Profile) ([]types.Candidate, error)
}

// Enhancer optionally decorates the top matches after scoring, e.g. with LLM
// generated fit summaries. It must never change ordering or scores, and a
// failure must degrade to the unenhanced views.
type Enhancer interface {
	EnhanceMatches(ctx context.Context, profile types.MatchView, matches []types.MatchView, query string) []types.MatchView
}

// Engine runs matching requests. It holds no per-request state and is safe
// for concurrent use once constructed.
type Engine struct {
	store      Store
	normalizer *normalize.Normalizer
	enhancer   Enhancer
	log        *zap.Logger
}

// New creates an Engine. The enhancer may be nil, in which case enhancement
// is skipped entirely.
func New(store Store, normalizer *normalize.Normalizer, enhancer Enhancer, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		store:      store,
		normalizer: normalizer,
		enhancer:   enhancer,
		log:        log,
	}
}

// Match executes a matching request end to end. A store failure fails the
// whole request with no partial results; zero candidates after filtering is a
// successful empty response.
func (e *Engine) Match(ctx context.Context, req types.MatchRequest) (*types.MatchResponse, error) {
	log := e.log.With(zap.String("company_id", req.CompanyID))
	log.Info("match request started")

	normalized := e.normalizer.Normalize(req.Profile)

	sqlCandidates, err := e.store.SearchProfiles(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("profile store query failed: %w", err)
	}
	for i := range sqlCandidates {
		// SQL-sourced candidates carry no vector signal; attach the baseline.
		sqlCandidates[i].SimilarityScore = scoring.DefaultVectorScore
	}
	log.Info("store query complete", zap.Int("sql_matches", len(sqlCandidates)))

	// Vector search is an extension point; the merged set currently only
	// contains SQL results. SQL stays authoritative on identity conflicts.
	var vectorCandidates []types.Candidate
	combined := scoring.Merge(vectorCandidates, sqlCandidates)
	log.Info("candidate sources merged", zap.Int("combined", len(combined)))

	ranked := scoring.Rank(req.Profile, combined, req.CompanyID)
	log.Info("hybrid scoring complete", zap.Int("ranked", len(ranked)))
	if len(ranked) > 0 {
		log.Debug("top match",
			zap.String("user_id", ranked[0].UserID),
			zap.Float64("hybrid_score", ranked[0].HybridScore))
	}

	matches := make([]types.MatchView, 0, len(ranked))
	for _, candidate := range ranked {
		matches = append(matches, Project(candidate))
	}
	profileView := ProjectProfile(req.Profile)
	log.Info("matches projected", zap.Int("matches", len(matches)))

	if e.enhancer != nil && len(matches) > 0 {
		matches = e.enhancer.EnhanceMatches(ctx, profileView, matches, req.Query)
		log.Info("matches enhanced", zap.Int("matches", len(matches)))
	}

	log.Info("match request complete", zap.Int("total_matches", len(matches)))
	return &types.MatchResponse{
		Profile:      profileView,
		Matches:      matches,
		TotalMatches: len(matches),
		Message:      "Profile processed and matches found",
	}, nil
}
