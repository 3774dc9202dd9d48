package match

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tyler/people-match/internal/normalize"
	"github.com/tyler/people-match/internal/scoring"
	"github.com/tyler/people-match/internal/types"
	"github.com/tyler/people-match/internal/vocab"
)

type fakeStore struct {
	candidates []types.Candidate
	err        error

	gotProfile types.Profile
}

func (f *fakeStore) SearchProfiles(_ context.Context, p types.Profile) ([]types.Candidate, error) {
	f.gotProfile = p
	return f.candidates, f.err
}

type fakeEnhancer struct {
	called bool
}

func (f *fakeEnhancer) EnhanceMatches(_ context.Context, _ types.MatchView, matches []types.MatchView, _ string) []types.MatchView {
	f.called = true
	for i := range matches {
		matches[i].FitSummary = "enhanced"
	}
	return matches
}

func testNormalizer() *normalize.Normalizer {
	return normalize.New(vocab.New([]string{"goldman_sachs", "google"}), nil)
}

func TestEngineMatch_EndToEnd(t *testing.T) {
	store := &fakeStore{
		candidates: []types.Candidate{
			{Profile: types.Profile{UserID: "c1", Skills: []string{"go"}}},
			{Profile: types.Profile{UserID: "c2"}},
		},
	}
	engine := New(store, testNormalizer(), nil, zap.NewNop())

	req := types.MatchRequest{
		Profile: types.Profile{
			Experience: []types.Experience{{Company: "goldman sachs", Title: "analyst"}},
			Skills:     []string{"go"},
		},
	}

	resp, err := engine.Match(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalMatches)
	assert.Equal(t, "Profile processed and matches found", resp.Message)
	assert.Equal(t, "c1", resp.Matches[0].UserID)
	assert.Greater(t, resp.Matches[0].HybridScore, resp.Matches[1].HybridScore)

	// The store receives the normalized profile.
	require.Len(t, store.gotProfile.Experience, 1)
	assert.ElementsMatch(t, []string{"goldman", "sachs"}, store.gotProfile.Experience[0].Keywords)
}

func TestEngineMatch_AttachesBaselineVectorScore(t *testing.T) {
	store := &fakeStore{candidates: []types.Candidate{{Profile: types.Profile{UserID: "c1"}}}}
	engine := New(store, testNormalizer(), nil, nil)

	resp, err := engine.Match(context.Background(), types.MatchRequest{})
	require.NoError(t, err)

	require.Len(t, resp.Matches, 1)
	assert.InDelta(t, 0.4*scoring.DefaultVectorScore, resp.Matches[0].HybridScore, 1e-9)
}

func TestEngineMatch_EmptyResultIsSuccess(t *testing.T) {
	engine := New(&fakeStore{}, testNormalizer(), nil, nil)

	resp, err := engine.Match(context.Background(), types.MatchRequest{})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.TotalMatches)
	assert.Empty(t, resp.Matches)
	assert.Equal(t, "Profile processed and matches found", resp.Message)
}

func TestEngineMatch_StoreFailurePropagates(t *testing.T) {
	engine := New(&fakeStore{err: errors.New("connection refused")}, testNormalizer(), nil, nil)

	resp, err := engine.Match(context.Background(), types.MatchRequest{})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "profile store query failed")
}

func TestEngineMatch_TruncatesToMaxMatches(t *testing.T) {
	var candidates []types.Candidate
	for i := 0; i < 40; i++ {
		candidates = append(candidates, types.Candidate{Profile: types.Profile{UserID: fmt.Sprintf("u%02d", i)}})
	}
	engine := New(&fakeStore{candidates: candidates}, testNormalizer(), nil, nil)

	resp, err := engine.Match(context.Background(), types.MatchRequest{})
	require.NoError(t, err)

	assert.Equal(t, scoring.MaxMatches, resp.TotalMatches)
	assert.Len(t, resp.Matches, scoring.MaxMatches)
}

func TestEngineMatch_EnhancerRuns(t *testing.T) {
	enhancer := &fakeEnhancer{}
	store := &fakeStore{candidates: []types.Candidate{{Profile: types.Profile{UserID: "c1"}}}}
	engine := New(store, testNormalizer(), enhancer, nil)

	resp, err := engine.Match(context.Background(), types.MatchRequest{Query: "fintech analysts"})
	require.NoError(t, err)

	assert.True(t, enhancer.called)
	assert.Equal(t, "enhanced", resp.Matches[0].FitSummary)
}

func TestEngineMatch_EnhancerSkippedOnEmptyMatches(t *testing.T) {
	enhancer := &fakeEnhancer{}
	engine := New(&fakeStore{}, testNormalizer(), enhancer, nil)

	_, err := engine.Match(context.Background(), types.MatchRequest{})
	require.NoError(t, err)

	assert.False(t, enhancer.called)
}
