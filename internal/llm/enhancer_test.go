package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyler/people-match/internal/types"
)

type fakeClient struct {
	mu        sync.Mutex
	responses map[string]string // keyed by substring of the prompt
	err       error
	calls     int
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}
	for key, resp := range f.responses {
		if key == "" || strings.Contains(prompt, key) {
			return resp, nil
		}
	}
	return `{"summary": "generated summary", "fit_explanation": "strong overlap"}`, nil
}

func (f *fakeClient) Close() error { return nil }

func TestEnhanceMatches_FillsFitSummary(t *testing.T) {
	enhancer := NewEnhancer(&fakeClient{}, nil)

	matches := []types.MatchView{
		{UserID: "u1", Summary: "original"},
		{UserID: "u2"},
	}

	out := enhancer.EnhanceMatches(context.Background(), types.MatchView{}, matches, "fintech")

	require.Len(t, out, 2)
	assert.Equal(t, "generated summary", out[0].Summary)
	assert.Equal(t, "strong overlap", out[0].FitSummary)
	assert.Equal(t, "strong overlap", out[1].FitSummary)
}

func TestEnhanceMatches_FailureKeepsOriginalView(t *testing.T) {
	enhancer := NewEnhancer(&fakeClient{err: errors.New("quota exceeded")}, nil)

	matches := []types.MatchView{{UserID: "u1", Summary: "original", HybridScore: 0.9}}

	out := enhancer.EnhanceMatches(context.Background(), types.MatchView{}, matches, "")

	require.Len(t, out, 1)
	assert.Equal(t, "original", out[0].Summary)
	assert.Empty(t, out[0].FitSummary)
	assert.Equal(t, 0.9, out[0].HybridScore)
}

func TestEnhanceMatches_MalformedJSONKeepsOriginalView(t *testing.T) {
	client := &fakeClient{responses: map[string]string{"": "not json at all"}}
	enhancer := NewEnhancer(client, nil)

	matches := []types.MatchView{{UserID: "u1", Summary: "original"}}

	out := enhancer.EnhanceMatches(context.Background(), types.MatchView{}, matches, "")

	assert.Equal(t, "original", out[0].Summary)
	assert.Empty(t, out[0].FitSummary)
}

func TestEnhanceMatches_DoesNotReorder(t *testing.T) {
	enhancer := NewEnhancer(&fakeClient{}, nil)

	matches := []types.MatchView{
		{UserID: "first", HybridScore: 0.3},
		{UserID: "second", HybridScore: 0.9},
	}

	out := enhancer.EnhanceMatches(context.Background(), types.MatchView{}, matches, "")

	assert.Equal(t, "first", out[0].UserID)
	assert.Equal(t, "second", out[1].UserID)
	assert.Equal(t, 0.3, out[0].HybridScore)
}

func TestEnhanceMatches_CallsModelPerMatch(t *testing.T) {
	client := &fakeClient{}
	enhancer := NewEnhancer(client, nil)

	matches := make([]types.MatchView, 7)
	_ = enhancer.EnhanceMatches(context.Background(), types.MatchView{}, matches, "")

	assert.Equal(t, 7, client.calls)
}

func TestBuildEnhancementPrompt_IncludesQueryAndCandidate(t *testing.T) {
	profile := types.MatchView{FullName: "Ideal Person", Skills: []string{"go"}}
	match := types.MatchView{
		FullName:  "Jane Doe",
		CompanyID: "Acme",
		Experience: []types.ProjectedExperience{
			{Company: "Acme Corp", Title: "Engineer"},
		},
	}

	prompt := buildEnhancementPrompt(profile, match, "backend engineers in fintech")

	assert.Contains(t, prompt, "Ideal Person")
	assert.Contains(t, prompt, "Jane Doe")
	assert.Contains(t, prompt, "Engineer at Acme Corp")
	assert.Contains(t, prompt, "backend engineers in fintech")
	assert.Contains(t, prompt, "fit_explanation")
}
