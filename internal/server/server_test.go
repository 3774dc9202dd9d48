package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/tyler/people-match/internal/types"
)

// fakeMatcher returns a canned response or error.
type fakeMatcher struct {
	resp *types.MatchResponse
	err  error

	gotReq types.MatchRequest
}

func (f *fakeMatcher) Match(_ context.Context, req types.MatchRequest) (*types.MatchResponse, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

// fakeStore implements profileStore in memory.
type fakeStore struct {
	profiles  map[string]types.Profile
	upsertErr error
	getErr    error
	pingErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{profiles: make(map[string]types.Profile)}
}

func (f *fakeStore) UpsertProfile(_ context.Context, p types.Profile) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeStore) GetProfileByUserID(_ context.Context, userID string) (*types.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeStore) Ping(_ context.Context) error {
	return f.pingErr
}

// newTestServer builds a server around fakes, bypassing New's database wiring.
func newTestServer(engine matcher, store profileStore) *Server {
	if store == nil {
		store = newFakeStore()
	}
	return &Server{
		store:  store,
		engine: engine,
		log:    zap.NewNop(),
	}
}

func TestWithLogging_RequestID(t *testing.T) {
	s := newTestServer(&fakeMatcher{}, nil)
	handler := s.routes()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected generated X-Request-ID header")
	}

	// A caller-supplied id is echoed back unchanged.
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("X-Request-ID = %q, want %q", got, "req-123")
	}
}

func TestRoutes_CORSPreflight(t *testing.T) {
	s := newTestServer(&fakeMatcher{}, nil)
	handler := s.routes()

	req := httptest.NewRequest(http.MethodOptions, "/match", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("preflight status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing CORS allow-origin header")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"required field", &types.FieldRequiredError{Field: "user_id"}, 400},
		{"unknown error", errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Fatalf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
