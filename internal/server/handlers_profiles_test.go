package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyler/people-match/internal/types"
)

func TestHandleUpsertProfile_Success(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(&fakeMatcher{}, store)

	body := `{
		"user_id": "u1",
		"full_name": "Jane Doe",
		"experience": [{"company": "Google", "title": "Engineer", "active_experience": 1}],
		"skills": ["go"]
	}`
	req := httptest.NewRequest(http.MethodPost, "/profiles", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleUpsertProfile(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "stored", resp["status"])
	assert.Equal(t, "u1", resp["user_id"])

	stored, ok := store.profiles["u1"]
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", stored.FullName)
}

func TestHandleUpsertProfile_MissingUserID(t *testing.T) {
	s := newTestServer(&fakeMatcher{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/profiles", strings.NewReader(`{"full_name": "Jane Doe"}`))
	w := httptest.NewRecorder()

	s.handleUpsertProfile(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "user_id")
}

func TestHandleUpsertProfile_UnknownField(t *testing.T) {
	s := newTestServer(&fakeMatcher{}, nil)

	body := `{"user_id": "u1", "password_hash": "nope"}`
	req := httptest.NewRequest(http.MethodPost, "/profiles", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleUpsertProfile(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleUpsertProfile_StoreFailure(t *testing.T) {
	store := newFakeStore()
	store.upsertErr = errors.New("deadlock detected")
	s := newTestServer(&fakeMatcher{}, store)

	req := httptest.NewRequest(http.MethodPost, "/profiles", strings.NewReader(`{"user_id": "u1"}`))
	w := httptest.NewRecorder()

	s.handleUpsertProfile(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "deadlock")
}

func TestHandleGetProfile_Found(t *testing.T) {
	store := newFakeStore()
	store.profiles["u1"] = types.Profile{
		UserID:   "u1",
		FullName: "Jane Doe",
		Experience: []types.Experience{
			{Company: "Google", CompanyName: "Google", Title: "Engineer", ActiveExperience: 1},
		},
		Skills: []string{"go"},
	}
	s := newTestServer(&fakeMatcher{}, store)

	req := httptest.NewRequest(http.MethodGet, "/profiles/u1", nil)
	req.SetPathValue("user_id", "u1")
	w := httptest.NewRecorder()

	s.handleGetProfile(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// The owner's own record comes back unprojected, full fields included.
	var got types.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Jane Doe", got.FullName)
	require.Len(t, got.Experience, 1)
	assert.Equal(t, 1, got.Experience[0].ActiveExperience)
	assert.Equal(t, []string{"go"}, got.Skills)
}

func TestHandleGetProfile_NotFound(t *testing.T) {
	s := newTestServer(&fakeMatcher{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/profiles/missing", nil)
	req.SetPathValue("user_id", "missing")
	w := httptest.NewRecorder()

	s.handleGetProfile(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Profile not found")
}

func TestHandleGetProfile_StoreFailure(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("timeout")
	s := newTestServer(&fakeMatcher{}, store)

	req := httptest.NewRequest(http.MethodGet, "/profiles/u1", nil)
	req.SetPathValue("user_id", "u1")
	w := httptest.NewRecorder()

	s.handleGetProfile(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
