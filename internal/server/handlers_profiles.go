package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/tyler/people-match/internal/schemas"
	"github.com/tyler/people-match/internal/types"
)

// maxProfileBodyBytes caps inbound profile payloads.
const maxProfileBodyBytes = 1 << 20

// handleUpsertProfile validates an inbound profile document against the
// profile schema and creates or replaces the stored profile for its user_id.
func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxProfileBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := schemas.ValidateProfile(body); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			s.errorResponse(w, http.StatusBadRequest, ve.Error())
			return
		}
		s.log.Error("profile schema validation unavailable", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Profile validation failed")
		return
	}

	var req types.UpsertProfileRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.UpsertProfile(r.Context(), req.Profile); err != nil {
		s.log.Error("profile upsert failed", zap.String("user_id", req.UserID), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Profile storage failed")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "stored",
		"user_id": req.UserID,
	})
}

// handleGetProfile returns a stored profile. This is the owner's own record,
// so the UI-safe projection applied to match results is deliberately not
// applied here.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if userID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing user ID")
		return
	}

	profile, err := s.store.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		s.log.Error("profile lookup failed", zap.String("user_id", userID), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Profile lookup failed")
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}
