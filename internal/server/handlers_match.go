package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/tyler/people-match/internal/types"
)

// handleMatch runs a full matching request: normalize the supplied profile,
// query the store, score and rank, and return projected matches.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.engine.Match(r.Context(), req)
	if err != nil {
		// Internal detail stays in the logs; callers get a generic failure.
		s.log.Error("match request failed", zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), "Matching failed")
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}
