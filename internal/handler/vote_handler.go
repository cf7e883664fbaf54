package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/surveymaster/server/internal/auth"
	"github.com/surveymaster/server/internal/service"
)

type VoteHandler struct {
	svc *service.VoteService
}

func NewVoteHandler(svc *service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// Check reports whether the pair has a recorded vote. Absent means false.
func (h *VoteHandler) Check(w http.ResponseWriter, r *http.Request) {
	surveyID := chi.URLParam(r, "surveyId")
	userEmail := chi.URLParam(r, "userEmail")
	voted, err := h.svc.HasVoted(r.Context(), surveyID, userEmail)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"hasVoted": voted})
}

// Cast records a vote for the authenticated caller. The voter identity is
// the credential's email; a mismatching body email is rejected so one user
// cannot burn another's vote.
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SurveyID  string `json:"surveyId"`
		UserEmail string `json:"userEmail"`
		Choice    string `json:"choice"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SurveyID == "" {
		writeError(w, http.StatusBadRequest, "surveyId is required")
		return
	}
	claims := auth.GetUser(r.Context())
	if req.UserEmail != "" && req.UserEmail != claims.Email {
		writeError(w, http.StatusForbidden, "forbidden access")
		return
	}
	result, err := h.svc.Cast(r.Context(), req.SurveyID, claims.Email, req.Choice)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
