package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/surveymaster/server/internal/auth"
	"github.com/surveymaster/server/internal/models"
	"github.com/surveymaster/server/internal/service"
)

type SurveyHandler struct {
	svc *service.SurveyService
}

func NewSurveyHandler(svc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{svc: svc}
}

func (h *SurveyHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.svc.Published(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, surveys)
}

func (h *SurveyHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	survey, err := h.svc.Detail(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, survey)
}

func (h *SurveyHandler) ByCreator(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	surveys, err := h.svc.ByCreator(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, surveys)
}

func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var survey models.Survey
	if err := readJSON(r, &survey); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if survey.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	claims := auth.GetUser(r.Context())
	id, err := h.svc.Create(r.Context(), &survey, claims.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"insertedId": id})
}

func (h *SurveyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var survey models.Survey
	if err := readJSON(r, &survey); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.Update(r.Context(), id, &survey); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"modifiedCount": 1})
}

func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deletedCount": 1})
}
