package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/surveymaster/server/internal/models"
	"github.com/surveymaster/server/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := readJSON(r, &user); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if user.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	result, err := h.svc.Register(r.Context(), &user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if result.InsertedID == nil {
		writeJSON(w, http.StatusOK, result)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Role probes answer "does this email hold exactly this role". The routes
// are self-gated, so callers can only ask about themselves.

func (h *UserHandler) IsAdmin(w http.ResponseWriter, r *http.Request) {
	h.roleProbe(w, r, models.RoleAdmin, "admin")
}

func (h *UserHandler) IsSurveyor(w http.ResponseWriter, r *http.Request) {
	h.roleProbe(w, r, models.RoleSurveyor, "surveyor")
}

func (h *UserHandler) IsProUser(w http.ResponseWriter, r *http.Request) {
	h.roleProbe(w, r, models.RoleProUser, "proUser")
}

func (h *UserHandler) roleProbe(w http.ResponseWriter, r *http.Request, role, key string) {
	email := chi.URLParam(r, "email")
	has, err := h.svc.HasRole(r.Context(), email, role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{key: has})
}

func (h *UserHandler) PromoteSurveyor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.PromoteToSurveyor(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"modifiedCount": 1})
}

func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	var req struct {
		Role string `json:"role"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.SetRole(r.Context(), email, req.Role); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"modifiedCount": 1})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deletedCount": 1})
}
